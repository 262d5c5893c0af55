package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) Getenv {
	return func(k string) string { return m[k] }
}

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantHours int
		wantErr   string
	}{
		{name: "defaults", env: map[string]string{"JWT_SECRET": "s"}, wantHours: 24},
		{name: "custom expiration", env: map[string]string{"JWT_SECRET": "s", "JWT_EXPIRATION_HOURS": "48"}, wantHours: 48},
		{name: "missing secret", env: map[string]string{}, wantErr: "JWT_SECRET is required"},
		{name: "non-numeric expiration", env: map[string]string{"JWT_SECRET": "s", "JWT_EXPIRATION_HOURS": "soon"}, wantErr: "invalid JWT_EXPIRATION_HOURS"},
		{name: "zero expiration", env: map[string]string{"JWT_SECRET": "s", "JWT_EXPIRATION_HOURS": "0"}, wantErr: "at least 1 hour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(envMap(tt.env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
			assert.Equal(t, time.Duration(tt.wantHours)*time.Hour, cfg.Expiration())
			assert.Equal(t, "careerpath", cfg.Issuer)
		})
	}
}

func TestNewJWTConfig_ProcessEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-process")
	t.Setenv("JWT_ISSUER", "tests")
	cfg, err := NewJWTConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.Secret)
	assert.Equal(t, "tests", cfg.Issuer)
}

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		wantCost int
		wantErr  string
	}{
		{name: "default cost", env: map[string]string{}, wantCost: DefaultBcryptCost},
		{name: "min cost", env: map[string]string{"BCRYPT_COST": "10"}, wantCost: 10},
		{name: "max cost", env: map[string]string{"BCRYPT_COST": "14"}, wantCost: 14},
		{name: "too low", env: map[string]string{"BCRYPT_COST": "9"}, wantErr: "out of range"},
		{name: "too high", env: map[string]string{"BCRYPT_COST": "15"}, wantErr: "out of range"},
		{name: "not a number", env: map[string]string{"BCRYPT_COST": "high"}, wantErr: "invalid BCRYPT_COST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewPasswordConfig(envMap(tt.env))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cfg.BcryptCost)
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, cfg.VerifyPassword("correct horse", hash))
	assert.False(t, cfg.VerifyPassword("wrong horse", hash))

	again, err := cfg.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts differ")
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered := &PasswordConfig{BcryptCost: MinBcryptCost, Pepper: "pepper"}
	plain := &PasswordConfig{BcryptCost: MinBcryptCost}

	hash, err := peppered.HashPassword("secret-pw")
	require.NoError(t, err)
	assert.True(t, peppered.VerifyPassword("secret-pw", hash))
	assert.False(t, plain.VerifyPassword("secret-pw", hash), "rotated pepper invalidates hashes")
}

func TestPasswordConfig_TooLong(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: MinBcryptCost}
	_, err := cfg.HashPassword(strings.Repeat("a", 73))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to hash password")
}
