package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringArray
		wantErr bool
	}{
		{name: "nil", src: nil, want: StringArray{}},
		{name: "bytes", src: []byte(`["Deep learning","Working with data"]`), want: StringArray{"Deep learning", "Working with data"}},
		{name: "string", src: `["NLP Engineer"]`, want: StringArray{"NLP Engineer"}},
		{name: "wrong type", src: 42, wantErr: true},
		{name: "bad json", src: []byte(`{`), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a StringArray
			err := a.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestStringArray_Value(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	v, err = StringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(v.([]byte)))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", normalizeEmail("  Ada@Example.COM "))
}

func TestSchema_CreatesBothTables(t *testing.T) {
	joined := ""
	for _, s := range Schema {
		joined += s
	}
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS onboarding_records")
	assert.Contains(t, joined, "ON DELETE CASCADE")
}
