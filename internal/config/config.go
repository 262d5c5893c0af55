// Package config loads careerpath settings. Application settings come from an optional
// careerpath.yaml overlaid with CAREERPATH_* environment variables; auth secrets come
// from plain environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/llm"
)

// AppName is the config file base name and the environment prefix.
const AppName = "careerpath"

// Assistant modes.
const (
	AssistantScripted = "scripted"
	AssistantGemini   = "gemini"
)

// Config is the application configuration.
type Config struct {
	Debug bool `mapstructure:"debug"`
	JSON  bool `mapstructure:"json"`

	Server    ServerConfig    `mapstructure:"server"`
	API       APIConfig       `mapstructure:"api"`
	Store     StoreConfig     `mapstructure:"store"`
	Export    ExportConfig    `mapstructure:"export"`
	Assistant AssistantConfig `mapstructure:"assistant"`

	// DatabaseURL is the PostgreSQL connection string used by the server.
	DatabaseURL string `mapstructure:"database_url"`
	// CatalogFile optionally replaces the embedded catalog (JSON or YAML).
	CatalogFile string `mapstructure:"catalog_file"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
}

// APIConfig points the CLI at a running server.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

// StoreConfig selects the device store. An empty Path keeps state in memory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// ExportConfig configures resume export.
type ExportConfig struct {
	Dir          string          `mapstructure:"dir"`
	ChromePath   string          `mapstructure:"chrome_path"`
	PrintTimeout time.Duration   `mapstructure:"print_timeout"`
	DisablePDF   bool            `mapstructure:"disable_pdf"`
	S3           export.S3Config `mapstructure:"s3"`
}

// AssistantConfig selects the chat provider.
type AssistantConfig struct {
	Mode   string        `mapstructure:"mode"`
	APIKey string        `mapstructure:"api_key"`
	Delay  time.Duration `mapstructure:"delay"`
	LLM    llm.Config    `mapstructure:"llm"`
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("store.path", "")
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.chrome_path", "")
	v.SetDefault("export.print_timeout", export.DefaultPrintTimeout)
	v.SetDefault("export.disable_pdf", false)
	v.SetDefault("export.s3.bucket", "")
	v.SetDefault("export.s3.prefix", "")
	v.SetDefault("export.s3.region", "")
	v.SetDefault("export.s3.endpoint", "")
	v.SetDefault("export.s3.access_key", "")
	v.SetDefault("export.s3.secret_key", "")
	v.SetDefault("assistant.mode", AssistantScripted)
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.delay", 1500*time.Millisecond)
	v.SetDefault("assistant.llm.provider", string(llmDefaults.Provider))
	v.SetDefault("assistant.llm.models", map[string]string{
		string(llm.TierLite):     llmDefaults.GetModel(llm.TierLite),
		string(llm.TierStandard): llmDefaults.GetModel(llm.TierStandard),
	})
	v.SetDefault("assistant.llm.temperature", llmDefaults.Temperature)
	v.SetDefault("assistant.llm.max_output_tokens", llmDefaults.MaxOutputTokens)
	v.SetDefault("database_url", "")
	v.SetDefault("catalog_file", "")
}

// New returns a viper instance with defaults and environment binding applied.
// CAREERPATH_SERVER_ADDR overrides server.addr, and so on.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (or careerpath.yaml in the working directory when path is empty)
// into v and decodes the result. A missing default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and combinations.
func (c *Config) Validate() error {
	switch c.Assistant.Mode {
	case AssistantScripted:
	case AssistantGemini:
		if c.Assistant.APIKey == "" {
			return fmt.Errorf("config error: assistant.api_key is required for the gemini assistant")
		}
	default:
		return fmt.Errorf("config error: unknown assistant mode %q", c.Assistant.Mode)
	}
	if c.Export.PrintTimeout < 0 {
		return fmt.Errorf("config error: export.print_timeout must be non-negative")
	}
	if c.Assistant.Delay < 0 {
		return fmt.Errorf("config error: assistant.delay must be non-negative")
	}
	return nil
}
