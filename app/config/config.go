package config

import (
	"fmt"
	"net"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Views    ViewsConfig
}

type ServerConfig struct {
	Host         string
	Port         string        `validate:"required,numeric"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	Driver      string `validate:"oneof=badger sqlite postgres"`
	Path        string `validate:"required_unless=Driver postgres"`
	URL         string `validate:"required_if=Driver postgres"`
	AutoMigrate bool
}

type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool
}

type ViewsConfig struct {
	TemplateDir string `validate:"required"`
	StaticDir   string `validate:"required"`
	Reload      bool
}

// Addr is the listen address built from host and port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// Load reads an optional .env file, then the environment, then applies defaults.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("WRITE_TIMEOUT_SECONDS", 15)
	v.SetDefault("DB_DRIVER", "badger")
	v.SetDefault("DB_PATH", "data/badger")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("TEMPLATE_DIR", "templates")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("RELOAD", true)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("HOST"),
			Port:         v.GetString("PORT"),
			ReadTimeout:  time.Duration(v.GetInt("READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("WRITE_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      v.GetString("DB_DRIVER"),
			Path:        v.GetString("DB_PATH"),
			URL:         v.GetString("DATABASE_URL"),
			AutoMigrate: v.GetBool("AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Views: ViewsConfig{
			TemplateDir: v.GetString("TEMPLATE_DIR"),
			StaticDir:   v.GetString("STATIC_DIR"),
			Reload:      v.GetBool("RELOAD"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
