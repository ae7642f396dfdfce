package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Storage StorageConfig
	Log     LogConfig
	UI      UIConfig
}

// StorageConfig locates the on-disk data and export directories.
type StorageConfig struct {
	DataDir    string
	ExportsDir string
}

type LogConfig struct {
	Level  string
	Format string
}

// UIConfig tunes list presentation defaults.
type UIConfig struct {
	DefaultPageSize int
	Theme           string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Storage = StorageConfig{
		DataDir:    v.GetString("DATA_DIR"),
		ExportsDir: v.GetString("EXPORTS_DIR"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	pageSize := v.GetInt("DEFAULT_PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	cfg.UI = UIConfig{
		DefaultPageSize: pageSize,
		Theme:           v.GetString("DEFAULT_THEME"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("DEFAULT_PAGE_SIZE", 10)
	v.SetDefault("DEFAULT_THEME", "light")
}
