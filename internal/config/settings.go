package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings are application preferences, separate from the plan being calculated.
type Settings struct {
	LogLevel     string
	OutputFormat string
	Currency     string
	ServerAddr   string
}

// Setting keys, also reachable as NESTEGG_LOG_LEVEL and so on.
const (
	KeyLogLevel     = "log.level"
	KeyOutputFormat = "output.format"
	KeyCurrency     = "output.currency"
	KeyServerAddr   = "server.addr"
)

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:     "info",
		OutputFormat: "console",
		Currency:     "USD",
		ServerAddr:   ":8080",
	}
}

// NewViper returns a viper instance with defaults, environment binding and the standard
// search path for nestegg.yaml.
func NewViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyOutputFormat, defaults.OutputFormat)
	v.SetDefault(KeyCurrency, defaults.Currency)
	v.SetDefault(KeyServerAddr, defaults.ServerAddr)

	v.SetEnvPrefix("NESTEGG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("nestegg")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "nestegg"))
	}
	return v
}

// LoadSettings reads settings from an explicit file when path is set, otherwise from
// nestegg.yaml on the search path if one exists. Environment variables override both.
func LoadSettings(v *viper.Viper, path string) (Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	return Settings{
		LogLevel:     v.GetString(KeyLogLevel),
		OutputFormat: v.GetString(KeyOutputFormat),
		Currency:     strings.ToUpper(v.GetString(KeyCurrency)),
		ServerAddr:   v.GetString(KeyServerAddr),
	}, nil
}
