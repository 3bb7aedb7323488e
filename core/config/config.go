package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"storelisting/core/logger"
	"storelisting/core/server"
	"storelisting/core/storage"
	"storelisting/feature/appstore"
	"storelisting/feature/journal"
	"storelisting/feature/play"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// AppStore holds App Store Connect credentials.
	AppStore appstore.Config `mapstructure:"appstore"`
	// Play holds Google Play Developer API credentials.
	Play play.Config `mapstructure:"play"`
	// Limits holds per-field length limits of both stores.
	Limits Limits `mapstructure:"limits"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot archive.
	Storage storage.Config `mapstructure:"storage"`
	// Journal holds configuration for the run journal.
	Journal journal.Config `mapstructure:"journal"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// Limits groups the field length limits of each backend.
type Limits struct {
	AppStore appstore.Limits `mapstructure:"appstore"`
	Play     play.Limits     `mapstructure:"play"`
}

// LoadConfig loads configuration from defaults, an optional config file in
// path, the .env file in path and environment variables, in increasing order
// of precedence.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// 2. Optional config.{toml,yaml,json}
	v.SetConfigName("config")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
