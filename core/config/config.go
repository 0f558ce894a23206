package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"daysync/core/database"
	"daysync/core/logger"
	"daysync/core/reconcile"
	"daysync/core/server"
	"daysync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, one section per package.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the remote replica bucket.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the local replica database.
	Database database.Config `mapstructure:"database"`
	// Sync holds object layout and sweep settings.
	Sync reconcile.Config `mapstructure:"sync"`
}

// LoadConfig reads <path>/.env into the environment, then builds the config from
// environment variables over the `default` tags. SERVER_PORT maps to server.port.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is fine; production sets real environment variables.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	registerKeys(v, reflect.TypeFor[Config](), "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// validate rejects settings no sync run can work with.
func (c *Config) validate() error {
	switch {
	case c.Sync.Concurrency < 1:
		return fmt.Errorf("sync.concurrency must be at least 1, got %d", c.Sync.Concurrency)
	case strings.TrimSpace(c.Sync.CatalogObject) == "":
		return errors.New("sync.catalog_object must not be empty")
	case c.Sync.DayPrefix != "" && strings.HasPrefix(c.Sync.CatalogObject, strings.TrimLeft(c.Sync.DayPrefix, "/")):
		return fmt.Errorf("sync.catalog_object %q must live outside sync.day_prefix %q", c.Sync.CatalogObject, c.Sync.DayPrefix)
	}
	return nil
}

// registerKeys walks the mapstructure tree of t and gives every leaf key its
// `default` tag value. AutomaticEnv only resolves keys viper already knows.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) {
	for _, field := range reflect.VisibleFields(t) {
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if field.Type.Kind() == reflect.Struct {
			registerKeys(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
