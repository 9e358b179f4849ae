package config

import (
	"reflect"
	"strings"

	"sales-sync/core/database"
	"sales-sync/core/logger"
	"sales-sync/core/server"
	"sales-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage snapshots may be read from.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the sales store connection.
	Database database.Config `mapstructure:"database"`
	// Sync holds configuration for snapshot synchronization runs.
	Sync SyncConfig `mapstructure:"sync"`
}

// SyncConfig controls how a snapshot is read and applied.
type SyncConfig struct {
	// EntryName is the tabular file expected inside the snapshot archive.
	// Empty means the archive must contain exactly one CSV entry.
	EntryName string `mapstructure:"entry_name" default:"0122_CUR.csv"`
	// Workers is the number of concurrent insert/update workers. 1 keeps runs sequential.
	Workers int `mapstructure:"workers" default:"1"`
	// DeleteBatchSize caps the number of keys per bulk delete statement.
	DeleteBatchSize int `mapstructure:"delete_batch_size" default:"500"`
	// AllowEmptySnapshot permits a snapshot with no valid rows to wipe the store.
	AllowEmptySnapshot bool `mapstructure:"allow_empty_snapshot" default:"false"`
	// SnapshotDir is the only directory HTTP-triggered syncs may read local
	// archives from. Empty restricts HTTP syncs to s3:// locators.
	SnapshotDir string `mapstructure:"snapshot_dir" default:""`
	// DuplicatePolicy resolves repeated identities in a snapshot (last_write_wins, fail_fast).
	DuplicatePolicy string `mapstructure:"duplicate_policy" default:"last_write_wins"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATABASE_HOST -> database.host)
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

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
