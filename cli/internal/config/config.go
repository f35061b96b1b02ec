package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	SnapshotPath string
	Reserved32   int32
	Reserved64   uint64
	Seed         uint64
	Provider     string
	DatabaseURL  string
	Debug        bool
}

// LoadConfig loads configuration from various sources.
// configFile, when set, replaces the default search path.
func LoadConfig(configFile string) (*Config, error) {
	// Find home directory
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetFs(AppFs)
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".strhash")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath(filepath.Join(home, ".config", "strhash"))
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("STRHASH")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("snapshot_path", "strhash.json")
	viper.SetDefault("reserved32", -1)
	viper.SetDefault("reserved64", 0)
	viper.SetDefault("seed", 0)
	viper.SetDefault("provider", "sqlite")
	viper.SetDefault("debug", false)

	// Try to read config file (ignore if not found)
	_ = viper.ReadInConfig()

	// Load .env file if it exists
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}

	// Load .env.local if it exists (higher priority)
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	databaseURL := viper.GetString("database_url")
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	cfg := &Config{
		SnapshotPath: viper.GetString("snapshot_path"),
		Reserved32:   viper.GetInt32("reserved32"),
		Reserved64:   viper.GetUint64("reserved64"),
		Seed:         viper.GetUint64("seed"),
		Provider:     viper.GetString("provider"),
		DatabaseURL:  databaseURL,
		Debug:        viper.GetBool("debug"),
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config) (string, error) {
	viper.Set("snapshot_path", cfg.SnapshotPath)
	viper.Set("reserved32", cfg.Reserved32)
	viper.Set("reserved64", cfg.Reserved64)
	viper.Set("seed", cfg.Seed)
	viper.Set("provider", cfg.Provider)
	viper.Set("debug", cfg.Debug)

	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(home, ".config", "strhash")
	if err := AppFs.MkdirAll(configPath, 0755); err != nil {
		return "", err
	}

	viper.SetFs(AppFs)
	configFile := filepath.Join(configPath, ".strhash.yaml")
	return configFile, viper.WriteConfigAs(configFile)
}
