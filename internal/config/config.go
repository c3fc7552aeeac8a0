// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"calorie-log/internal/models"
)

const (
	appDirName = "calorie-log"

	EnvHome     = "CALORIE_LOG_HOME"
	EnvStore    = "CALORIE_LOG_STORE"
	EnvLogLevel = "CALORIE_LOG_LEVEL"
	EnvLogFile  = "CALORIE_LOG_FILE"
)

// Meal log backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds process-level settings taken from the environment.
type Config struct {
	HomeDir  string
	Store    string
	LogLevel string
	LogFile  string
}

// Load reads the environment, after loading .env from the working
// directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Store:    StoreJSON,
		LogLevel: "info",
	}

	if home := os.Getenv(EnvHome); home != "" {
		cfg.HomeDir = home
	} else {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.HomeDir = filepath.Join(base, appDirName)
	}

	if store := strings.ToLower(os.Getenv(EnvStore)); store != "" {
		if store != StoreJSON && store != StoreSQLite {
			return nil, fmt.Errorf("%s must be %q or %q, got %q", EnvStore, StoreJSON, StoreSQLite, store)
		}
		cfg.Store = store
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		cfg.LogLevel = level
	}

	cfg.LogFile = os.Getenv(EnvLogFile)
	if cfg.LogFile == "" {
		cfg.LogFile = cfg.DefaultLogFile()
	}

	return cfg, nil
}

// SettingsPath is the INI file remembering the language choice.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.HomeDir, "config.ini")
}

// DefaultCatalogPath is where a language's catalog lives unless the
// settings file says otherwise.
func (c *Config) DefaultCatalogPath(lang models.Language) string {
	return DefaultCatalogPath(c.HomeDir, lang)
}

func (c *Config) DefaultLogFile() string {
	return filepath.Join(c.HomeDir, "logs", "app.log")
}

// MealLogPath depends on the configured backend.
func (c *Config) MealLogPath() string {
	if c.Store == StoreSQLite {
		return filepath.Join(c.HomeDir, "data", "meals.db")
	}
	return filepath.Join(c.HomeDir, "data", "meals.json")
}

func DefaultCatalogPath(home string, lang models.Language) string {
	return filepath.Join(home, "data", "products", fmt.Sprintf("products_%s.json", lang))
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	return nil
}
