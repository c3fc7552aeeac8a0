package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-log/internal/models"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvStore, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(home, "logs", "app.log"), cfg.LogFile)
	assert.Equal(t, filepath.Join(home, "config.ini"), cfg.SettingsPath())
	assert.Equal(t, filepath.Join(home, "data", "meals.json"), cfg.MealLogPath())
	assert.Equal(t, filepath.Join(home, "data", "products", "products_ru.json"), cfg.DefaultCatalogPath(models.LangRU))
}

func TestLoadSQLiteStore(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)
	t.Setenv(EnvStore, "SQLite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, filepath.Join(home, "data", "meals.db"), cfg.MealLogPath())
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv(EnvStore, "postgres")

	_, err := Load()
	assert.Error(t, err)
}
