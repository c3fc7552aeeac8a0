// internal/storage/storage.go
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

// MealLogRepository is the append-only meal history.
type MealLogRepository interface {
	// Entries returns the full history in insertion order.
	Entries() ([]models.MealEntry, error)
	Append(entry models.MealEntry) error
	Clear() error
	Close() error
}

// Open returns the backend named by kind.
func Open(kind, path string, logger zerolog.Logger) (MealLogRepository, error) {
	switch kind {
	case config.StoreJSON, "":
		return NewJSONStorage(path, logger), nil
	case config.StoreSQLite:
		return NewSQLiteStorage(path)
	}
	return nil, fmt.Errorf("unknown meal log backend %q", kind)
}
