// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

type SQLiteStorage struct {
	db   *sql.DB
	path string
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := config.EnsureDir(dbPath); err != nil {
		return nil, &models.IOError{Op: "open", Path: dbPath, Err: err}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps the foreign_keys pragma in effect.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db, path: dbPath}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    PRAGMA foreign_keys = ON;

    CREATE TABLE IF NOT EXISTS meals (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        timestamp TEXT NOT NULL,
        total REAL NOT NULL,
        created_at DATETIME NOT NULL
    );

    CREATE TABLE IF NOT EXISTS meal_items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        meal_id TEXT NOT NULL,
        name TEXT NOT NULL,
        weight REAL NOT NULL,
        calories REAL NOT NULL,
        FOREIGN KEY (meal_id) REFERENCES meals(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_meals_timestamp ON meals(timestamp);
    CREATE INDEX IF NOT EXISTS idx_meal_items_meal_id ON meal_items(meal_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Append and Clear report failures as *models.IOError carrying the
// database path.
func (s *SQLiteStorage) Append(entry models.MealEntry) error {
	if err := s.append(entry); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStorage) append(entry models.MealEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	mealID := uuid.NewString()

	// Insert meal
	mealQuery := `
        INSERT INTO meals (id, timestamp, total, created_at)
        VALUES (?, ?, ?, ?)
    `
	_, err = tx.Exec(mealQuery, mealID, entry.Timestamp, entry.Total, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert meal: %w", err)
	}

	// Insert items
	itemQuery := `
        INSERT INTO meal_items (meal_id, name, weight, calories)
        VALUES (?, ?, ?, ?)
    `
	for _, item := range entry.Items {
		_, err = tx.Exec(itemQuery, mealID, item.Name, item.Weight, item.Calories)
		if err != nil {
			return fmt.Errorf("failed to insert meal item: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) Entries() ([]models.MealEntry, error) {
	entries, err := s.entries()
	if err != nil {
		return nil, &models.IOError{Op: "read", Path: s.path, Err: err}
	}
	return entries, nil
}

func (s *SQLiteStorage) entries() ([]models.MealEntry, error) {
	query := `
        SELECT id, timestamp, total
        FROM meals
        ORDER BY seq
    `

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	var ids []string
	var entries []models.MealEntry
	for rows.Next() {
		var id string
		var entry models.MealEntry
		if err := rows.Scan(&id, &entry.Timestamp, &entry.Total); err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		ids = append(ids, id)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meals: %w", err)
	}
	rows.Close()

	// Load items for each meal
	for i, id := range ids {
		items, err := s.loadItemsForMeal(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load items for meal %s: %w", id, err)
		}
		entries[i].Items = items
	}

	return entries, nil
}

func (s *SQLiteStorage) loadItemsForMeal(mealID string) ([]models.MealItem, error) {
	query := `
        SELECT name, weight, calories
        FROM meal_items
        WHERE meal_id = ?
        ORDER BY id
    `

	rows, err := s.db.Query(query, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal items: %w", err)
	}
	defer rows.Close()

	items := []models.MealItem{}
	for rows.Next() {
		var item models.MealItem
		if err := rows.Scan(&item.Name, &item.Weight, &item.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan meal item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *SQLiteStorage) Clear() error {
	if err := s.clear(); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func (s *SQLiteStorage) clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meal_items`); err != nil {
		return fmt.Errorf("failed to clear meal items: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM meals`); err != nil {
		return fmt.Errorf("failed to clear meals: %w", err)
	}

	return tx.Commit()
}
