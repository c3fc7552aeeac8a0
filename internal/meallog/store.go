// internal/meallog/store.go
package meallog

import (
	"time"

	"github.com/rs/zerolog"

	"calorie-log/internal/models"
	"calorie-log/internal/storage"
)

// Store stamps new entries and answers date queries over a
// storage.MealLogRepository.
type Store struct {
	repo storage.MealLogRepository
	now  func() time.Time
	log  zerolog.Logger
}

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(repo storage.MealLogRepository, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{repo: repo, now: time.Now, log: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append records a completed calculation under the current time.
func (s *Store) Append(items []models.MealItem, total float64) (models.MealEntry, error) {
	entry := models.MealEntry{
		Timestamp: s.now().Format(time.RFC3339Nano),
		Items:     append([]models.MealItem(nil), items...),
		Total:     total,
	}
	if err := s.repo.Append(entry); err != nil {
		s.log.Error().Err(err).Msg("failed to save meal")
		return models.MealEntry{}, err
	}
	s.log.Info().Int("items", len(items)).Float64("total", total).Msg("meal saved")
	return entry, nil
}

// Entries returns the whole history.
func (s *Store) Entries() ([]models.MealEntry, error) {
	return s.repo.Entries()
}

// Clear drops the whole history.
func (s *Store) Clear() error {
	if err := s.repo.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear meal log")
		return err
	}
	s.log.Info().Msg("meal log cleared")
	return nil
}

func (s *Store) Close() error {
	return s.repo.Close()
}
