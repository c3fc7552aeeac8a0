// internal/storage/json.go
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

// JSONStorage keeps the whole history in memory and rewrites the file on
// every change.
type JSONStorage struct {
	path    string
	entries []models.MealEntry
	log     zerolog.Logger
}

// NewJSONStorage loads the history at path. A missing file starts an
// empty history; an unparseable one is copied aside to path+".bak" and
// also starts empty.
func NewJSONStorage(path string, logger zerolog.Logger) *JSONStorage {
	s := &JSONStorage{path: path, log: logger}
	s.load()
	return s
}

func (s *JSONStorage) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Error().Err(err).Str("path", s.path).Msg("failed to read meal log")
		}
		return
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return
	}

	var entries []models.MealEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("failed to parse meal log, starting empty")
		if err := os.WriteFile(s.path+".bak", raw, 0o644); err != nil {
			s.log.Error().Err(err).Str("path", s.path+".bak").Msg("failed to back up meal log")
		}
		return
	}
	s.entries = entries
}

func (s *JSONStorage) Entries() ([]models.MealEntry, error) {
	out := make([]models.MealEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Append adds entry and rewrites the file. The entry is dropped again if
// the write fails.
func (s *JSONStorage) Append(entry models.MealEntry) error {
	s.entries = append(s.entries, entry)
	if err := s.save(); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return err
	}
	return nil
}

func (s *JSONStorage) Clear() error {
	prev := s.entries
	s.entries = nil
	if err := s.save(); err != nil {
		s.entries = prev
		return err
	}
	return nil
}

func (s *JSONStorage) Close() error { return nil }

func (s *JSONStorage) save() error {
	entries := s.entries
	if entries == nil {
		entries = []models.MealEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode meal log: %w", err)
	}

	if err := config.EnsureDir(s.path); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
