// internal/config/settings.go
package config

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"

	"calorie-log/internal/models"
)

// INI layout of the settings file.
const (
	SectionSettings = "settings"
	SectionFilePath = "file_path"
	KeyLanguage     = "language"
	KeyPathRU       = "path_ru"
	KeyPathEN       = "path_en"
)

// Settings is what Read found on disk. Exists is false only when there is
// no settings file at all; a file that could not be used reads back with
// Exists set and every other field empty.
type Settings struct {
	Exists   bool
	Language models.Language
	PathRU   string
	PathEN   string
}

// HasLanguage reports whether a usable language was stored.
func (s Settings) HasLanguage() bool {
	return s.Language != ""
}

// CatalogPath returns the stored catalog path for lang, or "".
func (s Settings) CatalogPath(lang models.Language) string {
	switch lang {
	case models.LangRU:
		return s.PathRU
	case models.LangEN:
		return s.PathEN
	}
	return ""
}

// SettingsStore reads and writes the settings file.
type SettingsStore struct {
	path string
	home string
	log  zerolog.Logger
}

// NewSettingsStore creates a store for the file at path. Default catalog
// paths written by Write are computed under home.
func NewSettingsStore(path, home string, logger zerolog.Logger) *SettingsStore {
	return &SettingsStore{path: path, home: home, log: logger}
}

func (s *SettingsStore) Path() string { return s.path }

// Read never fails: every problem with the file is normalised to empty values.
func (s *SettingsStore) Read() Settings {
	if _, err := os.Stat(s.path); err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug().Err(err).Str("path", s.path).Msg("settings file not accessible")
			return Settings{Exists: true}
		}
		return Settings{}
	}

	corrupt := Settings{Exists: true}

	f, err := ini.Load(s.path)
	if err != nil {
		s.log.Debug().Err(err).Str("path", s.path).Msg("settings file unreadable")
		return corrupt
	}

	settings, err := f.GetSection(SectionSettings)
	if err != nil {
		return corrupt
	}
	paths, err := f.GetSection(SectionFilePath)
	if err != nil {
		return corrupt
	}
	if !settings.HasKey(KeyLanguage) && !paths.HasKey(KeyPathRU) && !paths.HasKey(KeyPathEN) {
		return corrupt
	}

	out := Settings{
		Exists: true,
		PathRU: paths.Key(KeyPathRU).String(),
		PathEN: paths.Key(KeyPathEN).String(),
	}
	if lang, err := models.ParseLanguage(settings.Key(KeyLanguage).String()); err == nil {
		out.Language = lang
	}
	// A single stored path is treated like none.
	if out.PathRU == "" || out.PathEN == "" {
		out.PathRU, out.PathEN = "", ""
	}
	return out
}

// Write stores lang together with the default catalog paths, replacing
// whatever the file held.
func (s *SettingsStore) Write(lang models.Language) error {
	f := ini.Empty()
	f.Section(SectionSettings).Key(KeyLanguage).SetValue(string(lang))
	paths := f.Section(SectionFilePath)
	paths.Key(KeyPathRU).SetValue(DefaultCatalogPath(s.home, models.LangRU))
	paths.Key(KeyPathEN).SetValue(DefaultCatalogPath(s.home, models.LangEN))
	return s.save(f)
}

// Reset leaves an empty language and drops the path section.
func (s *SettingsStore) Reset() error {
	f := ini.Empty()
	f.Section(SectionSettings).Key(KeyLanguage).SetValue("")
	return s.save(f)
}

func (s *SettingsStore) save(f *ini.File) error {
	if err := EnsureDir(s.path); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	if err := f.SaveTo(s.path); err != nil {
		return &models.IOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
