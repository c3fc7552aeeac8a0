// internal/catalog/repository.go
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/rs/zerolog"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

// Repository persists one catalog per language.
type Repository interface {
	Load(lang models.Language) (models.Catalog, error)
	Save(lang models.Language, products models.Catalog) error
}

// FileRepository keeps each language's catalog in its own JSON file.
type FileRepository struct {
	paths   map[models.Language]string
	created []string
	log     zerolog.Logger
}

// NewFileRepository maps each supported language to its catalog file.
func NewFileRepository(paths map[models.Language]string, logger zerolog.Logger) *FileRepository {
	return &FileRepository{paths: paths, log: logger}
}

// PathsFromSettings resolves catalog paths, preferring the ones stored in
// the settings file over the defaults under home.
func PathsFromSettings(s config.Settings, home string) map[models.Language]string {
	paths := make(map[models.Language]string, len(models.SupportedLanguages))
	for _, lang := range models.SupportedLanguages {
		p := s.CatalogPath(lang)
		if p == "" {
			p = config.DefaultCatalogPath(home, lang)
		}
		paths[lang] = p
	}
	return paths
}

// Path returns the catalog file for lang.
func (r *FileRepository) Path(lang models.Language) (string, error) {
	p, ok := r.paths[lang]
	if !ok || p == "" {
		return "", fmt.Errorf("%w: %q", models.ErrUnsupportedLanguage, string(lang))
	}
	return p, nil
}

// Load returns the stored catalog, creating it from defaults when needed.
func (r *FileRepository) Load(lang models.Language) (models.Catalog, error) {
	return r.EnsureDefaults(lang)
}

// Created lists the catalog files written from the default table.
func (r *FileRepository) Created() []string {
	return append([]string(nil), r.created...)
}

// EnsureDefaults returns the catalog stored for lang. A missing, blank or
// unparseable file is replaced by the default table. A file that exists
// but cannot be read is left alone and the defaults are used in memory.
// When writing the defaults fails the defaults are still returned,
// together with the *models.IOError, so the caller can carry on in memory.
func (r *FileRepository) EnsureDefaults(lang models.Language) (models.Catalog, error) {
	path, err := r.Path(lang)
	if err != nil {
		return nil, err
	}
	defaults, err := DefaultTable(lang)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return defaults, r.writeDefaults(path, defaults)
	case err != nil:
		r.log.Error().Err(err).Str("path", path).Msg("failed to read catalog, using defaults")
		return defaults, nil
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return defaults, r.writeDefaults(path, defaults)
	}

	products, err := decode(raw)
	if err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("failed to parse catalog, loading defaults")
		return defaults, r.writeDefaults(path, defaults)
	}
	return products, nil
}

// Save rewrites the catalog file for lang.
func (r *FileRepository) Save(lang models.Language, products models.Catalog) error {
	path, err := r.Path(lang)
	if err != nil {
		return err
	}
	return writeFile(path, products)
}

func (r *FileRepository) writeDefaults(path string, defaults models.Catalog) error {
	if err := writeFile(path, defaults); err != nil {
		r.log.Error().Err(err).Str("path", path).Msg("failed to write default catalog")
		return err
	}
	r.created = append(r.created, path)
	r.log.Info().Str("path", path).Int("products", len(defaults)).Msg("catalog created with default values")
	return nil
}

func decode(raw []byte) (models.Catalog, error) {
	var products models.Catalog
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	if products == nil {
		return nil, errors.New("catalog is null")
	}
	return products, nil
}

// encode renders the catalog the way it is stored on disk: sorted keys,
// four-space indent, non-ASCII left as is.
func encode(products models.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(products); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFile(path string, products models.Catalog) error {
	data, err := encode(products)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := config.EnsureDir(path); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
