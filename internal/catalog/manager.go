// internal/catalog/manager.go
package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"calorie-log/internal/models"
)

// Manager owns the in-memory catalog of the active language. Every
// mutation is written through to the repository; when the write fails the
// mutation is undone so memory never drifts from disk.
type Manager struct {
	lang     models.Language
	repo     Repository
	products models.Catalog
	log      zerolog.Logger
}

// NewManager loads the catalog for lang. A returned *models.IOError from
// creating the default file is not fatal: the manager is usable and the
// error is handed back for reporting.
func NewManager(lang models.Language, repo Repository, logger zerolog.Logger) (*Manager, error) {
	if _, err := models.ParseLanguage(string(lang)); err != nil {
		return nil, err
	}

	products, err := repo.Load(lang)
	if products == nil {
		if err == nil {
			err = fmt.Errorf("catalog for %s is empty", lang)
		}
		return nil, err
	}

	return &Manager{
		lang:     lang,
		repo:     repo,
		products: products,
		log:      logger.With().Str("language", string(lang)).Logger(),
	}, err
}

func (m *Manager) Language() models.Language { return m.lang }

// Products returns a copy of the catalog.
func (m *Manager) Products() models.Catalog {
	return m.products.Clone()
}

// Names returns product names in sorted order.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.products))
	for name := range m.products {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the calorie density of an exact product name.
func (m *Manager) Lookup(name string) (float64, bool) {
	kcal, ok := m.products[name]
	return kcal, ok
}

// Search returns sorted names starting with prefix, ignoring case. An
// empty prefix matches everything.
func (m *Manager) Search(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, name := range m.Names() {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			out = append(out, name)
		}
	}
	return out
}

// AddProduct validates form input and stores a new product. A name that
// is already present yields models.ErrAlreadyExists and changes nothing.
func (m *Manager) AddProduct(name, kcal string) (string, float64, error) {
	name = strings.TrimSpace(name)
	kcal = strings.TrimSpace(kcal)

	if name != "" {
		if _, ok := m.existingKey(name); ok {
			return "", 0, fmt.Errorf("product %q: %w", name, models.ErrAlreadyExists)
		}
	}
	value, err := parseCalories(name, kcal)
	if err != nil {
		return "", 0, err
	}
	key, err := m.UpdateProductData(name, value)
	if err != nil {
		return "", 0, err
	}
	return key, value, nil
}

// UpdateProduct changes the calorie density of an existing product.
func (m *Manager) UpdateProduct(name, kcal string) (string, float64, error) {
	name = strings.TrimSpace(name)
	kcal = strings.TrimSpace(kcal)

	if name == "" {
		return "", 0, &models.ValidationError{Field: models.FieldName, Reason: models.ReasonMissingData}
	}
	if _, ok := m.existingKey(name); !ok {
		return "", 0, &models.NotFoundError{Kind: "product", Name: name}
	}
	if kcal == "" {
		return "", 0, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonMissingData}
	}
	value, err := parseCalories(name, kcal)
	if err != nil {
		return "", 0, err
	}
	key, err := m.UpdateProductData(name, value)
	if err != nil {
		return "", 0, err
	}
	return key, value, nil
}

// UpdateProductData is the low-level setter behind add and update. It
// returns the key the value was stored under.
func (m *Manager) UpdateProductData(name string, value float64) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &models.ValidationError{Field: models.FieldName, Reason: models.ReasonMissingData}
	}
	if _, err := strconv.ParseFloat(name, 64); err == nil {
		return "", &models.ValidationError{Field: models.FieldName, Reason: models.ReasonWrongType, Value: name}
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonWrongType, Value: formatValue(value)}
	}
	if value <= 0 {
		return "", &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonNonPositive, Value: formatValue(value)}
	}

	key, ok := m.existingKey(name)
	if !ok {
		key = m.titleCase(name)
	}

	prev, existed := m.products[key]
	m.products[key] = value
	if err := m.persist(); err != nil {
		if existed {
			m.products[key] = prev
		} else {
			delete(m.products, key)
		}
		return "", err
	}

	m.log.Info().Str("product", key).Float64("kcal", value).Msg("product saved")
	return key, nil
}

// DeleteProduct removes a product by its exact or title-cased name.
func (m *Manager) DeleteProduct(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &models.ValidationError{Field: models.FieldName, Reason: models.ReasonMissingData}
	}
	key, ok := m.existingKey(name)
	if !ok {
		return "", &models.NotFoundError{Kind: "product", Name: name}
	}

	prev := m.products[key]
	delete(m.products, key)
	if err := m.persist(); err != nil {
		m.products[key] = prev
		return "", err
	}

	m.log.Info().Str("product", key).Msg("product deleted")
	return key, nil
}

// Import upserts many products with one write. Invalid rows abort the
// whole import before anything changes.
func (m *Manager) Import(products models.Catalog) (added, updated int, err error) {
	next := m.products.Clone()
	for name, value := range products {
		name = strings.TrimSpace(name)
		if name == "" {
			return 0, 0, &models.ValidationError{Field: models.FieldName, Reason: models.ReasonMissingData}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
			return 0, 0, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonNonPositive, Value: formatValue(value)}
		}
		key, ok := m.existingKey(name)
		if ok {
			updated++
		} else {
			key = m.titleCase(name)
			if _, dup := next[key]; dup {
				updated++
			} else {
				added++
			}
		}
		next[key] = value
	}

	prev := m.products
	m.products = next
	if err := m.persist(); err != nil {
		m.products = prev
		return 0, 0, err
	}

	m.log.Info().Int("added", added).Int("updated", updated).Msg("products imported")
	return added, updated, nil
}

func (m *Manager) persist() error {
	if err := m.repo.Save(m.lang, m.products); err != nil {
		m.log.Error().Err(err).Msg("failed to save catalog")
		return err
	}
	return nil
}

// existingKey finds the stored key for name, trying it verbatim and then
// title-cased.
func (m *Manager) existingKey(name string) (string, bool) {
	if _, ok := m.products[name]; ok {
		return name, true
	}
	titled := m.titleCase(name)
	if _, ok := m.products[titled]; ok {
		return titled, true
	}
	return "", false
}

func (m *Manager) titleCase(name string) string {
	tag := language.English
	if m.lang == models.LangRU {
		tag = language.Russian
	}
	return cases.Title(tag).String(name)
}

func parseCalories(name, kcal string) (float64, error) {
	if name == "" || kcal == "" {
		return 0, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonMissingData}
	}
	value, err := strconv.ParseFloat(kcal, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonNotANumber, Value: kcal}
	}
	return value, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
