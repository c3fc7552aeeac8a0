// internal/calc/engine.go
package calc

import (
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"calorie-log/internal/models"
)

// Catalog resolves a product name to calories per 100 g.
type Catalog interface {
	Lookup(name string) (float64, bool)
}

// MealLog records a priced meal.
type MealLog interface {
	Append(items []models.MealItem, total float64) (models.MealEntry, error)
}

// Pair is one raw form row: a product name and its weight in grams.
type Pair struct {
	Product string
	Weight  string
}

type Result struct {
	Items []models.MealItem
	Total float64
	Entry models.MealEntry
}

type Engine struct {
	catalog Catalog
	log     MealLog
	logger  zerolog.Logger
}

func NewEngine(catalog Catalog, log MealLog, logger zerolog.Logger) *Engine {
	return &Engine{catalog: catalog, log: log, logger: logger}
}

// Calculate prices every pair and appends the meal to the log. Nothing is
// written unless all pairs are valid. When the append fails the priced
// result is still returned alongside the error.
func (e *Engine) Calculate(pairs []Pair) (*Result, error) {
	if len(pairs) == 0 {
		return nil, &models.ValidationError{Field: models.FieldItems, Reason: models.ReasonNoItems}
	}

	res := &Result{Items: make([]models.MealItem, 0, len(pairs))}
	for _, p := range pairs {
		item, err := e.price(p)
		if err != nil {
			e.logger.Debug().Err(err).Str("product", p.Product).Msg("calculation rejected")
			return nil, err
		}
		res.Items = append(res.Items, item)
		res.Total += item.Calories
	}

	entry, err := e.log.Append(res.Items, res.Total)
	if err != nil {
		return res, err
	}
	res.Entry = entry
	return res, nil
}

func (e *Engine) price(p Pair) (models.MealItem, error) {
	name := strings.TrimSpace(p.Product)
	if name == "" {
		return models.MealItem{}, &models.ValidationError{Field: models.FieldName, Reason: models.ReasonMissingData}
	}
	density, ok := e.catalog.Lookup(name)
	if !ok {
		return models.MealItem{}, &models.NotFoundError{Kind: "product", Name: name}
	}

	raw := strings.TrimSpace(p.Weight)
	weight, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return models.MealItem{}, &models.ValidationError{Field: models.FieldWeight, Reason: models.ReasonNotANumber, Value: raw}
	}
	if weight <= 0 {
		return models.MealItem{}, &models.ValidationError{Field: models.FieldWeight, Reason: models.ReasonNonPositive, Value: raw}
	}

	return models.MealItem{Name: name, Weight: weight, Calories: density * weight / 100}, nil
}

// ParsePairs splits "name=weight" arguments. The last '=' separates the
// weight so product names may contain '='.
func ParsePairs(args []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i < 0 {
			return nil, &models.ValidationError{Field: models.FieldWeight, Reason: models.ReasonMissingData, Value: arg}
		}
		pairs = append(pairs, Pair{Product: arg[:i], Weight: arg[i+1:]})
	}
	return pairs, nil
}
