// internal/models/meal.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Language is a supported catalog/display language code.
type Language string

const (
	LangRU Language = "ru"
	LangEN Language = "en"
)

// SupportedLanguages lists the languages in display order.
var SupportedLanguages = []Language{LangRU, LangEN}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch lang := Language(strings.ToLower(strings.TrimSpace(s))); lang {
	case LangRU, LangEN:
		return lang, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Catalog maps a product name to calories per 100 g.
type Catalog map[string]float64

// Clone returns an independent copy.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

type MealItem struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Calories float64 `json:"calories"`
}

// MealEntry is one completed calculation as stored in the meal log.
type MealEntry struct {
	Timestamp string     `json:"timestamp"`
	Items     []MealItem `json:"items"`
	Total     float64    `json:"total"`
}

// Layouts accepted when reading stored timestamps. Entries written by
// older versions carry naive local timestamps with microseconds.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses the entry timestamp. Naive timestamps are read as local time.
func (e MealEntry) Time() (time.Time, error) {
	s := strings.TrimSpace(e.Timestamp)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.Local(), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", e.Timestamp)
}

// Period is a predefined statistics range.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// Days returns the window length of a bounded period, 0 for PeriodAll.
func (p Period) Days() (int, error) {
	switch p {
	case PeriodWeek:
		return 7, nil
	case PeriodMonth:
		return 30, nil
	case PeriodAll:
		return 0, nil
	}
	return 0, &PeriodError{Period: string(p)}
}

// DayTotal is one point of the per-day calorie series.
type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}
