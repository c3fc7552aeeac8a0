// internal/meallog/query.go
package meallog

import (
	"strings"
	"time"

	"calorie-log/internal/models"
)

const dateLayout = "2006-01-02"

// QueryRange returns entries whose local calendar date lies in
// [start, end], both given as YYYY-MM-DD. Entries with malformed
// timestamps never match.
func (s *Store) QueryRange(start, end string) ([]models.MealEntry, error) {
	from, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	return s.between(from, to)
}

// QueryLastNDays covers today and the n-1 days before it.
func (s *Store) QueryLastNDays(n int) ([]models.MealEntry, error) {
	if n < 1 {
		return nil, &models.ValidationError{Field: models.FieldDays, Reason: models.ReasonNonPositive}
	}
	today := startOfDay(s.now())
	return s.between(today.AddDate(0, 0, -(n - 1)), today)
}

// QueryPeriod resolves one of the predefined periods.
func (s *Store) QueryPeriod(period string) ([]models.MealEntry, error) {
	p := models.Period(strings.ToLower(strings.TrimSpace(period)))
	days, err := p.Days()
	if err != nil {
		return nil, err
	}
	if p == models.PeriodAll {
		return s.repo.Entries()
	}
	return s.QueryLastNDays(days)
}

func (s *Store) between(from, to time.Time) ([]models.MealEntry, error) {
	entries, err := s.repo.Entries()
	if err != nil {
		return nil, err
	}

	var out []models.MealEntry
	for _, entry := range entries {
		ts, err := entry.Time()
		if err != nil {
			s.log.Debug().Str("timestamp", entry.Timestamp).Msg("skipping meal with malformed timestamp")
			continue
		}
		day := startOfDay(ts)
		if !day.Before(from) && !day.After(to) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: models.FieldDate, Reason: models.ReasonNotANumber, Value: s}
	}
	return t, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
