// internal/meallog/report.go
package meallog

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

// DailyTotals sums entry totals per local calendar date, oldest first.
// Entries with malformed timestamps are left out of the series.
func DailyTotals(entries []models.MealEntry) []models.DayTotal {
	sums := make(map[string]float64)
	for _, entry := range entries {
		ts, err := entry.Time()
		if err != nil {
			continue
		}
		sums[startOfDay(ts).Format(dateLayout)] += entry.Total
	}

	out := make([]models.DayTotal, 0, len(sums))
	for date, total := range sums {
		out = append(out, models.DayTotal{Date: date, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Headers labels the exported sheets; the caller localizes them.
type Headers struct {
	Timestamp string
	Product   string
	Weight    string
	Calories  string
	Date      string
	Total     string
}

var DefaultHeaders = Headers{
	Timestamp: "Timestamp",
	Product:   "Product",
	Weight:    "Weight, g",
	Calories:  "Calories",
	Date:      "Date",
	Total:     "Total calories",
}

const (
	sheetMeals = "Meals"
	sheetDaily = "Daily"
)

// ExportXLSX writes one row per meal item to a "Meals" sheet and the daily
// series to a "Daily" sheet.
func ExportXLSX(path string, entries []models.MealEntry, h Headers) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetMeals); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetDaily); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	row := 1
	if err := setRow(f, sheetMeals, row, []any{h.Timestamp, h.Product, h.Weight, h.Calories}); err != nil {
		return err
	}
	for _, entry := range entries {
		for _, item := range entry.Items {
			row++
			if err := setRow(f, sheetMeals, row, []any{entry.Timestamp, item.Name, item.Weight, item.Calories}); err != nil {
				return err
			}
		}
	}

	if err := setRow(f, sheetDaily, 1, []any{h.Date, h.Total}); err != nil {
		return err
	}
	for i, day := range DailyTotals(entries) {
		if err := setRow(f, sheetDaily, i+2, []any{day.Date, day.Total}); err != nil {
			return err
		}
	}

	if err := config.EnsureDir(path); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	if err := f.SaveAs(path); err != nil {
		return &models.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
