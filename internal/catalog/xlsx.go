// internal/catalog/xlsx.go
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"calorie-log/internal/models"
)

// ReadXLSX reads products from the first sheet of a spreadsheet: product
// name in the first column, calories per 100 g in the second. A first row
// whose second cell is not a number is taken as a header and skipped.
func ReadXLSX(path string) (models.Catalog, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &models.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("excel file %s is empty", path)
	}

	start := 0
	if len(rows[0]) < 2 {
		start = 1
	} else if _, err := parseCell(rows[0][1]); err != nil {
		start = 1
	}

	products := make(models.Catalog)
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		name := strings.TrimSpace(row[0])
		if len(row) < 2 {
			return nil, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonMissingData, Value: name}
		}
		kcal, err := parseCell(row[1])
		if err != nil {
			return nil, &models.ValidationError{Field: models.FieldCalories, Reason: models.ReasonNotANumber, Value: row[1]}
		}
		products[name] = kcal
	}

	if len(products) == 0 {
		return nil, &models.ValidationError{Field: models.FieldItems, Reason: models.ReasonNoItems}
	}
	return products, nil
}

// parseCell accepts both decimal points and decimal commas.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
