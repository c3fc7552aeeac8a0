package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"calorie-log/internal/models"
)

func writeSheet(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "products.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSXWithHeader(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, [][]any{
		{"Product", "kcal / 100 g"},
		{"Apples", 52},
		{"Milk 3.2%", "60,5"},
		{"", ""},
		{"Tea", 1},
	})

	products, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, models.Catalog{"Apples": 52, "Milk 3.2%": 60.5, "Tea": 1}, products)
}

func TestReadXLSXWithoutHeader(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, [][]any{
		{"Apples", 52},
		{"Pears", 57},
	})

	products, err := ReadXLSX(path)
	require.NoError(t, err)
	assert.Equal(t, models.Catalog{"Apples": 52, "Pears": 57}, products)
}

func TestReadXLSXErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorAs(t, err, new(*models.IOError))

	path := writeSheet(t, [][]any{
		{"Product", "kcal"},
		{"Apples", "many"},
	})
	_, err = ReadXLSX(path)
	assert.ErrorIs(t, err, &models.ValidationError{Reason: models.ReasonNotANumber})

	path = writeSheet(t, [][]any{{"Product", "kcal"}})
	_, err = ReadXLSX(path)
	assert.ErrorIs(t, err, &models.ValidationError{Reason: models.ReasonNoItems})
}
