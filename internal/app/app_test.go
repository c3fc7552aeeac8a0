package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-log/internal/calc"
	"calorie-log/internal/config"
	"calorie-log/internal/models"
)

type note struct {
	level   string
	title   string
	message string
}

type recordingNotifier struct {
	notes []note
}

func (n *recordingNotifier) Info(title, message string) {
	n.notes = append(n.notes, note{"info", title, message})
}

func (n *recordingNotifier) Error(title, message string) {
	n.notes = append(n.notes, note{"error", title, message})
}

func (n *recordingNotifier) last() note {
	if len(n.notes) == 0 {
		return note{}
	}
	return n.notes[len(n.notes)-1]
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

func openApp(t *testing.T, lang string) (*App, *recordingNotifier, *config.Config) {
	t.Helper()
	cfg := &config.Config{HomeDir: t.TempDir(), Store: config.StoreJSON}
	n := &recordingNotifier{}
	a, err := Open(Options{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Notifier: n,
		Language: lang,
		Clock:    func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a, n, cfg
}

func TestOpenWithoutLanguage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{HomeDir: t.TempDir(), Store: config.StoreJSON}
	_, err := Open(Options{Config: cfg, Logger: zerolog.Nop()})
	assert.ErrorIs(t, err, ErrNoLanguage)

	_, err = Open(Options{Config: cfg, Logger: zerolog.Nop(), Language: "de"})
	assert.ErrorIs(t, err, models.ErrUnsupportedLanguage)
}

func TestOpenCreatesDefaultCatalog(t *testing.T) {
	t.Parallel()

	a, n, cfg := openApp(t, "en")
	assert.Equal(t, models.LangEN, a.Language())
	assert.Equal(t, []note{{"info", "Info", "File " + cfg.DefaultCatalogPath(models.LangEN) + " created with default values."}}, n.notes)

	kcal, ok := a.Catalog().Lookup("Apples")
	require.True(t, ok)
	assert.Equal(t, 52.0, kcal)

	_, err := os.Stat(cfg.DefaultCatalogPath(models.LangEN))
	assert.NoError(t, err)
}

func TestOpenUsesStoredLanguage(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{HomeDir: t.TempDir(), Store: config.StoreJSON}
	settings := config.NewSettingsStore(cfg.SettingsPath(), cfg.HomeDir, zerolog.Nop())
	require.NoError(t, settings.Write(models.LangRU))

	a, err := Open(Options{Config: cfg, Logger: zerolog.Nop()})
	require.NoError(t, err)
	a.Close()

	// The catalog file now exists, so a second start reports nothing.
	n := &recordingNotifier{}
	a, err = Open(Options{Config: cfg, Logger: zerolog.Nop(), Notifier: n})
	require.NoError(t, err)
	defer a.Close()
	assert.Empty(t, n.notes)
	assert.Equal(t, models.LangRU, a.Language())
	_, ok := a.Catalog().Lookup("Яблоки")
	assert.True(t, ok)
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	a, n, _ := openApp(t, "en")

	key, err := a.Dispatch(AddProduct{Name: "dragon fruit", Calories: "60"})
	require.NoError(t, err)
	assert.Equal(t, "Dragon Fruit", key)
	assert.Equal(t, note{"info", "Success", "Added Dragon Fruit with 60 kcal."}, n.last())

	_, err = a.Dispatch(AddProduct{Name: "Dragon Fruit", Calories: "70"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
	assert.Equal(t, note{"info", "Info", "This product already exists."}, n.last())
	kcal, _ := a.Catalog().Lookup("Dragon Fruit")
	assert.Equal(t, 60.0, kcal)

	_, err = a.Dispatch(ChangeProduct{Name: "Dragon Fruit", Calories: "65.5"})
	require.NoError(t, err)
	kcal, _ = a.Catalog().Lookup("Dragon Fruit")
	assert.Equal(t, 65.5, kcal)

	_, err = a.Dispatch(ChangeProduct{Name: "Kiwano", Calories: "44"})
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Equal(t, "error", n.last().level)
	assert.Equal(t, "Product 'Kiwano' not found in the database.", n.last().message)

	_, err = a.Dispatch(AddProduct{Name: "Kiwano", Calories: "many"})
	assert.ErrorIs(t, err, &models.ValidationError{Reason: models.ReasonNotANumber})
	assert.Equal(t, "many is not a number.", n.last().message)

	key, err = a.Dispatch(DeleteProduct{Name: "dragon fruit"})
	require.NoError(t, err)
	assert.Equal(t, "Dragon Fruit", key)
	assert.Equal(t, "Product Dragon Fruit deleted.", n.last().message)
	_, ok := a.Catalog().Lookup("Dragon Fruit")
	assert.False(t, ok)

	_, err = a.Dispatch(nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, "Unknown product action.", n.last().message)
}

func TestCalculateRecordsMeal(t *testing.T) {
	t.Parallel()

	a, n, _ := openApp(t, "en")

	res, err := a.Calculate([]calc.Pair{{Product: "Apples", Weight: "100"}, {Product: "Bananas", Weight: "50"}})
	require.NoError(t, err)
	assert.Equal(t, 96.5, res.Total)

	last := n.last()
	assert.Equal(t, "Result", last.title)
	assert.Contains(t, last.message, "Apples — 100g — 52 kcal")
	assert.Contains(t, last.message, "TOTAL: 96.5 kcal")

	week, err := a.Stats("week")
	require.NoError(t, err)
	require.Len(t, week, 1)
	assert.Equal(t, testNow.Format(time.RFC3339Nano), week[0].Timestamp)

	_, err = a.Calculate([]calc.Pair{{Product: "Kiwi", Weight: "50"}})
	assert.ErrorIs(t, err, models.ErrNotFound)
	all, err := a.Stats("all")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStatsErrorsAreReported(t *testing.T) {
	t.Parallel()

	a, n, _ := openApp(t, "en")

	_, err := a.Stats("year")
	assert.ErrorIs(t, err, models.ErrUnknownPeriod)
	assert.Equal(t, note{"error", "Error", "Unknown period: year"}, n.last())

	_, err = a.Range("2025-13-01", "2025-06-01")
	assert.ErrorIs(t, err, &models.ValidationError{Field: models.FieldDate})
}

func TestSelectAndResetLanguage(t *testing.T) {
	t.Parallel()

	a, n, _ := openApp(t, "en")

	require.NoError(t, a.SelectLanguage("ru"))
	assert.Equal(t, models.LangRU, a.Language())
	assert.Equal(t, models.LangRU, a.Settings().Read().Language)
	_, ok := a.Catalog().Lookup("Яблоки")
	assert.True(t, ok)
	assert.Equal(t, "Успех", n.last().title)

	// The engine follows the new catalog.
	res, err := a.Calculate([]calc.Pair{{Product: "Яблоки", Weight: "200"}})
	require.NoError(t, err)
	assert.Equal(t, 104.0, res.Total)

	err = a.SelectLanguage("fr")
	assert.ErrorIs(t, err, models.ErrUnsupportedLanguage)

	require.NoError(t, a.ResetLanguage())
	s := a.Settings().Read()
	assert.True(t, s.Exists)
	assert.False(t, s.HasLanguage())
}

func TestClearAndExport(t *testing.T) {
	t.Parallel()

	a, _, _ := openApp(t, "ru")
	_, err := a.Calculate([]calc.Pair{{Product: "Яблоки", Weight: "100"}})
	require.NoError(t, err)

	entries, err := a.Stats("all")
	require.NoError(t, err)
	out := filepath.Join(t.TempDir(), "stats.xlsx")
	require.NoError(t, a.Export(out, entries))
	_, err = os.Stat(out)
	assert.NoError(t, err)

	daily := a.DailyTotals(entries)
	require.Len(t, daily, 1)
	assert.Equal(t, "2025-06-15", daily[0].Date)

	require.NoError(t, a.ClearStats())
	entries, err = a.Stats("all")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportMissingFile(t *testing.T) {
	t.Parallel()

	a, n, _ := openApp(t, "en")
	_, _, err := a.Import(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorAs(t, err, new(*models.IOError))
	assert.Equal(t, "error", n.last().level)
}

func TestConsoleNotifier(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	n := ConsoleNotifier{Out: &out, Err: &errOut}
	n.Info("Success", "done")
	n.Error("Error", "broken")
	assert.Equal(t, "Success: done\n", out.String())
	assert.Equal(t, "Error: broken\n", errOut.String())

	var only bytes.Buffer
	ConsoleNotifier{Out: &only}.Error("Error", "broken")
	assert.Equal(t, "Error: broken\n", only.String())
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "52", FormatNumber(52))
	assert.Equal(t, "78.26", FormatNumber(78.26000001))
	assert.Equal(t, "0.33", FormatNumber(1.0/3))
}
