// internal/app/app.go
package app

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"calorie-log/internal/calc"
	"calorie-log/internal/catalog"
	"calorie-log/internal/config"
	"calorie-log/internal/i18n"
	"calorie-log/internal/meallog"
	"calorie-log/internal/models"
	"calorie-log/internal/storage"
)

var ErrNoLanguage = errors.New("no language selected")

type Options struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Notifier Notifier
	// Language overrides the stored choice for this process.
	Language string
	// Clock replaces time.Now for meal timestamps and date queries.
	Clock func() time.Time
}

// App wires the stores of one language together. It is not safe for
// concurrent use.
type App struct {
	cfg      *config.Config
	settings *config.SettingsStore
	loc      *i18n.Localizer
	catalog  *catalog.Manager
	meals    *meallog.Store
	engine   *calc.Engine
	notify   Notifier
	log      zerolog.Logger
	clock    func() time.Time
}

// Open reads the settings, loads the catalog for the active language and
// opens the meal log. A catalog whose defaults could not be written is
// reported through the notifier and the app still opens.
func Open(opts Options) (*App, error) {
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	cfg := opts.Config

	a := &App{
		cfg:      cfg,
		settings: config.NewSettingsStore(cfg.SettingsPath(), cfg.HomeDir, opts.Logger),
		notify:   opts.Notifier,
		log:      opts.Logger,
		clock:    opts.Clock,
	}

	code := strings.TrimSpace(opts.Language)
	if code == "" {
		code = string(a.settings.Read().Language)
	}
	if code == "" {
		return nil, ErrNoLanguage
	}
	lang, err := models.ParseLanguage(code)
	if err != nil {
		return nil, err
	}

	if err := a.load(lang); err != nil {
		return nil, err
	}

	var mealOpts []meallog.Option
	if a.clock != nil {
		mealOpts = append(mealOpts, meallog.WithClock(a.clock))
	}
	repo, err := storage.Open(cfg.Store, cfg.MealLogPath(), opts.Logger)
	if err != nil {
		return nil, err
	}
	a.meals = meallog.NewStore(repo, opts.Logger, mealOpts...)
	a.engine = calc.NewEngine(a.catalog, a.meals, opts.Logger)

	a.log.Info().Str("language", string(lang)).Str("store", cfg.Store).Msg("application started")
	return a, nil
}

// load builds the localizer and catalog manager for lang.
func (a *App) load(lang models.Language) error {
	loc, err := i18n.New(lang)
	if err != nil {
		return err
	}
	a.loc = loc

	repo := catalog.NewFileRepository(catalog.PathsFromSettings(a.settings.Read(), a.cfg.HomeDir), a.log)
	mgr, err := catalog.NewManager(lang, repo, a.log)
	if mgr == nil {
		return err
	}
	if err != nil {
		a.report("load_catalog", err)
	}
	for _, path := range repo.Created() {
		a.notify.Info(a.loc.T(i18n.TitleInfo), a.loc.T("defaults_created", map[string]any{"Path": path}))
	}
	a.catalog = mgr
	if a.engine != nil {
		a.engine = calc.NewEngine(a.catalog, a.meals, a.log)
	}
	return nil
}

func (a *App) Language() models.Language { return a.loc.Language() }

func (a *App) Localizer() *i18n.Localizer { return a.loc }

func (a *App) Catalog() *catalog.Manager { return a.catalog }

func (a *App) Settings() *config.SettingsStore { return a.settings }

func (a *App) MealLogPath() string { return a.cfg.MealLogPath() }

// SelectLanguage stores lang and switches the catalog and messages to it.
func (a *App) SelectLanguage(code string) error {
	return a.Guard("select_language", func() error {
		lang, err := models.ParseLanguage(code)
		if err != nil {
			return err
		}
		if err := a.settings.Write(lang); err != nil {
			return err
		}
		if err := a.load(lang); err != nil {
			return err
		}
		a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T("language_selected", map[string]any{"Language": string(lang)}))
		return nil
	})
}

// ResetLanguage forgets the stored language. The running app keeps its
// current one.
func (a *App) ResetLanguage() error {
	return a.Guard("reset_language", func() error {
		if err := a.settings.Reset(); err != nil {
			return err
		}
		a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T("language_reset"))
		return nil
	})
}

// Guard runs fn and reports its error: logged, shown to the user in the
// active language, and returned. An existing product is informational.
func (a *App) Guard(op string, fn func() error) error {
	err := fn()
	if err != nil {
		a.report(op, err)
	}
	return err
}

func (a *App) report(op string, err error) {
	msg := a.loc.Error(err)
	if errors.Is(err, ErrUnknownAction) {
		msg = a.loc.T("err_unknown_action")
	}

	if errors.Is(err, models.ErrAlreadyExists) {
		a.log.Info().Str("op", op).Err(err).Msg("operation skipped")
		a.notify.Info(a.loc.T(i18n.TitleInfo), msg)
		return
	}

	var ioErr *models.IOError
	if errors.As(err, &ioErr) {
		a.log.Error().Str("op", op).Str("path", ioErr.Path).Err(err).Msg("operation failed")
	} else {
		a.log.Error().Str("op", op).Err(err).Msg("operation failed")
	}
	a.notify.Error(a.loc.T(i18n.TitleError), msg)
}

// Calculate prices a meal and records it. The summary lists each item and
// the total.
func (a *App) Calculate(pairs []calc.Pair) (*calc.Result, error) {
	var res *calc.Result
	err := a.Guard("calculate", func() error {
		var err error
		res, err = a.engine.Calculate(pairs)
		return err
	})
	if res != nil && err == nil {
		a.notify.Info(a.loc.T(i18n.TitleResult), a.Summary(res))
	}
	return res, err
}

// Summary renders a calculation result in the active language.
func (a *App) Summary(res *calc.Result) string {
	var b strings.Builder
	for _, item := range res.Items {
		b.WriteString(a.loc.T("calc_line", map[string]any{
			"Name":     item.Name,
			"Weight":   FormatNumber(item.Weight),
			"Calories": FormatNumber(item.Calories),
		}))
		b.WriteByte('\n')
	}
	b.WriteString(a.loc.T("calc_total", map[string]any{"Total": FormatNumber(res.Total)}))
	b.WriteByte('\n')
	b.WriteString(a.loc.T("meal_saved", map[string]any{"Path": a.cfg.MealLogPath()}))
	return b.String()
}

// Stats returns the entries of a predefined period.
func (a *App) Stats(period string) ([]models.MealEntry, error) {
	var out []models.MealEntry
	err := a.Guard("stats", func() error {
		var err error
		out, err = a.meals.QueryPeriod(period)
		return err
	})
	return out, err
}

// Range returns the entries between two YYYY-MM-DD dates, inclusive.
func (a *App) Range(from, to string) ([]models.MealEntry, error) {
	var out []models.MealEntry
	err := a.Guard("stats_range", func() error {
		var err error
		out, err = a.meals.QueryRange(from, to)
		return err
	})
	return out, err
}

func (a *App) DailyTotals(entries []models.MealEntry) []models.DayTotal {
	return meallog.DailyTotals(entries)
}

// Export writes entries to an xlsx workbook with localized headers.
func (a *App) Export(path string, entries []models.MealEntry) error {
	return a.Guard("stats_export", func() error {
		h := meallog.Headers{
			Timestamp: a.loc.T("stats_header_timestamp"),
			Product:   a.loc.T("stats_header_product"),
			Weight:    a.loc.T("stats_header_weight"),
			Calories:  a.loc.T("stats_header_calories"),
			Date:      a.loc.T("stats_header_date"),
			Total:     a.loc.T("stats_header_total"),
		}
		if err := meallog.ExportXLSX(path, entries, h); err != nil {
			return err
		}
		a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T("stats_exported", map[string]any{"Path": path}))
		return nil
	})
}

// ClearStats drops the whole meal history.
func (a *App) ClearStats() error {
	return a.Guard("stats_clear", func() error {
		if err := a.meals.Clear(); err != nil {
			return err
		}
		a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T("stats_cleared"))
		return nil
	})
}

// Import upserts the products of an xlsx sheet into the active catalog.
func (a *App) Import(path string) (added, updated int, err error) {
	err = a.Guard("import_products", func() error {
		products, err := catalog.ReadXLSX(path)
		if err != nil {
			return err
		}
		added, updated, err = a.catalog.Import(products)
		if err != nil {
			return err
		}
		a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T("products_imported", map[string]any{"Added": added, "Updated": updated}))
		return nil
	})
	return added, updated, err
}

func (a *App) Close() error {
	if a.meals == nil {
		return nil
	}
	return a.meals.Close()
}
