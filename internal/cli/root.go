package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"calorie-log/internal/app"
	"calorie-log/internal/config"
	"calorie-log/internal/i18n"
	"calorie-log/internal/logging"
	"calorie-log/internal/models"
)

var Version = "dev"

// options are the persistent flags shared by every command.
type options struct {
	lang    string
	home    string
	verbose bool
}

// reportedError marks an error the user has already been shown.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "calorie-log",
		Short:         "Calorie diary with a per-language product catalog",
		Long:          "calorie-log keeps a product catalog (calories per 100 g), prices meals by weight and reports daily and period totals.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "Language for this run (ru or en), overrides the stored choice")
	root.PersistentFlags().StringVar(&opts.home, "home", "", "Data directory (default $"+config.EnvHome+" or the user config dir)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log to stderr as well as the log file")

	root.AddCommand(
		newLangCmd(opts),
		newProductsCmd(opts),
		newCalcCmd(opts),
		newStatsCmd(opts),
		newServeCmd(opts),
	)

	root.Version = Version
	root.SetVersionTemplate(fmt.Sprintf("calorie-log %s\n", Version))

	return root
}

func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		var rep reportedError
		if !errors.As(err, &rep) {
			fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		}
		os.Exit(1)
	}
}

// env is the process context a command runs in.
type env struct {
	cfg      *config.Config
	logger   zerolog.Logger
	closer   io.Closer
	settings *config.SettingsStore
}

func (e *env) Close() error {
	return e.closer.Close()
}

func openEnv(cmd *cobra.Command, opts *options) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.home != "" {
		cfg.HomeDir = opts.home
		if os.Getenv(config.EnvLogFile) == "" {
			cfg.LogFile = ""
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = cfg.DefaultLogFile()
	}

	logOpts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile}
	if opts.verbose {
		logOpts.Console = cmd.ErrOrStderr()
	}
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:      cfg,
		logger:   logger,
		closer:   closer,
		settings: config.NewSettingsStore(cfg.SettingsPath(), cfg.HomeDir, logger),
	}, nil
}

// localizer picks the --lang flag, then the stored language, then English.
func (e *env) localizer(opts *options) *i18n.Localizer {
	lang := models.LangEN
	if l, err := models.ParseLanguage(opts.lang); err == nil {
		lang = l
	} else if s := e.settings.Read(); s.HasLanguage() {
		lang = s.Language
	}
	loc, err := i18n.New(lang)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to load messages")
		loc, _ = i18n.New(models.LangEN)
	}
	return loc
}

func notifier(cmd *cobra.Command) app.ConsoleNotifier {
	return app.ConsoleNotifier{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
}

// withApp opens the app for the active language, runs fn and closes
// everything.
func withApp(cmd *cobra.Command, opts *options, n app.Notifier, fn func(*app.App) error) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()
	return e.run(cmd, opts, n, fn)
}

// run opens the app inside an existing env. A missing language choice is
// explained to the user.
func (e *env) run(cmd *cobra.Command, opts *options, n app.Notifier, fn func(*app.App) error) error {
	if n == nil {
		n = notifier(cmd)
	}
	a, err := app.Open(app.Options{
		Config:   e.cfg,
		Logger:   e.logger,
		Notifier: n,
		Language: opts.lang,
	})
	if err != nil {
		loc := e.localizer(opts)
		switch {
		case errors.Is(err, app.ErrNoLanguage):
			n.Error(loc.T(i18n.TitleWarning), loc.T("no_language"))
		default:
			e.logger.Error().Err(err).Msg("failed to open application")
			n.Error(loc.T(i18n.TitleError), loc.Error(err))
		}
		return reported(err)
	}
	defer a.Close()

	return fn(a)
}
