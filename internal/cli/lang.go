package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"calorie-log/internal/app"
	"calorie-log/internal/i18n"
)

func newLangCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show, select or reset the language",
		Long:  "Manage the stored language choice. Each language has its own product catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showLanguage(cmd, opts)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored language",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return showLanguage(cmd, opts)
			},
		},
		&cobra.Command{
			Use:   "set <ru|en>",
			Short: "Store the language and create its catalog if missing",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				scoped := *opts
				scoped.lang = args[0]
				return withApp(cmd, &scoped, nil, func(a *app.App) error {
					return reported(a.SelectLanguage(args[0]))
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget the stored language",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := openEnv(cmd, opts)
				if err != nil {
					return err
				}
				defer e.Close()

				loc := e.localizer(opts)
				n := notifier(cmd)
				if err := e.settings.Reset(); err != nil {
					e.logger.Error().Err(err).Msg("failed to reset settings")
					n.Error(loc.T(i18n.TitleError), loc.Error(err))
					return reported(err)
				}
				e.logger.Info().Msg("language reset")
				n.Info(loc.T(i18n.TitleSuccess), loc.T("language_reset"))
				return nil
			},
		},
	)

	return cmd
}

func showLanguage(cmd *cobra.Command, opts *options) error {
	e, err := openEnv(cmd, opts)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.settings.Read()
	loc := e.localizer(opts)
	if !s.HasLanguage() {
		fmt.Fprintln(cmd.OutOrStdout(), loc.T("no_language"))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), loc.T("language_selected", map[string]any{"Language": string(s.Language)}))
	return nil
}
