package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"calorie-log/internal/app"
	"calorie-log/internal/i18n"
	"calorie-log/internal/models"
)

// statsQuery selects entries by --from/--to when set, else by period.
type statsQuery struct {
	from string
	to   string
}

func (q *statsQuery) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&q.from, "from", "", "Start date (YYYY-MM-DD), inclusive")
	cmd.Flags().StringVar(&q.to, "to", "", "End date (YYYY-MM-DD), inclusive")
}

func (q *statsQuery) run(a *app.App, args []string) ([]models.MealEntry, error) {
	if q.from != "" || q.to != "" {
		from, to := q.from, q.to
		if from == "" {
			from = to
		}
		if to == "" {
			to = from
		}
		return a.Range(from, to)
	}
	period := string(models.PeriodWeek)
	if len(args) > 0 {
		period = args[0]
	}
	return a.Stats(period)
}

func newStatsCmd(opts *options) *cobra.Command {
	var (
		q      statsQuery
		asJSON bool
		daily  bool
	)

	cmd := &cobra.Command{
		Use:   "stats [week|month|all]",
		Short: "Show recorded meals for a period",
		Long:  "Show recorded meals for the last week (default), month, all time, or a --from/--to date range.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				entries, err := q.run(a, args)
				if err != nil {
					return reported(err)
				}
				return printStats(cmd, a, entries, asJSON, daily)
			})
		},
	}
	q.bind(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	cmd.Flags().BoolVar(&daily, "daily", false, "Print per-day totals instead of meals")

	cmd.AddCommand(newStatsExportCmd(opts), newStatsClearCmd(opts))
	return cmd
}

func printStats(cmd *cobra.Command, a *app.App, entries []models.MealEntry, asJSON, daily bool) error {
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		if daily {
			return enc.Encode(a.DailyTotals(entries))
		}
		if entries == nil {
			entries = []models.MealEntry{}
		}
		return enc.Encode(entries)
	}

	loc := a.Localizer()
	if len(entries) == 0 {
		fmt.Fprintln(out, loc.T("stats_empty"))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if daily {
		fmt.Fprintf(w, "%s\t%s\n", loc.T("stats_header_date"), loc.T("stats_header_total"))
		for _, day := range a.DailyTotals(entries) {
			fmt.Fprintf(w, "%s\t%s\n", day.Date, app.FormatNumber(day.Total))
		}
		return w.Flush()
	}

	var total float64
	for _, entry := range entries {
		total += entry.Total
		fmt.Fprintf(w, "%s\t\t%s\n", entry.Timestamp, app.FormatNumber(entry.Total))
		for _, item := range entry.Items {
			fmt.Fprintf(w, "\t%s %sg\t%s\n", item.Name, app.FormatNumber(item.Weight), app.FormatNumber(item.Calories))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, loc.T("calc_total", map[string]any{"Total": app.FormatNumber(total)}))
	return nil
}

func newStatsExportCmd(opts *options) *cobra.Command {
	var q statsQuery

	cmd := &cobra.Command{
		Use:   "export <file.xlsx> [week|month|all]",
		Short: "Export meals and daily totals to a spreadsheet",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				period := []string{string(models.PeriodAll)}
				if len(args) == 2 {
					period = args[1:]
				}
				entries, err := q.run(a, period)
				if err != nil {
					return reported(err)
				}
				return reported(a.Export(args[0], entries))
			})
		},
	}
	q.bind(cmd)
	return cmd
}

func newStatsClearCmd(opts *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole meal history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				if !yes {
					loc := a.Localizer()
					notifier(cmd).Error(loc.T(i18n.TitleWarning), loc.T("stats_clear_confirm"))
					return reported(fmt.Errorf("clear not confirmed"))
				}
				return reported(a.ClearStats())
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
	return cmd
}
