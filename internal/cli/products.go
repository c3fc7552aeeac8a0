package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"calorie-log/internal/app"
)

func newProductsCmd(opts *options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"p"},
		Short:   "List and edit the product catalog",
		Long:    "List and edit the product catalog of the active language. Calories are per 100 g.",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally by name prefix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				mgr := a.Catalog()
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, name := range mgr.Search(search) {
					kcal, _ := mgr.Lookup(name)
					fmt.Fprintf(w, "%s\t%s\n", name, app.FormatNumber(kcal))
				}
				return w.Flush()
			})
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Case-insensitive name prefix")

	cmd.AddCommand(
		list,
		productActionCmd(opts, "add <name> <kcal>", "Add a product", 2, func(args []string) app.Action {
			return app.AddProduct{Name: args[0], Calories: args[1]}
		}),
		productActionCmd(opts, "update <name> <kcal>", "Change the calories of a product", 2, func(args []string) app.Action {
			return app.ChangeProduct{Name: args[0], Calories: args[1]}
		}),
		productActionCmd(opts, "delete <name>", "Delete a product", 1, func(args []string) app.Action {
			return app.DeleteProduct{Name: args[0]}
		}),
		&cobra.Command{
			Use:   "import <file.xlsx>",
			Short: "Import products from a spreadsheet (name, kcal columns)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, opts, nil, func(a *app.App) error {
					_, _, err := a.Import(args[0])
					return reported(err)
				})
			},
		},
	)

	return cmd
}

func productActionCmd(opts *options, use, short string, nargs int, build func([]string) app.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				_, err := a.Dispatch(build(args))
				return reported(err)
			})
		},
	}
}
