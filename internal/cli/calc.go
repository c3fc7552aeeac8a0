package cli

import (
	"github.com/spf13/cobra"

	"calorie-log/internal/app"
	"calorie-log/internal/calc"
)

func newCalcCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <product=grams>...",
		Short: "Price a meal and record it",
		Long:  "Compute the calories of each product by weight, print the total and append the meal to the log.",
		Example: `  calorie-log calc Apples=150 "Oatmeal=60"
  calorie-log --lang ru calc "Гречка (варёная)=200"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, nil, func(a *app.App) error {
				pairs, err := calc.ParsePairs(args)
				if err != nil {
					return reported(a.Guard("calculate", func() error { return err }))
				}
				_, err = a.Calculate(pairs)
				return reported(err)
			})
		},
	}
}
