// internal/app/actions.go
package app

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"calorie-log/internal/i18n"
)

var ErrUnknownAction = errors.New("unknown product action")

// Action is a submitted product form. The set of actions is closed.
type Action interface {
	op() string
}

type AddProduct struct {
	Name     string
	Calories string
}

type ChangeProduct struct {
	Name     string
	Calories string
}

type DeleteProduct struct {
	Name string
}

func (AddProduct) op() string    { return "add_product" }
func (ChangeProduct) op() string { return "update_product" }
func (DeleteProduct) op() string { return "delete_product" }

// Dispatch applies a product action to the catalog, notifies the user of
// the outcome and returns the catalog key it touched.
func (a *App) Dispatch(action Action) (string, error) {
	if action == nil {
		return "", a.Guard("dispatch", func() error { return ErrUnknownAction })
	}
	var key string
	err := a.Guard(action.op(), func() error {
		var err error
		switch act := action.(type) {
		case AddProduct:
			var value float64
			key, value, err = a.catalog.AddProduct(act.Name, act.Calories)
			if err != nil {
				return err
			}
			a.success("product_added", map[string]any{"Name": key, "Calories": FormatNumber(value)})
		case ChangeProduct:
			key, _, err = a.catalog.UpdateProduct(act.Name, act.Calories)
			if err != nil {
				return err
			}
			a.success("product_updated", map[string]any{"Name": key})
		case DeleteProduct:
			key, err = a.catalog.DeleteProduct(act.Name)
			if err != nil {
				return err
			}
			a.success("product_deleted", map[string]any{"Name": key})
		default:
			return fmt.Errorf("%w: %T", ErrUnknownAction, action)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

func (a *App) success(id string, data map[string]any) {
	a.notify.Info(a.loc.T(i18n.TitleSuccess), a.loc.T(id, data))
}

// FormatNumber renders calories and weights with at most two decimals.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
