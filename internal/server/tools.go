// internal/server/tools.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"

	"calorie-log/internal/app"
	"calorie-log/internal/calc"
	"calorie-log/internal/models"
)

var errInvalidParams = errors.New("invalid parameters")

// numberString accepts a JSON number or string and keeps the raw text, so
// form-style validation happens in the catalog and engine.
type numberString string

func (n *numberString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = numberString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected number or string, got %s", data)
	}
	*n = numberString(num.String())
	return nil
}

type ListProductsParams struct {
	Search string `json:"search,omitempty" description:"Case-insensitive name prefix"`
}

type ProductParams struct {
	Name     string       `json:"name" description:"Product name"`
	Calories numberString `json:"calories,omitempty" description:"Calories per 100 g"`
}

type CalculateParams struct {
	Items []struct {
		Product string       `json:"product" description:"Product name from the catalog"`
		Weight  numberString `json:"weight" description:"Weight in grams"`
	} `json:"items" description:"Products eaten, in order"`
}

type StatsParams struct {
	Period    string `json:"period,omitempty" description:"week, month or all (defaults to week)"`
	StartDate string `json:"start_date,omitempty" description:"Start date (YYYY-MM-DD), overrides period"`
	EndDate   string `json:"end_date,omitempty" description:"End date (YYYY-MM-DD), overrides period"`
}

type productView struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

// extractParams safely extracts parameters from the request arguments
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal arguments: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func (s *MealLogServer) registerTools() {
	s.tools = map[string]toolHandler{
		"list_products":  s.handleListProducts,
		"add_product":    s.handleAddProduct,
		"update_product": s.handleUpdateProduct,
		"delete_product": s.handleDeleteProduct,
		"calculate":      s.handleCalculate,
		"get_stats":      s.handleGetStats,
		"daily_totals":   s.handleDailyTotals,
		"clear_stats":    s.handleClearStats,
	}
	for name := range s.tools {
		s.log.Debug().Str("tool", name).Msg("registered tool")
	}
}

func (s *MealLogServer) handleListProducts(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ListProductsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	mgr := s.app.Catalog()
	names := mgr.Search(params.Search)
	products := make([]productView, 0, len(names))
	for _, name := range names {
		kcal, _ := mgr.Lookup(name)
		products = append(products, productView{Name: name, Calories: kcal})
	}

	return s.createJSONResponse(map[string]interface{}{
		"language": mgr.Language(),
		"products": products,
	})
}

func (s *MealLogServer) handleAddProduct(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProductParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.dispatch(app.AddProduct{Name: params.Name, Calories: string(params.Calories)})
}

func (s *MealLogServer) handleUpdateProduct(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProductParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	return s.dispatch(app.ChangeProduct{Name: params.Name, Calories: string(params.Calories)})
}

func (s *MealLogServer) handleDeleteProduct(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProductParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	key, err := s.app.Dispatch(app.DeleteProduct{Name: params.Name})
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"deleted": key})
}

func (s *MealLogServer) dispatch(action app.Action) (*protocol.CallToolResult, error) {
	key, err := s.app.Dispatch(action)
	if err != nil {
		return nil, err
	}
	kcal, _ := s.app.Catalog().Lookup(key)
	return s.createJSONResponse(productView{Name: key, Calories: kcal})
}

func (s *MealLogServer) handleCalculate(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params CalculateParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	pairs := make([]calc.Pair, 0, len(params.Items))
	for _, item := range params.Items {
		pairs = append(pairs, calc.Pair{Product: item.Product, Weight: string(item.Weight)})
	}

	res, err := s.app.Calculate(pairs)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(res.Entry)
}

func (s *MealLogServer) entriesFor(params StatsParams) ([]models.MealEntry, error) {
	if params.StartDate != "" || params.EndDate != "" {
		if params.StartDate == "" || params.EndDate == "" {
			return nil, &models.ValidationError{Field: models.FieldDate, Reason: models.ReasonMissingData}
		}
		return s.app.Range(params.StartDate, params.EndDate)
	}
	period := strings.TrimSpace(params.Period)
	if period == "" {
		period = string(models.PeriodWeek)
	}
	return s.app.Stats(period)
}

func (s *MealLogServer) handleGetStats(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params StatsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	entries, err := s.entriesFor(params)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MealEntry{}
	}

	var total float64
	for _, e := range entries {
		total += e.Total
	}
	return s.createJSONResponse(map[string]interface{}{
		"count":   len(entries),
		"total":   total,
		"entries": entries,
	})
}

func (s *MealLogServer) handleDailyTotals(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params StatsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	entries, err := s.entriesFor(params)
	if err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{
		"days": s.app.DailyTotals(entries),
	})
}

func (s *MealLogServer) handleClearStats(req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	if err := s.app.ClearStats(); err != nil {
		return nil, err
	}
	return s.createJSONResponse(map[string]interface{}{"cleared": true})
}

