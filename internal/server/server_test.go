package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-log/internal/app"
	"calorie-log/internal/config"
)

func newTestServer(t *testing.T) *MealLogServer {
	t.Helper()
	cfg := &config.Config{HomeDir: t.TempDir(), Store: config.StoreJSON}
	a, err := app.Open(app.Options{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Language: "en",
		Clock:    func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return NewMealLogServer(&Config{Host: "127.0.0.1", Port: 0}, a, zerolog.Nop())
}

// call posts a tool request and returns the status and the decoded JSON
// payload: the tool result text on success, the error body otherwise.
func call(t *testing.T, s *MealLogServer, name string, args map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"name": name, "arguments": args})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if rec.Code != http.StatusOK {
		return rec.Code, envelope
	}

	content, ok := envelope["content"].([]interface{})
	require.True(t, ok, "content missing in %s", rec.Body.String())
	require.Len(t, content, 1)
	text := content[0].(map[string]interface{})["text"].(string)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	return rec.Code, payload
}

func TestProductTools(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	code, out := call(t, s, "add_product", map[string]interface{}{"name": "dragon fruit", "calories": 60})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Dragon Fruit", out["name"])
	assert.Equal(t, 60.0, out["calories"])

	code, out = call(t, s, "add_product", map[string]interface{}{"name": "Dragon Fruit", "calories": "70"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "This product already exists.", out["error"])

	code, out = call(t, s, "update_product", map[string]interface{}{"name": "Dragon Fruit", "calories": "65.5"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 65.5, out["calories"])

	code, out = call(t, s, "list_products", map[string]interface{}{"search": "drag"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "en", out["language"])
	assert.Equal(t, []interface{}{map[string]interface{}{"name": "Dragon Fruit", "calories": 65.5}}, out["products"])

	code, out = call(t, s, "delete_product", map[string]interface{}{"name": "dragon fruit"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Dragon Fruit", out["deleted"])

	code, _ = call(t, s, "delete_product", map[string]interface{}{"name": "dragon fruit"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCalculateAndStatsTools(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	code, out := call(t, s, "calculate", map[string]interface{}{
		"items": []map[string]interface{}{
			{"product": "Apples", "weight": 100},
			{"product": "Bananas", "weight": "50"},
		},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 96.5, out["total"])
	assert.Len(t, out["items"], 2)

	code, out = call(t, s, "get_stats", map[string]interface{}{})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.0, out["count"])
	assert.Equal(t, 96.5, out["total"])

	code, out = call(t, s, "daily_totals", map[string]interface{}{"start_date": "2025-06-01", "end_date": "2025-06-30"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []interface{}{map[string]interface{}{"date": "2025-06-15", "total": 96.5}}, out["days"])

	code, out = call(t, s, "clear_stats", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, out["cleared"])

	code, out = call(t, s, "get_stats", map[string]interface{}{"period": "all"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0.0, out["count"])
	assert.Equal(t, []interface{}{}, out["entries"])
}

func TestToolErrorStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tool string
		args map[string]interface{}
		want int
	}{
		{"unknown tool", "log_meal", nil, http.StatusNotFound},
		{"unknown product", "calculate", map[string]interface{}{"items": []map[string]interface{}{{"product": "Kiwi", "weight": 50}}}, http.StatusNotFound},
		{"no items", "calculate", map[string]interface{}{"items": []interface{}{}}, http.StatusBadRequest},
		{"bad weight", "calculate", map[string]interface{}{"items": []map[string]interface{}{{"product": "Apples", "weight": "lots"}}}, http.StatusBadRequest},
		{"bad calories", "add_product", map[string]interface{}{"name": "Kiwano", "calories": "-1"}, http.StatusBadRequest},
		{"unknown period", "get_stats", map[string]interface{}{"period": "year"}, http.StatusBadRequest},
		{"half range", "get_stats", map[string]interface{}{"start_date": "2025-06-01"}, http.StatusBadRequest},
		{"bad argument type", "add_product", map[string]interface{}{"name": 5}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			code, out := call(t, s, tt.tool, tt.args)
			assert.Equal(t, tt.want, code)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestHTTPMethods(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
