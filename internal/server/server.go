// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/rs/zerolog"

	"calorie-log/internal/app"
	"calorie-log/internal/models"
)

type Config struct {
	Host string
	Port int
}

type toolHandler func(*protocol.CallToolRequest) (*protocol.CallToolResult, error)

// MealLogServer exposes the diary as tools over HTTP. Tool calls are
// serialised because the app owns its stores without locking.
type MealLogServer struct {
	httpServer *http.Server
	app        *app.App
	tools      map[string]toolHandler
	mu         sync.Mutex
	log        zerolog.Logger
}

func NewMealLogServer(cfg *Config, a *app.App, logger zerolog.Logger) *MealLogServer {
	s := &MealLogServer{
		app: a,
		log: logger,
	}
	s.registerTools()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHTTP)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for embedding and tests.
func (s *MealLogServer) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *MealLogServer) handleHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var request protocol.CallToolRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	handler, ok := s.tools[request.Name]
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", request.Name))
		return
	}

	s.mu.Lock()
	result, err := handler(&request)
	s.mu.Unlock()

	if err != nil {
		s.log.Debug().Str("tool", request.Name).Err(err).Msg("tool call failed")
		s.writeError(w, statusFor(err), s.app.Localizer().Error(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *MealLogServer) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		s.log.Error().Err(err).Msg("failed to encode error response")
	}
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	var validation *models.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, errInvalidParams),
		errors.Is(err, models.ErrUnknownPeriod),
		errors.Is(err, models.ErrUnsupportedLanguage),
		errors.Is(err, app.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *MealLogServer) Start(ctx context.Context) error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting calorie log server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *MealLogServer) Stop(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *MealLogServer) createJSONResponse(data interface{}) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}
