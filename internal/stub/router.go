package stub

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/gameapi-e2e/internal/middleware"
	"github.com/mcoot/gameapi-e2e/internal/model"
)

// RouterConfig holds configuration for the stub router
type RouterConfig struct {
	Logger  *slog.Logger
	Service *Service
	// APIKeyHash enables bearer-key checks on the operations when set
	APIKeyHash []byte
}

// NewRouter creates the stub's HTTP router
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	r := mux.NewRouter()
	h := NewHandler(cfg.Service)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(logger, panicHandler))
	api.Use(middleware.Logging(logger))

	// health stays open so readiness checks need no key
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	ops := api.NewRoute().Subrouter()
	if len(cfg.APIKeyHash) > 0 {
		ops.Use(APIKeyAuth(cfg.APIKeyHash))
	}

	routes := map[model.Operation]http.HandlerFunc{
		model.OpOpenSession:        h.OpenSession,
		model.OpSetNick:            h.SetNick,
		model.OpStartTournament:    h.StartTournament,
		model.OpEndTournament:      h.EndTournament,
		model.OpDeleteLeaderboards: h.DeleteLeaderboards,
		model.OpRefreshPlayer:      h.RefreshPlayer,
		model.OpCloseSession:       h.CloseSession,
		model.OpDeletePlayer:       h.DeletePlayer,
	}
	for op, fn := range routes {
		ops.HandleFunc("/"+string(op), fn).Methods(http.MethodPost)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusNotFound, model.ErrorResponse("Unknown operation"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusMethodNotAllowed, model.ErrorResponse("Method not allowed"))
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	WriteOK(w, nil)
}

func panicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	WriteError(w, NewInternalError())
}
