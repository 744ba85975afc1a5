package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// Handler serves the eight backend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// decodeParams reads the JSON body and checks the operation's required parameters
func decodeParams(r *http.Request, op model.Operation) (model.Params, error) {
	params := model.Params{}
	if r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&params); err != nil && !errors.Is(err, io.EOF) {
			return nil, NewInvalidRequestError("Invalid request body")
		}
	}
	if missing := params.Missing(op); len(missing) > 0 {
		return nil, NewInvalidRequestError("Missing parameter: " + strings.Join(missing, ", "))
	}
	return params, nil
}

func stringParam(p model.Params, name string) string {
	switch v := p[name].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// platformParam accepts JSON integers and numeric strings. Anything else
// is an unknown platform, not a malformed request.
func platformParam(p model.Params) (int, error) {
	n, err := strconv.Atoi(stringParam(p, model.ParamPlatform))
	if err != nil {
		return 0, fmt.Errorf("platform %v: %w", p[model.ParamPlatform], model.ErrInvalidPlatform)
	}
	return n, nil
}

// OpenSession handles POST /api/v1/openSession
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpOpenSession)
	if err != nil {
		WriteError(w, err)
		return
	}
	platform, err := platformParam(params)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, session, err := h.service.OpenSession(r.Context(),
		stringParam(params, model.ParamName),
		platform,
		stringParam(params, model.ParamVersion),
		stringParam(params, model.ParamRegion),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, model.Result{
		model.FieldPlayerID:  string(player.ID),
		model.FieldSessionID: string(session.ID),
	})
}

// SetNick handles POST /api/v1/setNick
func (h *Handler) SetNick(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpSetNick)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.service.SetNick(r.Context(),
		model.PlayerID(stringParam(params, model.ParamPlayerID)),
		stringParam(params, model.ParamNickname),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, model.Result{model.FieldNickname: player.Nickname})
}

// StartTournament handles POST /api/v1/startTournament
func (h *Handler) StartTournament(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpStartTournament)
	if err != nil {
		WriteError(w, err)
		return
	}

	tournament, err := h.service.StartTournament(r.Context(),
		model.PlayerID(stringParam(params, model.ParamPlayerID)),
		model.SessionID(stringParam(params, model.ParamSessionID)),
		model.TournamentID(stringParam(params, model.ParamTournamentID)),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, model.Result{model.ParamTournamentID: string(tournament.ID)})
}

// EndTournament handles POST /api/v1/endTournament
func (h *Handler) EndTournament(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpEndTournament)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.service.EndTournament(r.Context(), model.TournamentID(stringParam(params, model.ParamTournamentID))); err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, nil)
}

// DeleteLeaderboards handles POST /api/v1/deleteLeaderboards
func (h *Handler) DeleteLeaderboards(w http.ResponseWriter, r *http.Request) {
	if _, err := decodeParams(r, model.OpDeleteLeaderboards); err != nil {
		WriteError(w, err)
		return
	}

	h.service.DeleteLeaderboards(r.Context())
	WriteOK(w, nil)
}

// RefreshPlayer handles POST /api/v1/refreshPlayer
func (h *Handler) RefreshPlayer(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpRefreshPlayer)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.service.RefreshPlayer(r.Context(), model.PlayerID(stringParam(params, model.ParamPlayerID)))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, model.Result{model.FieldToken: player.Token})
}

// CloseSession handles POST /api/v1/closeSession
func (h *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpCloseSession)
	if err != nil {
		WriteError(w, err)
		return
	}

	player, err := h.service.CloseSession(r.Context(), model.SessionID(stringParam(params, model.ParamSessionID)))
	if err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, model.Result{model.FieldToken: player.Token})
}

// DeletePlayer handles POST /api/v1/deletePlayer
func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r, model.OpDeletePlayer)
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.service.DeletePlayer(r.Context(), model.PlayerID(stringParam(params, model.ParamPlayerID))); err != nil {
		WriteError(w, err)
		return
	}

	WriteOK(w, nil)
}
