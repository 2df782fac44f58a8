package game

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/merev/gsr-api/internal/codec"
	"github.com/merev/gsr-api/internal/domain"
	"github.com/merev/gsr-api/internal/feedback"
	"github.com/merev/gsr-api/internal/report"
	"github.com/merev/gsr-api/internal/share"
)

type Handler struct {
	svc          *Service
	shareBaseURL string
	timeout      time.Duration
	logger       *slog.Logger
}

func NewHandler(svc *Service, shareBaseURL string, timeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Handler{svc: svc, shareBaseURL: shareBaseURL, timeout: timeout, logger: logger}
}

// POST /api/game
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req StartGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.svc.StartGame(ctx, req.Players)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGameState(g))
}

// GET /api/game
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	g, err := h.svc.CurrentGame(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if g == nil {
		h.writeError(w, noActiveGame())
		return
	}
	writeJSON(w, http.StatusOK, newGameState(g))
}

// DELETE /api/game
func (h *Handler) ClearGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.svc.ClearGame(ctx); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /api/game/rounds/{round}/scores/{playerID}
func (h *Handler) SetScore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	round, ok := h.roundParam(w, r)
	if !ok {
		return
	}
	var req SetScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Score == nil {
		h.writeError(w, fail(feedback.ErrValidation, domain.FieldScore, "Score is required"))
		return
	}

	g, err := h.svc.SetScore(ctx, playerIDFrom(chi.URLParam(r, "playerID")), round, *req.Score)
	h.respondGame(w, g, err)
}

// POST /api/game/rounds/{round}/skip
func (h *Handler) SkipPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	round, ok := h.roundParam(w, r)
	if !ok {
		return
	}
	var req SkipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.svc.SkipPlayer(ctx, playerIDFrom(req.PlayerID), round, req.AllFuture)
	h.respondGame(w, g, err)
}

// POST /api/game/rounds/{round}/unskip
func (h *Handler) UnskipPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	round, ok := h.roundParam(w, r)
	if !ok {
		return
	}
	var req UnskipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.svc.UnskipPlayer(ctx, playerIDFrom(req.PlayerID), round)
	h.respondGame(w, g, err)
}

// POST /api/game/rounds/{round}/lock
func (h *Handler) LockRound(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	round, ok := h.roundParam(w, r)
	if !ok {
		return
	}
	g, err := h.svc.LockRound(ctx, round)
	h.respondGame(w, g, err)
}

// POST /api/game/rounds/{round}/unlock
func (h *Handler) UnlockRound(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	round, ok := h.roundParam(w, r)
	if !ok {
		return
	}
	g, err := h.svc.UnlockRound(ctx, round)
	h.respondGame(w, g, err)
}

// POST /api/game/end
func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	g, err := h.svc.EndGame(ctx)
	h.respondGame(w, g, err)
}

// POST /api/game/reopen
func (h *Handler) ReopenGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	g, err := h.svc.ReopenGame(ctx)
	h.respondGame(w, g, err)
}

// POST /api/game/import
func (h *Handler) ImportGame(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	decoded, err := share.ParseURL(req.Data)
	if err != nil {
		h.writeError(w, err)
		return
	}

	g, err := h.svc.ImportGame(ctx, decoded)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGameState(g))
}

// GET /api/game/standings
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st, err := h.svc.Standings(ctx)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newStandingsResponse(st))
}

// GET /api/game/players/{playerID}/stats
func (h *Handler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	stats, err := h.svc.PlayerStats(ctx, playerIDFrom(chi.URLParam(r, "playerID")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPlayerStatsResponse(stats))
}

// GET /api/game/share?origin=
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	g, ok := h.requireGame(w, r)
	if !ok {
		return
	}

	origin := r.URL.Query().Get("origin")
	if origin == "" {
		origin = h.shareBaseURL
	}
	token, err := share.Encode(g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ShareResponse{URL: share.Link(origin, token), Token: token})
}

// GET /api/game/scorecard.xlsx
func (h *Handler) Scorecard(w http.ResponseWriter, r *http.Request) {
	g, ok := h.requireGame(w, r)
	if !ok {
		return
	}
	data, err := report.Scorecard(g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="scorecard.xlsx"`)
	writeBytes(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GET /api/game/chart.png
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	g, ok := h.requireGame(w, r)
	if !ok {
		return
	}
	data, err := report.CumulativeChart(g)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeBytes(w, "image/png", data)
}

func (h *Handler) requireGame(w http.ResponseWriter, r *http.Request) (*domain.Game, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	g, err := h.svc.CurrentGame(ctx)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	if g == nil {
		h.writeError(w, noActiveGame())
		return nil, false
	}
	return g, true
}

func (h *Handler) respondGame(w http.ResponseWriter, g *domain.Game, err error) {
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameState(g))
}

func (h *Handler) roundParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	round, err := strconv.Atoi(chi.URLParam(r, "round"))
	if err != nil {
		h.writeError(w, invalidRoundIndex())
		return 0, false
	}
	return round, true
}

// playerIDFrom maps a blank id to the zero PlayerID, which no player has.
func playerIDFrom(raw string) domain.PlayerID {
	id, err := domain.NewPlayerID(raw)
	if err != nil {
		return domain.PlayerID{}
	}
	return id
}

// writeError maps validation failures to 422 (404 without a game), decode
// failures to 400 and anything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if ve, ok := feedback.AsValidation(err); ok {
		status := http.StatusUnprocessableEntity
		if errors.Is(ve.Reason, ErrNoActiveGame) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, ErrorResponse{
			Error:    ve.Error(),
			Reason:   ve.Reason.Error(),
			Feedback: ve.Feedback.Map(),
		})
		return
	}

	if kind, ok := codec.KindOf(err); ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: string(kind)})
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		writeJSON(w, http.StatusGatewayTimeout, ErrorResponse{Error: "request timed out"})
		return
	}

	h.logger.Error("request failed", slog.Any("error", err))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// Helper to write JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
