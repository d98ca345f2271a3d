package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jdelacruz/bingo-companion/internal/api/response"
	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

// SessionHandler handles game session API requests: calling numbers,
// undo, reset, and the analysis endpoints built on top of the session's
// called-number list.
type SessionHandler struct {
	service *game.Service
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *game.Service) *SessionHandler {
	return &SessionHandler{service: service}
}

// CreateSessionRequest is the request body for starting a session.
type CreateSessionRequest struct {
	Name string `json:"name"`
}

// CreateSession starts a new game session.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	session, err := h.service.CreateSession(r.Context(), req.Name)
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, session)
}

// ListSessions returns all sessions.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.ListSessions(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, sessions)
}

// GetSession returns a session by ID.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("session not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, session)
}

// DeleteSession removes a session.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("session not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}

// CallNumberRequest is the request body for calling a number.
type CallNumberRequest struct {
	Number int `json:"number"`
}

// CallNumber records a called number and returns the refreshed analysis.
func (h *SessionHandler) CallNumber(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	var req CallNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	analysis, err := h.service.CallNumber(r.Context(), sessionID, req.Number)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(w, errors.New("session not found"))
		case errors.Is(err, game.ErrInvalidNumber):
			response.BadRequest(w, err)
		case errors.Is(err, repository.ErrAlreadyCalled):
			response.Conflict(w, err)
		default:
			response.InternalError(w, err)
		}
		return
	}

	response.Success(w, analysis)
}

// UndoCall takes back the most recently called number.
func (h *SessionHandler) UndoCall(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	analysis, err := h.service.UndoLastCall(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("session not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, analysis)
}

// ResetSession clears all called numbers from a session.
func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	analysis, err := h.service.ResetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("session not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, analysis)
}

// GetAnalysis returns the full analysis for a session: every card
// against every pattern, winners, on-pot combinations, and the
// numbers-to-watch list.
func (h *SessionHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	analysis, err := h.service.AnalyzeSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("session not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, analysis)
}

// GetCardAnalysis returns the per-pattern analyses for one card in a session.
func (h *SessionHandler) GetCardAnalysis(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	cardID := chi.URLParam(r, "cardID")
	if sessionID == "" || cardID == "" {
		response.BadRequest(w, errors.New("session ID and card ID are required"))
		return
	}

	analyses, err := h.service.CardAnalysis(r.Context(), sessionID, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, analyses)
}

// GetNumberImpact reports whether a prospective number would advance
// any card toward a win.
func (h *SessionHandler) GetNumberImpact(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		response.BadRequest(w, errors.New("session ID is required"))
		return
	}

	n, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		response.BadRequest(w, errors.New("number must be an integer"))
		return
	}

	impact, err := h.service.NumberImpact(r.Context(), sessionID, n)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(w, errors.New("session not found"))
		case errors.Is(err, game.ErrInvalidNumber):
			response.BadRequest(w, err)
		default:
			response.InternalError(w, err)
		}
		return
	}

	response.Success(w, impact)
}
