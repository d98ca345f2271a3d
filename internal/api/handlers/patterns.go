package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdelacruz/bingo-companion/internal/api/response"
	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

// PatternHandler handles pattern-related API requests.
type PatternHandler struct {
	service *game.Service
}

// NewPatternHandler creates a new PatternHandler.
func NewPatternHandler(service *game.Service) *PatternHandler {
	return &PatternHandler{service: service}
}

// PatternRequest is the request body for creating or updating a pattern.
type PatternRequest struct {
	Name string   `json:"name"`
	Grid [][]bool `json:"grid"`
}

// CreatePattern creates a custom pattern.
func (h *PatternHandler) CreatePattern(w http.ResponseWriter, r *http.Request) {
	var req PatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	pattern, err := h.service.CreatePattern(r.Context(), req.Name, req.Grid)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			response.Conflict(w, err)
			return
		}
		// Construction errors (bad grid, reserved name) are client errors.
		response.BadRequest(w, err)
		return
	}

	response.Created(w, pattern)
}

// ListPatterns returns all patterns, builtins first.
func (h *PatternHandler) ListPatterns(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.service.ListPatterns(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, patterns)
}

// GetPattern returns a pattern by ID.
func (h *PatternHandler) GetPattern(w http.ResponseWriter, r *http.Request) {
	patternID := chi.URLParam(r, "patternID")
	if patternID == "" {
		response.BadRequest(w, errors.New("pattern ID is required"))
		return
	}

	pattern, err := h.service.GetPattern(r.Context(), patternID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("pattern not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, pattern)
}

// UpdatePattern replaces a custom pattern's name and grid.
func (h *PatternHandler) UpdatePattern(w http.ResponseWriter, r *http.Request) {
	patternID := chi.URLParam(r, "patternID")
	if patternID == "" {
		response.BadRequest(w, errors.New("pattern ID is required"))
		return
	}

	var req PatternRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	pattern, err := h.service.UpdatePattern(r.Context(), patternID, req.Name, req.Grid)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(w, errors.New("pattern not found"))
		case errors.Is(err, repository.ErrBuiltinPattern):
			response.Forbidden(w, err)
		case errors.Is(err, repository.ErrDuplicateName):
			response.Conflict(w, err)
		default:
			response.BadRequest(w, err)
		}
		return
	}

	response.Success(w, pattern)
}

// DeletePattern removes a custom pattern. Builtins are protected.
func (h *PatternHandler) DeletePattern(w http.ResponseWriter, r *http.Request) {
	patternID := chi.URLParam(r, "patternID")
	if patternID == "" {
		response.BadRequest(w, errors.New("pattern ID is required"))
		return
	}

	if err := h.service.DeletePattern(r.Context(), patternID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(w, errors.New("pattern not found"))
		case errors.Is(err, repository.ErrBuiltinPattern):
			response.Forbidden(w, err)
		default:
			response.InternalError(w, err)
		}
		return
	}

	response.NoContent(w)
}
