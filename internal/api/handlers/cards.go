// Package handlers implements the REST API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jdelacruz/bingo-companion/internal/api/response"
	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/game"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

// CardHandler handles card-related API requests.
type CardHandler struct {
	service *game.Service
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(service *game.Service) *CardHandler {
	return &CardHandler{service: service}
}

// CreateCardRequest is the request body for creating a card.
type CreateCardRequest struct {
	Name string `json:"name"`

	// Empty creates a blank card for manual entry instead of a random one.
	Empty bool `json:"empty,omitempty"`
}

// CreateCard creates a new card, randomly filled unless empty is requested.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	var (
		card bingo.Card
		err  error
	)
	if req.Empty {
		card, err = h.service.CreateEmptyCard(r.Context(), req.Name)
	} else {
		card, err = h.service.CreateRandomCard(r.Context(), req.Name)
	}
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, card)
}

// ListCards returns all stored cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.ListCards(r.Context())
	if err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, cards)
}

// GetCard returns a card by ID.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	card, err := h.service.GetCard(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, card)
}

// SetCellRequest is the request body for editing a single cell.
type SetCellRequest struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// SetCellResponse carries the card alongside the validity verdict so
// the UI can surface rejected edits without a separate round trip.
type SetCellResponse struct {
	Card     bingo.Card     `json:"card"`
	Validity bingo.Validity `json:"validity"`
}

// SetCell sets one cell of a card. Invalid edits are reported in the
// validity field and leave the stored card unchanged.
func (h *CardHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	var req SetCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	card, validity, err := h.service.SetCardCell(r.Context(), cardID, req.Row, req.Col, req.Value)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, SetCellResponse{Card: card, Validity: validity})
}

// RenameCardRequest is the request body for renaming a card.
type RenameCardRequest struct {
	Name string `json:"name"`
}

// RenameCard changes a card's display name.
func (h *CardHandler) RenameCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	var req RenameCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	card, err := h.service.RenameCard(r.Context(), cardID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, card)
}

// DeleteCard removes a card.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	if err := h.service.DeleteCard(r.Context(), cardID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.NoContent(w)
}
