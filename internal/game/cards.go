package game

import (
	"context"
	"fmt"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// CreateRandomCard creates and persists a fully populated card.
func (s *Service) CreateRandomCard(ctx context.Context, name string) (bingo.Card, error) {
	return s.saveNewCard(ctx, bingo.NewRandomCard(name))
}

// CreateEmptyCard creates and persists a card with only the FREE cell,
// to be filled in cell by cell.
func (s *Service) CreateEmptyCard(ctx context.Context, name string) (bingo.Card, error) {
	return s.saveNewCard(ctx, bingo.NewEmptyCard(name))
}

func (s *Service) saveNewCard(ctx context.Context, card bingo.Card) (bingo.Card, error) {
	if v := card.Validate(); !v.Valid {
		return bingo.Card{}, fmt.Errorf("%w: %s", ErrInvalidCard, v.Reason)
	}
	record, err := models.CardFromDomain(card)
	if err != nil {
		return bingo.Card{}, err
	}
	if err := s.cards.Create(ctx, record); err != nil {
		return bingo.Card{}, err
	}
	return card, nil
}

// GetCard retrieves a card by ID.
func (s *Service) GetCard(ctx context.Context, id string) (bingo.Card, error) {
	record, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return bingo.Card{}, err
	}
	return record.ToDomain()
}

// ListCards retrieves all cards.
func (s *Service) ListCards(ctx context.Context) ([]bingo.Card, error) {
	return s.loadCards(ctx)
}

// SetCardCell edits one cell of a stored card under validation. The
// returned Validity explains a rejected edit; the card is only written
// back when the edit is valid.
func (s *Service) SetCardCell(ctx context.Context, id string, row, col, value int) (bingo.Card, bingo.Validity, error) {
	card, err := s.GetCard(ctx, id)
	if err != nil {
		return bingo.Card{}, bingo.Validity{}, err
	}
	edited, v := card.SetCell(row, col, value)
	if !v.Valid {
		return card, v, nil
	}
	record, err := models.CardFromDomain(edited)
	if err != nil {
		return bingo.Card{}, bingo.Validity{}, err
	}
	if err := s.cards.Update(ctx, record); err != nil {
		return bingo.Card{}, bingo.Validity{}, err
	}
	return edited, v, nil
}

// RenameCard updates a card's display name.
func (s *Service) RenameCard(ctx context.Context, id, name string) (bingo.Card, error) {
	record, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return bingo.Card{}, err
	}
	record.Name = name
	if err := s.cards.Update(ctx, record); err != nil {
		return bingo.Card{}, err
	}
	return record.ToDomain()
}

// DeleteCard removes a card.
func (s *Service) DeleteCard(ctx context.Context, id string) error {
	return s.cards.Delete(ctx, id)
}
