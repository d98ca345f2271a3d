// Package game orchestrates storage, the analysis engine and event
// dispatch: the boundary the API handlers and the caller feed talk to.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/events"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
	"github.com/jdelacruz/bingo-companion/internal/storage/repository"
)

// DefaultClosestLimit is the default number of closest-pattern entries
// included in a session analysis.
const DefaultClosestLimit = 5

// ErrInvalidNumber is returned when a called number is outside 1-75.
var ErrInvalidNumber = errors.New("called numbers must be between 1 and 75")

// ErrInvalidCard is returned when a card fails validation on save.
var ErrInvalidCard = errors.New("card is not valid")

// Service coordinates repositories, the matching engine and the event
// dispatcher. All analysis is recomputed from the called-number list on
// every call; nothing derived is persisted.
type Service struct {
	cards        repository.CardRepository
	patterns     repository.PatternRepository
	sessions     repository.SessionRepository
	dispatcher   *events.Dispatcher
	closestLimit int
}

// NewService creates a game service. The dispatcher may be nil when no
// observers are wired (tests, one-shot tools).
func NewService(
	cards repository.CardRepository,
	patterns repository.PatternRepository,
	sessions repository.SessionRepository,
	dispatcher *events.Dispatcher,
) *Service {
	return &Service{
		cards:        cards,
		patterns:     patterns,
		sessions:     sessions,
		dispatcher:   dispatcher,
		closestLimit: DefaultClosestLimit,
	}
}

// SetClosestLimit overrides how many closest-pattern entries a session
// analysis includes.
func (s *Service) SetClosestLimit(k int) {
	if k > 0 {
		s.closestLimit = k
	}
}

// EnsureBuiltinPatterns seeds the six system-owned patterns, skipping
// any that already exist. Called once on startup.
func (s *Service) EnsureBuiltinPatterns(ctx context.Context) error {
	for _, p := range bingo.BuiltinPatterns() {
		_, err := s.patterns.GetByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to check built-in pattern %q: %w", p.Name, err)
		}
		record, err := models.PatternFromDomain(p)
		if err != nil {
			return err
		}
		if err := s.patterns.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to seed built-in pattern %q: %w", p.Name, err)
		}
	}
	return nil
}

func (s *Service) emit(eventType string, data any) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(events.Event{Type: eventType, Data: data})
}

// loadCards returns every stored card as a domain card.
func (s *Service) loadCards(ctx context.Context) ([]bingo.Card, error) {
	records, err := s.cards.List(ctx)
	if err != nil {
		return nil, err
	}
	cards := make([]bingo.Card, 0, len(records))
	for _, record := range records {
		card, err := record.ToDomain()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// loadPatterns returns every stored pattern as a domain pattern.
func (s *Service) loadPatterns(ctx context.Context) ([]bingo.Pattern, error) {
	records, err := s.patterns.List(ctx)
	if err != nil {
		return nil, err
	}
	patterns := make([]bingo.Pattern, 0, len(records))
	for _, record := range records {
		p, err := record.ToDomain()
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}
