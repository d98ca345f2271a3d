// Package models defines the persisted record shapes and their
// conversions to and from the domain types.
package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
)

// Card is a persisted bingo card. Cells holds the 5x5 cell matrix as
// JSON; the marked flags inside it are a convenience snapshot only —
// the session's called-number list is the source of truth for marking.
type Card struct {
	ID        string
	Name      string
	Cells     string // JSON-encoded [5][5]bingo.Cell
	CreatedAt time.Time
}

// Pattern is a persisted winning pattern. Grid holds the 5x5 required
// mask as JSON. Builtin rows cannot be edited or deleted.
type Pattern struct {
	ID        string
	Name      string
	Grid      string // JSON-encoded [][]bool
	Builtin   bool
	CreatedAt time.Time
}

// Session is a persisted game session: an ordered, duplicate-free list
// of called numbers.
type Session struct {
	ID            string
	Name          string
	CalledNumbers string // JSON-encoded []int, call order preserved
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CardFromDomain converts a domain card for persistence.
func CardFromDomain(c bingo.Card) (*Card, error) {
	cells, err := json.Marshal(c.Cells)
	if err != nil {
		return nil, fmt.Errorf("failed to encode card cells: %w", err)
	}
	return &Card{
		ID:        c.ID,
		Name:      c.Name,
		Cells:     string(cells),
		CreatedAt: c.CreatedAt,
	}, nil
}

// ToDomain converts a persisted card back to the domain type.
func (c *Card) ToDomain() (bingo.Card, error) {
	card := bingo.Card{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
	if err := json.Unmarshal([]byte(c.Cells), &card.Cells); err != nil {
		return bingo.Card{}, fmt.Errorf("failed to decode cells for card %s: %w", c.ID, err)
	}
	return card, nil
}

// PatternFromDomain converts a domain pattern for persistence. The kind
// is not stored; it is re-derived from the name on load.
func PatternFromDomain(p bingo.Pattern) (*Pattern, error) {
	grid, err := json.Marshal(p.Grid.Rows())
	if err != nil {
		return nil, fmt.Errorf("failed to encode pattern grid: %w", err)
	}
	return &Pattern{
		ID:        p.ID,
		Name:      p.Name,
		Grid:      string(grid),
		Builtin:   p.Builtin,
		CreatedAt: p.CreatedAt,
	}, nil
}

// ToDomain converts a persisted pattern back to the domain type,
// validating the grid shape and resolving the matching kind.
func (p *Pattern) ToDomain() (bingo.Pattern, error) {
	var rows [][]bool
	if err := json.Unmarshal([]byte(p.Grid), &rows); err != nil {
		return bingo.Pattern{}, fmt.Errorf("failed to decode grid for pattern %s: %w", p.ID, err)
	}
	grid, err := bingo.GridFromRows(rows)
	if err != nil {
		return bingo.Pattern{}, fmt.Errorf("pattern %s: %w", p.ID, err)
	}
	return bingo.Pattern{
		ID:        p.ID,
		Name:      p.Name,
		Grid:      grid,
		Kind:      bingo.KindForName(p.Name),
		Builtin:   p.Builtin,
		CreatedAt: p.CreatedAt,
	}, nil
}

// Called decodes the called-number list in call order.
func (s *Session) Called() ([]int, error) {
	var called []int
	if err := json.Unmarshal([]byte(s.CalledNumbers), &called); err != nil {
		return nil, fmt.Errorf("failed to decode called numbers for session %s: %w", s.ID, err)
	}
	return called, nil
}

// SetCalled encodes the called-number list.
func (s *Session) SetCalled(called []int) error {
	if called == nil {
		called = []int{}
	}
	data, err := json.Marshal(called)
	if err != nil {
		return fmt.Errorf("failed to encode called numbers: %w", err)
	}
	s.CalledNumbers = string(data)
	return nil
}
