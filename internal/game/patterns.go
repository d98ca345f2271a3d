package game

import (
	"context"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// CreatePattern validates and persists a user-defined pattern. The grid
// arrives in wire shape and is shape-checked here, so a malformed grid
// can never reach the analyzer.
func (s *Service) CreatePattern(ctx context.Context, name string, rows [][]bool) (bingo.Pattern, error) {
	grid, err := bingo.GridFromRows(rows)
	if err != nil {
		return bingo.Pattern{}, err
	}
	p, err := bingo.NewPattern(name, grid)
	if err != nil {
		return bingo.Pattern{}, err
	}
	record, err := models.PatternFromDomain(p)
	if err != nil {
		return bingo.Pattern{}, err
	}
	if err := s.patterns.Create(ctx, record); err != nil {
		return bingo.Pattern{}, err
	}
	return p, nil
}

// GetPattern retrieves a pattern by ID.
func (s *Service) GetPattern(ctx context.Context, id string) (bingo.Pattern, error) {
	record, err := s.patterns.GetByID(ctx, id)
	if err != nil {
		return bingo.Pattern{}, err
	}
	return record.ToDomain()
}

// ListPatterns retrieves all patterns, built-ins first.
func (s *Service) ListPatterns(ctx context.Context) ([]bingo.Pattern, error) {
	return s.loadPatterns(ctx)
}

// UpdatePattern replaces a user pattern's name and grid. Built-in
// patterns are refused by the repository guard.
func (s *Service) UpdatePattern(ctx context.Context, id, name string, rows [][]bool) (bingo.Pattern, error) {
	grid, err := bingo.GridFromRows(rows)
	if err != nil {
		return bingo.Pattern{}, err
	}
	record, err := s.patterns.GetByID(ctx, id)
	if err != nil {
		return bingo.Pattern{}, err
	}
	record.Name = name
	update, err := models.PatternFromDomain(bingo.Pattern{
		ID:        record.ID,
		Name:      name,
		Grid:      grid,
		Kind:      bingo.KindForName(name),
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return bingo.Pattern{}, err
	}
	if err := s.patterns.Update(ctx, update); err != nil {
		return bingo.Pattern{}, err
	}
	return update.ToDomain()
}

// DeletePattern removes a user pattern. Built-ins are refused by the
// repository guard.
func (s *Service) DeletePattern(ctx context.Context, id string) error {
	return s.patterns.Delete(ctx, id)
}
