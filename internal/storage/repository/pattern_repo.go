package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// PatternRepository handles database operations for winning patterns.
// Built-in patterns are system-owned: Update and Delete refuse them.
type PatternRepository interface {
	// Create persists a new pattern. Returns ErrDuplicateName when the
	// name is taken.
	Create(ctx context.Context, pattern *models.Pattern) error

	// GetByID retrieves a pattern by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Pattern, error)

	// GetByName retrieves a pattern by its exact name.
	GetByName(ctx context.Context, name string) (*models.Pattern, error)

	// List retrieves all patterns, built-ins first.
	List(ctx context.Context) ([]*models.Pattern, error)

	// Update replaces a user pattern's name and grid. Returns
	// ErrBuiltinPattern for system-owned rows.
	Update(ctx context.Context, pattern *models.Pattern) error

	// Delete removes a user pattern. Returns ErrBuiltinPattern for
	// system-owned rows.
	Delete(ctx context.Context, id string) error
}

type patternRepository struct {
	db *sql.DB
}

// NewPatternRepository creates a new pattern repository.
func NewPatternRepository(db *sql.DB) PatternRepository {
	return &patternRepository{db: db}
}

func (r *patternRepository) Create(ctx context.Context, pattern *models.Pattern) error {
	query := `
		INSERT INTO patterns (id, name, grid, builtin, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if pattern.CreatedAt.IsZero() {
		pattern.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		pattern.ID,
		pattern.Name,
		pattern.Grid,
		pattern.Builtin,
		formatTime(pattern.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to create pattern: %w", err)
	}
	return nil
}

func (r *patternRepository) GetByID(ctx context.Context, id string) (*models.Pattern, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *patternRepository) GetByName(ctx context.Context, name string) (*models.Pattern, error) {
	return r.getOne(ctx, `WHERE name = ?`, name)
}

func (r *patternRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Pattern, error) {
	query := `
		SELECT id, name, grid, builtin, created_at
		FROM patterns ` + where

	pattern := &models.Pattern{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&pattern.ID,
		&pattern.Name,
		&pattern.Grid,
		&pattern.Builtin,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	pattern.CreatedAt = parseTime(createdAt)
	return pattern, nil
}

func (r *patternRepository) List(ctx context.Context) ([]*models.Pattern, error) {
	query := `
		SELECT id, name, grid, builtin, created_at
		FROM patterns
		ORDER BY builtin DESC, created_at, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []*models.Pattern
	for rows.Next() {
		pattern := &models.Pattern{}
		var createdAt string
		if err := rows.Scan(&pattern.ID, &pattern.Name, &pattern.Grid, &pattern.Builtin, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		pattern.CreatedAt = parseTime(createdAt)
		patterns = append(patterns, pattern)
	}
	return patterns, rows.Err()
}

func (r *patternRepository) Update(ctx context.Context, pattern *models.Pattern) error {
	existing, err := r.GetByID(ctx, pattern.ID)
	if err != nil {
		return err
	}
	if existing.Builtin || bingo.IsBuiltinName(existing.Name) {
		return ErrBuiltinPattern
	}
	if bingo.IsBuiltinName(pattern.Name) {
		return ErrBuiltinPattern
	}

	query := `
		UPDATE patterns
		SET name = ?, grid = ?
		WHERE id = ? AND builtin = 0
	`

	result, err := r.db.ExecContext(ctx, query, pattern.Name, pattern.Grid, pattern.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateName
		}
		return fmt.Errorf("failed to update pattern %s: %w", pattern.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of pattern %s: %w", pattern.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *patternRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Builtin || bingo.IsBuiltinName(existing.Name) {
		return ErrBuiltinPattern
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM patterns WHERE id = ? AND builtin = 0`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pattern %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of pattern %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
