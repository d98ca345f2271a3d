package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// CardRepository handles database operations for cards.
type CardRepository interface {
	// Create persists a new card.
	Create(ctx context.Context, card *models.Card) error

	// GetByID retrieves a card by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Card, error)

	// List retrieves all cards ordered by creation time.
	List(ctx context.Context) ([]*models.Card, error)

	// Update replaces a card's name and cells.
	Update(ctx context.Context, card *models.Card) error

	// Delete removes a card by ID.
	Delete(ctx context.Context, id string) error
}

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *sql.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	query := `
		INSERT INTO cards (id, name, cells, created_at)
		VALUES (?, ?, ?, ?)
	`

	if card.CreatedAt.IsZero() {
		card.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		card.ID,
		card.Name,
		card.Cells,
		formatTime(card.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

func (r *cardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id, name, cells, created_at
		FROM cards
		WHERE id = ?
	`

	card := &models.Card{}
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.Name,
		&card.Cells,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}
	card.CreatedAt = parseTime(createdAt)
	return card, nil
}

func (r *cardRepository) List(ctx context.Context) ([]*models.Card, error) {
	query := `
		SELECT id, name, cells, created_at
		FROM cards
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*models.Card
	for rows.Next() {
		card := &models.Card{}
		var createdAt string
		if err := rows.Scan(&card.ID, &card.Name, &card.Cells, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		card.CreatedAt = parseTime(createdAt)
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func (r *cardRepository) Update(ctx context.Context, card *models.Card) error {
	query := `
		UPDATE cards
		SET name = ?, cells = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, card.Name, card.Cells, card.ID)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update of card %s: %w", card.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cardRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of card %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
