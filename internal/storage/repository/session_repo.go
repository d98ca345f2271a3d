package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// SessionRepository handles database operations for game sessions. The
// called-number list is stored in call order; AppendCalled rejects
// duplicates so callers can rely on the list being a set.
type SessionRepository interface {
	// Create persists a new session.
	Create(ctx context.Context, session *models.Session) error

	// GetByID retrieves a session by ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Session, error)

	// List retrieves all sessions, newest first.
	List(ctx context.Context) ([]*models.Session, error)

	// AppendCalled appends n to the session's called list. Returns
	// ErrAlreadyCalled when n is already in the list.
	AppendCalled(ctx context.Context, id string, n int) error

	// UndoLastCall removes the most recently called number and returns
	// it. Returns ErrNotFound when the list is empty.
	UndoLastCall(ctx context.Context, id string) (int, error)

	// ResetCalled clears the session's called list.
	ResetCalled(ctx context.Context, id string) error

	// Delete removes a session by ID.
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, name, called_numbers, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	if session.CalledNumbers == "" {
		session.CalledNumbers = "[]"
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Name,
		session.CalledNumbers,
		formatTime(session.CreatedAt),
		formatTime(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `
		SELECT id, name, called_numbers, created_at, updated_at
		FROM sessions
		WHERE id = ?
	`

	session := &models.Session{}
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.Name,
		&session.CalledNumbers,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session %s: %w", id, err)
	}
	session.CreatedAt = parseTime(createdAt)
	session.UpdatedAt = parseTime(updatedAt)
	return session, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]*models.Session, error) {
	query := `
		SELECT id, name, called_numbers, created_at, updated_at
		FROM sessions
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		var createdAt, updatedAt string
		if err := rows.Scan(&session.ID, &session.Name, &session.CalledNumbers, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		session.CreatedAt = parseTime(createdAt)
		session.UpdatedAt = parseTime(updatedAt)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) AppendCalled(ctx context.Context, id string, n int) error {
	return r.updateCalled(ctx, id, func(called []int) ([]int, error) {
		for _, existing := range called {
			if existing == n {
				return nil, ErrAlreadyCalled
			}
		}
		return append(called, n), nil
	})
}

func (r *sessionRepository) UndoLastCall(ctx context.Context, id string) (int, error) {
	last := 0
	err := r.updateCalled(ctx, id, func(called []int) ([]int, error) {
		if len(called) == 0 {
			return nil, ErrNotFound
		}
		last = called[len(called)-1]
		return called[:len(called)-1], nil
	})
	return last, err
}

func (r *sessionRepository) ResetCalled(ctx context.Context, id string) error {
	return r.updateCalled(ctx, id, func([]int) ([]int, error) {
		return nil, nil
	})
}

// updateCalled applies fn to the called list inside a transaction so
// concurrent calls cannot lose updates.
func (r *sessionRepository) updateCalled(ctx context.Context, id string, fn func([]int) ([]int, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	session := &models.Session{ID: id}
	err = tx.QueryRowContext(ctx, `SELECT called_numbers FROM sessions WHERE id = ?`, id).
		Scan(&session.CalledNumbers)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read session %s: %w", id, err)
	}

	called, err := session.Called()
	if err != nil {
		return err
	}
	updated, err := fn(called)
	if err != nil {
		return err
	}
	if err := session.SetCalled(updated); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET called_numbers = ?, updated_at = ? WHERE id = ?`,
		session.CalledNumbers, formatTime(time.Now().UTC()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session update: %w", err)
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete of session %s: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
