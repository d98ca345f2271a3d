package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

func seedPatterns(t *testing.T, repo PatternRepository) {
	t.Helper()
	ctx := context.Background()
	for _, p := range bingo.BuiltinPatterns() {
		record, err := models.PatternFromDomain(p)
		if err != nil {
			t.Fatalf("Failed to convert pattern %q: %v", p.Name, err)
		}
		if err := repo.Create(ctx, record); err != nil {
			t.Fatalf("Failed to seed pattern %q: %v", p.Name, err)
		}
	}
}

func userPattern(t *testing.T, name string) *models.Pattern {
	t.Helper()
	var grid bingo.Grid
	grid[0][0], grid[0][4], grid[4][0], grid[4][4] = true, true, true, true
	p, err := bingo.NewPattern(name, grid)
	if err != nil {
		t.Fatalf("Failed to build pattern: %v", err)
	}
	record, err := models.PatternFromDomain(p)
	if err != nil {
		t.Fatalf("Failed to convert pattern: %v", err)
	}
	return record
}

func TestPatternRepository_SeedAndList(t *testing.T) {
	repo := NewPatternRepository(setupTestDB(t))
	seedPatterns(t, repo)

	patterns, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("Failed to list patterns: %v", err)
	}
	if len(patterns) != 6 {
		t.Fatalf("expected 6 built-in patterns, got %d", len(patterns))
	}
	for _, p := range patterns {
		if !p.Builtin {
			t.Errorf("%q should be built-in", p.Name)
		}
	}
}

func TestPatternRepository_DomainRoundTrip(t *testing.T) {
	repo := NewPatternRepository(setupTestDB(t))
	seedPatterns(t, repo)

	record, err := repo.GetByName(context.Background(), bingo.NameDikit)
	if err != nil {
		t.Fatalf("Failed to get pattern: %v", err)
	}
	p, err := record.ToDomain()
	if err != nil {
		t.Fatalf("Failed to convert: %v", err)
	}

	// Kind is re-derived from the name on load, not stored.
	if p.Kind != bingo.KindDikit {
		t.Errorf("kind = %v, want dikit", p.Kind)
	}
}

func TestPatternRepository_DuplicateName(t *testing.T) {
	repo := NewPatternRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, userPattern(t, "Corners")); err != nil {
		t.Fatalf("Failed to create pattern: %v", err)
	}
	if err := repo.Create(ctx, userPattern(t, "Corners")); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestPatternRepository_BuiltinGuard(t *testing.T) {
	repo := NewPatternRepository(setupTestDB(t))
	seedPatterns(t, repo)
	ctx := context.Background()

	fullHouse, err := repo.GetByName(ctx, bingo.NameFullHouse)
	if err != nil {
		t.Fatalf("Failed to get Full House: %v", err)
	}

	t.Run("delete refused", func(t *testing.T) {
		if err := repo.Delete(ctx, fullHouse.ID); !errors.Is(err, ErrBuiltinPattern) {
			t.Errorf("expected ErrBuiltinPattern, got %v", err)
		}
	})

	t.Run("update refused", func(t *testing.T) {
		edited := *fullHouse
		edited.Name = "Mostly Full House"
		if err := repo.Update(ctx, &edited); !errors.Is(err, ErrBuiltinPattern) {
			t.Errorf("expected ErrBuiltinPattern, got %v", err)
		}
	})

	t.Run("rename onto reserved name refused", func(t *testing.T) {
		user := userPattern(t, "Mine")
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("Failed to create pattern: %v", err)
		}
		user.Name = bingo.NameDikit
		if err := repo.Update(ctx, user); !errors.Is(err, ErrBuiltinPattern) {
			t.Errorf("expected ErrBuiltinPattern, got %v", err)
		}
	})
}

func TestPatternRepository_UserPatternLifecycle(t *testing.T) {
	repo := NewPatternRepository(setupTestDB(t))
	ctx := context.Background()

	p := userPattern(t, "Corners")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Failed to create pattern: %v", err)
	}

	p.Name = "Corners v2"
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Failed to update pattern: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to get pattern: %v", err)
	}
	if got.Name != "Corners v2" {
		t.Errorf("name = %q, want %q", got.Name, "Corners v2")
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Failed to delete pattern: %v", err)
	}
	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
