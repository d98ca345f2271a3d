package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

func TestCardRepository_CreateAndGet(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t))
	ctx := context.Background()

	domain := bingo.NewRandomCard("lucky")
	card, err := models.CardFromDomain(domain)
	if err != nil {
		t.Fatalf("Failed to convert card: %v", err)
	}

	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	got, err := repo.GetByID(ctx, domain.ID)
	if err != nil {
		t.Fatalf("Failed to get card: %v", err)
	}
	if got.Name != "lucky" {
		t.Errorf("name = %q, want %q", got.Name, "lucky")
	}

	// Round trip through the JSON cells column.
	back, err := got.ToDomain()
	if err != nil {
		t.Fatalf("Failed to convert back: %v", err)
	}
	if back.Cells != domain.Cells {
		t.Error("cells should survive the storage round trip")
	}
}

func TestCardRepository_GetMissing(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCardRepository_List(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		card, _ := models.CardFromDomain(bingo.NewRandomCard(""))
		if err := repo.Create(ctx, card); err != nil {
			t.Fatalf("Failed to create card %d: %v", i, err)
		}
	}

	cards, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("Failed to list cards: %v", err)
	}
	if len(cards) != 3 {
		t.Errorf("expected 3 cards, got %d", len(cards))
	}
}

func TestCardRepository_UpdateAndDelete(t *testing.T) {
	repo := NewCardRepository(setupTestDB(t))
	ctx := context.Background()

	domain := bingo.NewRandomCard("before")
	card, _ := models.CardFromDomain(domain)
	if err := repo.Create(ctx, card); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	card.Name = "after"
	if err := repo.Update(ctx, card); err != nil {
		t.Fatalf("Failed to update card: %v", err)
	}
	got, _ := repo.GetByID(ctx, card.ID)
	if got.Name != "after" {
		t.Errorf("name = %q, want %q", got.Name, "after")
	}

	if err := repo.Delete(ctx, card.ID); err != nil {
		t.Fatalf("Failed to delete card: %v", err)
	}
	if err := repo.Delete(ctx, card.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete should be ErrNotFound, got %v", err)
	}
}
