package bingo

import (
	"reflect"
	"testing"
)

// cardFromValues builds a card from a value matrix; the center entry is
// ignored and stays FREE.
func cardFromValues(name string, values [GridSize][GridSize]int) Card {
	c := NewEmptyCard(name)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if row == FreeRow && col == FreeCol {
				continue
			}
			c.Cells[row][col] = Cell{Value: values[row][col]}
		}
	}
	return c
}

// testCard returns a fixed, valid card used across the package tests.
//
//	 B   I   N   G   O
//	 1  16  31  46  61
//	 2  17  32  47  62
//	 3  18   *  48  63
//	 4  19  33  49  64
//	 5  20  34  50  65
func testCard() Card {
	return cardFromValues("test card", [GridSize][GridSize]int{
		{1, 16, 31, 46, 61},
		{2, 17, 32, 47, 62},
		{3, 18, 0, 48, 63},
		{4, 19, 33, 49, 64},
		{5, 20, 34, 50, 65},
	})
}

func TestColumnRange(t *testing.T) {
	tests := []struct {
		col      int
		min, max int
	}{
		{0, 1, 15},
		{1, 16, 30},
		{2, 31, 45},
		{3, 46, 60},
		{4, 61, 75},
	}
	for _, tt := range tests {
		t.Run(ColumnLetters[tt.col], func(t *testing.T) {
			min, max := ColumnRange(tt.col)
			if min != tt.min || max != tt.max {
				t.Errorf("ColumnRange(%d) = %d-%d, want %d-%d", tt.col, min, max, tt.min, tt.max)
			}
		})
	}
}

func TestNewRandomCard(t *testing.T) {
	c := NewRandomCard("random")

	if v := c.Validate(); !v.Valid {
		t.Fatalf("random card should be valid, got: %s", v.Reason)
	}
	if !c.Complete() {
		t.Error("random card should be complete")
	}
	if c.ID == "" {
		t.Error("random card should have an ID")
	}

	center := c.Cells[FreeRow][FreeCol]
	if !center.Free || !center.Marked {
		t.Error("center cell should be FREE and marked")
	}

	if got := len(c.Numbers()); got != 24 {
		t.Errorf("expected 24 numbers on the card, got %d", got)
	}
}

func TestMarkNumber(t *testing.T) {
	original := testCard()

	marked := original.MarkNumber(17)
	if !marked.Cells[1][1].Marked {
		t.Error("cell holding 17 should be marked")
	}
	if original.Cells[1][1].Marked {
		t.Error("input card must not be mutated")
	}
}

func TestMarkNumber_AbsentNumberIsNoOp(t *testing.T) {
	original := testCard()

	// 75 is not on the card: the result must be structurally equal.
	marked := original.MarkNumber(75)
	if !reflect.DeepEqual(original, marked) {
		t.Error("marking an absent number should return an equal copy")
	}
}

func TestApplyCalledNumbers(t *testing.T) {
	cards := []Card{testCard(), testCard()}
	called := []int{1, 17, 33, 50}

	applied := ApplyCalledNumbers(cards, called)

	for i, c := range applied {
		if !c.Cells[0][0].Marked || !c.Cells[1][1].Marked || !c.Cells[3][2].Marked || !c.Cells[4][3].Marked {
			t.Errorf("card %d: called numbers should be marked", i)
		}
		if c.Cells[0][1].Marked {
			t.Errorf("card %d: uncalled number should not be marked", i)
		}
		if !c.Cells[FreeRow][FreeCol].Marked {
			t.Errorf("card %d: FREE cell should always be marked", i)
		}
	}

	// Input untouched.
	if cards[0].Cells[0][0].Marked {
		t.Error("input cards must not be mutated")
	}
}

func TestApplyCalledNumbers_Idempotent(t *testing.T) {
	cards := []Card{testCard()}
	called := []int{2, 18, 46}

	once := ApplyCalledNumbers(cards, called)
	twice := ApplyCalledNumbers(once, called)

	if !reflect.DeepEqual(once, twice) {
		t.Error("applying the called list twice should equal applying it once")
	}
}

func TestApplyCalledNumbers_UnmarksStaleFlags(t *testing.T) {
	c := testCard().MarkNumber(5)

	// 5 was never called: normalization must clear the stale mark.
	normalized := c.ApplyCalled([]int{1})
	if normalized.Cells[4][0].Marked {
		t.Error("normalization should clear marks not backed by the called list")
	}
	if !normalized.Cells[0][0].Marked {
		t.Error("called number should be marked")
	}
}

func TestSetCell(t *testing.T) {
	tests := []struct {
		name      string
		row, col  int
		value     int
		wantValid bool
	}{
		{"valid edit", 0, 0, 7, true},
		{"out of column range", 0, 0, 16, false},
		{"duplicate number", 0, 0, 2, false},
		{"free cell immutable", FreeRow, FreeCol, 31, false},
		{"outside grid", 5, 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCard()
			edited, v := c.SetCell(tt.row, tt.col, tt.value)
			if v.Valid != tt.wantValid {
				t.Fatalf("SetCell(%d,%d,%d) valid = %v, want %v (reason: %s)",
					tt.row, tt.col, tt.value, v.Valid, tt.wantValid, v.Reason)
			}
			if !tt.wantValid {
				if !reflect.DeepEqual(c, edited) {
					t.Error("rejected edit should leave the card unchanged")
				}
				if v.Reason == "" {
					t.Error("rejected edit should carry a human-readable reason")
				}
				return
			}
			if edited.Cells[tt.row][tt.col].Value != tt.value {
				t.Errorf("cell value = %d, want %d", edited.Cells[tt.row][tt.col].Value, tt.value)
			}
		})
	}
}

func TestToggleCellAndReset(t *testing.T) {
	c := testCard()

	toggled := c.ToggleCell(1, 1)
	if !toggled.Cells[1][1].Marked {
		t.Error("toggle should mark an unmarked cell")
	}
	if toggled.ToggleCell(1, 1).Cells[1][1].Marked {
		t.Error("second toggle should unmark the cell")
	}

	// The FREE cell never toggles off.
	if !c.ToggleCell(FreeRow, FreeCol).Cells[FreeRow][FreeCol].Marked {
		t.Error("FREE cell must stay marked")
	}

	reset := toggled.MarkNumber(46).Reset()
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := reset.Cells[row][col]
			if cell.Free != cell.Marked {
				t.Errorf("after reset only the FREE cell should be marked, cell (%d,%d) marked=%v", row, col, cell.Marked)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid card", func(t *testing.T) {
		if v := testCard().Validate(); !v.Valid {
			t.Errorf("expected valid, got: %s", v.Reason)
		}
	})

	t.Run("duplicate number", func(t *testing.T) {
		c := testCard()
		c.Cells[0][0].Value = 5 // already at (4,0)
		if v := c.Validate(); v.Valid {
			t.Error("duplicate value should be invalid")
		}
	})

	t.Run("out of range", func(t *testing.T) {
		c := testCard()
		c.Cells[0][0].Value = 40 // N-range value in column B
		if v := c.Validate(); v.Valid {
			t.Error("out-of-range value should be invalid")
		}
	})

	t.Run("broken center", func(t *testing.T) {
		c := testCard()
		c.Cells[FreeRow][FreeCol] = Cell{Value: 33}
		if v := c.Validate(); v.Valid {
			t.Error("card without a FREE center should be invalid")
		}
	})

	t.Run("stray free cell", func(t *testing.T) {
		c := testCard()
		c.Cells[0][0] = Cell{Free: true, Marked: true}
		if v := c.Validate(); v.Valid {
			t.Error("FREE outside the center should be invalid")
		}
	})

	t.Run("incomplete card is still valid", func(t *testing.T) {
		c := NewEmptyCard("empty")
		if v := c.Validate(); !v.Valid {
			t.Errorf("empty card should validate, got: %s", v.Reason)
		}
		if c.Complete() {
			t.Error("empty card should not report complete")
		}
	})
}
