// Package bingo implements the card, pattern and waiting-number rules
// for 75-ball bingo: card validation and marking, pattern matching,
// winning-path enumeration, and the analysis views the UI renders.
package bingo

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// GridSize is the number of rows and columns on a card.
const GridSize = 5

// FreeRow and FreeCol locate the always-marked FREE cell.
const (
	FreeRow = 2
	FreeCol = 2
)

// MaxNumber is the highest callable number.
const MaxNumber = 75

// ColumnLetters maps a column index to its letter.
var ColumnLetters = [GridSize]string{"B", "I", "N", "G", "O"}

// ColumnRange returns the inclusive number range reserved for a column.
// B:1-15, I:16-30, N:31-45, G:46-60, O:61-75.
func ColumnRange(col int) (min, max int) {
	min = col*15 + 1
	return min, min + 14
}

// Cell is a single square on a card. A zero Value with Free=false means
// the cell has not been filled in yet.
type Cell struct {
	Value  int  `json:"value"`
	Free   bool `json:"free"`
	Marked bool `json:"marked"`
}

// Card is an immutable 5x5 bingo card. All transforms return a new copy;
// the cells array has value semantics so plain assignment copies it.
type Card struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name,omitempty"`
	Cells     [GridSize][GridSize]Cell `json:"cells"`
	CreatedAt time.Time                `json:"created_at"`
}

// Validity is the result of a validation predicate. Reason is a
// human-readable explanation suitable for the UI when Valid is false.
type Validity struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func valid() Validity { return Validity{Valid: true} }

func invalid(format string, args ...interface{}) Validity {
	return Validity{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// NewEmptyCard creates a card with only the FREE center cell filled in.
func NewEmptyCard(name string) Card {
	c := Card{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	c.Cells[FreeRow][FreeCol] = Cell{Free: true, Marked: true}
	return c
}

// NewRandomCard creates a fully populated card. Each column draws five
// distinct numbers from its reserved range; the center cell stays FREE.
func NewRandomCard(name string) Card {
	c := NewEmptyCard(name)
	for col := 0; col < GridSize; col++ {
		min, _ := ColumnRange(col)
		perm := rand.Perm(15)
		for row := 0; row < GridSize; row++ {
			if row == FreeRow && col == FreeCol {
				continue
			}
			c.Cells[row][col] = Cell{Value: min + perm[row]}
		}
	}
	return c
}

// MarkNumber returns a new card where every cell whose value equals n is
// marked. If n appears nowhere the returned card is a structurally equal
// copy. The receiver is never mutated.
func (c Card) MarkNumber(n int) Card {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !c.Cells[row][col].Free && c.Cells[row][col].Value == n {
				c.Cells[row][col].Marked = true
			}
		}
	}
	return c
}

// ApplyCalled returns a new card whose marked flags are derived entirely
// from the called-number list: a cell is marked iff it is FREE or its
// value has been called. The called list is the single source of truth,
// so applying twice yields the same state as applying once.
func (c Card) ApplyCalled(called []int) Card {
	calledSet := make(map[int]bool, len(called))
	for _, n := range called {
		calledSet[n] = true
	}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := c.Cells[row][col]
			c.Cells[row][col].Marked = cell.Free || (cell.Value != 0 && calledSet[cell.Value])
		}
	}
	return c
}

// ApplyCalledNumbers normalizes the marked state of every card against
// the called-number list. Input cards are never mutated.
func ApplyCalledNumbers(cards []Card, called []int) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.ApplyCalled(called)
	}
	return out
}

// SetCell returns a new card with the cell at (row, col) set to value,
// or the original card and a failed Validity when the edit would break a
// card invariant. The FREE cell cannot be edited.
func (c Card) SetCell(row, col, value int) (Card, Validity) {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return c, invalid("cell (%d,%d) is outside the grid", row, col)
	}
	if row == FreeRow && col == FreeCol {
		return c, invalid("the FREE cell cannot be changed")
	}
	if min, max := ColumnRange(col); value < min || value > max {
		return c, invalid("%d is not valid for column %s (%d-%d)", value, ColumnLetters[col], min, max)
	}
	for r := 0; r < GridSize; r++ {
		for cl := 0; cl < GridSize; cl++ {
			if (r != row || cl != col) && !c.Cells[r][cl].Free && c.Cells[r][cl].Value == value {
				return c, invalid("number %d is already used on this card", value)
			}
		}
	}
	c.Cells[row][col] = Cell{Value: value, Marked: c.Cells[row][col].Marked}
	return c, valid()
}

// ToggleCell returns a new card with the marked flag of (row, col)
// flipped. The FREE cell stays marked.
func (c Card) ToggleCell(row, col int) Card {
	if row < 0 || row >= GridSize || col < 0 || col >= GridSize {
		return c
	}
	if row == FreeRow && col == FreeCol {
		return c
	}
	c.Cells[row][col].Marked = !c.Cells[row][col].Marked
	return c
}

// Reset returns a new card with every mark cleared except the FREE cell.
func (c Card) Reset() Card {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			c.Cells[row][col].Marked = c.Cells[row][col].Free
		}
	}
	return c
}

// Validate checks the card invariants: FREE center, column ranges, and
// no duplicate numbers. Unset cells are allowed (cards may be edited
// incrementally); filled cells must be in range and unique.
func (c Card) Validate() Validity {
	center := c.Cells[FreeRow][FreeCol]
	if !center.Free || !center.Marked {
		return invalid("the center cell must be FREE and marked")
	}
	seen := make(map[int][2]int, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := c.Cells[row][col]
			if cell.Free {
				if row != FreeRow || col != FreeCol {
					return invalid("cell (%d,%d) cannot be FREE", row, col)
				}
				continue
			}
			if cell.Value == 0 {
				continue // unset
			}
			if min, max := ColumnRange(col); cell.Value < min || cell.Value > max {
				return invalid("%d is not valid for column %s (%d-%d)", cell.Value, ColumnLetters[col], min, max)
			}
			if at, dup := seen[cell.Value]; dup {
				return invalid("number %d appears at both (%d,%d) and (%d,%d)", cell.Value, at[0], at[1], row, col)
			}
			seen[cell.Value] = [2]int{row, col}
		}
	}
	return valid()
}

// Complete reports whether every non-FREE cell has a value.
func (c Card) Complete() bool {
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := c.Cells[row][col]
			if !cell.Free && cell.Value == 0 {
				return false
			}
		}
	}
	return true
}

// Numbers returns every filled-in value on the card in row-major order.
func (c Card) Numbers() []int {
	out := make([]int, 0, GridSize*GridSize-1)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cell := c.Cells[row][col]
			if !cell.Free && cell.Value != 0 {
				out = append(out, cell.Value)
			}
		}
	}
	return out
}
