package bingo

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PatternKind selects the matching algorithm for a pattern. It is
// resolved once from the pattern name at construction or load time, so
// the matcher never dispatches on name strings.
type PatternKind int

const (
	// KindStandard matches the grid literally: win iff every required
	// cell is marked. Full House and all user-defined grids use this.
	KindStandard PatternKind = iota
	// KindDikit wins on any two horizontally adjacent marked cells.
	KindDikit
	// KindPatong wins on any two vertically adjacent marked cells.
	KindPatong
	// KindHorizontalLine wins on any one complete row.
	KindHorizontalLine
	// KindVerticalLine wins on any one complete column.
	KindVerticalLine
	// KindDiagonalLine wins on either full diagonal.
	KindDiagonalLine
)

// String returns a display name for the kind.
func (k PatternKind) String() string {
	switch k {
	case KindDikit:
		return "dikit"
	case KindPatong:
		return "patong"
	case KindHorizontalLine:
		return "horizontal-line"
	case KindVerticalLine:
		return "vertical-line"
	case KindDiagonalLine:
		return "diagonal-line"
	default:
		return "standard"
	}
}

// Reserved pattern names. The five special names select a non-grid
// matching algorithm; Full House is a standard pattern whose grid is
// all-true. All six identify built-in patterns that the persistence
// layer must refuse to edit or delete.
const (
	NameDikit          = "Dikit"
	NamePatong         = "Patong"
	NameHorizontalLine = "Horizontal Line"
	NameVerticalLine   = "Vertical Line"
	NameDiagonalLine   = "Diagonal Line"
	NameFullHouse      = "Full House"
)

// builtinKinds is the single source of truth for reserved names, used
// both for matcher dispatch and for the storage-layer deletion guard.
var builtinKinds = map[string]PatternKind{
	NameDikit:          KindDikit,
	NamePatong:         KindPatong,
	NameHorizontalLine: KindHorizontalLine,
	NameVerticalLine:   KindVerticalLine,
	NameDiagonalLine:   KindDiagonalLine,
	NameFullHouse:      KindStandard,
}

// IsBuiltinName reports whether name identifies a system-owned pattern.
func IsBuiltinName(name string) bool {
	_, ok := builtinKinds[name]
	return ok
}

// BuiltinNames returns the six reserved pattern names.
func BuiltinNames() []string {
	return []string{
		NameFullHouse,
		NameHorizontalLine,
		NameVerticalLine,
		NameDiagonalLine,
		NameDikit,
		NamePatong,
	}
}

// KindForName resolves a pattern name to its matching algorithm.
// Unreserved names are standard grid patterns.
func KindForName(name string) PatternKind {
	if kind, ok := builtinKinds[name]; ok {
		return kind
	}
	return KindStandard
}

// Grid is a 5x5 required-cell mask.
type Grid [GridSize][GridSize]bool

// Count returns the number of required cells.
func (g Grid) Count() int {
	n := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if g[row][col] {
				n++
			}
		}
	}
	return n
}

// GridFromRows converts a row slice (as decoded from JSON or storage)
// into a Grid. Anything other than exactly 5 rows of 5 is a validation
// failure, caught here so it can never reach the matcher.
func GridFromRows(rows [][]bool) (Grid, error) {
	var g Grid
	if len(rows) != GridSize {
		return g, fmt.Errorf("pattern grid must have %d rows, got %d", GridSize, len(rows))
	}
	for i, row := range rows {
		if len(row) != GridSize {
			return g, fmt.Errorf("pattern grid row %d must have %d cells, got %d", i, GridSize, len(row))
		}
		copy(g[i][:], row)
	}
	return g, nil
}

// Rows converts the grid back to the slice form used on the wire.
func (g Grid) Rows() [][]bool {
	rows := make([][]bool, GridSize)
	for i := range rows {
		rows[i] = make([]bool, GridSize)
		copy(rows[i], g[i][:])
	}
	return rows
}

// Pattern is a winning-pattern descriptor. Kind is derived from Name at
// construction and drives matcher dispatch; for the five special kinds
// the grid is a display hint only.
type Pattern struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Grid      Grid        `json:"grid"`
	Kind      PatternKind `json:"kind"`
	Builtin   bool        `json:"builtin"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewPattern creates a user-defined pattern. The name must not be one
// of the reserved built-in names and the grid must require at least one
// cell.
func NewPattern(name string, grid Grid) (Pattern, error) {
	if name == "" {
		return Pattern{}, fmt.Errorf("pattern name is required")
	}
	if IsBuiltinName(name) {
		return Pattern{}, fmt.Errorf("%q is a reserved pattern name", name)
	}
	if grid.Count() == 0 {
		return Pattern{}, fmt.Errorf("pattern must require at least one cell")
	}
	return Pattern{
		ID:        uuid.NewString(),
		Name:      name,
		Grid:      grid,
		Kind:      KindStandard,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// BuiltinPatterns returns the six system-owned patterns. The grids for
// the special kinds are representative shapes for display.
func BuiltinPatterns() []Pattern {
	patterns := make([]Pattern, 0, 6)
	for _, name := range BuiltinNames() {
		patterns = append(patterns, Pattern{
			ID:        uuid.NewString(),
			Name:      name,
			Grid:      builtinGrid(name),
			Kind:      KindForName(name),
			Builtin:   true,
			CreatedAt: time.Now().UTC(),
		})
	}
	return patterns
}

// builtinGrid returns the display grid for a reserved name.
func builtinGrid(name string) Grid {
	var g Grid
	switch name {
	case NameFullHouse:
		for row := 0; row < GridSize; row++ {
			for col := 0; col < GridSize; col++ {
				g[row][col] = true
			}
		}
	case NameHorizontalLine:
		for col := 0; col < GridSize; col++ {
			g[FreeRow][col] = true
		}
	case NameVerticalLine:
		for row := 0; row < GridSize; row++ {
			g[row][FreeCol] = true
		}
	case NameDiagonalLine:
		for i := 0; i < GridSize; i++ {
			g[i][i] = true
		}
	case NameDikit:
		g[0][0] = true
		g[0][1] = true
	case NamePatong:
		g[0][0] = true
		g[1][0] = true
	}
	return g
}
