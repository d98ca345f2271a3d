package bingo

import (
	"reflect"
	"testing"
)

func TestKindForName(t *testing.T) {
	tests := []struct {
		name string
		want PatternKind
	}{
		{NameDikit, KindDikit},
		{NamePatong, KindPatong},
		{NameHorizontalLine, KindHorizontalLine},
		{NameVerticalLine, KindVerticalLine},
		{NameDiagonalLine, KindDiagonalLine},
		{NameFullHouse, KindStandard},
		{"Four Corners", KindStandard},
		{"", KindStandard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindForName(tt.name); got != tt.want {
				t.Errorf("KindForName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestIsBuiltinName(t *testing.T) {
	for _, name := range BuiltinNames() {
		if !IsBuiltinName(name) {
			t.Errorf("%q should be a built-in name", name)
		}
	}
	if IsBuiltinName("My Pattern") {
		t.Error("user pattern name should not be built-in")
	}
	// Matching is exact: casing matters.
	if IsBuiltinName("full house") {
		t.Error("built-in name matching must be case-sensitive")
	}
}

func TestBuiltinPatterns(t *testing.T) {
	patterns := BuiltinPatterns()
	if len(patterns) != 6 {
		t.Fatalf("expected 6 built-in patterns, got %d", len(patterns))
	}
	for _, p := range patterns {
		if !p.Builtin {
			t.Errorf("%q should be flagged built-in", p.Name)
		}
		if p.ID == "" {
			t.Errorf("%q should have an ID", p.Name)
		}
		if p.Kind != KindForName(p.Name) {
			t.Errorf("%q kind = %v, want %v", p.Name, p.Kind, KindForName(p.Name))
		}
		if p.Grid.Count() == 0 {
			t.Errorf("%q should have a non-empty display grid", p.Name)
		}
	}
}

func TestBuiltinFullHouseGrid(t *testing.T) {
	// Full House is a standard pattern whose grid is all-true; its
	// matching goes through the generic grid algorithm.
	g := builtinGrid(NameFullHouse)
	if g.Count() != GridSize*GridSize {
		t.Errorf("Full House grid count = %d, want %d", g.Count(), GridSize*GridSize)
	}
}

func TestNewPattern(t *testing.T) {
	var corners Grid
	corners[0][0], corners[0][4], corners[4][0], corners[4][4] = true, true, true, true

	t.Run("valid", func(t *testing.T) {
		p, err := NewPattern("Four Corners", corners)
		if err != nil {
			t.Fatalf("NewPattern() error = %v", err)
		}
		if p.Kind != KindStandard {
			t.Errorf("kind = %v, want standard", p.Kind)
		}
		if p.Builtin {
			t.Error("user pattern should not be built-in")
		}
		if p.Grid.Count() != 4 {
			t.Errorf("grid count = %d, want 4", p.Grid.Count())
		}
	})

	t.Run("empty name", func(t *testing.T) {
		if _, err := NewPattern("", corners); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("reserved name", func(t *testing.T) {
		if _, err := NewPattern(NameDikit, corners); err == nil {
			t.Error("expected error for reserved name")
		}
	})

	t.Run("empty grid", func(t *testing.T) {
		if _, err := NewPattern("Nothing", Grid{}); err == nil {
			t.Error("expected error for grid with no required cells")
		}
	})
}

func TestGridFromRows(t *testing.T) {
	rows := make([][]bool, GridSize)
	for i := range rows {
		rows[i] = make([]bool, GridSize)
	}
	rows[2][3] = true

	g, err := GridFromRows(rows)
	if err != nil {
		t.Fatalf("GridFromRows() error = %v", err)
	}
	if !g[2][3] || g.Count() != 1 {
		t.Error("grid should carry over the required cell")
	}

	// Round trip back to the wire shape.
	if !reflect.DeepEqual(g.Rows(), rows) {
		t.Error("Rows() should invert GridFromRows()")
	}

	t.Run("wrong row count", func(t *testing.T) {
		if _, err := GridFromRows(rows[:4]); err == nil {
			t.Error("expected error for 4-row grid")
		}
	})

	t.Run("ragged row", func(t *testing.T) {
		bad := make([][]bool, GridSize)
		for i := range bad {
			bad[i] = make([]bool, GridSize)
		}
		bad[1] = bad[1][:4]
		if _, err := GridFromRows(bad); err == nil {
			t.Error("expected error for ragged row")
		}
	})
}
