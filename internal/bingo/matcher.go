package bingo

import (
	"fmt"
	"sort"
)

// PairRequired and LineRequired are the fixed path sizes for the
// special pattern kinds.
const (
	PairRequired = 2
	LineRequired = GridSize
)

// WinningPath is one independently achievable way to complete a pattern
// on a card: a specific pair, row, column or diagonal, with the numbers
// still needed to finish it.
type WinningPath struct {
	Label          string `json:"label"`
	MissingNumbers []int  `json:"missing_numbers"`
	MarkedCount    int    `json:"marked_count"`
	TotalRequired  int    `json:"total_required"`
}

// MatchResult is the matcher's answer for one (card, pattern) pair.
// MissingNumbers is the best aggregated view: the union of the missing
// numbers across all paths tied at the best marked count. Paths holds
// every tied-best path individually; candidates with zero marked
// progress are never reported.
type MatchResult struct {
	IsWinner       bool          `json:"is_winner"`
	MissingNumbers []int         `json:"missing_numbers"`
	Paths          []WinningPath `json:"paths"`
	TotalRequired  int           `json:"total_required"`
}

// Evaluate runs the pattern's matching algorithm against a card. The
// card's marked flags are taken as-is; normalize with ApplyCalled first
// when marking derives from a called-number list.
func Evaluate(card Card, p Pattern) MatchResult {
	switch p.Kind {
	case KindDikit:
		return evaluatePairs(card, true)
	case KindPatong:
		return evaluatePairs(card, false)
	case KindHorizontalLine:
		return evaluateLines(card, true)
	case KindVerticalLine:
		return evaluateLines(card, false)
	case KindDiagonalLine:
		return evaluateDiagonals(card)
	default:
		return evaluateStandard(card, p.Grid)
	}
}

// IsOnPot reports whether the best aggregated missing set has exactly
// one element. Path-level on-pot flags from the analyzer are the
// authoritative signal for alerts; this helper is a convenience check
// over the aggregate, which can merge two tied one-away paths into a
// two-element set.
func IsOnPot(card Card, p Pattern) bool {
	result := Evaluate(card, p)
	return !result.IsWinner && len(result.MissingNumbers) == 1
}

// evaluateStandard matches the grid literally. The single path lists
// every required, unmarked, non-FREE cell in row-major scan order.
func evaluateStandard(card Card, grid Grid) MatchResult {
	required := grid.Count()
	marked := 0
	var missing []int
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !grid[row][col] {
				continue
			}
			cell := card.Cells[row][col]
			if cell.Marked {
				marked++
				continue
			}
			if !cell.Free && cell.Value != 0 {
				missing = append(missing, cell.Value)
			}
		}
	}
	return MatchResult{
		IsWinner:       required > 0 && len(missing) == 0 && marked == required,
		MissingNumbers: missing,
		Paths: []WinningPath{{
			Label:          "grid",
			MissingNumbers: missing,
			MarkedCount:    marked,
			TotalRequired:  required,
		}},
		TotalRequired: required,
	}
}

// pathCandidate is a pair, row, column or diagonal under evaluation.
type pathCandidate struct {
	label   string
	missing []int
	marked  int
}

// evaluatePairs implements Dikit (horizontal) and Patong (vertical):
// any two adjacent marked cells win. Pairs touching the FREE cell are
// skipped entirely.
func evaluatePairs(card Card, horizontal bool) MatchResult {
	var candidates []pathCandidate
	for a := 0; a < GridSize; a++ {
		for b := 0; b < GridSize-1; b++ {
			var r1, c1, r2, c2 int
			if horizontal {
				r1, c1, r2, c2 = a, b, a, b+1
			} else {
				r1, c1, r2, c2 = b, a, b+1, a
			}
			if card.Cells[r1][c1].Free || card.Cells[r2][c2].Free {
				continue
			}
			cand := pathCandidate{
				label: fmt.Sprintf("cells (%d,%d)-(%d,%d)", r1+1, c1+1, r2+1, c2+1),
			}
			for _, cell := range []Cell{card.Cells[r1][c1], card.Cells[r2][c2]} {
				if cell.Marked {
					cand.marked++
				} else if cell.Value != 0 {
					cand.missing = append(cand.missing, cell.Value)
				}
			}
			candidates = append(candidates, cand)
		}
	}
	return collectBest(candidates, PairRequired)
}

// evaluateLines implements Horizontal Line and Vertical Line: any one
// complete row or column, with FREE counting as marked.
func evaluateLines(card Card, rows bool) MatchResult {
	candidates := make([]pathCandidate, 0, GridSize)
	for a := 0; a < GridSize; a++ {
		var cand pathCandidate
		if rows {
			cand.label = fmt.Sprintf("row %d", a+1)
		} else {
			cand.label = fmt.Sprintf("column %s", ColumnLetters[a])
		}
		for b := 0; b < GridSize; b++ {
			cell := card.Cells[a][b]
			if !rows {
				cell = card.Cells[b][a]
			}
			if cell.Marked {
				cand.marked++
			} else if !cell.Free && cell.Value != 0 {
				cand.missing = append(cand.missing, cell.Value)
			}
		}
		candidates = append(candidates, cand)
	}
	return collectBest(candidates, LineRequired)
}

// evaluateDiagonals implements Diagonal Line: exactly two candidates,
// the main and the anti-diagonal.
func evaluateDiagonals(card Card) MatchResult {
	main := pathCandidate{label: "main diagonal"}
	anti := pathCandidate{label: "anti-diagonal"}
	for i := 0; i < GridSize; i++ {
		for _, d := range []struct {
			cand *pathCandidate
			cell Cell
		}{
			{&main, card.Cells[i][i]},
			{&anti, card.Cells[i][GridSize-1-i]},
		} {
			if d.cell.Marked {
				d.cand.marked++
			} else if !d.cell.Free && d.cell.Value != 0 {
				d.cand.missing = append(d.cand.missing, d.cell.Value)
			}
		}
	}
	return collectBest([]pathCandidate{main, anti}, LineRequired)
}

// collectBest applies the uniform tie-break rule: every candidate tied
// at the best non-zero marked count becomes a path; zero-progress
// candidates are dropped. The aggregated missing view is the sorted
// union of the tied paths' missing numbers.
func collectBest(candidates []pathCandidate, required int) MatchResult {
	best := 0
	for _, cand := range candidates {
		if cand.marked > best {
			best = cand.marked
		}
	}
	result := MatchResult{TotalRequired: required}
	if best == 0 {
		return result
	}
	result.IsWinner = best == required
	union := make(map[int]bool)
	for _, cand := range candidates {
		if cand.marked != best {
			continue
		}
		result.Paths = append(result.Paths, WinningPath{
			Label:          cand.label,
			MissingNumbers: cand.missing,
			MarkedCount:    cand.marked,
			TotalRequired:  required,
		})
		for _, n := range cand.missing {
			union[n] = true
		}
	}
	if len(union) > 0 {
		result.MissingNumbers = make([]int, 0, len(union))
		for n := range union {
			result.MissingNumbers = append(result.MissingNumbers, n)
		}
		sort.Ints(result.MissingNumbers)
	}
	return result
}
