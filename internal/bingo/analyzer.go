package bingo

import (
	"sort"
)

// Analysis is one flattened (card, pattern, path) record, the shape the
// UI renders. PathIndex is set only when the pattern produced more than
// one simultaneous path on the card.
type Analysis struct {
	CardID         string `json:"card_id"`
	CardName       string `json:"card_name,omitempty"`
	PatternID      string `json:"pattern_id"`
	PatternName    string `json:"pattern_name"`
	IsWinner       bool   `json:"is_winner"`
	IsOnPot        bool   `json:"is_on_pot"`
	MissingNumbers []int  `json:"missing_numbers"`
	TotalRequired  int    `json:"total_required"`
	TotalMarked    int    `json:"total_marked"`
	PathIndex      *int   `json:"path_index,omitempty"`
	PathLabel      string `json:"path_label,omitempty"`
}

// GameSummary aggregates every analysis record for a set of cards and
// patterns, plus the derived game-level views.
type GameSummary struct {
	Analyses       []Analysis `json:"analyses"`
	Winners        []Analysis `json:"winners"`
	OnPot          []Analysis `json:"on_pot"`
	NumbersToWatch []int      `json:"numbers_to_watch"`
}

// AnalyzeCard runs the matcher for one card against every pattern and
// flattens multi-path results into individual records. A pattern that
// is already won emits a single winner record and no path records; a
// path with zero marked progress is discarded.
func AnalyzeCard(card Card, patterns []Pattern) []Analysis {
	analyses := make([]Analysis, 0, len(patterns))
	for _, p := range patterns {
		result := Evaluate(card, p)
		if result.IsWinner {
			analyses = append(analyses, Analysis{
				CardID:        card.ID,
				CardName:      card.Name,
				PatternID:     p.ID,
				PatternName:   p.Name,
				IsWinner:      true,
				TotalRequired: result.TotalRequired,
				TotalMarked:   result.TotalRequired,
			})
			continue
		}
		multi := len(result.Paths) > 1
		for i, path := range result.Paths {
			if path.MarkedCount == 0 {
				continue
			}
			a := Analysis{
				CardID:         card.ID,
				CardName:       card.Name,
				PatternID:      p.ID,
				PatternName:    p.Name,
				IsOnPot:        len(path.MissingNumbers) == 1,
				MissingNumbers: path.MissingNumbers,
				TotalRequired:  path.TotalRequired,
				TotalMarked:    path.TotalRequired - len(path.MissingNumbers),
				PathLabel:      path.Label,
			}
			if multi {
				idx := i
				a.PathIndex = &idx
			}
			analyses = append(analyses, a)
		}
	}
	return analyses
}

// AnalyzeGame runs AnalyzeCard across every card and collects the
// game-level views. Cards are expected to be normalized against the
// called-number list already (see ApplyCalledNumbers).
func AnalyzeGame(cards []Card, patterns []Pattern) *GameSummary {
	summary := &GameSummary{}
	watch := make(map[int]bool)
	for _, card := range cards {
		for _, a := range AnalyzeCard(card, patterns) {
			summary.Analyses = append(summary.Analyses, a)
			if a.IsWinner {
				summary.Winners = append(summary.Winners, a)
				continue
			}
			if a.IsOnPot {
				summary.OnPot = append(summary.OnPot, a)
			}
			for _, n := range a.MissingNumbers {
				watch[n] = true
			}
		}
	}
	summary.NumbersToWatch = make([]int, 0, len(watch))
	for n := range watch {
		summary.NumbersToWatch = append(summary.NumbersToWatch, n)
	}
	sort.Ints(summary.NumbersToWatch)
	return summary
}

// ClosestPatterns returns the top-k non-winning analyses ordered by
// ascending missing count. Ties keep their original (card, pattern,
// path) order so the result is stable across runs.
func ClosestPatterns(analyses []Analysis, k int) []Analysis {
	closest := make([]Analysis, 0, len(analyses))
	for _, a := range analyses {
		if !a.IsWinner {
			closest = append(closest, a)
		}
	}
	sort.SliceStable(closest, func(i, j int) bool {
		return len(closest[i].MissingNumbers) < len(closest[j].MissingNumbers)
	})
	if k > 0 && len(closest) > k {
		closest = closest[:k]
	}
	return closest
}

// NumberMatters reports whether n appears in any analysis' missing set.
func NumberMatters(analyses []Analysis, n int) bool {
	for _, a := range analyses {
		for _, m := range a.MissingNumbers {
			if m == n {
				return true
			}
		}
	}
	return false
}

// AnalysesNeeding returns every analysis whose missing set contains n:
// the (card, pattern, path) combinations that calling n would advance.
func AnalysesNeeding(analyses []Analysis, n int) []Analysis {
	var out []Analysis
	for _, a := range analyses {
		for _, m := range a.MissingNumbers {
			if m == n {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// WinChance is the linear probability estimate shown alongside each
// analysis: numbers still needed over numbers not yet called, i.e. the
// chance that the next call advances this path. A completed path
// reports 1; with nothing left to call the estimate is 0.
func WinChance(missingCount, uncalledCount int) float64 {
	if missingCount == 0 {
		return 1
	}
	if uncalledCount <= 0 {
		return 0
	}
	chance := float64(missingCount) / float64(uncalledCount)
	if chance > 1 {
		return 1
	}
	return chance
}
