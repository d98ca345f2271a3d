package game

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jdelacruz/bingo-companion/internal/bingo"
	"github.com/jdelacruz/bingo-companion/internal/events"
	"github.com/jdelacruz/bingo-companion/internal/storage/models"
)

// SessionView is the plain session shape returned to the UI.
type SessionView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Called    []int     `json:"called_numbers"`
	Remaining int       `json:"remaining"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClosestEntry is a non-winning analysis annotated with its linear
// win-chance estimate.
type ClosestEntry struct {
	bingo.Analysis
	WinChance float64 `json:"win_chance"`
}

// SessionAnalysis is the full analysis of one session: every card
// against every active pattern, normalized to the called-number list.
type SessionAnalysis struct {
	SessionID string             `json:"session_id"`
	Called    []int              `json:"called_numbers"`
	Remaining int                `json:"remaining"`
	Summary   *bingo.GameSummary `json:"summary"`
	Closest   []ClosestEntry     `json:"closest"`
}

// NumberImpact answers "would calling n help anyone": the analyses
// whose missing sets contain n.
type NumberImpact struct {
	Number  int              `json:"number"`
	Matters bool             `json:"matters"`
	Helps   []bingo.Analysis `json:"helps"`
}

// CreateSession starts a new game session with no called numbers.
func (s *Service) CreateSession(ctx context.Context, name string) (*SessionView, error) {
	session := &models.Session{ID: uuid.NewString(), Name: name}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return sessionView(session)
}

// GetSession retrieves one session.
func (s *Service) GetSession(ctx context.Context, id string) (*SessionView, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sessionView(session)
}

// ListSessions retrieves all sessions, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]*SessionView, error) {
	records, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]*SessionView, 0, len(records))
	for _, record := range records {
		view, err := sessionView(record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// DeleteSession removes a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func sessionView(session *models.Session) (*SessionView, error) {
	called, err := session.Called()
	if err != nil {
		return nil, err
	}
	return &SessionView{
		ID:        session.ID,
		Name:      session.Name,
		Called:    called,
		Remaining: bingo.MaxNumber - len(called),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}, nil
}

// CallNumber records a called number and returns the refreshed session
// analysis. Duplicate calls surface repository.ErrAlreadyCalled;
// out-of-range numbers surface ErrInvalidNumber. Winner and on-pot
// events are emitted for combinations the new number affected.
func (s *Service) CallNumber(ctx context.Context, sessionID string, n int) (*SessionAnalysis, error) {
	if n < 1 || n > bingo.MaxNumber {
		return nil, ErrInvalidNumber
	}

	// Snapshot the winners before the call so only newly won
	// combinations trigger winner events.
	before, err := s.AnalyzeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	wonBefore := make(map[string]bool, len(before.Summary.Winners))
	for _, w := range before.Summary.Winners {
		wonBefore[w.CardID+"/"+w.PatternID] = true
	}

	if err := s.sessions.AppendCalled(ctx, sessionID, n); err != nil {
		return nil, err
	}

	analysis, err := s.AnalyzeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.emit(events.TypeNumberCalled, events.NumberCalledEvent{
		SessionID: sessionID,
		Number:    n,
		Called:    len(analysis.Called),
	})
	for _, w := range analysis.Summary.Winners {
		if !wonBefore[w.CardID+"/"+w.PatternID] {
			s.emit(events.TypeWinnerDetected, events.WinnerDetectedEvent{
				SessionID: sessionID,
				Winner:    w,
			})
		}
	}
	if len(analysis.Summary.OnPot) > 0 {
		s.emit(events.TypeOnPotAlert, events.OnPotAlertEvent{
			SessionID: sessionID,
			OnPot:     analysis.Summary.OnPot,
		})
	}
	s.emit(events.TypeAnalysisUpdated, events.AnalysisUpdatedEvent{
		SessionID:      sessionID,
		NumbersToWatch: analysis.Summary.NumbersToWatch,
		Winners:        len(analysis.Summary.Winners),
	})

	return analysis, nil
}

// UndoLastCall removes the most recent call and returns the refreshed
// analysis.
func (s *Service) UndoLastCall(ctx context.Context, sessionID string) (*SessionAnalysis, error) {
	n, err := s.sessions.UndoLastCall(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	s.emit(events.TypeNumberUndone, events.NumberUndoneEvent{SessionID: sessionID, Number: n})
	return s.AnalyzeSession(ctx, sessionID)
}

// ResetSession clears the called list and returns the blank analysis.
func (s *Service) ResetSession(ctx context.Context, sessionID string) (*SessionAnalysis, error) {
	if err := s.sessions.ResetCalled(ctx, sessionID); err != nil {
		return nil, err
	}
	s.emit(events.TypeSessionReset, events.SessionResetEvent{SessionID: sessionID})
	return s.AnalyzeSession(ctx, sessionID)
}

// AnalyzeSession recomputes the full analysis for a session from
// scratch: cards are normalized against the called list, matched
// against every pattern, and flattened into the game summary.
func (s *Service) AnalyzeSession(ctx context.Context, sessionID string) (*SessionAnalysis, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	called, err := session.Called()
	if err != nil {
		return nil, err
	}
	cards, err := s.loadCards(ctx)
	if err != nil {
		return nil, err
	}
	patterns, err := s.loadPatterns(ctx)
	if err != nil {
		return nil, err
	}

	marked := bingo.ApplyCalledNumbers(cards, called)
	summary := bingo.AnalyzeGame(marked, patterns)
	remaining := bingo.MaxNumber - len(called)

	closest := bingo.ClosestPatterns(summary.Analyses, s.closestLimit)
	entries := make([]ClosestEntry, 0, len(closest))
	for _, a := range closest {
		entries = append(entries, ClosestEntry{
			Analysis:  a,
			WinChance: bingo.WinChance(len(a.MissingNumbers), remaining),
		})
	}

	return &SessionAnalysis{
		SessionID: sessionID,
		Called:    called,
		Remaining: remaining,
		Summary:   summary,
		Closest:   entries,
	}, nil
}

// CardAnalysis analyzes a single card within a session.
func (s *Service) CardAnalysis(ctx context.Context, sessionID, cardID string) ([]bingo.Analysis, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	called, err := session.Called()
	if err != nil {
		return nil, err
	}
	card, err := s.GetCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	patterns, err := s.loadPatterns(ctx)
	if err != nil {
		return nil, err
	}
	return bingo.AnalyzeCard(card.ApplyCalled(called), patterns), nil
}

// NumberImpact reports whether calling n would advance any card and
// which (card, pattern, path) combinations it helps.
func (s *Service) NumberImpact(ctx context.Context, sessionID string, n int) (*NumberImpact, error) {
	if n < 1 || n > bingo.MaxNumber {
		return nil, ErrInvalidNumber
	}
	analysis, err := s.AnalyzeSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	helps := bingo.AnalysesNeeding(analysis.Summary.Analyses, n)
	return &NumberImpact{
		Number:  n,
		Matters: len(helps) > 0,
		Helps:   helps,
	}, nil
}
