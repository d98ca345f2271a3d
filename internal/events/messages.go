package events

import "github.com/jdelacruz/bingo-companion/internal/bingo"

// Event types dispatched by the game service.
const (
	TypeNumberCalled    = "number:called"
	TypeNumberUndone    = "number:undone"
	TypeSessionReset    = "session:reset"
	TypeWinnerDetected  = "winner:detected"
	TypeOnPotAlert      = "onpot:alert"
	TypeAnalysisUpdated = "analysis:updated"
)

// NumberCalledEvent is the payload for number:called events.
type NumberCalledEvent struct {
	SessionID string `json:"session_id"`
	Number    int    `json:"number"`
	Called    int    `json:"called"` // total numbers called so far
}

// NumberUndoneEvent is the payload for number:undone events.
type NumberUndoneEvent struct {
	SessionID string `json:"session_id"`
	Number    int    `json:"number"`
}

// SessionResetEvent is the payload for session:reset events.
type SessionResetEvent struct {
	SessionID string `json:"session_id"`
}

// WinnerDetectedEvent is the payload for winner:detected events. One
// event is sent per newly won (card, pattern) combination.
type WinnerDetectedEvent struct {
	SessionID string         `json:"session_id"`
	Winner    bingo.Analysis `json:"winner"`
}

// OnPotAlertEvent is the payload for onpot:alert events: the paths that
// are exactly one number away after the latest call.
type OnPotAlertEvent struct {
	SessionID string           `json:"session_id"`
	OnPot     []bingo.Analysis `json:"on_pot"`
}

// AnalysisUpdatedEvent is the payload for analysis:updated events,
// carrying the refreshed game-level watch list.
type AnalysisUpdatedEvent struct {
	SessionID      string `json:"session_id"`
	NumbersToWatch []int  `json:"numbers_to_watch"`
	Winners        int    `json:"winners"`
}
