// internal/game/types.go
//
// Core type definitions for the memory-buttons engine.
// Defines:
//   - State: which phase of the round lifecycle is active.
//   - Button: a numbered, colored, positioned clickable unit.
//   - Result: summary handed to observers when a round ends.

package game

import (
	"time"

	"github.com/robalobadob/memory-buttons/internal/models"
)

// State is the controller's lifecycle phase. Exactly one is active.
type State int

const (
	StateMenu State = iota
	StatePresenting
	StateAwaitingClicks
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePresenting:
		return "presenting"
	case StateAwaitingClicks:
		return "awaiting_clicks"
	case StateEnded:
		return "ended"
	}
	return "unknown"
}

// Button holds one clickable unit of a round.
type Button struct {
	ID       int             `json:"id"`       // 1..N, unique per round
	Color    models.Color    `json:"color"`    // rendered as "#rrggbb"
	Position models.Position `json:"position"` // top-left corner, pixels
	Pressed  bool            `json:"pressed"`  // set on first click, never cleared
}

// Result summarizes a finished round.
type Result struct {
	ButtonCount int           // N
	Won         bool          // all N clicked in order
	Correct     int           // in-order clicks before the round ended
	Elapsed     time.Duration // reveal to end
}
