// internal/session/messages.go
//
// JSON frames exchanged with the browser client over the websocket.
//
// client → server:
//   {"type":"start","count":"5","width":1280,"height":720,"daily":false}
//   {"type":"click","id":3}
//   {"type":"back"}
//   {"type":"viewport","width":1280,"height":720}
//
// server → client:
//   {"type":"menu","prompt":"...","start":"..."}
//   {"type":"render","interactive":true,"buttonWidth":160,"buttonHeight":80,"buttons":[...]}
//   {"type":"clear"}
//   {"type":"result","won":true,"message":"...","back":"..."}
//   {"type":"error","error":"invalid_button_count"}

package session

import (
	"encoding/json"
	"strings"

	"github.com/robalobadob/memory-buttons/internal/game"
)

const (
	// client - server
	MsgStart    = "start"
	MsgClick    = "click"
	MsgBack     = "back"
	MsgViewport = "viewport"

	// server - client
	MsgMenu   = "menu"
	MsgRender = "render"
	MsgClear  = "clear"
	MsgResult = "result"
	MsgError  = "error"
)

// Error codes carried by error frames.
const (
	ErrCodeInvalidCount  = "invalid_button_count"
	ErrCodeWrongState    = "wrong_state"
	ErrCodeUnknownButton = "unknown_button"
	ErrCodeBadMessage    = "bad_message"
)

type inbound struct {
	Type   string          `json:"type"`
	Count  json.RawMessage `json:"count,omitempty"` // string or number; validated by the controller
	ID     int             `json:"id,omitempty"`
	Width  float64         `json:"width,omitempty"`
	Height float64         `json:"height,omitempty"`
	Daily  bool            `json:"daily,omitempty"`
}

// countInput returns the raw menu input as text, whether the client sent
// it quoted or as a bare number.
func (m inbound) countInput() string {
	var s string
	if err := json.Unmarshal(m.Count, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(m.Count))
}

type menuFrame struct {
	Type   string `json:"type"`
	Prompt string `json:"prompt"`
	Start  string `json:"start"`
	Daily  string `json:"daily"`
}

type renderFrame struct {
	Type         string        `json:"type"`
	Interactive  bool          `json:"interactive"`
	ButtonWidth  float64       `json:"buttonWidth"`
	ButtonHeight float64       `json:"buttonHeight"`
	Buttons      []game.Button `json:"buttons"`
}

type clearFrame struct {
	Type string `json:"type"`
}

type resultFrame struct {
	Type    string `json:"type"`
	Won     bool   `json:"won"`
	Message string `json:"message"`
	Back    string `json:"back"`
}

// errorFrame carries the stable code for clients and the localized text to show.
type errorFrame struct {
	Type    string `json:"type"`
	Error   string `json:"error"`
	Message string `json:"message"`
}
