// internal/models/models.go
//
// Small value types shared by the random source, the game engine and the
// websocket protocol.

package models

import "fmt"

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ColorFromInt builds a Color from a 0xRRGGBB value. Higher bits are ignored.
func ColorFromInt(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Hex renders the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText lets colors travel as "#rrggbb" in JSON payloads.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Position is a top-left corner in pixel space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
