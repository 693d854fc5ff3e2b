// internal/game/buttons.go
//
// ButtonCollection owns the ordered buttons of one round.
// Responsibilities:
//   - Tile N buttons left-to-right, wrapping rows at the viewport width.
//   - Show them briefly (unlabeled, non-interactive) for a fixed duration.
//   - Reveal them (labeled, clickable).
//   - Shuffle positions between presentations, keeping ids and colors.

package game

import (
	"context"
	"time"

	"github.com/robalobadob/memory-buttons/internal/common/clock"
	"github.com/robalobadob/memory-buttons/internal/common/random"
	"github.com/robalobadob/memory-buttons/internal/models"
)

// ButtonCollection is not safe for concurrent use; the Controller that owns
// it is the only caller.
type ButtonCollection struct {
	host    Host
	clock   clock.Clock
	random  random.Source
	width   float64 // button width, pixels
	height  float64 // button height, pixels
	buttons []*Button
}

// NewButtonCollection builds an empty collection for buttons of the given size.
func NewButtonCollection(host Host, clk clock.Clock, src random.Source, width, height float64) *ButtonCollection {
	return &ButtonCollection{
		host:   host,
		clock:  clk,
		random: src,
		width:  width,
		height: height,
	}
}

// Count returns the number of buttons in the current round.
func (bc *ButtonCollection) Count() int { return len(bc.buttons) }

// Buttons returns a snapshot of the buttons in id order.
func (bc *ButtonCollection) Buttons() []Button {
	out := make([]Button, len(bc.buttons))
	for i, b := range bc.buttons {
		out[i] = *b
	}
	return out
}

// Get looks a button up by id.
func (bc *ButtonCollection) Get(id int) (*Button, bool) {
	if id < 1 || id > len(bc.buttons) {
		return nil, false
	}
	return bc.buttons[id-1], true
}

// Layout replaces the collection with n freshly colored buttons tiled from
// (0,0). A row wraps when the next button would cross width; the first
// button of a row never wraps, so a viewport narrower than one button
// stacks them in a column.
func (bc *ButtonCollection) Layout(n int, width float64) {
	colors := bc.random.Colors(n)
	bc.buttons = make([]*Button, 0, n)

	var x, y float64
	for id := 1; id <= n; id++ {
		if x > 0 && x+bc.width > width {
			x = 0
			y += bc.height
		}
		bc.buttons = append(bc.buttons, &Button{
			ID:       id,
			Color:    colors[id-1],
			Position: models.Position{X: x, Y: y},
		})
		x += bc.width
	}
}

// PresentBriefly shows every button unlabeled and inert for d, then clears
// the display. A cancelled ctx ends the wait early and is returned.
func (bc *ButtonCollection) PresentBriefly(ctx context.Context, d time.Duration) error {
	if err := bc.host.Clear(); err != nil {
		return err
	}
	if err := bc.host.Render(bc.Buttons(), false); err != nil {
		return err
	}
	if err := bc.clock.Sleep(ctx, d); err != nil {
		return err
	}
	return bc.host.Clear()
}

// Reveal shows every button labeled and clickable.
func (bc *ButtonCollection) Reveal() error {
	if err := bc.host.Clear(); err != nil {
		return err
	}
	return bc.host.Render(bc.Buttons(), true)
}

// Shuffle draws a new position for each button inside boundsW x boundsH.
func (bc *ButtonCollection) Shuffle(boundsW, boundsH float64) {
	ps := bc.random.Positions(len(bc.buttons), bc.width, bc.height, boundsW, boundsH)
	for i, b := range bc.buttons {
		b.Position = ps[i]
	}
}

// Clear drops every button.
func (bc *ButtonCollection) Clear() { bc.buttons = nil }

// SetRandom swaps the source used by later Layout and Shuffle calls.
func (bc *ButtonCollection) SetRandom(src random.Source) { bc.random = src }
