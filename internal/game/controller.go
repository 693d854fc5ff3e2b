// internal/game/controller.go
//
// Round lifecycle for a single player.
// Responsibilities:
//   - Menu → Presenting: validate the button count, lay out a fresh round.
//   - Presenting: memorize phase (N × MemorizePerButton), then
//     ShuffleRounds × (shuffle + ShuffleDisplay peek), then reveal.
//   - AwaitingClicks: accept clicks in id order; one wrong click loses.
//   - Ended → Menu via Back.
//
// Notes:
//   - The controller is not goroutine-safe. The owner serializes calls.
//   - Host errors are returned as-is; state transitions still happen.
package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/memory-buttons/internal/common/clock"
	"github.com/robalobadob/memory-buttons/internal/common/random"
)

const (
	defaultShuffleRounds     = 3
	defaultShuffleDisplay    = 2 * time.Second
	defaultMemorizePerButton = time.Second
	defaultButtonWidth       = 160 // 10em at 16px
	defaultButtonHeight      = 80  // 5em at 16px
)

// Config wires a Controller. Zero values take the defaults above.
type Config struct {
	Host   Host          // required
	Clock  clock.Clock   // defaults to the system clock
	Random random.Source // defaults to a clock-seeded generator

	ShuffleRounds     int
	ShuffleDisplay    time.Duration
	MemorizePerButton time.Duration
	ButtonWidth       float64
	ButtonHeight      float64

	// MaxButtons caps the menu input; 0 means no cap.
	MaxButtons int

	// OnRoundEnd is called once per finished round, before the result is shown.
	OnRoundEnd func(Result)
}

// Controller drives the menu → presenting → awaiting clicks → ended cycle.
type Controller struct {
	cfg     Config
	host    Host
	clock   clock.Clock
	buttons *ButtonCollection

	state      State
	won        bool
	next       int // expected next id, 1..N+1
	correct    int
	revealedAt time.Time
}

// New validates cfg, fills defaults and returns a controller in Menu.
// The menu is not drawn until ShowMenu is called.
func New(cfg *Config) (*Controller, error) {
	if cfg == nil || cfg.Host == nil {
		return nil, ErrMissingHost
	}
	c := *cfg
	if c.Clock == nil {
		c.Clock = &clock.DefaultClock{}
	}
	if c.Random == nil {
		c.Random = random.New(nil)
	}
	if c.ShuffleRounds <= 0 {
		c.ShuffleRounds = defaultShuffleRounds
	}
	if c.ShuffleDisplay <= 0 {
		c.ShuffleDisplay = defaultShuffleDisplay
	}
	if c.MemorizePerButton <= 0 {
		c.MemorizePerButton = defaultMemorizePerButton
	}
	if c.ButtonWidth <= 0 {
		c.ButtonWidth = defaultButtonWidth
	}
	if c.ButtonHeight <= 0 {
		c.ButtonHeight = defaultButtonHeight
	}

	return &Controller{
		cfg:     c,
		host:    c.Host,
		clock:   c.Clock,
		buttons: NewButtonCollection(c.Host, c.Clock, c.Random, c.ButtonWidth, c.ButtonHeight),
		state:   StateMenu,
		next:    1,
	}, nil
}

// State reports the active phase.
func (c *Controller) State() State { return c.state }

// Won reports the outcome of the last round; meaningful in StateEnded.
func (c *Controller) Won() bool { return c.won }

// ExpectedNext is the id the next correct click must carry.
func (c *Controller) ExpectedNext() int { return c.next }

// Buttons returns a snapshot of the current round's buttons.
func (c *Controller) Buttons() []Button { return c.buttons.Buttons() }

// ButtonSize returns the configured button width and height in pixels.
func (c *Controller) ButtonSize() (float64, float64) { return c.cfg.ButtonWidth, c.cfg.ButtonHeight }

// SetRandom changes the source for the next round. Used by the daily mode.
func (c *Controller) SetRandom(src random.Source) { c.buttons.SetRandom(src) }

// ShowMenu draws the menu. Only valid in StateMenu.
func (c *Controller) ShowMenu() error {
	if c.state != StateMenu {
		return fmt.Errorf("show menu in %s: %w", c.state, ErrWrongState)
	}
	return c.host.ShowMenu(c.host.Message(MsgPrompt), c.host.Message(MsgStart))
}

// StartInput parses the raw menu input and starts a round. Anything that is
// not a positive integer is rejected and the controller stays in Menu.
func (c *Controller) StartInput(ctx context.Context, raw string) error {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%q: %w", raw, ErrInvalidButtonCount)
	}
	return c.Start(ctx, n)
}

// Start runs the whole presentation for an n-button round and returns once
// the buttons are revealed. It blocks for roughly
// n*MemorizePerButton + ShuffleRounds*ShuffleDisplay.
//
// If ctx is cancelled mid-presentation the round is discarded, the
// controller returns to Menu and ctx.Err() is returned.
func (c *Controller) Start(ctx context.Context, n int) error {
	if c.state != StateMenu {
		return fmt.Errorf("start in %s: %w", c.state, ErrWrongState)
	}
	if n <= 0 || (c.cfg.MaxButtons > 0 && n > c.cfg.MaxButtons) {
		return fmt.Errorf("%d buttons: %w", n, ErrInvalidButtonCount)
	}

	c.state = StatePresenting
	if err := c.present(ctx, n); err != nil {
		c.buttons.Clear()
		c.state = StateMenu
		return err
	}

	c.next = 1
	c.correct = 0
	c.revealedAt = c.clock.Now()
	c.state = StateAwaitingClicks
	return c.buttons.Reveal()
}

// present lays the round out and runs the timed phases. The viewport is
// measured once so every shuffle uses the same bounds.
func (c *Controller) present(ctx context.Context, n int) error {
	width, height := c.host.Viewport()
	if err := c.host.Clear(); err != nil {
		return err
	}

	c.buttons.Clear()
	c.buttons.Layout(n, width)
	if err := c.buttons.PresentBriefly(ctx, time.Duration(n)*c.cfg.MemorizePerButton); err != nil {
		return err
	}
	for i := 0; i < c.cfg.ShuffleRounds; i++ {
		c.buttons.Shuffle(width, height)
		if err := c.buttons.PresentBriefly(ctx, c.cfg.ShuffleDisplay); err != nil {
			return err
		}
	}
	return nil
}

// Click handles a press on button id. A click on an already-pressed button
// is ignored. A click out of order ends the round as lost.
func (c *Controller) Click(id int) error {
	if c.state != StateAwaitingClicks {
		return fmt.Errorf("click in %s: %w", c.state, ErrWrongState)
	}
	b, ok := c.buttons.Get(id)
	if !ok {
		return fmt.Errorf("button %d: %w", id, ErrUnknownButton)
	}
	if b.Pressed {
		return nil
	}
	b.Pressed = true

	if id != c.next {
		return c.end(false)
	}
	c.next++
	c.correct++
	if c.next > c.buttons.Count() {
		return c.end(true)
	}
	return c.buttons.Reveal()
}

// Back leaves the result screen, drops the round and redraws the menu.
func (c *Controller) Back() error {
	if c.state != StateEnded {
		return fmt.Errorf("back in %s: %w", c.state, ErrWrongState)
	}
	if err := c.host.Clear(); err != nil {
		return err
	}
	c.buttons.Clear()
	c.won = false
	c.state = StateMenu
	return c.ShowMenu()
}

func (c *Controller) end(won bool) error {
	res := Result{
		ButtonCount: c.buttons.Count(),
		Won:         won,
		Correct:     c.correct,
		Elapsed:     c.clock.Now().Sub(c.revealedAt),
	}

	c.state = StateEnded
	c.won = won
	c.next = 1

	if c.cfg.OnRoundEnd != nil {
		c.cfg.OnRoundEnd(res)
	}

	if err := c.host.Clear(); err != nil {
		return err
	}
	msg := MsgLose
	if won {
		msg = MsgWin
	}
	return c.host.ShowResult(won, c.host.Message(msg), c.host.Message(MsgBackToMenu))
}
