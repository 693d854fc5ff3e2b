package game

import (
	"context"
	"fmt"
	"time"
)

// RecordingHost is an in-memory Host that remembers every call. It lives in a
// _test file so the external controller tests can share it.
type RecordingHost struct {
	Width, Height float64

	Calls       []string
	Frames      [][]Button
	Interactive bool
	OnScreen    []Button
	MenuShown   bool
	ResultShown bool
	ResultWon   bool
	ResultText  string
}

func NewRecordingHost(w, h float64) *RecordingHost {
	return &RecordingHost{Width: w, Height: h}
}

func (h *RecordingHost) Render(buttons []Button, interactive bool) error {
	h.Calls = append(h.Calls, fmt.Sprintf("render:%t", interactive))
	h.Frames = append(h.Frames, buttons)
	h.Interactive = interactive
	h.OnScreen = buttons
	return nil
}

func (h *RecordingHost) Clear() error {
	h.Calls = append(h.Calls, "clear")
	h.Interactive = false
	h.OnScreen = nil
	h.MenuShown = false
	h.ResultShown = false
	return nil
}

func (h *RecordingHost) Viewport() (float64, float64) { return h.Width, h.Height }

func (h *RecordingHost) Message(key MessageKey) string { return string(key) }

func (h *RecordingHost) ShowMenu(prompt, start string) error {
	h.Calls = append(h.Calls, "menu")
	h.MenuShown = true
	return nil
}

func (h *RecordingHost) ShowResult(won bool, message, back string) error {
	h.Calls = append(h.Calls, fmt.Sprintf("result:%t", won))
	h.ResultShown = true
	h.ResultWon = won
	h.ResultText = message
	return nil
}

// RecordingClock advances virtual time on Sleep instead of blocking.
type RecordingClock struct {
	Current time.Time
	Sleeps  []time.Duration
}

func NewRecordingClock() *RecordingClock {
	return &RecordingClock{Current: time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)}
}

func (c *RecordingClock) Now() time.Time { return c.Current }

func (c *RecordingClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Sleeps = append(c.Sleeps, d)
	c.Current = c.Current.Add(d)
	return nil
}
