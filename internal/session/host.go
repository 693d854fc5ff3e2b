package session

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/robalobadob/memory-buttons/internal/game"
	"github.com/robalobadob/memory-buttons/internal/i18n"
)

// wsHost renders controller output as JSON frames on the session's send
// queue. Every method runs on the session's driver goroutine except
// acceptingClicks, which the reader polls.
type wsHost struct {
	ctx     context.Context
	send    chan<- []byte
	catalog *i18n.Catalog

	width, height float64 // viewport, from the client
	buttonW       float64
	buttonH       float64

	interactive atomic.Bool
}

var _ game.Host = (*wsHost)(nil)

func (h *wsHost) emit(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case h.send <- b:
		return nil
	case <-h.ctx.Done():
		return h.ctx.Err()
	}
}

// acceptingClicks reports whether an interactive render is on screen.
func (h *wsHost) acceptingClicks() bool { return h.interactive.Load() }

func (h *wsHost) Render(buttons []game.Button, interactive bool) error {
	h.interactive.Store(interactive)
	return h.emit(renderFrame{
		Type:         MsgRender,
		Interactive:  interactive,
		ButtonWidth:  h.buttonW,
		ButtonHeight: h.buttonH,
		Buttons:      buttons,
	})
}

// Clear leaves the interactive flag alone: a reveal is always Clear then
// Render(true), and clicks must keep flowing across that pair.
func (h *wsHost) Clear() error {
	return h.emit(clearFrame{Type: MsgClear})
}

func (h *wsHost) Viewport() (float64, float64) { return h.width, h.height }

func (h *wsHost) setViewport(w, ht float64) {
	if w > 0 {
		h.width = w
	}
	if ht > 0 {
		h.height = ht
	}
}

// keyDaily labels the daily toggle on the menu.
const keyDaily = "daily"

func (h *wsHost) Message(key game.MessageKey) string { return h.catalog.Lookup(string(key)) }

func (h *wsHost) ShowMenu(prompt, start string) error {
	h.interactive.Store(false)
	return h.emit(menuFrame{
		Type:   MsgMenu,
		Prompt: prompt,
		Start:  start,
		Daily:  h.catalog.Lookup(keyDaily),
	})
}

func (h *wsHost) ShowResult(won bool, message, back string) error {
	h.interactive.Store(false)
	return h.emit(resultFrame{Type: MsgResult, Won: won, Message: message, Back: back})
}

func (h *wsHost) sendError(code string) error {
	return h.emit(errorFrame{Type: MsgError, Error: code, Message: h.catalog.Lookup(code)})
}
