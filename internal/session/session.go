// internal/session/session.go
//
// One websocket connection = one player = one game.Controller.
//
// Goroutines per session:
//   - readPump: decodes frames, drops clicks while nothing clickable is shown,
//     forwards the rest to the inbox. Closes the inbox on disconnect.
//   - writePump: drains the send queue and keeps the connection alive with pings.
//   - run (the Serve caller): the only goroutine that touches the controller.
//
// A disconnect cancels the session context, which stops an in-flight
// presentation at its next sleep.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory-buttons/internal/common/clock"
	"github.com/robalobadob/memory-buttons/internal/common/random"
	"github.com/robalobadob/memory-buttons/internal/daily"
	"github.com/robalobadob/memory-buttons/internal/game"
	"github.com/robalobadob/memory-buttons/internal/i18n"
	"github.com/robalobadob/memory-buttons/internal/store"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
	readLimit  = 4096
	sendBuffer = 64
	inboxSize  = 16
	saveWait   = 5 * time.Second
)

// GameConfig carries the controller tunables from server config.
type GameConfig struct {
	ShuffleRounds     int
	ShuffleDisplay    time.Duration
	MemorizePerButton time.Duration
	ButtonWidth       float64
	ButtonHeight      float64
	MaxButtons        int
}

// Config for the session manager
type Config struct {
	Store     store.Store // required
	Clock     clock.Clock // defaults to the system clock
	Game      GameConfig
	DailySalt string
}

// Manager creates sessions and tracks the open ones.
type Manager struct {
	cfg Config

	mu     sync.Mutex
	active map[string]*Session
	wg     sync.WaitGroup
}

// NewManager creates a new session manager
func NewManager(cfg *Config) *Manager {
	c := *cfg
	if c.Clock == nil {
		c.Clock = &clock.DefaultClock{}
	}
	return &Manager{cfg: c, active: make(map[string]*Session)}
}

// Active returns the number of open sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Wait blocks until every Serve call has returned, so rounds finishing
// during shutdown are saved before the store closes.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Session is one connected player.
type Session struct {
	id    string
	mgr   *Manager
	conn  *websocket.Conn
	owner store.Owner
	log   zerolog.Logger

	send  chan []byte
	inbox chan inbound
	host  *wsHost
	ctrl  *game.Controller

	mode string // mode of the round in progress
	date string // daily date key of the round in progress
}

// Serve runs a session on an upgraded connection until the client leaves or
// ctx is cancelled. The connection is closed on return.
func (m *Manager) Serve(ctx context.Context, conn *websocket.Conn, owner store.Owner, catalog *i18n.Catalog) error {
	m.wg.Add(1)
	defer m.wg.Done()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &Session{
		id:    uuid.New().String(),
		mgr:   m,
		conn:  conn,
		owner: owner,
		send:  make(chan []byte, sendBuffer),
		inbox: make(chan inbound, inboxSize),
		mode:  store.ModeNormal,
	}
	s.log = log.With().Str("session", s.id).Logger()
	s.host = &wsHost{
		ctx:     ctx,
		send:    s.send,
		catalog: catalog,
	}

	ctrl, err := game.New(&game.Config{
		Host:              s.host,
		Clock:             m.cfg.Clock,
		ShuffleRounds:     m.cfg.Game.ShuffleRounds,
		ShuffleDisplay:    m.cfg.Game.ShuffleDisplay,
		MemorizePerButton: m.cfg.Game.MemorizePerButton,
		ButtonWidth:       m.cfg.Game.ButtonWidth,
		ButtonHeight:      m.cfg.Game.ButtonHeight,
		MaxButtons:        m.cfg.Game.MaxButtons,
		OnRoundEnd:        s.roundEnded,
	})
	if err != nil {
		_ = conn.Close()
		return err
	}
	s.ctrl = ctrl
	s.host.buttonW, s.host.buttonH = ctrl.ButtonSize()

	m.track(s)
	defer m.untrack(s)
	s.log.Info().Str("lang", catalog.Tag().String()).Msg("session opened")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.writePump(ctx)
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		s.readPump(ctx)
	}()

	err = s.run(ctx)
	cancel()
	wg.Wait()
	s.log.Info().Msg("session closed")
	return err
}

func (m *Manager) track(s *Session) {
	m.mu.Lock()
	m.active[s.id] = s
	m.mu.Unlock()
	SessionsActive.Inc()
}

func (m *Manager) untrack(s *Session) {
	m.mu.Lock()
	delete(m.active, s.id)
	m.mu.Unlock()
	SessionsActive.Dec()
}

// run shows the menu and then handles inbound frames one at a time.
func (s *Session) run(ctx context.Context) error {
	if err := s.ctrl.ShowMenu(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-s.inbox:
			if !ok {
				return nil
			}
			if err := s.handle(ctx, msg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

// handle applies one frame. Rule violations go back to the client as error
// frames; only transport failures are returned.
func (s *Session) handle(ctx context.Context, msg inbound) error {
	switch msg.Type {
	case MsgViewport:
		s.host.setViewport(msg.Width, msg.Height)
		return nil

	case MsgStart:
		s.host.setViewport(msg.Width, msg.Height)
		s.prepareRound(msg.Daily)
		raw := msg.countInput()
		err := s.ctrl.StartInput(ctx, raw)
		if err == nil {
			n := len(s.ctrl.Buttons())
			RoundsRevealed.WithLabelValues(s.mode).Inc()
			RoundButtons.Observe(float64(n))
			s.log.Info().Int("buttons", n).Str("mode", s.mode).Msg("round revealed")
			return nil
		}
		return s.reject(err, raw)

	case MsgClick:
		return s.reject(s.ctrl.Click(msg.ID), msg.ID)

	case MsgBack:
		return s.reject(s.ctrl.Back(), nil)
	}
	return s.host.sendError(ErrCodeBadMessage)
}

// reject maps controller errors to error frames and passes anything else up.
func (s *Session) reject(err error, input any) error {
	var code string
	switch {
	case err == nil:
		return nil
	case errors.Is(err, game.ErrInvalidButtonCount):
		code = ErrCodeInvalidCount
	case errors.Is(err, game.ErrWrongState):
		code = ErrCodeWrongState
	case errors.Is(err, game.ErrUnknownButton):
		code = ErrCodeUnknownButton
	default:
		return err
	}
	s.log.Debug().Err(err).Interface("input", input).Msg("rejected")
	return s.host.sendError(code)
}

// prepareRound picks the random source for the next round. Daily rounds are
// seeded from the date so every player gets the same colors and shuffles.
func (s *Session) prepareRound(isDaily bool) {
	if s.ctrl.State() != game.StateMenu {
		return
	}
	if !isDaily {
		s.mode, s.date = store.ModeNormal, ""
		s.ctrl.SetRandom(random.New(nil))
		return
	}
	now := s.mgr.cfg.Clock.Now()
	s.mode, s.date = store.ModeDaily, daily.DateKey(now)
	s.ctrl.SetRandom(random.NewSeeded(daily.Seed(now, s.mgr.cfg.DailySalt)))
}

// roundEnded persists the result. It runs on the driver goroutine inside
// Controller.Click.
func (s *Session) roundEnded(res game.Result) {
	result := "lost"
	if res.Won {
		result = "won"
	}
	RoundsFinished.WithLabelValues(s.mode, result).Inc()

	r := &store.Round{
		UserID:      s.owner.UserID,
		AnonID:      s.owner.AnonID,
		Mode:        s.mode,
		Date:        s.date,
		ButtonCount: res.ButtonCount,
		Won:         res.Won,
		Correct:     res.Correct,
		ElapsedMs:   res.Elapsed.Milliseconds(),
		FinishedAt:  s.mgr.cfg.Clock.Now().UTC(),
	}
	if s.owner.UserID != "" {
		r.AnonID = ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveWait)
	defer cancel()
	if err := s.mgr.cfg.Store.SaveRound(ctx, r); err != nil {
		s.log.Warn().Err(err).Msg("save round")
	}
	s.log.Info().
		Int("buttons", res.ButtonCount).
		Bool("won", res.Won).
		Int("correct", res.Correct).
		Dur("elapsed", res.Elapsed).
		Msg("round finished")
}

// admit filters frames at the reader. Clicks are only meaningful while an
// interactive render is on screen.
func (s *Session) admit(msg inbound) bool {
	if msg.Type == MsgClick && !s.host.acceptingClicks() {
		s.log.Debug().Int("id", msg.ID).Msg("click dropped outside reveal")
		return false
	}
	return true
}

func (s *Session) readPump(ctx context.Context) {
	defer close(s.inbox)

	s.conn.SetReadLimit(readLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("read")
			}
			return
		}
		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg = inbound{Type: "invalid"}
		}
		if !s.admit(msg) {
			continue
		}
		select {
		case s.inbox <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case msg := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.log.Warn().Err(err).Msg("write")
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ctx.Done():
			// flush what the driver already queued, then say goodbye
			for {
				select {
				case msg := <-s.send:
					_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				default:
					_ = s.conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(writeWait))
					return
				}
			}
		}
	}
}
