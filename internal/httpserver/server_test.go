package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/robalobadob/memory-buttons/internal/common/clock"
	"github.com/robalobadob/memory-buttons/internal/config"
	"github.com/robalobadob/memory-buttons/internal/i18n"
	"github.com/robalobadob/memory-buttons/internal/session"
	"github.com/robalobadob/memory-buttons/internal/store"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
func (c fixedClock) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

type ServerTestSuite struct {
	suite.Suite
	cfg   *config.Config
	store store.Store
	srv   *Server
	now   time.Time
}

func (s *ServerTestSuite) SetupTest() {
	s.now = time.Date(2025, 4, 19, 15, 0, 0, 0, time.UTC)
	s.cfg = &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiresDays: 1,
		CookieName:     "buttons_token",
		ClientOrigin:   "http://localhost:5175",
		DailySalt:      "salt",
		MaxButtons:     10,
	}
	s.store = store.NewMemoryStore()
	s.srv = New(Deps{
		Config: s.cfg,
		Store:  s.store,
		Sessions: session.NewManager(&session.Config{
			Store: s.store,
			Clock: clock.Instant{},
			Game:  session.GameConfig{MaxButtons: s.cfg.MaxButtons},
		}),
		I18n:  i18n.MustLoad(),
		Clock: fixedClock{now: s.now},
	})
}

func (s *ServerTestSuite) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(v))
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *ServerTestSuite) signup(username string, cookies ...*http.Cookie) *http.Cookie {
	rec := s.do(http.MethodPost, "/auth/signup", `{"username":"`+username+`","password":"hunter22"}`, cookies...)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	tok := cookieNamed(rec, s.cfg.CookieName)
	s.Require().NotNil(tok)
	return tok
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "application/json")
	s.JSONEq(`{"ok":true}`, rec.Body.String())
}

func (s *ServerTestSuite) TestAPIInfo() {
	rec := s.do(http.MethodGet, "/api", "")
	s.Equal(http.StatusOK, rec.Code)

	var info struct {
		Service    string   `json:"service"`
		Languages  []string `json:"languages"`
		MaxButtons int      `json:"maxButtons"`
	}
	s.decode(rec, &info)
	s.Equal("memory-buttons", info.Service)
	s.Equal(10, info.MaxButtons)
	s.Contains(info.Languages, "fr")
}

func (s *ServerTestSuite) TestServesClient() {
	rec := s.do(http.MethodGet, "/", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Type"), "text/html")
	s.Contains(rec.Body.String(), "/static/app.js")

	rec = s.do(http.MethodGet, "/static/app.js", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "WebSocket")
}

func (s *ServerTestSuite) TestNotFoundIsJSON() {
	rec := s.do(http.MethodGet, "/nope", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"not_found"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestCORSPreflight() {
	rec := s.do(http.MethodOptions, "/auth/login", "")
	s.Equal(http.StatusNoContent, rec.Code)
	s.Equal(s.cfg.ClientOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *ServerTestSuite) TestSignupLoginLogout() {
	tok := s.signup("alice")

	rec := s.do(http.MethodGet, "/auth/me", "", tok)
	s.Require().Equal(http.StatusOK, rec.Code)
	var me authUser
	s.decode(rec, &me)
	s.Equal("alice", me.Username)
	s.NotEmpty(me.ID)

	rec = s.do(http.MethodPost, "/auth/signup", `{"username":"ALICE","password":"whatever1"}`)
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong-pass"}`)
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/auth/login", `{"username":" alice ","password":"hunter22"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(cookieNamed(rec, s.cfg.CookieName))
	s.NotContains(rec.Body.String(), "hunter22")

	rec = s.do(http.MethodPost, "/auth/logout", "")
	s.Equal(http.StatusOK, rec.Code)
	cleared := cookieNamed(rec, s.cfg.CookieName)
	s.Require().NotNil(cleared)
	s.Less(cleared.MaxAge, 0)
}

func (s *ServerTestSuite) TestSignupValidation() {
	cases := map[string]string{
		`{"username":"ab","password":"longenough"}`:       "username_length",
		`{"username":"bad name","password":"longenough"}`: "username_charset",
		`{"username":"carol","password":"short"}`:         "password_length",
	}
	for body, code := range cases {
		rec := s.do(http.MethodPost, "/auth/signup", body)
		s.Equal(http.StatusBadRequest, rec.Code, body)
		s.JSONEq(`{"error":"`+code+`"}`, rec.Body.String())
	}

	rec := s.do(http.MethodPost, "/auth/signup", `not json`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestGatedRoutesNeedToken() {
	for _, path := range []string{"/auth/me", "/stats/me", "/rounds/mine"} {
		rec := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusUnauthorized, rec.Code, path)
	}

	bogus := &http.Cookie{Name: s.cfg.CookieName, Value: "not-a-jwt"}
	rec := s.do(http.MethodGet, "/auth/me", "", bogus)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerTestSuite) TestSignupClaimsGuestRounds() {
	ctx := context.Background()
	s.Require().NoError(s.store.SaveRound(ctx, &store.Round{
		AnonID: "guest-1", Mode: store.ModeNormal, ButtonCount: 4, Won: true, Correct: 4, FinishedAt: s.now,
	}))

	tok := s.signup("dave", &http.Cookie{Name: anonCookieName, Value: "guest-1"})

	req := httptest.NewRequest(http.MethodGet, "/rounds/mine", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	rec := httptest.NewRecorder()
	s.srv.Router().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)
	var rounds []store.Round
	s.decode(rec, &rounds)
	s.Require().Len(rounds, 1)
	s.Equal(4, rounds[0].ButtonCount)

	rec = s.do(http.MethodGet, "/stats/me", "", tok)
	s.Require().Equal(http.StatusOK, rec.Code)
	var st map[string]any
	s.decode(rec, &st)
	s.EqualValues(1, st["played"])
	s.EqualValues(1, st["wins"])
	s.EqualValues(4, st["best"])
}

func (s *ServerTestSuite) TestLeaderboard() {
	ctx := context.Background()
	u := &store.User{Username: "erin", PasswordHash: "x", CreatedAt: s.now}
	s.Require().NoError(s.store.CreateUser(ctx, u))
	s.Require().NoError(s.store.SaveRound(ctx, &store.Round{
		UserID: u.ID, Mode: store.ModeDaily, Date: "2025-04-19", ButtonCount: 6, Won: true, ElapsedMs: 5000, FinishedAt: s.now,
	}))

	rec := s.do(http.MethodGet, "/daily/leaderboard", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	var lb lbRes
	s.decode(rec, &lb)
	s.Equal("2025-04-19", lb.Date)
	s.Equal([]store.LeaderRow{{Username: "erin", ButtonCount: 6, ElapsedMs: 5000}}, lb.Top)

	rec = s.do(http.MethodGet, "/daily/leaderboard?date=2025-04-18", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &lb)
	s.Empty(lb.Top)
	s.NotNil(lb.Top)

	rec = s.do(http.MethodGet, "/daily/leaderboard?date=yesterday", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestDailyTodayForGuest() {
	rec := s.do(http.MethodGet, "/daily/today", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	anon := cookieNamed(rec, anonCookieName)
	s.Require().NotNil(anon)
	var today todayRes
	s.decode(rec, &today)
	s.Equal(todayRes{Date: "2025-04-19"}, today)

	s.Require().NoError(s.store.SaveRound(context.Background(), &store.Round{
		AnonID: anon.Value, Mode: store.ModeDaily, Date: "2025-04-19", ButtonCount: 3, Won: true, FinishedAt: s.now,
	}))
	rec = s.do(http.MethodGet, "/daily/today", "", anon)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decode(rec, &today)
	s.True(today.Played)
	s.True(today.Won)
	s.Nil(cookieNamed(rec, anonCookieName), "existing guest keeps its cookie")
}

func (s *ServerTestSuite) TestLoginIsRateLimited() {
	var last int
	for i := 0; i <= authRateLimit; i++ {
		last = s.do(http.MethodPost, "/auth/login", `{"username":"nobody","password":"whatever1"}`).Code
	}
	s.Equal(http.StatusTooManyRequests, last)
}

func (s *ServerTestSuite) login(forwardedFor string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"nobody","password":"whatever1"}`))
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	s.srv.Router().ServeHTTP(rec, req)
	return rec.Code
}

func (s *ServerTestSuite) TestForwardedForDoesNotDodgeRateLimit() {
	var last int
	for i := 0; i <= authRateLimit+5; i++ {
		last = s.login(fmt.Sprintf("10.0.0.%d", i))
	}
	s.Equal(http.StatusTooManyRequests, last)
	s.Equal(1, s.srv.authLimiter.size(), "one entry for the connection address")
}

func (s *ServerTestSuite) TestTrustedProxyLimitsEachForwardedClient() {
	s.cfg.TrustProxy = true
	s.srv = New(Deps{
		Config:   s.cfg,
		Store:    s.store,
		Sessions: session.NewManager(&session.Config{Store: s.store, Clock: clock.Instant{}}),
		I18n:     i18n.MustLoad(),
		Clock:    fixedClock{now: s.now},
	})

	for i := 0; i < authRateLimit; i++ {
		s.Equal(http.StatusUnauthorized, s.login("10.0.0.1"))
	}
	s.Equal(http.StatusTooManyRequests, s.login("10.0.0.1"))
	s.Equal(http.StatusUnauthorized, s.login("10.0.0.2"))
}

func (s *ServerTestSuite) TestWebsocketGuestSession() {
	ts := httptest.NewServer(s.srv.Router())
	defer ts.Close()

	header := http.Header{"Accept-Language": []string{"fr-CA,fr;q=0.9,en;q=0.5"}}
	conn, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	s.Require().NoError(err)
	defer conn.Close()

	var anon *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == anonCookieName {
			anon = c
		}
	}
	s.Require().NotNil(anon, "guest gets an anonymous id on upgrade")

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(5 * time.Second)))
	var menu struct {
		Type   string `json:"type"`
		Prompt string `json:"prompt"`
	}
	s.Require().NoError(conn.ReadJSON(&menu))
	s.Equal(session.MsgMenu, menu.Type)
	s.Equal("Combien de boutons créer ?", menu.Prompt)
}

func (s *ServerTestSuite) TestWebsocketRejectsForeignOrigin() {
	ts := httptest.NewServer(s.srv.Router())
	defer ts.Close()

	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestLimiterDropsExpiredClients(t *testing.T) {
	now := time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	l := newLimiter(2, time.Minute, func() time.Time { return now })

	assert.True(t, l.allow("a"))
	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	for i := 0; i < 10; i++ {
		l.allow(fmt.Sprintf("spoof-%d", i))
	}
	assert.Equal(t, 11, l.size())

	now = now.Add(2 * time.Minute)
	assert.True(t, l.allow("a"), "a new window starts after expiry")
	assert.Equal(t, 1, l.size(), "stale clients are swept")
}

func TestClientHost(t *testing.T) {
	assert.Equal(t, "192.0.2.1", clientHost("192.0.2.1:1234"))
	assert.Equal(t, "::1", clientHost("[::1]:80"))
	assert.Equal(t, "10.0.0.7", clientHost("10.0.0.7"))
}
