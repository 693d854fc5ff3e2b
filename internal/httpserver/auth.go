// internal/httpserver/auth.go
//
// Accounts, JWT cookies and the anonymous player cookie.
//   - POST /auth/signup, /auth/login, /auth/logout (rate limited per IP)
//   - GET  /auth/me, /stats/me, /rounds/mine (require auth)
//
// Guests are tracked by an anonymous cookie; their rounds move to the
// account on signup or login.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/memory-buttons/internal/store"
)

const anonCookieName = "buttons_anon"

// credentials is the signup/login payload.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authUser is placed into request context by auth middleware.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

func userFrom(ctx context.Context) *authUser {
	me, _ := ctx.Value(ctxUserKey{}).(*authUser)
	return me
}

// mountAuthRoutes registers authentication + gated routes.
func (s *Server) mountAuthRoutes(r chi.Router) {
	limited := r.With(s.authLimiter.middleware)
	limited.Post("/auth/signup", s.handleSignup)
	limited.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleLogout)

	gated := r.With(s.requireAuth())
	gated.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(userFrom(r.Context()))
	})
	gated.Get("/stats/me", s.handleStats)
	gated.Get("/rounds/mine", s.handleRecentRounds)
}

// handleSignup creates a user, sets the auth cookie and claims guest rounds.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	username := normalizeUsername(body.Username)
	if err := validateSignup(username, body.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_failed")
		return
	}
	u := &store.User{Username: username, PasswordHash: string(h), CreatedAt: s.clock.Now().UTC()}
	if err := s.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username_taken")
			return
		}
		log.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}

// handleLogin authenticates, sets the auth cookie and claims guest rounds.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.store.UserByName(r.Context(), normalizeUsername(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	if !s.signIn(w, r, u) {
		return
	}
	_ = json.NewEncoder(w).Encode(u)
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.setAuthCookie(w, "", time.Time{})
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r.Context())
	st, err := s.store.Stats(r.Context(), store.Owner{UserID: me.ID})
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":     me.ID,
		"played": st.Played,
		"wins":   st.Wins,
		"streak": st.Streak,
		"best":   st.Best,
	})
}

func (s *Server) handleRecentRounds(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r.Context())
	rounds, err := s.store.RecentRounds(r.Context(), store.Owner{UserID: me.ID}, recentRoundsMax)
	if err != nil {
		log.Error().Err(err).Str("user", me.ID).Msg("recent rounds")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rounds == nil {
		rounds = []store.Round{}
	}
	_ = json.NewEncoder(w).Encode(rounds)
}

// signIn issues the JWT cookie and moves guest rounds to u. It writes the
// error response itself and reports false on failure.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, u *store.User) bool {
	tok, exp, err := s.signJWT(u.ID, u.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)

	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		if err := s.store.ClaimAnon(r.Context(), c.Value, u.ID); err != nil {
			log.Warn().Err(err).Str("user", u.ID).Msg("claim anon rounds")
		}
	}
	return true
}

// --------------------------- optional auth ---------------------------------

// withOptionalAuth decorates requests with user context if a valid JWT is present.
// It never 401s; used for routes where guests are allowed.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if me, err := s.authenticate(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth enforces a valid JWT and injects authUser into request context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			me, err := s.authenticate(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, me)))
		})
	}
}

var errNoToken = errors.New("no token")

// authenticate validates the bearer or cookie token and checks the user
// still exists.
func (s *Server) authenticate(r *http.Request) (*authUser, error) {
	tokenStr := s.bearerOrCookie(r)
	if tokenStr == "" {
		return nil, errNoToken
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	id, _ := claims["id"].(string)
	if id == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	u, err := s.store.UserByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return &authUser{ID: u.ID, Username: u.Username}, nil
}

// ------------------------------ JWT & cookies ------------------------------

// signJWT creates an HS256 JWT with id/username and the configured expiry.
func (s *Server) signJWT(id, username string) (string, time.Time, error) {
	now := s.clock.Now()
	exp := now.Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"username": username,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setAuthCookie writes the auth token cookie; an empty token deletes it.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	c := s.cookie(s.cfg.CookieName, token)
	if token == "" {
		c.MaxAge = -1
	} else {
		c.Expires = exp
	}
	http.SetCookie(w, c)
}

// anonID returns the anonymous player id from the request, or a fresh id
// and the cookie that must be sent to keep it.
func (s *Server) anonID(r *http.Request) (string, *http.Cookie) {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	id := uuid.NewString()
	c := s.cookie(anonCookieName, id)
	c.Expires = s.clock.Now().Add(180 * 24 * time.Hour)
	return id, c
}

// ensureAnonID returns an existing anon cookie or sets a new one.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	id, fresh := s.anonID(r)
	if fresh != nil {
		http.SetCookie(w, fresh)
	}
	return id
}

func (s *Server) cookie(name, value string) *http.Cookie {
	sameSite := http.SameSiteLaxMode
	if s.cfg.Production {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: sameSite,
	}
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// ------------------------------- validation --------------------------------

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// validateSignup enforces basic username/password rules.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return errors.New("username_length")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username_charset")
		}
	}
	if len(p) < 8 || len(p) > 72 {
		return errors.New("password_length")
	}
	return nil
}
