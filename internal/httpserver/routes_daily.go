// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Daily rounds themselves are played over /ws with "daily": true; these
// endpoints only report on them:
//   - GET /daily/today       → today's date key and whether the caller already won it
//   - GET /daily/leaderboard → top results for today (or ?date=YYYY-MM-DD)
//
// Every player on the same UTC date gets the same colors and shuffles,
// seeded from date + salt (see internal/daily).

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory-buttons/internal/daily"
	"github.com/robalobadob/memory-buttons/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleDailyToday)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// todayRes is returned by /daily/today.
type todayRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"` // caller has a daily round for today
	Won    bool   `json:"won"`
}

// handleDailyToday looks through the caller's recent rounds for today's
// daily result. Guests are identified by the anonymous cookie.
func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	date := daily.DateKey(s.clock.Now())
	owner := store.Owner{}
	if me := userFrom(r.Context()); me != nil {
		owner.UserID = me.ID
	} else {
		owner.AnonID = s.ensureAnonID(w, r)
	}

	res := todayRes{Date: date}
	rounds, err := s.store.RecentRounds(r.Context(), owner, recentRoundsMax)
	if err != nil {
		log.Error().Err(err).Msg("daily today")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	for _, rd := range rounds {
		if rd.Mode != store.ModeDaily || rd.Date != date {
			continue
		}
		res.Played = true
		if rd.Won {
			res.Won = true
			break
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string            `json:"date"`
	Top  []store.LeaderRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.clock.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.store.Leaderboard(r.Context(), date, leaderboardSize)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	if rows == nil {
		rows = []store.LeaderRow{}
	}
	_ = json.NewEncoder(w).Encode(lbRes{Date: date, Top: rows})
}
