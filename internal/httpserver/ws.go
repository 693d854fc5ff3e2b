package httpserver

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/memory-buttons/internal/store"
)

// handleWS upgrades to a websocket and runs one game session on it until the
// client leaves. Signed-in players own their rounds; guests own them through
// the anonymous cookie, which is set on the upgrade response.
//
// The catalog comes from ?lang= when present, otherwise Accept-Language.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	var (
		owner  store.Owner
		header http.Header
	)
	if me := userFrom(r.Context()); me != nil {
		owner.UserID = me.ID
	} else {
		id, fresh := s.anonID(r)
		owner.AnonID = id
		if fresh != nil {
			header = http.Header{"Set-Cookie": []string{fresh.String()}}
		}
	}

	accept := r.Header.Get("Accept-Language")
	if lang := r.URL.Query().Get("lang"); lang != "" {
		accept = lang
	}
	catalog := s.i18n.Negotiate(accept)

	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Debug().Err(err).Msg("ws upgrade")
		return
	}
	if err := s.sessions.Serve(r.Context(), conn, owner, catalog); err != nil {
		log.Warn().Err(err).Msg("session ended with error")
	}
}

// checkOrigin accepts same-host pages, the configured client origin and
// non-browser clients that send no Origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}
