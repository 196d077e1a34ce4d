package session

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// CookieName is the cookie carrying the session identity.
const CookieName = "session_id"

// Guard creates a middleware enforcing the idle timeout. It runs after
// token verification: an expired token is reported as a token problem
// before session state is ever consulted. Activity records are keyed by
// the session cookie alone; a request without one is first contact and
// passes through untouched, so a fresh flow can never inherit another
// flow's idle state.
func Guard(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Touch(cookie.Value); err != nil {
				log.Info().Str("session_id", cookie.Value).Msg("Session idle timeout hit")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"success":  false,
					"message":  "Session expired, please login again",
					"redirect": "/login",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
