package session

import (
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/sl"
	"github.com/google/uuid"
	"log/slog"
	"net/http"
	"time"
)

const cookieMaxAge = 30 * 24 * time.Hour

// New binds every request to a viewer session, issuing a cookie on first visit.
func New(log *slog.Logger, cookieName string) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.session")
	log.With(mod).Info("session middleware initialized")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if cookie, err := r.Cookie(cookieName); err == nil {
				if _, err = uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(cookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(cont.PutSession(r.Context(), id)))
		}

		return http.HandlerFunc(fn)
	}
}
