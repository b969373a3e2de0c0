package viewer

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
)

type pageData struct {
	GroupID string
	State   entity.ViewerState
}

// Index renders the viewer page for the caller's session.
func Index(log *slog.Logger, handler Core, defaultGroup string) http.HandlerFunc {
	templates := parseTemplates(handler)

	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := cont.GetSession(r.Context())
		logger := log.With(
			sl.Module("http.handlers.viewer"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		state := handler.ViewerState(sessionID)
		groupID := state.GroupID
		if groupID == "" {
			groupID = defaultGroup
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := templates.ExecuteTemplate(w, "viewer", pageData{
			GroupID: groupID,
			State:   state,
		}); err != nil {
			logger.Error("render viewer", sl.Err(err))
		}
	}
}
