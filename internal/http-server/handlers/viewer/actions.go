package viewer

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/sl"
	"fmt"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
)

// Fetch handles the "Get Recommendations" form and redirects back to the viewer.
func Fetch(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := cont.GetSession(r.Context())
		logger := log.With(
			sl.Module("http.handlers.viewer"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		if err := r.ParseForm(); err != nil {
			logger.Error("parse form", sl.Err(err))
			handler.Flash(sessionID, entity.FlashError, "Invalid form submission")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		products, err := handler.FetchRecommendations(r.Context(), sessionID, r.PostForm.Get("group_list"))
		if err != nil {
			level, msg := handler.DescribeError(err)
			handler.Flash(sessionID, level, msg)
		} else {
			handler.Flash(sessionID, entity.FlashInfo, fmt.Sprintf("Loaded %d recommended products.", len(products)))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Enrich handles the "Enrich Product Data" form and redirects back to the viewer.
func Enrich(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := cont.GetSession(r.Context())
		logger := log.With(
			sl.Module("http.handlers.viewer"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		if err := r.ParseForm(); err != nil {
			logger.Error("parse form", sl.Err(err))
			handler.Flash(sessionID, entity.FlashError, "Invalid form submission")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		products, err := handler.EnrichProducts(r.Context(), sessionID, r.PostForm.Get("api_key"))
		if err != nil {
			level, msg := handler.DescribeError(err)
			handler.Flash(sessionID, level, msg)
		} else {
			handler.Flash(sessionID, entity.FlashInfo, fmt.Sprintf("Enriched %d products.", len(products)))
		}

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
