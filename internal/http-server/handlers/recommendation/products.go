package recommendation

import (
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/api/response"
	"RecoViewer/internal/lib/sl"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"strconv"
)

// GetProducts returns the session's current products, or one display group
// of them when ?page= is given.
func GetProducts(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := cont.GetSession(r.Context())
		logger := log.With(
			sl.Module("http.handlers.recommendation"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		p := r.URL.Query().Get("page")
		if p == "" {
			render.JSON(w, r, response.Ok(handler.Summary(sessionID)))
			return
		}

		page, err := strconv.Atoi(p)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid page"))
			return
		}

		result, err := handler.ProductsPage(sessionID, page)
		if err != nil {
			logger.Debug("products page", sl.Err(err))
			_, msg := handler.DescribeError(err)
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(msg))
			return
		}

		render.JSON(w, r, response.Ok(result))
	}
}
