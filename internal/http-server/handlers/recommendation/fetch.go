package recommendation

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/api/response"
	"RecoViewer/internal/lib/sl"
	"encoding/json"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"log/slog"
	"net/http"
)

func FetchRecommendations(log *slog.Logger, handler Core) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.recommendation")
		sessionID := cont.GetSession(r.Context())

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		if handler == nil {
			logger.Error("recommendation service not available")
			render.JSON(w, r, response.Error("Recommendations not available"))
			return
		}

		var req entity.FetchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("no group provided", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("No group_list provided"))
			return
		}

		logger = logger.With(slog.String("group", req.GroupList))

		_, err := handler.FetchRecommendations(r.Context(), sessionID, req.GroupList)
		if err != nil {
			level, msg := handler.DescribeError(err)
			if level == entity.FlashWarning {
				logger.Warn("fetch recommendations", sl.Err(err))
				render.JSON(w, r, response.Warning(msg))
				return
			}
			logger.Debug("fetch recommendations", sl.Err(err))
			render.JSON(w, r, response.Error(msg))
			return
		}
		logger.Debug("fetch recommendations")

		render.JSON(w, r, response.Ok(handler.Summary(sessionID)))
	}
}
