package enrichment

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/api/response"
	"RecoViewer/internal/lib/pagination"
	"RecoViewer/internal/lib/sl"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"io"
	"log/slog"
	"net/http"
)

func EnrichProducts(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.enrichment")
		sessionID := cont.GetSession(r.Context())

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("session", sessionID),
		)

		if handler == nil {
			logger.Error("enrichment service not available")
			render.JSON(w, r, response.Error("Enrichment not available"))
			return
		}

		// an empty body is allowed: the configured key is used then
		var req entity.EnrichRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		logger = logger.With(sl.Secret("api_key", req.ApiKey))

		products, err := handler.EnrichProducts(r.Context(), sessionID, req.ApiKey)
		if err != nil {
			_, msg := handler.DescribeError(err)
			logger.Debug("enrich products", sl.Err(err))
			render.JSON(w, r, response.Error(msg))
			return
		}
		logger.Debug("enrich products")

		render.JSON(w, r, response.Ok(entity.ProductsSummary{
			Total:      len(products),
			TotalPages: pagination.CalculateTotalPages(len(products), pagination.ProductsPerPage),
			Enriched:   true,
			Products:   products,
		}))
	}
}
