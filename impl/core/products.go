package core

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/pagination"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/metrics"
	"RecoViewer/internal/ws"
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrPageOutOfRange = errors.New("page out of range")
	ErrSuperseded     = errors.New("superseded by a newer fetch")
)

// FetchRecommendations replaces the session's products with a fresh fetch.
// State is cleared before the call so a failure leaves nothing behind.
func (c *Core) FetchRecommendations(ctx context.Context, sessionID, groupID string) ([]entity.ProductRecord, error) {
	if c.rs == nil {
		return nil, fmt.Errorf("recommendation service not initialized")
	}

	gen := c.store.Begin(sessionID, groupID)
	c.publish(sessionID, ws.EventFetchStarted, map[string]string{"group": groupID})

	log := c.log.With(
		slog.String("session", sessionID),
		slog.String("group", groupID),
	)

	result, err := c.rs.Fetch(ctx, groupID)
	if result != nil {
		request := result.Request
		c.store.SetDebug(sessionID, gen, &request, result.RawResponse)
	}
	if err != nil {
		if level, _ := Describe(err); level == entity.FlashWarning {
			log.Warn("no recommendations", sl.Err(err))
		} else {
			log.Error("fetch recommendations", sl.Err(err))
		}
		c.publish(sessionID, ws.EventFetchFailed, map[string]string{"error": err.Error()})
		return nil, err
	}

	if !c.store.SetProducts(sessionID, gen, result.Products) {
		log.Info("fetch superseded by a newer one")
		return nil, ErrSuperseded
	}
	c.publish(sessionID, ws.EventProductsLoaded, map[string]int{
		"total": len(result.Products),
		"pages": pagination.CalculateTotalPages(len(result.Products), pagination.ProductsPerPage),
	})

	log.With(
		slog.Int("size", len(result.Products)),
	).Info("recommendations loaded")

	return result.Products, nil
}

// EnrichProducts annotates the products fetched earlier in this session. It
// reads the stored sequence and never fetches one on its own.
func (c *Core) EnrichProducts(ctx context.Context, sessionID, apiKey string) ([]entity.ProductRecord, error) {
	if c.es == nil {
		return nil, fmt.Errorf("enrichment service not initialized")
	}

	products, gen, _ := c.store.Products(sessionID)

	log := c.log.With(
		slog.String("session", sessionID),
		slog.Int("size", len(products)),
	)

	progress := func(done, total int, product entity.ProductRecord) {
		c.publish(sessionID, ws.EventEnrichmentProgress, map[string]interface{}{
			"done":  done,
			"total": total,
			"sku":   product.ID,
		})
	}

	enriched, err := c.es.Enrich(ctx, products, apiKey, progress)
	if err != nil {
		metrics.EnrichmentRuns.WithLabelValues(metrics.OutcomeError).Inc()
		log.Error("enrich products", sl.Err(err))
		c.publish(sessionID, ws.EventEnrichmentFailed, map[string]string{"error": err.Error()})
		return nil, err
	}

	if !c.store.SetEnriched(sessionID, gen, enriched) {
		metrics.EnrichmentRuns.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		log.Info("enrichment discarded, products were replaced by a newer fetch")
		c.publish(sessionID, ws.EventEnrichmentFailed, map[string]string{"error": ErrSuperseded.Error()})
		return nil, ErrSuperseded
	}
	metrics.EnrichmentRuns.WithLabelValues(metrics.OutcomeOk).Inc()
	c.publish(sessionID, ws.EventEnrichmentDone, map[string]int{"total": len(enriched)})

	log.Info("products enriched")

	return enriched, nil
}

// ViewerState returns what the viewer page should render and consumes the
// pending flash message.
func (c *Core) ViewerState(sessionID string) entity.ViewerState {
	state := c.store.Snapshot(sessionID)
	products := state.Displayed()
	return entity.ViewerState{
		GroupID:     state.GroupID,
		Products:    products,
		Pages:       pagination.Group(products, pagination.ProductsPerPage, pagination.ProductsPerRow),
		Enriched:    state.Enriched != nil,
		Request:     state.Request,
		RawResponse: state.RawResponse,
		Flash:       c.store.PopFlash(sessionID),
	}
}

func (c *Core) Summary(sessionID string) entity.ProductsSummary {
	state := c.store.Snapshot(sessionID)
	products := state.Displayed()
	if products == nil {
		products = []entity.ProductRecord{}
	}
	return entity.ProductsSummary{
		Total:      len(products),
		TotalPages: pagination.CalculateTotalPages(len(products), pagination.ProductsPerPage),
		Enriched:   state.Enriched != nil,
		Products:   products,
	}
}

// ProductsPage returns one display group of the session's current products.
func (c *Core) ProductsPage(sessionID string, page int) (*entity.ProductsPage, error) {
	state := c.store.Snapshot(sessionID)
	pages := pagination.Group(state.Displayed(), pagination.ProductsPerPage, pagination.ProductsPerRow)
	if page < 1 || page > len(pages) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, page, len(pages))
	}
	p := pages[page-1]
	return &entity.ProductsPage{
		Page:       p.Number,
		TotalPages: len(pages),
		Products:   p.Items,
		Columns:    p.Columns,
	}, nil
}

func (c *Core) Flash(sessionID string, level entity.FlashLevel, message string) {
	c.store.SetFlash(sessionID, level, message)
}

func (c *Core) ImageURL(p entity.ProductRecord) string {
	return c.imageBase + p.Image
}

func (c *Core) ProductURL(p entity.ProductRecord) string {
	return c.productUrl + p.Url.String()
}
