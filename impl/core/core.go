package core

import (
	"RecoViewer/entity"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/session"
	"RecoViewer/internal/ws"
	"context"
	"log/slog"
	"time"
)

type RecommendationService interface {
	Fetch(ctx context.Context, groupID string) (*entity.FetchResult, error)
}

type EnrichmentService interface {
	Enrich(ctx context.Context, products []entity.ProductRecord, apiKey string, progress entity.EnrichProgress) ([]entity.ProductRecord, error)
}

type EventPublisher interface {
	Publish(session string, event *ws.Event)
}

type Core struct {
	rs         RecommendationService
	es         EnrichmentService
	events     EventPublisher
	store      *session.Store
	imageBase  string
	productUrl string
	log        *slog.Logger
}

func New(store *session.Store, log *slog.Logger) *Core {
	return &Core{
		store: store,
		log:   log.With(sl.Module("core")),
	}
}

func (c *Core) SetRecommendationService(rs RecommendationService) {
	c.rs = rs
}

func (c *Core) SetEnrichmentService(es EnrichmentService) {
	c.es = es
}

func (c *Core) SetEventPublisher(events EventPublisher) {
	c.events = events
}

func (c *Core) SetLinkBases(imageBase, productBase string) {
	c.imageBase = imageBase
	c.productUrl = productBase
}

// Init starts the idle session janitor.
func (c *Core) Init(interval time.Duration) {
	go c.store.Janitor(interval, nil)
	c.log.With(
		slog.Duration("interval", interval),
	).Debug("session janitor started")
}

func (c *Core) publish(sessionID, eventType string, data interface{}) {
	if c.events == nil {
		return
	}
	c.events.Publish(sessionID, &ws.Event{Type: eventType, Data: data})
}
