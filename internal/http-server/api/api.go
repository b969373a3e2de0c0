package api

import (
	"RecoViewer/internal/config"
	"RecoViewer/internal/http-server/handlers/enrichment"
	"RecoViewer/internal/http-server/handlers/errors"
	"RecoViewer/internal/http-server/handlers/events"
	"RecoViewer/internal/http-server/handlers/recommendation"
	"RecoViewer/internal/http-server/handlers/viewer"
	"RecoViewer/internal/http-server/middleware/logger"
	"RecoViewer/internal/http-server/middleware/session"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	viewer.Core
	recommendation.Core
	enrichment.Core
}

// NewRouter wires every route of the service.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(session.New(log, conf.Session.CookieName))
	router.Use(logger.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/", viewer.Index(log, handler, conf.Viewer.DefaultGroup))
	router.Post("/recommendations", viewer.Fetch(log, handler))
	router.Post("/enrich", viewer.Enrich(log, handler))
	router.Get("/ws", events.Subscribe(log, hub))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Post("/recommendations", recommendation.FetchRecommendations(log, handler))
		v1.Get("/products", recommendation.GetProducts(log, handler))
		v1.Post("/enrich", enrichment.EnrichProducts(log, handler))
	})

	return router
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, hub),
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
