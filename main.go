package main

import (
	"RecoViewer/bot"
	"RecoViewer/impl/core"
	"RecoViewer/internal/config"
	"RecoViewer/internal/http-server/api"
	"RecoViewer/internal/lib/logger"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/service/enrichment"
	"RecoViewer/internal/service/recommendation"
	"RecoViewer/internal/session"
	"RecoViewer/internal/ws"
	"flag"
	"log/slog"
	"time"
)

func main() {

	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	// Mirror errors to the admin chat if enabled
	if conf.Telegram.Enabled {
		tgBot, err := bot.NewTgBot(conf.Telegram.BotName, conf.Telegram.ApiKey, conf.Telegram.AdminId, lg)
		if err != nil {
			lg.Error("failed to initialize telegram bot", sl.Err(err))
		} else {
			lg = logger.SetupTelegramHandler(lg, tgBot, slog.LevelError)
			lg.With(
				slog.String("bot_name", conf.Telegram.BotName),
			).Info("telegram alerts initialized")
		}
	}

	lg.Info("starting recoviewer", slog.String("config", *configPath), slog.String("env", conf.Env))
	lg.Debug("debug messages enabled")

	store := session.NewStore(conf.Session.IdleTTL, lg)
	handler := core.New(store, lg)
	handler.SetLinkBases(conf.Viewer.ImageBaseURL, conf.Viewer.ProductBaseURL)

	rs := recommendation.NewRecommendationService(conf, lg)
	handler.SetRecommendationService(rs)
	lg.With(
		slog.String("url", conf.Recommendation.Endpoint),
		slog.String("page_id", conf.Recommendation.PageID),
	).Info("recommendation service initialized")

	es := enrichment.NewEnrichmentService(conf, lg)
	handler.SetEnrichmentService(es)
	lg.With(
		sl.Secret("openai_key", conf.OpenAI.ApiKey),
		slog.String("model", conf.OpenAI.Model),
	).Info("enrichment service initialized")

	hub := ws.NewHub(lg)
	go hub.Run()
	handler.SetEventPublisher(hub)

	handler.Init(10 * time.Minute)

	// *** blocking start with http server ***
	err := api.New(conf, lg, handler, hub)
	if err != nil {
		lg.Error("server start", sl.Err(err))
		return
	}
	lg.Error("service stopped")
}
