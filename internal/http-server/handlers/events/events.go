package events

import (
	"RecoViewer/internal/lib/api/cont"
	"RecoViewer/internal/lib/sl"
	"RecoViewer/internal/ws"
	"log/slog"
	"net/http"
)

// Subscribe upgrades the request to a websocket that receives the events of
// the caller's session.
func Subscribe(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	logger := log.With(sl.Module("http.handlers.events"))
	return func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, cont.GetSession(r.Context()), logger, w, r)
	}
}
