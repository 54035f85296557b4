package wsforward

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Hemant2A2/Wizflow/internal/app"
	"github.com/Hemant2A2/Wizflow/internal/core/ports"
)

// upgrader has no origin restriction: wizflow-server is meant to sit
// behind a trusted reverse proxy, same posture the batch CLI takes
// toward its blueprint files.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Handler upgrades incoming HTTP requests to WebSocket connections and
// runs one Session per connection until it ends.
type Handler struct {
	registry *app.Registry
	bus      ports.EventBus
	loader   ports.BlueprintLoader
	logger   ports.Logger
}

// NewHandler wires a Handler around the shared server-side Registry.
func NewHandler(registry *app.Registry, bus ports.EventBus, loader ports.BlueprintLoader, logger ports.Logger) *Handler {
	return &Handler{registry: registry, bus: bus, loader: loader, logger: logger}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(err)
		return
	}
	defer conn.Close()

	session := New(conn, h.registry, h.bus, h.loader, h.logger)
	if err := session.Serve(r.Context()); err != nil {
		h.logger.Warn("control session ended: " + err.Error())
	}
}
