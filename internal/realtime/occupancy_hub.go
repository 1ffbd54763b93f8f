package realtime

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// OccupancyUpdate is the message pushed to subscribers of a venue.
type OccupancyUpdate struct {
	VenueID   int64 `json:"venueId"`
	Current   int   `json:"current"`
	Predicted int   `json:"predicted"`
	Timestamp int64 `json:"timestamp"`
}

// Hub tracks WebSocket subscribers per venue and fans occupancy updates out
// to them. Connections are removed on close or write error.
type Hub struct {
	mu       sync.Mutex
	logger   *zap.Logger
	sessions map[int64]map[*websocket.Conn]struct{}
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:   logger,
		sessions: make(map[int64]map[*websocket.Conn]struct{}),
	}
}

// UpgradeRequired gates the websocket route on a proper upgrade request.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler for /ws/occupancy/:venueId. The
// connection stays registered until the client disconnects; inbound messages
// are drained and ignored.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		venueID, err := parseVenueID(conn.Params("venueId"))
		if err != nil {
			_ = conn.Close()
			return
		}

		h.register(venueID, conn)
		h.logger.Info("occupancy subscriber connected", zap.Int64("venue_id", venueID))

		defer func() {
			h.unregister(venueID, conn)
			_ = conn.Close()
			h.logger.Info("occupancy subscriber disconnected", zap.Int64("venue_id", venueID))
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

// Broadcast pushes an update to every subscriber of the venue. Subscribers
// of other venues are untouched. Failed connections are dropped.
func (h *Hub) Broadcast(venueID int64, current, predicted int) {
	update := OccupancyUpdate{
		VenueID:   venueID,
		Current:   current,
		Predicted: predicted,
		Timestamp: time.Now().UnixMilli(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.sessions[venueID] {
		if err := conn.WriteJSON(update); err != nil {
			h.logger.Warn("occupancy push failed", zap.Int64("venue_id", venueID), zap.Error(err))
			delete(h.sessions[venueID], conn)
			_ = conn.Close()
		}
	}
}

// SubscriberCount reports how many connections watch a venue.
func (h *Hub) SubscriberCount(venueID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[venueID])
}

func (h *Hub) register(venueID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions[venueID] == nil {
		h.sessions[venueID] = make(map[*websocket.Conn]struct{})
	}
	h.sessions[venueID][conn] = struct{}{}
}

func (h *Hub) unregister(venueID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions[venueID], conn)
	if len(h.sessions[venueID]) == 0 {
		delete(h.sessions, venueID)
	}
}
