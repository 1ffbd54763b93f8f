package realtime

import (
	"context"

	"github.com/spec-kit/venue-service/internal/events"
)

// SubscribeHub wires the hub to occupancy events so every change published on
// the dispatcher is pushed to that venue's socket subscribers.
func SubscribeHub(dispatcher events.Dispatcher, hub *Hub) {
	dispatcher.Subscribe(events.EventOccupancyChanged, func(_ context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.OccupancyChangedPayload)
		if !ok {
			return nil
		}
		hub.Broadcast(event.VenueID, payload.Current, payload.Predicted)
		return nil
	})
}
