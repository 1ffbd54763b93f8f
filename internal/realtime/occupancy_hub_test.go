package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/venue-service/internal/events"
)

func TestParseVenueID(t *testing.T) {
	id, err := parseVenueID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := parseVenueID(raw)
		assert.Error(t, err, raw)
	}
}

func TestHub_BroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	// No sessions registered; must be a quiet no-op.
	hub.Broadcast(7, 12, 14)
	assert.Equal(t, 0, hub.SubscriberCount(7))
}

func TestSubscribeHub_ForwardsOccupancyEvents(t *testing.T) {
	hub := NewHub(zap.NewNop())
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	SubscribeHub(dispatcher, hub)

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:        "evt-1",
		Type:      events.EventOccupancyChanged,
		VenueID:   7,
		Timestamp: time.Now(),
		Payload:   events.OccupancyChangedPayload{Current: 12, Predicted: 14},
	})
	assert.NoError(t, err)

	// Mismatched payload types are skipped without error.
	err = dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-2",
		Type:    events.EventOccupancyChanged,
		VenueID: 7,
		Payload: "not-an-occupancy-payload",
	})
	assert.NoError(t, err)
}
