package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestInMemoryDispatcher_PublishReachesSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	var received []Event
	dispatcher.Subscribe(EventCheckIn, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "1", Type: EventCheckIn, VenueID: 7})
	assert.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, int64(7), received[0].VenueID)
}

func TestInMemoryDispatcher_UnsubscribedTypeIsIgnored(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	called := false
	dispatcher.Subscribe(EventCheckIn, func(context.Context, Event) error {
		called = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "1", Type: EventCheckOut})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestInMemoryDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher(zap.NewNop())

	secondCalled := false
	dispatcher.Subscribe(EventOccupancyChanged, func(context.Context, Event) error {
		return errors.New("handler blew up")
	})
	dispatcher.Subscribe(EventOccupancyChanged, func(context.Context, Event) error {
		secondCalled = true
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{ID: "1", Type: EventOccupancyChanged})
	assert.NoError(t, err)
	assert.True(t, secondCalled)
}
