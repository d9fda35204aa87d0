package streaming

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/domain/models"
	"trustguard/pkg/logger"
)

func TestEventBusLocalFanout(t *testing.T) {
	bus := NewEventBus(nil, logger.NewDefault())
	defer bus.Close()

	ctx := context.Background()
	first, unsubFirst := bus.Subscribe(ctx, &Subscription{})
	second, _ := bus.Subscribe(ctx, &Subscription{})

	assert.Equal(t, 2, bus.SubscriberCount())

	event := NewVerdictEvent(sampleResult(), models.ChannelSMS, "api")
	require.NoError(t, bus.Publish(ctx, event))

	select {
	case got := <-first:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("first subscriber did not receive the event")
	}

	select {
	case got := <-second:
		assert.Equal(t, event.ID, got.ID)
	case <-time.After(time.Second):
		t.Fatal("second subscriber did not receive the event")
	}

	unsubFirst()
	assert.Equal(t, 1, bus.SubscriberCount())

	// Unsubscribing twice is safe.
	unsubFirst()
	assert.Equal(t, 1, bus.SubscriberCount())
}

func TestEventBusCloseRemovesSubscribers(t *testing.T) {
	bus := NewEventBus(nil, logger.NewDefault())

	ch, _ := bus.Subscribe(context.Background(), &Subscription{})
	bus.Close()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount())
}
