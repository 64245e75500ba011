package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDelivers(t *testing.T) {
	bus := NewBus()

	var got *Event
	bus.Subscribe(LoadStarted, func(e *Event) { got = e })

	bus.Publish(LoadStarted, "atlas", map[string]interface{}{"k": "v"})

	require.NotNil(t, got)
	assert.Equal(t, LoadStarted, got.Type)
	assert.Equal(t, "atlas", got.Module)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "v", got.Data["k"])
}

func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	var calls int
	bus.Subscribe(LoadStarted, func(e *Event) { calls++ })

	bus.Publish(LoadCompleted, "atlas", nil)
	assert.Zero(t, calls)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var first, second int
	unsubscribe := bus.Subscribe(LoadStarted, func(e *Event) { first++ })
	bus.Subscribe(LoadStarted, func(e *Event) { second++ })

	bus.Publish(LoadStarted, "atlas", nil)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)

	// A disconnected stream's handler must not linger on the bus
	unsubscribe()
	bus.Publish(LoadStarted, "atlas", nil)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	bus := NewBus()

	var calls int
	unsubscribe := bus.Subscribe(LoadStarted, func(e *Event) { calls++ })

	unsubscribe()
	unsubscribe()

	bus.Publish(LoadStarted, "atlas", nil)
	assert.Zero(t, calls)
}
