package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishOrder(t *testing.T) {
	var (
		bus   Bus
		calls []string
	)

	bus.Subscribe(func() { calls = append(calls, "first") })
	bus.Subscribe(func() { calls = append(calls, "second") })
	bus.Subscribe(func() { calls = append(calls, "third") })

	bus.Publish()

	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	var (
		bus  Bus
		a, b int
	)

	unsubA := bus.Subscribe(func() { a++ })
	bus.Subscribe(func() { b++ })

	unsubA()
	unsubA()

	bus.Publish()

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
	assert.Equal(t, 1, bus.Len())
}

func TestBus_SubscribeDuringPublishWaitsForNextPublish(t *testing.T) {
	var (
		bus  Bus
		late int
	)

	bus.Subscribe(func() {
		bus.Subscribe(func() { late++ })
	})

	bus.Publish()
	assert.Equal(t, 0, late)

	bus.Publish()
	assert.Equal(t, 1, late)
}

func TestBus_UnsubscribeDuringPublishStillDeliversSnapshot(t *testing.T) {
	var (
		bus    Bus
		second int
		unsub  func()
	)

	bus.Subscribe(func() { unsub() })
	unsub = bus.Subscribe(func() { second++ })

	bus.Publish()
	assert.Equal(t, 1, second)

	bus.Publish()
	assert.Equal(t, 1, second)
}

func TestBus_PanicPropagates(t *testing.T) {
	var (
		bus   Bus
		after bool
	)

	bus.Subscribe(func() { panic("observer failed") })
	bus.Subscribe(func() { after = true })

	assert.PanicsWithValue(t, "observer failed", bus.Publish)
	assert.False(t, after)
}

func TestBus_NoSubscribers(t *testing.T) {
	var bus Bus

	assert.NotPanics(t, bus.Publish)
	assert.Zero(t, bus.Len())
}
