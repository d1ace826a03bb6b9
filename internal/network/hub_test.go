package network

import (
	"testing"

	"dungeon-core/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_RegisterAndBroadcast(t *testing.T) {
	b := NewBroadcaster()
	_, ok := b.Latest()
	assert.False(t, ok)

	a := b.Register("a")
	c := b.Register("c")
	assert.Equal(t, 2, b.SubscriberCount())
	assert.True(t, b.HasSubscriber("a"))

	b.Broadcast(api.Frame{Type: api.FrameTypeUpdate, Tick: 7})

	assert.Equal(t, 7, (<-a).Tick)
	assert.Equal(t, 7, (<-c).Tick)

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 7, latest.Tick)
}

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")

	assert.True(t, b.SendTo("a", api.Frame{Type: api.FrameTypeInspect}))
	assert.False(t, b.SendTo("missing", api.Frame{}))
	assert.Equal(t, api.FrameTypeInspect, (<-a).Type)

	_, ok := b.Latest()
	assert.False(t, ok, "unicast frames are not remembered")
}

func TestBroadcaster_UnregisterClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")

	b.Unregister("a")
	_, open := <-a
	assert.False(t, open)
	assert.Zero(t, b.SubscriberCount())

	// Повторная отписка безопасна
	b.Unregister("a")
}

func TestBroadcaster_ReRegisterReplacesChannel(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("a")
	fresh := b.Register("a")

	_, open := <-old
	assert.False(t, open)
	assert.Equal(t, 1, b.SubscriberCount())

	b.Broadcast(api.Frame{Tick: 1})
	assert.Equal(t, 1, (<-fresh).Tick)
}

func TestBroadcaster_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroadcaster()
	b.Register("slow")

	for i := 0; i < subscriberBuffer*2; i++ {
		b.Broadcast(api.Frame{Tick: i})
	}

	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, subscriberBuffer*2-1, latest.Tick)
	assert.False(t, b.SendTo("slow", api.Frame{}), "buffer is full")
}
