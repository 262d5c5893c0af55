package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerpath/internal/types"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(func(c types.AuthChange) { got = append(got, "first:"+string(c.Action)) })
	bus.Subscribe(func(c types.AuthChange) { got = append(got, "second:"+string(c.Action)) })

	bus.Publish(types.AuthChange{Action: types.AuthLogin})
	assert.Equal(t, []string{"first:login", "second:login"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	unsub := bus.Subscribe(func(types.AuthChange) { calls++ })
	other := 0
	bus.Subscribe(func(types.AuthChange) { other++ })

	bus.Publish(types.AuthChange{Action: types.AuthUpdate})
	unsub()
	unsub()
	bus.Publish(types.AuthChange{Action: types.AuthLogout})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other)
	assert.Equal(t, 1, bus.Len())
}

func TestBus_HandlerMayUnsubscribeDuringPublish(t *testing.T) {
	bus := NewBus()
	var unsub func()
	unsub = bus.Subscribe(func(types.AuthChange) { unsub() })

	assert.NotPanics(t, func() { bus.Publish(types.AuthChange{Action: types.AuthLogout}) })
	assert.Zero(t, bus.Len())
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(types.AuthChange) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(types.AuthChange{Action: types.AuthUpdate})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, count)
}
