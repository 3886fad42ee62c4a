package events

import (
	"sync"
)

type channelListener[T any] struct {
	id uint64
	ch chan T
}

// ChannelEvent provides pub/sub behavior using channels
// T is the type of the value sent to channels.
// Delivery is latest-wins: when a listener channel is full its oldest value is
// replaced, so a slow reader always ends up holding the most recent value.
type ChannelEvent[T any] struct {
	mu                    sync.RWMutex
	channels              []channelListener[T]
	nextID                uint64
	sendLastEventOnListen bool
	lastEvent             *T
	dropped               uint64
}

// NewChannelEvent creates a new ChannelEvent instance
// sendLastEventOnListen: if true, the ChannelEvent will remember the last Notify parameter
// and send it to new listeners immediately if Notify has been called at least once
func NewChannelEvent[T any](sendLastEventOnListen bool) *ChannelEvent[T] {
	return &ChannelEvent[T]{
		sendLastEventOnListen: sendLastEventOnListen,
	}
}

// Listen registers a channel to receive values when Notify is invoked
// Returns a deregistration function that can be called to remove the listener.
// The channel must have a buffer; ChannelEvent never blocks on it.
func (e *ChannelEvent[T]) Listen(ch chan T) func() {
	if ch == nil {
		panic("channel cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.channels = append(e.channels, channelListener[T]{id: id, ch: ch})
	// replayed under the lock so a concurrent Notify cannot be overtaken by the older value
	if e.sendLastEventOnListen && e.lastEvent != nil {
		e.dropped += deliverLatest(ch, *e.lastEvent)
	}
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.remove(id) })
	}
}

func (e *ChannelEvent[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.channels {
		if l.id == id {
			e.channels = append(e.channels[:i:i], e.channels[i+1:]...)
			return
		}
	}
}

// Notify sends the provided value to all registered channels
// Sends are non-blocking - if a channel is full, its oldest value is discarded
// and counted as dropped to make room for this one.
func (e *ChannelEvent[T]) Notify(value T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sendLastEventOnListen {
		if e.lastEvent == nil {
			e.lastEvent = new(T)
		}
		*e.lastEvent = value
	}
	for _, l := range e.channels {
		e.dropped += deliverLatest(l.ch, value)
	}
}

// deliverLatest puts value on ch, evicting older values while ch is full.
// It returns how many values were evicted.
func deliverLatest[T any](ch chan T, value T) uint64 {
	var evicted uint64
	for {
		select {
		case ch <- value:
			return evicted
		default:
		}
		// an unbuffered channel with no reader waiting has nothing to evict
		if cap(ch) == 0 {
			return evicted + 1
		}
		select {
		case <-ch:
			evicted++
		default:
		}
	}
}

// Clear removes every registered channel. Channels are owned by the listeners and are not closed.
func (e *ChannelEvent[T]) Clear() {
	e.mu.Lock()
	e.channels = nil
	e.lastEvent = nil
	e.mu.Unlock()
}

// Dropped returns how many values were discarded because a listener channel was full
func (e *ChannelEvent[T]) Dropped() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dropped
}

// ListenerCount returns the current number of registered listeners
func (e *ChannelEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.channels)
}
