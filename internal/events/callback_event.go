package events

import (
	"sync"
)

type callbackListener[T any] struct {
	id       uint64
	callback func(T)
}

// CallbackEvent provides pub/sub behavior with type-safe callbacks
// T is the type of the argument passed to callback functions.
// Listeners are called in the order they registered.
type CallbackEvent[T any] struct {
	mu                    sync.RWMutex
	listeners             []callbackListener[T]
	nextID                uint64
	sendLastEventOnListen bool
	lastEvent             *T
}

// NewCallbackEvent creates a new CallbackEvent instance
// sendLastEventOnListen: if true, the CallbackEvent will remember the last Notify parameter
// and call new listeners immediately with that value if Notify has been called at least once
func NewCallbackEvent[T any](sendLastEventOnListen bool) *CallbackEvent[T] {
	return &CallbackEvent[T]{
		sendLastEventOnListen: sendLastEventOnListen,
	}
}

// Listen registers a callback function to be called when Notify is invoked
// Returns a deregistration function that can be called to remove the listener
func (e *CallbackEvent[T]) Listen(callback func(T)) func() {
	if callback == nil {
		panic("callback cannot be nil")
	}

	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners = append(e.listeners, callbackListener[T]{id: id, callback: callback})
	var lastEventCopy *T
	if e.sendLastEventOnListen && e.lastEvent != nil {
		lastEventCopy = new(T)
		*lastEventCopy = *e.lastEvent
	}
	e.mu.Unlock()

	// outside the lock so the callback may call back into the event
	if lastEventCopy != nil {
		callback(*lastEventCopy)
	}

	var once sync.Once
	return func() {
		once.Do(func() { e.remove(id) })
	}
}

func (e *CallbackEvent[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls all registered listener callbacks with the provided value
// Callbacks run on the calling goroutine, outside the lock.
func (e *CallbackEvent[T]) Notify(value T) {
	e.mu.Lock()
	if e.sendLastEventOnListen {
		if e.lastEvent == nil {
			e.lastEvent = new(T)
		}
		*e.lastEvent = value
	}
	// listeners is never mutated in place, so the slice header is a safe snapshot
	listeners := e.listeners
	e.mu.Unlock()

	for _, l := range listeners {
		l.callback(value)
	}
}

// Clear removes every listener and forgets the last event
func (e *CallbackEvent[T]) Clear() {
	e.mu.Lock()
	e.listeners = nil
	e.lastEvent = nil
	e.mu.Unlock()
}

// ListenerCount returns the current number of registered listeners
func (e *CallbackEvent[T]) ListenerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.listeners)
}
