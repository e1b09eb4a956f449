package alert

import (
	"sync"
	"time"

	"codeberg.org/snonux/lenslate/internal/failure"
)

// Key identifies a user-facing message
type Key string

const (
	CannotRecognizeImage  Key = "cannotRecognizeImage"
	CannotConnectToServer Key = "cannotConnectToServer"
	CannotOpenTheFile     Key = "cannotOpenTheFile"
)

// Alert is a one-shot notification
type Alert struct {
	Key   Key       `json:"key"`
	RunID string    `json:"runId,omitempty"`
	Err   error     `json:"-"`
	Time  time.Time `json:"time"`
}

// Listener receives published alerts
type Listener func(Alert)

// KeyFor maps a failure kind to the alert a user sees
func KeyFor(kind failure.Kind) Key {
	switch kind {
	case failure.ImageAcquisition:
		return CannotOpenTheFile
	case failure.RecognitionFailed:
		return CannotRecognizeImage
	default:
		return CannotConnectToServer
	}
}

// Bus fans alerts out to any number of listeners
type Bus struct {
	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns a function removing it
func (b *Bus) Subscribe(l Listener) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = l
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish delivers the alert to every listener synchronously
func (b *Bus) Publish(a Alert) {
	if a.Time.IsZero() {
		a.Time = time.Now()
	}

	b.mu.RLock()
	listeners := make([]Listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		listeners = append(listeners, l)
	}
	b.mu.RUnlock()

	for _, l := range listeners {
		l(a)
	}
}
