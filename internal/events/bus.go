// Package events fans transcription status changes out to SSE subscribers.
package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/littleyear/iv-engine/internal/metrics"
)

// Event is one server-sent event.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	InterviewID string          `json:"interviewId,omitempty"`
	Timestamp   string          `json:"timestamp"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// Filter restricts which events a subscriber receives. Empty slices match
// everything.
type Filter struct {
	Types        []string
	InterviewIDs []string
}

type subscriber struct {
	ch     chan Event
	filter Filter
}

// Bus is a pub-sub event distributor with a replay ring so reconnecting
// SSE clients can catch up via Last-Event-ID.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[uint64]subscriber
	nextID      uint64
	seq         atomic.Uint64

	ringMu   sync.RWMutex
	ring     []Event
	ringSize int
	ringHead int
}

// NewBus creates a bus with the given replay ring size.
func NewBus(ringSize int) *Bus {
	return &Bus{
		subscribers: make(map[uint64]subscriber),
		ring:        make([]Event, ringSize),
		ringSize:    ringSize,
	}
}

// Subscribe registers a subscriber and returns its channel plus a cancel
// function. Slow subscribers drop events rather than blocking publishers.
func (b *Bus) Subscribe(filter Filter) (<-chan Event, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Event, 64)
	b.subscribers[id] = subscriber{ch: ch, filter: filter}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish sends an event to all matching subscribers and records it in the
// replay ring.
func (b *Bus) Publish(eventType, interviewID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	seq := b.seq.Add(1)
	event := Event{
		ID:          fmt.Sprintf("%d-%d", time.Now().UnixMilli(), seq),
		Type:        eventType,
		InterviewID: interviewID,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Data:        data,
	}

	b.ringMu.Lock()
	b.ring[b.ringHead] = event
	b.ringHead = (b.ringHead + 1) % b.ringSize
	b.ringMu.Unlock()

	b.mu.RLock()
	for _, sub := range b.subscribers {
		if !matchesFilter(event, sub.filter) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	b.mu.RUnlock()

	metrics.SSEEventsPublishedTotal.Inc()
}

// ReplaySince returns buffered events after the given event ID, oldest
// first. An empty lastEventID returns everything in the ring.
func (b *Bus) ReplaySince(lastEventID string, filter Filter) []Event {
	b.ringMu.RLock()
	defer b.ringMu.RUnlock()

	var events []Event
	found := lastEventID == ""

	for i := 0; i < b.ringSize; i++ {
		idx := (b.ringHead + i) % b.ringSize
		e := b.ring[idx]
		if e.ID == "" {
			continue
		}
		if !found {
			if e.ID == lastEventID {
				found = true
			}
			continue
		}
		if matchesFilter(e, filter) {
			events = append(events, e)
		}
	}
	return events
}

func matchesFilter(e Event, f Filter) bool {
	if len(f.Types) > 0 && !contains(f.Types, e.Type) {
		return false
	}
	if len(f.InterviewIDs) > 0 && !contains(f.InterviewIDs, e.InterviewID) {
		return false
	}
	return true
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
