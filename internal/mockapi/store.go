// Package mockapi is a local stand-in for the Event API: an in-memory event
// store behind the same JSON:API surface the real server exposes, so the
// browser can be exercised end to end without a backend.
package mockapi

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoredEvent is the server-side record. Payloads stay structured here and
// are serialized into JSON:API resources by the handlers.
type StoredEvent struct {
	ID        string
	EventType string
	Data      json.RawMessage
	Metadata  json.RawMessage
}

// Store holds ordered event streams. The special "all" stream contains every
// event in append order.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]StoredEvent
	streams map[string][]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		byID:    make(map[string]StoredEvent),
		streams: make(map[string][]string),
	}
}

// Append adds an event to a stream and to the "all" stream.
func (s *Store) Append(streamID string, event StoredEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[event.ID] = event
	s.streams[streamID] = append(s.streams[streamID], event.ID)
	if streamID != "all" {
		s.streams["all"] = append(s.streams["all"], event.ID)
	}
}

// Stream returns one window of a stream plus the stream's total length.
// Unknown streams are empty, not errors.
func (s *Store) Stream(streamID string, offset, limit int) ([]StoredEvent, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.streams[streamID]
	total := len(ids)
	if offset >= total {
		return nil, total
	}

	end := offset + limit
	if end > total {
		end = total
	}

	events := make([]StoredEvent, 0, end-offset)
	for _, id := range ids[offset:end] {
		events = append(events, s.byID[id])
	}
	return events, total
}

// Get looks up one event by ID.
func (s *Store) Get(id string) (StoredEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.byID[id]
	return event, ok
}

// Seed fills the store with n generated events spread over a few streams.
func Seed(s *Store, n int) {
	types := []string{"OrderPlaced", "OrderPaid", "OrderShipped", "InvoiceIssued"}
	streams := []string{"orders", "orders", "orders", "invoices"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < n; i++ {
		k := i % len(types)
		createdAt := base.Add(time.Duration(i) * time.Minute)
		s.Append(streams[k], StoredEvent{
			ID:        uuid.NewString(),
			EventType: types[k],
			Data:      json.RawMessage(fmt.Sprintf(`{"order_id": %d, "amount": %d}`, i+1, (i+1)*10)),
			Metadata: json.RawMessage(fmt.Sprintf(`{"timestamp": %q, "correlation_id": %q}`,
				createdAt.Format(time.RFC3339), uuid.NewString())),
		})
	}
}
