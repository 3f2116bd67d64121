package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const mediaType = "application/vnd.api+json"

const defaultLimit = 20

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mockapi_requests_total",
	Help: "Requests served, by route pattern.",
}, []string{"route"})

// NewRouter creates and configures the mock Event API router.
func NewRouter(store *Store) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(countRequests)

	h := NewEventHandler(store)
	r.Get("/streams/{id}", h.Stream)
	r.Get("/events/{id}", h.Get)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			requestsTotal.WithLabelValues(rctx.RoutePattern()).Inc()
		}
	})
}

// EventHandler serves the two read endpoints of the Event API.
type EventHandler struct {
	store *Store
}

func NewEventHandler(s *Store) *EventHandler {
	return &EventHandler{store: s}
}

type resource struct {
	ID         string     `json:"id"`
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	Metadata  json.RawMessage `json:"metadata"`
}

type links struct {
	Next  string `json:"next,omitempty"`
	Prev  string `json:"prev,omitempty"`
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

type collectionDocument struct {
	Data  []resource `json:"data"`
	Links links      `json:"links"`
}

type singleDocument struct {
	Data resource `json:"data"`
}

// Stream serves one page of a stream as a JSON:API collection. Links are only
// present for edges that exist: no prev/first on the first page, no next/last
// on the final one.
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid stream id")
		return
	}

	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}

	events, total := h.store.Stream(id, offset, limit)

	data := make([]resource, 0, len(events))
	for _, event := range events {
		data = append(data, toResource(event))
	}

	respondJSON(w, http.StatusOK, collectionDocument{
		Data:  data,
		Links: pageLinks(r, id, offset, limit, total),
	})
}

// Get serves one event as a JSON:API single-resource document.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, ok := h.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "event not found")
		return
	}

	respondJSON(w, http.StatusOK, singleDocument{Data: toResource(event)})
}

func toResource(event StoredEvent) resource {
	return resource{
		ID: event.ID,
		Attributes: attributes{
			EventType: event.EventType,
			Data:      event.Data,
			Metadata:  event.Metadata,
		},
	}
}

func pageLinks(r *http.Request, streamID string, offset, limit, total int) links {
	var l links
	if offset > 0 {
		l.First = pageURL(r, streamID, 0, limit)
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		l.Prev = pageURL(r, streamID, prev, limit)
	}
	if offset+limit < total {
		l.Next = pageURL(r, streamID, offset+limit, limit)
		l.Last = pageURL(r, streamID, (total-1)/limit*limit, limit)
	}
	return l
}

func pageURL(r *http.Request, streamID string, offset, limit int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/streams/%s?offset=%d&limit=%d",
		scheme, r.Host, url.PathEscape(streamID), offset, limit)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if val := r.URL.Query().Get(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", mediaType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
