package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Priya8975/eventstore-browser/internal/config"
	"github.com/Priya8975/eventstore-browser/internal/detail"
	"github.com/Priya8975/eventstore-browser/internal/domain"
	"github.com/Priya8975/eventstore-browser/internal/route"
)

type fakeFetcher struct {
	pages     map[string]domain.PaginatedList[domain.Event]
	singles   map[string]domain.Event
	requested []string
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string) (domain.PaginatedList[domain.Event], error) {
	f.requested = append(f.requested, url)
	if list, ok := f.pages[url]; ok {
		return list, nil
	}
	return domain.PaginatedList[domain.Event]{}, errors.New("no such page")
}

func (f *fakeFetcher) FetchOne(_ context.Context, url string) (domain.Event, error) {
	f.requested = append(f.requested, url)
	if event, ok := f.singles[url]; ok {
		return event, nil
	}
	return domain.Event{}, errors.New("no such event")
}

func (f *fakeFetcher) StreamPageURL(streamID string) string {
	return "http://api.test/streams/" + streamID
}

func (f *fakeFetcher) EventURL(eventID string) string {
	return "http://api.test/events/" + eventID
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFlags() config.Flags {
	return config.Flags{
		RootURL:    "http://localhost:8080",
		StreamsURL: "http://api.test/streams",
		EventsURL:  "http://api.test/events",
		ResVersion: "1.0.0",
	}
}

func testModel(startURL string, fetcher *fakeFetcher) Model {
	return New(testFlags(), startURL, fetcher, NewHistory(startURL, testLogger()), nil, testLogger())
}

func twoEvents() domain.PaginatedList[domain.Event] {
	return domain.PaginatedList[domain.Event]{
		Items: []domain.Event{
			{EventID: "1", EventType: "OrderPlaced", CreatedAt: "2020-01-01T00:00:00Z"},
			{EventID: "2", EventType: "OrderPaid", CreatedAt: "2020-01-02T00:00:00Z"},
		},
		Links: domain.PaginationLinks{Next: "http://api.test/streams/all?offset=2"},
	}
}

// apply runs one update step and returns the concrete model.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want app.Model", updated)
	}
	return model, cmd
}

func TestStartupResolvesRootToBrowseAll(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]domain.PaginatedList[domain.Event]{
		"http://api.test/streams/all": twoEvents(),
	}}
	m := testModel("http://localhost:8080/#/", fetcher)

	initCmd := m.Init()
	if initCmd == nil {
		t.Fatal("Init returned nil cmd")
	}
	m, fetchCmd := apply(t, m, initCmd())

	if m.Page() != (route.BrowseEvents{StreamID: "all"}) {
		t.Fatalf("page = %#v, want BrowseEvents(all)", m.Page())
	}
	if fetchCmd == nil {
		t.Fatal("resolution scheduled no fetch")
	}

	m, _ = apply(t, m, fetchCmd())

	if len(fetcher.requested) != 1 || fetcher.requested[0] != "http://api.test/streams/all" {
		t.Errorf("requested = %v, want the all-stream page", fetcher.requested)
	}
	if len(m.Events().Items) != 2 {
		t.Fatalf("got %d items, want 2", len(m.Events().Items))
	}
	if m.Events().Items[0].EventID != "1" || m.Events().Items[1].EventID != "2" {
		t.Error("items not in server order")
	}
}

func TestURLChangedToStream(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := testModel("#/", fetcher)

	m, cmd := apply(t, m, URLChangedMsg{URL: "#/streams/orders"})

	if m.Page() != (route.BrowseEvents{StreamID: "orders"}) {
		t.Fatalf("page = %#v", m.Page())
	}
	cmd()
	if fetcher.requested[0] != "http://api.test/streams/orders" {
		t.Errorf("requested %q", fetcher.requested[0])
	}
}

func TestURLChangedToEvent(t *testing.T) {
	event := domain.Event{EventID: "xyz", EventType: "OrderPlaced"}
	fetcher := &fakeFetcher{singles: map[string]domain.Event{
		"http://api.test/events/xyz": event,
	}}
	m := testModel("#/", fetcher)

	m, cmd := apply(t, m, URLChangedMsg{URL: "#/events/xyz"})

	if m.Page() != (route.ShowEvent{EventID: "xyz"}) {
		t.Fatalf("page = %#v", m.Page())
	}
	if m.Detail() != nil {
		t.Error("detail should be cleared until the fetch resolves")
	}

	m, _ = apply(t, m, cmd())
	if m.Detail() == nil {
		t.Fatal("detail not set after successful fetch")
	}
	if m.Detail().Event.EventID != "xyz" {
		t.Errorf("detail event = %q", m.Detail().Event.EventID)
	}
}

func TestURLChangedToUnknownRoute(t *testing.T) {
	m := testModel("#/", &fakeFetcher{})

	m, cmd := apply(t, m, URLChangedMsg{URL: "#/nonsense"})

	if m.Page() != (route.NotFound{}) {
		t.Fatalf("page = %#v, want NotFound", m.Page())
	}
	if cmd != nil {
		t.Error("NotFound must schedule no effect")
	}
}

func TestFetchErrorsLeaveModelUnchanged(t *testing.T) {
	m := testModel("#/", &fakeFetcher{})
	m, _ = apply(t, m, EventsFetchedMsg{List: twoEvents()})

	for _, msg := range []tea.Msg{
		EventsFetchedMsg{Err: errors.New("boom")},
		EventFetchedMsg{Err: errors.New("boom")},
	} {
		got, cmd := apply(t, m, msg)
		if !reflect.DeepEqual(m, got) {
			t.Errorf("%T changed the model", msg)
		}
		if cmd != nil {
			t.Errorf("%T scheduled an effect", msg)
		}
	}
}

func TestPageRequestedFollowsLinkVerbatim(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := testModel("#/", fetcher)

	_, cmd := apply(t, m, PageRequestedMsg{Link: "http://api.test/streams/all?offset=20&limit=20"})
	cmd()

	if fetcher.requested[0] != "http://api.test/streams/all?offset=20&limit=20" {
		t.Errorf("requested %q, link was rewritten", fetcher.requested[0])
	}
}

func TestLinkClicked(t *testing.T) {
	m := testModel("#/", &fakeFetcher{})

	// Internal: pushed onto history, re-entering as URLChangedMsg.
	_, cmd := apply(t, m, LinkClickedMsg{URL: "#/events/xyz"})
	if cmd == nil {
		t.Fatal("internal link produced no navigation")
	}
	if msg, ok := cmd().(URLChangedMsg); !ok || msg.URL != "#/events/xyz" {
		t.Errorf("push produced %#v, want URLChangedMsg{#/events/xyz}", cmd())
	}
}

func TestDetailDelegation(t *testing.T) {
	m := testModel("#/", &fakeFetcher{})

	// No detail state: delegation is a no-op.
	got, cmd := apply(t, m, detail.TabSelectedMsg{Tab: detail.TabMetadata})
	if !reflect.DeepEqual(m, got) || cmd != nil {
		t.Error("detail msg without detail state must be a no-op")
	}

	m, _ = apply(t, m, EventFetchedMsg{Event: domain.Event{EventID: "1"}})
	m, _ = apply(t, m, detail.TabSelectedMsg{Tab: detail.TabMetadata})
	if m.Detail().Tab != detail.TabMetadata {
		t.Errorf("detail tab = %q, want metadata", m.Detail().Tab)
	}
}

func TestBrowseKeys(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := testModel("#/", fetcher)
	m, _ = apply(t, m, URLChangedMsg{URL: "#/"})
	m, _ = apply(t, m, EventsFetchedMsg{List: twoEvents()})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", m.Cursor())
	}
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Fatal("cursor must not run past the last row")
	}

	// Enter opens the selected event as an internal link.
	_, cmd := apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if msg, ok := cmd().(LinkClickedMsg); !ok || msg.URL != "#/events/2" || msg.External {
		t.Errorf("enter produced %#v", cmd())
	}

	// Next link exists: n requests that page.
	_, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if cmd == nil {
		t.Fatal("n produced no command despite a next link")
	}
	if msg, ok := cmd().(PageRequestedMsg); !ok || msg.Link != "http://api.test/streams/all?offset=2" {
		t.Errorf("n produced %#v", cmd())
	}

	// Prev link absent: no control, no command.
	_, cmd = apply(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd != nil {
		t.Error("p produced a command despite no prev link")
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory("#/", testLogger())

	if h.Current() != "#/" {
		t.Fatalf("Current = %q", h.Current())
	}
	if cmd := h.Back(); cmd != nil {
		t.Error("Back at the bottom of the stack must be a no-op")
	}

	h.Push("#/events/1")
	if h.Current() != "#/events/1" {
		t.Fatalf("Current = %q after push", h.Current())
	}

	cmd := h.Back()
	if cmd == nil {
		t.Fatal("Back returned no command")
	}
	if msg, ok := cmd().(URLChangedMsg); !ok || msg.URL != "#/" {
		t.Errorf("Back produced %#v", cmd())
	}
}
