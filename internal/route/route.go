// Package route maps browser-style URLs onto application pages and back.
//
// The event store browser is a single-page app as far as URLs are concerned:
// the fragment carries the effective path (`#/streams/all`), while the real
// path always points at the app shell. Parse therefore reads the fragment, not
// the path.
package route

import (
	"net/url"
	"strings"
)

// AllStream is the stream identifier meaning "no stream filter".
const AllStream = "all"

// Page identifies which view the application is on. Exactly one variant is
// active at a time; consumers switch exhaustively over the three types below.
type Page interface {
	page()
}

// BrowseEvents is the paginated event list, optionally filtered to one stream.
type BrowseEvents struct {
	StreamID string
}

// ShowEvent is the detail view of a single event.
type ShowEvent struct {
	EventID string
}

// NotFound is the 404 view for anything the router does not recognize.
type NotFound struct{}

func (BrowseEvents) page() {}
func (ShowEvent) page()    {}
func (NotFound) page()     {}

// Parse resolves a full URL to a Page. The URL's fragment is re-interpreted as
// the effective path; the surrounding scheme, host, and real path are ignored.
// Unparseable URLs and path segments with invalid percent-encoding resolve to
// NotFound rather than an error.
func Parse(raw string) Page {
	u, err := url.Parse(raw)
	if err != nil {
		return NotFound{}
	}
	return parsePath(u.EscapedFragment())
}

func parsePath(path string) Page {
	if path == "" || path == "/" {
		return BrowseEvents{StreamID: AllStream}
	}
	if !strings.HasPrefix(path, "/") {
		return NotFound{}
	}

	segments := strings.Split(path[1:], "/")
	if len(segments) != 2 || segments[1] == "" {
		return NotFound{}
	}

	id, err := url.PathUnescape(segments[1])
	if err != nil {
		return NotFound{}
	}

	switch segments[0] {
	case "streams":
		return BrowseEvents{StreamID: id}
	case "events":
		return ShowEvent{EventID: id}
	}
	return NotFound{}
}

// BrowseHref builds the fragment URL for a stream's event list.
func BrowseHref(streamID string) string {
	if streamID == AllStream {
		return "#/"
	}
	return "#/streams/" + url.PathEscape(streamID)
}

// EventHref builds the fragment URL for a single event.
func EventHref(eventID string) string {
	return "#/events/" + url.PathEscape(eventID)
}
