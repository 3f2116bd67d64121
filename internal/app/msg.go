package app

import "github.com/Priya8975/eventstore-browser/internal/domain"

// EventsFetchedMsg is the outcome of a stream page fetch. Exactly one of List
// and Err is meaningful.
type EventsFetchedMsg struct {
	List domain.PaginatedList[domain.Event]
	Err  error
}

// EventFetchedMsg is the outcome of a single-event fetch.
type EventFetchedMsg struct {
	Event domain.Event
	Err   error
}

// URLChangedMsg re-enters the update loop after a navigation. It is the only
// path that changes the current page.
type URLChangedMsg struct {
	URL string
}

// LinkClickedMsg requests a navigation. Internal links are pushed onto the
// history and resolved in-app; external links are handed to the OS browser.
type LinkClickedMsg struct {
	URL      string
	External bool
}

// PageRequestedMsg follows a server-supplied pagination link. The current page
// does not change; only the event list is replaced when the fetch resolves.
type PageRequestedMsg struct {
	Link domain.PaginationLink
}
