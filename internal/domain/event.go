package domain

// Event is a single record read from the event store. RawData and RawMetadata
// hold the payload pretty-printed at decode time; their inner shape is opaque
// to the rest of the application.
type Event struct {
	EventType   string
	EventID     string
	CreatedAt   string
	RawData     string
	RawMetadata string
}

// PaginationLink is a server-supplied page URL. It is followed verbatim and
// never parsed or rewritten client-side.
type PaginationLink string

// PaginationLinks holds the page-sequence edges the server reported. An empty
// link means that edge does not exist and no control may be offered for it.
type PaginationLinks struct {
	Next  PaginationLink
	Prev  PaginationLink
	First PaginationLink
	Last  PaginationLink
}

// PaginatedList is one page of items together with its navigation links.
type PaginatedList[T any] struct {
	Items []T
	Links PaginationLinks
}
