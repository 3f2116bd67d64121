// Package client is the read-only HTTP client for the Event API.
package client

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/Priya8975/eventstore-browser/internal/domain"
	"github.com/Priya8975/eventstore-browser/internal/jsonapi"
)

const mediaType = "application/vnd.api+json"

// Kind classifies a fetch failure.
type Kind string

const (
	// KindNetwork covers transport failures and non-2xx responses.
	KindNetwork Kind = "network"
	// KindDecode covers payloads that do not match the event resource contract.
	KindDecode Kind = "decode"
)

// FetchError is the failure result of a page or event fetch.
type FetchError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %s error: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches stream pages and single events from the Event API.
type Client struct {
	http       *http.Client
	streamsURL string
	eventsURL  string
}

// New builds a Client against the configured base URLs. The underlying HTTP
// client carries no overall deadline: in-flight requests are never aborted by
// later navigation, they resolve (or hang) on their own.
func New(streamsURL, eventsURL string) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		http:       &http.Client{Transport: transport},
		streamsURL: streamsURL,
		eventsURL:  eventsURL,
	}
}

// StreamPageURL builds the request target for the first page of a stream.
func (c *Client) StreamPageURL(streamID string) string {
	return c.streamsURL + "/" + url.PathEscape(streamID)
}

// EventURL builds the request target for a single event.
func (c *Client) EventURL(eventID string) string {
	return c.eventsURL + "/" + url.PathEscape(eventID)
}

// FetchPage GETs one page of events. The URL is either a constructed stream
// page target or a pagination link returned by the server, used verbatim.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (domain.PaginatedList[domain.Event], error) {
	var list domain.PaginatedList[domain.Event]

	resp, err := c.get(ctx, pageURL)
	if err != nil {
		return list, err
	}
	defer resp.Body.Close()

	list, err = jsonapi.DecodeCollection(resp.Body)
	if err != nil {
		return list, &FetchError{Kind: KindDecode, URL: pageURL, Err: err}
	}
	return list, nil
}

// FetchOne GETs a single event resource.
func (c *Client) FetchOne(ctx context.Context, eventURL string) (domain.Event, error) {
	resp, err := c.get(ctx, eventURL)
	if err != nil {
		return domain.Event{}, err
	}
	defer resp.Body.Close()

	event, err := jsonapi.DecodeSingle(resp.Body)
	if err != nil {
		return domain.Event{}, &FetchError{Kind: KindDecode, URL: eventURL, Err: err}
	}
	return event, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", mediaType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, URL: rawURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{
			Kind: KindNetwork,
			URL:  rawURL,
			Err:  fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return resp, nil
}
