// Package jsonapi decodes the Event API's JSON:API payloads into domain
// values. Decoding is strict: a resource that is missing a required field, or
// carries the wrong type for one, fails as a whole — the caller never sees a
// partially populated Event.
package jsonapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Priya8975/eventstore-browser/internal/domain"
)

// DecodeError reports a payload that does not match the event resource
// contract. Path names the offending field in source-payload terms.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding event resource: %s: %s", e.Path, e.Reason)
}

type resourceObject struct {
	ID         *string         `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

type eventAttributes struct {
	EventType *string         `json:"event_type"`
	Data      json.RawMessage `json:"data"`
	Metadata  json.RawMessage `json:"metadata"`
}

type eventMetadata struct {
	Timestamp *string `json:"timestamp"`
}

type linksObject struct {
	Next  string `json:"next"`
	Prev  string `json:"prev"`
	First string `json:"first"`
	Last  string `json:"last"`
}

type collectionDocument struct {
	Data  []json.RawMessage `json:"data"`
	Links linksObject       `json:"links"`
}

type singleDocument struct {
	Data json.RawMessage `json:"data"`
}

// DecodeCollection reads a JSON:API collection document: `data` is an array of
// event resources, `links` the optional pagination edges. Item order is the
// server's order.
func DecodeCollection(r io.Reader) (domain.PaginatedList[domain.Event], error) {
	var list domain.PaginatedList[domain.Event]

	var doc collectionDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return list, &DecodeError{Path: "data", Reason: err.Error()}
	}
	if doc.Data == nil {
		return list, &DecodeError{Path: "data", Reason: "missing"}
	}

	events := make([]domain.Event, 0, len(doc.Data))
	for _, raw := range doc.Data {
		event, err := DecodeEvent(raw)
		if err != nil {
			return list, err
		}
		events = append(events, event)
	}

	list.Items = events
	list.Links = domain.PaginationLinks{
		Next:  domain.PaginationLink(doc.Links.Next),
		Prev:  domain.PaginationLink(doc.Links.Prev),
		First: domain.PaginationLink(doc.Links.First),
		Last:  domain.PaginationLink(doc.Links.Last),
	}
	return list, nil
}

// DecodeSingle reads a JSON:API single-resource document: `data` is one event
// resource.
func DecodeSingle(r io.Reader) (domain.Event, error) {
	var doc singleDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return domain.Event{}, &DecodeError{Path: "data", Reason: err.Error()}
	}
	if doc.Data == nil {
		return domain.Event{}, &DecodeError{Path: "data", Reason: "missing"}
	}
	return DecodeEvent(doc.Data)
}

// DecodeEvent maps one resource object onto an Event. The data and metadata
// payloads are captured as raw JSON and re-serialized with two-space
// indentation; their inner structure is not interpreted here.
func DecodeEvent(raw json.RawMessage) (domain.Event, error) {
	var res resourceObject
	if err := json.Unmarshal(raw, &res); err != nil {
		return domain.Event{}, &DecodeError{Path: "resource", Reason: err.Error()}
	}
	if res.ID == nil {
		return domain.Event{}, &DecodeError{Path: "id", Reason: "missing"}
	}
	if res.Attributes == nil {
		return domain.Event{}, &DecodeError{Path: "attributes", Reason: "missing"}
	}

	var attrs eventAttributes
	if err := json.Unmarshal(res.Attributes, &attrs); err != nil {
		return domain.Event{}, &DecodeError{Path: "attributes", Reason: err.Error()}
	}
	if attrs.EventType == nil {
		return domain.Event{}, &DecodeError{Path: "attributes.event_type", Reason: "missing"}
	}
	if attrs.Data == nil {
		return domain.Event{}, &DecodeError{Path: "attributes.data", Reason: "missing"}
	}
	if attrs.Metadata == nil {
		return domain.Event{}, &DecodeError{Path: "attributes.metadata", Reason: "missing"}
	}

	var meta eventMetadata
	if err := json.Unmarshal(attrs.Metadata, &meta); err != nil {
		return domain.Event{}, &DecodeError{Path: "attributes.metadata", Reason: err.Error()}
	}
	if meta.Timestamp == nil {
		return domain.Event{}, &DecodeError{Path: "attributes.metadata.timestamp", Reason: "missing"}
	}

	rawData, err := indentJSON(attrs.Data)
	if err != nil {
		return domain.Event{}, &DecodeError{Path: "attributes.data", Reason: err.Error()}
	}
	rawMetadata, err := indentJSON(attrs.Metadata)
	if err != nil {
		return domain.Event{}, &DecodeError{Path: "attributes.metadata", Reason: err.Error()}
	}

	return domain.Event{
		EventType:   *attrs.EventType,
		EventID:     *res.ID,
		CreatedAt:   *meta.Timestamp,
		RawData:     rawData,
		RawMetadata: rawMetadata,
	}, nil
}

func indentJSON(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
