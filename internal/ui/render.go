// Package ui renders the application model as a terminal view. It is a pure
// projection: it reads the model and produces a string, and all interaction
// flows back through the update loop's key handling.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Priya8975/eventstore-browser/internal/app"
	"github.com/Priya8975/eventstore-browser/internal/domain"
	"github.com/Priya8975/eventstore-browser/internal/route"
)

// Renderer draws the browse, detail, and not-found views.
type Renderer struct {
	title    lipgloss.Style
	selected lipgloss.Style
	dim      lipgloss.Style
	pane     lipgloss.Style
}

// New builds a Renderer with the default styles.
func New() Renderer {
	return Renderer{
		title:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		selected: lipgloss.NewStyle().Reverse(true),
		dim:      lipgloss.NewStyle().Faint(true),
		pane:     lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// Render projects the model onto one of the three page views.
func (r Renderer) Render(m app.Model) string {
	var body string
	switch page := m.Page().(type) {
	case route.BrowseEvents:
		body = r.browse(m, page)
	case route.ShowEvent:
		body = r.detail(m, page)
	default:
		body = r.notFound()
	}
	return body + "\n" + r.footer(m)
}

func (r Renderer) browse(m app.Model, page route.BrowseEvents) string {
	var b strings.Builder

	if page.StreamID == route.AllStream {
		b.WriteString(r.title.Render("Events") + "\n\n")
	} else {
		b.WriteString(r.title.Render("Stream "+page.StreamID) + "\n\n")
	}

	events := m.Events()
	if len(events.Items) == 0 {
		b.WriteString(r.dim.Render("No events in this stream.") + "\n")
		return b.String()
	}

	for i, event := range events.Items {
		row := fmt.Sprintf("%-30s %-38s %s", event.EventType, event.EventID, event.CreatedAt)
		if i == m.Cursor() {
			row = r.selected.Render(row)
		}
		b.WriteString(row + "\n")
	}

	if pager := strings.Join(controls(events.Links), "  "); pager != "" {
		b.WriteString("\n" + pager + "\n")
	}
	return b.String()
}

func (r Renderer) detail(m app.Model, page route.ShowEvent) string {
	d := m.Detail()
	if d == nil {
		return r.title.Render("Event "+page.EventID) + "\n\n" + r.dim.Render("Loading...") + "\n"
	}

	var b strings.Builder
	b.WriteString(r.title.Render(d.Event.EventType) + "\n")
	b.WriteString(r.dim.Render(d.Event.EventID+"  "+d.Event.CreatedAt) + "\n\n")
	b.WriteString(fmt.Sprintf("[tab] showing %s\n", d.Tab))
	b.WriteString(r.pane.Render(d.Pane()) + "\n")
	return b.String()
}

func (r Renderer) notFound() string {
	return r.title.Render("404") + "\n\n" + r.dim.Render("This page does not exist.") + "\n"
}

func (r Renderer) footer(m app.Model) string {
	return r.dim.Render("event store v" + m.Flags().ResVersion + " | q quits, esc goes back")
}

// controls lists the pagination controls to offer, one per link the server
// reported. Absent links get no control at all rather than a disabled one.
func controls(links domain.PaginationLinks) []string {
	var out []string
	if links.First != "" {
		out = append(out, "[f]irst")
	}
	if links.Prev != "" {
		out = append(out, "[p]rev")
	}
	if links.Next != "" {
		out = append(out, "[n]ext")
	}
	if links.Last != "" {
		out = append(out, "[l]ast")
	}
	return out
}
