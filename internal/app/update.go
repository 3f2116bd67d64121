package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Priya8975/eventstore-browser/internal/detail"
	"github.com/Priya8975/eventstore-browser/internal/domain"
	"github.com/Priya8975/eventstore-browser/internal/route"
)

// Update applies one message and returns the new model plus at most one
// follow-up command. Fetch failures leave the model untouched: the previous
// view stays visible and only a warning is logged.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case URLChangedMsg:
		return m.resolve(msg.URL)

	case EventsFetchedMsg:
		if msg.Err != nil {
			m.logger.Warn("page fetch failed", "error", msg.Err)
			return m, nil
		}
		m.events = msg.List
		if m.cursor >= len(m.events.Items) {
			m.cursor = 0
		}
		return m, nil

	case EventFetchedMsg:
		if msg.Err != nil {
			m.logger.Warn("event fetch failed", "error", msg.Err)
			return m, nil
		}
		d := detail.New(msg.Event)
		m.detail = &d
		return m, nil

	case LinkClickedMsg:
		if msg.External {
			return m, m.nav.Load(msg.URL)
		}
		return m, m.nav.Push(msg.URL)

	case PageRequestedMsg:
		return m, m.fetchPage(string(msg.Link))

	case detail.Msg:
		if m.detail == nil {
			return m, nil
		}
		d := m.detail.Update(msg)
		m.detail = &d
		return m, nil
	}

	return m, nil
}

// resolve recomputes the page from a URL and schedules the fetch that page
// needs. Startup and every later navigation go through this one function, so
// "which page am I on" and "what data must I fetch" cannot drift apart.
func (m Model) resolve(rawURL string) (tea.Model, tea.Cmd) {
	switch page := route.Parse(rawURL).(type) {
	case route.BrowseEvents:
		m.page = page
		m.cursor = 0
		return m, m.fetchPage(m.fetcher.StreamPageURL(page.StreamID))
	case route.ShowEvent:
		m.page = page
		m.detail = nil
		return m, m.fetchOne(m.fetcher.EventURL(page.EventID))
	default:
		m.page = route.NotFound{}
		return m, nil
	}
}

// fetchPage runs a page GET off the update loop and posts the outcome back as
// a message. Requests are never cancelled by later navigation; a stale result
// is applied to whatever the model is by then.
func (m Model) fetchPage(url string) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		list, err := fetcher.FetchPage(context.Background(), url)
		if err != nil {
			return EventsFetchedMsg{Err: err}
		}
		return EventsFetchedMsg{List: list}
	}
}

func (m Model) fetchOne(url string) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		event, err := fetcher.FetchOne(context.Background(), url)
		if err != nil {
			return EventFetchedMsg{Err: err}
		}
		return EventFetchedMsg{Event: event}
	}
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		return m, m.nav.Back()
	}

	switch m.page.(type) {
	case route.BrowseEvents:
		return m.handleBrowseKey(key)
	case route.ShowEvent:
		return m.handleDetailKey(key)
	}
	return m, nil
}

func (m Model) handleBrowseKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.events.Items)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.events.Items) {
			id := m.events.Items[m.cursor].EventID
			return m, emit(LinkClickedMsg{URL: route.EventHref(id)})
		}
	case "n":
		return m, m.requestPage(m.events.Links.Next)
	case "p":
		return m, m.requestPage(m.events.Links.Prev)
	case "f":
		return m, m.requestPage(m.events.Links.First)
	case "l":
		return m, m.requestPage(m.events.Links.Last)
	}
	return m, nil
}

func (m Model) handleDetailKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	switch key.String() {
	case "tab":
		return m, emit(detail.TabSelectedMsg{Tab: m.detail.NextTab()})
	case "o":
		// Raw resource as served by the API, in the OS browser.
		return m, emit(LinkClickedMsg{
			URL:      m.fetcher.EventURL(m.detail.Event.EventID),
			External: true,
		})
	}
	return m, nil
}

// requestPage follows a pagination link. Absent links have no control to
// press, so they resolve to no command.
func (m Model) requestPage(link domain.PaginationLink) tea.Cmd {
	if link == "" {
		return nil
	}
	return emit(PageRequestedMsg{Link: link})
}
