// Package app is the state machine of the event store browser: one model, one
// update function, and commands that resolve fetches back into messages. It
// follows the Bubble Tea architecture — the model is a value, Update is pure
// apart from the commands it schedules, and nothing outside this package holds
// a writable reference to the state.
package app

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Priya8975/eventstore-browser/internal/config"
	"github.com/Priya8975/eventstore-browser/internal/detail"
	"github.com/Priya8975/eventstore-browser/internal/domain"
	"github.com/Priya8975/eventstore-browser/internal/route"
)

// Fetcher is the read-only Event API surface the update loop schedules
// requests against.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) (domain.PaginatedList[domain.Event], error)
	FetchOne(ctx context.Context, url string) (domain.Event, error)
	StreamPageURL(streamID string) string
	EventURL(eventID string) string
}

// Navigator is the capability used to change the current URL. The model never
// inspects it; it only asks for pushes, loads, and back steps.
type Navigator interface {
	Push(url string) tea.Cmd
	Load(url string) tea.Cmd
	Back() tea.Cmd
}

// Renderer projects the model to a visible tree. It is a pure consumer: all
// interaction comes back through messages, never through the renderer.
type Renderer interface {
	Render(Model) string
}

// Model is the whole application state.
type Model struct {
	flags    config.Flags
	events   domain.PaginatedList[domain.Event]
	detail   *detail.Model
	page     route.Page
	cursor   int
	startURL string
	fetcher  Fetcher
	nav      Navigator
	renderer Renderer
	logger   *slog.Logger
}

// New assembles the initial model. No fetch happens until Init runs.
func New(flags config.Flags, startURL string, fetcher Fetcher, nav Navigator, renderer Renderer, logger *slog.Logger) Model {
	return Model{
		flags:    flags,
		page:     route.NotFound{},
		startURL: startURL,
		fetcher:  fetcher,
		nav:      nav,
		renderer: renderer,
		logger:   logger,
	}
}

// Init resolves the start URL through the same path later navigations take.
func (m Model) Init() tea.Cmd {
	return emit(URLChangedMsg{URL: m.startURL})
}

// View delegates to the injected renderer.
func (m Model) View() string {
	return m.renderer.Render(m)
}

// Flags returns the startup configuration.
func (m Model) Flags() config.Flags { return m.flags }

// Events returns the current page of the event list.
func (m Model) Events() domain.PaginatedList[domain.Event] { return m.events }

// Detail returns the single-event view state, or nil before its fetch
// resolved.
func (m Model) Detail() *detail.Model { return m.detail }

// Page returns the active page variant.
func (m Model) Page() route.Page { return m.page }

// Cursor returns the selected row index of the browse view.
func (m Model) Cursor() int { return m.cursor }

// emit wraps a message as a command so an update step can feed a follow-up
// message back into the queue.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
