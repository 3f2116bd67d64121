// Package detail holds the state machine of the single-event view. It is a
// nested model: the application delegates detail messages here and stores the
// returned model back, without inspecting it.
package detail

import "github.com/Priya8975/eventstore-browser/internal/domain"

// Tab selects which payload pane of the event is shown.
type Tab string

const (
	TabData     Tab = "data"
	TabMetadata Tab = "metadata"
)

// Msg is the closed set of messages the detail model understands.
type Msg interface {
	detailMsg()
}

// TabSelectedMsg switches the visible payload pane.
type TabSelectedMsg struct {
	Tab Tab
}

func (TabSelectedMsg) detailMsg() {}

// Model is the detail-view state for one fetched event.
type Model struct {
	Event domain.Event
	Tab   Tab
}

// New builds the detail state for a freshly fetched event, opening on the
// data pane.
func New(event domain.Event) Model {
	return Model{Event: event, Tab: TabData}
}

// Update applies one message and returns the new state.
func (m Model) Update(msg Msg) Model {
	switch msg := msg.(type) {
	case TabSelectedMsg:
		m.Tab = msg.Tab
	}
	return m
}

// NextTab is the pane a toggle control should switch to.
func (m Model) NextTab() Tab {
	if m.Tab == TabData {
		return TabMetadata
	}
	return TabData
}

// Pane returns the pretty-printed payload of the active tab.
func (m Model) Pane() string {
	if m.Tab == TabMetadata {
		return m.Event.RawMetadata
	}
	return m.Event.RawData
}
