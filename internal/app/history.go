package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
)

// History is the in-process Navigator: a URL stack whose pushes re-enter the
// update loop as URLChangedMsg. External loads are handed to the OS browser.
// It is owned by the program goroutine, never shared.
type History struct {
	stack  []string
	logger *slog.Logger
}

// NewHistory starts a history at the given URL.
func NewHistory(start string, logger *slog.Logger) *History {
	return &History{stack: []string{start}, logger: logger}
}

// Current returns the URL on top of the stack.
func (h *History) Current() string {
	return h.stack[len(h.stack)-1]
}

// Push records a new current URL and re-enters the loop with it.
func (h *History) Push(url string) tea.Cmd {
	h.stack = append(h.stack, url)
	return emit(URLChangedMsg{URL: url})
}

// Back pops to the previous URL. At the bottom of the stack it does nothing.
func (h *History) Back() tea.Cmd {
	if len(h.stack) < 2 {
		return nil
	}
	h.stack = h.stack[:len(h.stack)-1]
	return emit(URLChangedMsg{URL: h.Current()})
}

// Load opens an external URL in the OS browser. Failures are logged only; the
// application keeps running.
func (h *History) Load(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.OpenURL(url); err != nil {
			h.logger.Warn("opening external url failed", "url", url, "error", err)
		}
		return nil
	}
}
