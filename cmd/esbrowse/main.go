package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Priya8975/eventstore-browser/internal/app"
	"github.com/Priya8975/eventstore-browser/internal/client"
	"github.com/Priya8975/eventstore-browser/internal/config"
	"github.com/Priya8975/eventstore-browser/internal/route"
	"github.com/Priya8975/eventstore-browser/internal/ui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		streamID   string
		eventID    string
		logFile    string
	)

	cmd := &cobra.Command{
		Use:   "esbrowse",
		Short: "Browse an event store from the terminal",
		Long: `esbrowse is a read-only terminal browser for an event store's JSON:API:
it lists the events of a stream page by page and drills into single events.

Configuration comes from a YAML file and/or the environment variables
ROOT_URL, STREAMS_URL, EVENTS_URL, and RES_VERSION.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			start := flags.RootURL + route.BrowseHref(route.AllStream)
			switch {
			case eventID != "":
				start = flags.RootURL + route.EventHref(eventID)
			case streamID != "":
				start = flags.RootURL + route.BrowseHref(streamID)
			}

			fetcher := client.New(flags.StreamsURL, flags.EventsURL)
			nav := app.NewHistory(start, logger)
			model := app.New(*flags, start, fetcher, nav, ui.New(), logger)

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running program: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&streamID, "stream", "", "open on one stream's event list")
	cmd.Flags().StringVar(&eventID, "event", "", "open on a single event")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default: discard)")
	cmd.MarkFlagsMutuallyExclusive("stream", "event")

	return cmd
}

// newLogger writes to the given file, or discards: the TUI owns the terminal,
// so stdout is not available for logs.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}
