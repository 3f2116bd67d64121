package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Flags is the static configuration supplied once at startup. It is immutable
// for the lifetime of the process.
type Flags struct {
	// RootURL is where the application itself is served; internal links are
	// fragments under it.
	RootURL string `yaml:"root_url"`
	// StreamsURL is the base URL for stream page requests.
	StreamsURL string `yaml:"streams_url"`
	// EventsURL is the base URL for single-event requests.
	EventsURL string `yaml:"events_url"`
	// ResVersion is the event store version string, display-only.
	ResVersion string `yaml:"res_version"`
}

// Load reads configuration from an optional YAML file, then applies
// environment-variable overrides. All four fields are required.
func Load(path string) (*Flags, error) {
	flags := &Flags{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, flags); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	flags.RootURL = getEnv("ROOT_URL", flags.RootURL)
	flags.StreamsURL = getEnv("STREAMS_URL", flags.StreamsURL)
	flags.EventsURL = getEnv("EVENTS_URL", flags.EventsURL)
	flags.ResVersion = getEnv("RES_VERSION", flags.ResVersion)

	if flags.RootURL == "" {
		return nil, fmt.Errorf("ROOT_URL is required")
	}
	if flags.StreamsURL == "" {
		return nil, fmt.Errorf("STREAMS_URL is required")
	}
	if flags.EventsURL == "" {
		return nil, fmt.Errorf("EVENTS_URL is required")
	}
	if flags.ResVersion == "" {
		return nil, fmt.Errorf("RES_VERSION is required")
	}

	return flags, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
