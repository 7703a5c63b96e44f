package config

import (
	"fmt"

	"github.com/cognicore/wordmask/pkg/wordmask/ingest"
	"github.com/cognicore/wordmask/pkg/wordmask/sample"
	"github.com/cognicore/wordmask/pkg/wordmask/weight"
)

// Loader resolves settings and constructs the pipeline components
type Loader struct {
	ConfigPath string
	// Overlay runs after the file is applied, e.g. to apply command-line flags
	Overlay func(*Settings)
}

// Components holds the constructed pipeline
type Components struct {
	Settings Settings
	Locator  *ingest.Locator
	Weigher  *weight.Weigher
	Sampler  *sample.Sampler
}

// Load reads the optional config file, applies the overlay, validates and
// returns initialized components
func (l *Loader) Load() (*Components, error) {
	settings := Defaults()
	if l.ConfigPath != "" {
		s, err := LoadSettings(l.ConfigPath)
		if err != nil {
			return nil, err
		}
		settings = *s
	}

	if l.Overlay != nil {
		l.Overlay(&settings)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	weigher, err := weight.NewWeigher(settings.Overrides)
	if err != nil {
		return nil, fmt.Errorf("compile overrides: %w", err)
	}

	sampler := sample.New(nil)
	if settings.Seed != nil {
		sampler = sample.NewSeeded(*settings.Seed)
	}

	return &Components{
		Settings: settings,
		Locator:  ingest.NewLocator(),
		Weigher:  weigher,
		Sampler:  sampler,
	}, nil
}
