package config

import (
	"fmt"
	"os"

	"github.com/sabrinahaniff/pdf-sentry/internal/indicator"
	"gopkg.in/yaml.v3"
)

// Policy is the read-only scoring table: indicator weights, the per-indicator
// count cap, validation penalties, and the risk band thresholds. It is built
// once at startup and passed into the scoring engine; nothing mutates it after
// that.
type Policy struct {
	Weights                map[indicator.Name]float64
	CountCap               int
	UnconfirmedFactor      float64
	ErrorsPenalty          float64
	WarningsPenalty        float64
	MediumThreshold        float64
	HighThreshold          float64
	MaxConfirmationMatches int
}

// Default returns the built-in heuristic policy. The weights are a triage
// prioritization aid, not a verdict, and can be overridden per deployment via
// .pdfsentry.yaml.
func Default() Policy {
	return Policy{
		Weights: map[indicator.Name]float64{
			indicator.OpenAction:        15,
			indicator.AdditionalActions: 10,
			indicator.JavaScript:        25,
			indicator.JS:                10,
			indicator.EmbeddedFile:      20,
			indicator.LaunchAction:      30,
			indicator.Filespec:          15,
			indicator.XFA:               15,
			indicator.AcroForm:          10,
			indicator.RichMedia:         20,
			indicator.ObjStm:            10,
		},
		CountCap:               3,
		UnconfirmedFactor:      0.5,
		ErrorsPenalty:          15,
		WarningsPenalty:        5,
		MediumThreshold:        20,
		HighThreshold:          50,
		MaxConfirmationMatches: 10,
	}
}

// filePolicy mirrors the optional .pdfsentry.yaml keys. Pointer fields
// distinguish "absent, keep default" from an explicit zero.
type filePolicy struct {
	Weights                map[string]float64 `yaml:"weights"`
	CountCap               *int               `yaml:"count_cap"`
	UnconfirmedFactor      *float64           `yaml:"unconfirmed_factor"`
	ErrorsPenalty          *float64           `yaml:"errors_penalty"`
	WarningsPenalty        *float64           `yaml:"warnings_penalty"`
	MediumThreshold        *float64           `yaml:"medium_threshold"`
	HighThreshold          *float64           `yaml:"high_threshold"`
	MaxConfirmationMatches *int               `yaml:"max_confirmation_matches"`
}

// Load reads the policy file at path and overlays it on Default. A missing
// file is not an error; a present but invalid one is, so a typo cannot
// silently fall back to defaults.
func Load(path string) (Policy, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return Policy{}, fmt.Errorf("read policy file %s: %w", path, err)
	}

	var fp filePolicy
	if err := yaml.Unmarshal(data, &fp); err != nil {
		return Policy{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}

	for name, w := range fp.Weights {
		n := indicator.Name(name)
		if _, known := p.Weights[n]; !known {
			return Policy{}, fmt.Errorf("policy file %s: unknown indicator %q in weights", path, name)
		}
		p.Weights[n] = w
	}
	if fp.CountCap != nil {
		p.CountCap = *fp.CountCap
	}
	if fp.UnconfirmedFactor != nil {
		p.UnconfirmedFactor = *fp.UnconfirmedFactor
	}
	if fp.ErrorsPenalty != nil {
		p.ErrorsPenalty = *fp.ErrorsPenalty
	}
	if fp.WarningsPenalty != nil {
		p.WarningsPenalty = *fp.WarningsPenalty
	}
	if fp.MediumThreshold != nil {
		p.MediumThreshold = *fp.MediumThreshold
	}
	if fp.HighThreshold != nil {
		p.HighThreshold = *fp.HighThreshold
	}
	if fp.MaxConfirmationMatches != nil {
		p.MaxConfirmationMatches = *fp.MaxConfirmationMatches
	}

	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// Validate rejects policies that would break the scoring contracts.
func (p Policy) Validate() error {
	for _, n := range indicator.All() {
		w, ok := p.Weights[n]
		if !ok {
			return fmt.Errorf("missing weight for indicator %s", n)
		}
		if w < 0 {
			return fmt.Errorf("negative weight %v for indicator %s", w, n)
		}
	}
	if p.CountCap < 1 {
		return fmt.Errorf("count_cap must be >= 1, got %d", p.CountCap)
	}
	if p.UnconfirmedFactor <= 0 || p.UnconfirmedFactor > 1 {
		return fmt.Errorf("unconfirmed_factor must be in (0, 1], got %v", p.UnconfirmedFactor)
	}
	if p.ErrorsPenalty < 0 || p.WarningsPenalty < 0 {
		return fmt.Errorf("validation penalties must be non-negative")
	}
	if p.MediumThreshold <= 0 || p.HighThreshold <= p.MediumThreshold {
		return fmt.Errorf("thresholds must satisfy 0 < medium (%v) < high (%v)", p.MediumThreshold, p.HighThreshold)
	}
	if p.MaxConfirmationMatches < 1 {
		return fmt.Errorf("max_confirmation_matches must be >= 1, got %d", p.MaxConfirmationMatches)
	}
	return nil
}
