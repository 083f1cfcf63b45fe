// Package planfile reads wedding plan documents: the rituals, events and
// vendors of one wedding, written as YAML or JSON.
package planfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/mangala/internal/conflict"
	"github.com/alexanderramin/mangala/internal/domain"
	"github.com/alexanderramin/mangala/internal/generator"
	"gopkg.in/yaml.v3"
)

type Plan struct {
	WeddingID           string          `json:"weddingId" yaml:"weddingId"`
	WeddingDate         string          `json:"weddingDate" yaml:"weddingDate"`
	WeddingType         string          `json:"weddingType,omitempty" yaml:"weddingType,omitempty"`
	Rituals             []string        `json:"rituals" yaml:"rituals"`
	Events              []domain.Event  `json:"events,omitempty" yaml:"events,omitempty"`
	Vendors             []domain.Vendor `json:"vendors,omitempty" yaml:"vendors,omitempty"`
	CulturalPreferences []string        `json:"culturalPreferences,omitempty" yaml:"culturalPreferences,omitempty"`
}

// Format is a plan document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("plan %s: unsupported extension (use .yaml, .yml or .json)", path)
}

// Load reads and validates the plan at path.
func Load(path string) (*Plan, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan: %w", err)
	}
	p, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return p, nil
}

// Decode parses a plan without validating it. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Plan, error) {
	var p Plan
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown plan format %q", format)
	}
	return &p, nil
}

// Validate checks the fields every command relies on. Unknown ritual ids
// are allowed; generation skips them.
func (p *Plan) Validate() error {
	var errs []error
	if strings.TrimSpace(p.WeddingID) == "" {
		errs = append(errs, errors.New("weddingId is required"))
	}
	if _, err := domain.ParseDate(p.WeddingDate); err != nil {
		errs = append(errs, fmt.Errorf("weddingDate: %w", err))
	}

	eventIDs := make(map[string]bool, len(p.Events))
	for i, e := range p.Events {
		switch {
		case e.ID == "":
			errs = append(errs, fmt.Errorf("events[%d]: id is required", i))
		case eventIDs[e.ID]:
			errs = append(errs, fmt.Errorf("events[%d]: duplicate id %q", i, e.ID))
		}
		eventIDs[e.ID] = true
		if _, err := domain.ParseDate(e.Date); err != nil {
			errs = append(errs, fmt.Errorf("events[%d] %s: %w", i, e.ID, err))
		}
		for _, clock := range []struct{ name, value string }{{"startTime", e.StartTime}, {"endTime", e.EndTime}} {
			if clock.value == "" {
				continue
			}
			if _, ok := domain.ParseClock(clock.value); !ok {
				errs = append(errs, fmt.Errorf("events[%d] %s: %s %q is not HH:MM", i, e.ID, clock.name, clock.value))
			}
		}
	}

	vendorIDs := make(map[string]bool, len(p.Vendors))
	for i, v := range p.Vendors {
		switch {
		case v.ID == "":
			errs = append(errs, fmt.Errorf("vendors[%d]: id is required", i))
		case vendorIDs[v.ID]:
			errs = append(errs, fmt.Errorf("vendors[%d]: duplicate id %q", i, v.ID))
		}
		vendorIDs[v.ID] = true
	}
	return errors.Join(errs...)
}

func (p *Plan) GenerationRequest() generator.GenerationRequest {
	return generator.GenerationRequest{
		WeddingID:      p.WeddingID,
		Rituals:        p.Rituals,
		WeddingDate:    p.WeddingDate,
		CurrentEvents:  p.Events,
		CurrentVendors: p.Vendors,
	}
}

func (p *Plan) DetectionRequest() conflict.DetectionRequest {
	return conflict.DetectionRequest{
		WeddingID:           p.WeddingID,
		Events:              p.Events,
		Vendors:             p.Vendors,
		WeddingType:         p.WeddingType,
		CulturalPreferences: p.CulturalPreferences,
	}
}
