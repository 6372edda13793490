// Package report renders footprint results for the terminal and for
// machine consumption.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonwise/internal/carbon"
)

// Format selects how a result is written.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat is returned for an output format other than text, json or yaml.
const ErrUnknownFormat = constError("unknown output format")

// ParseFormat validates a --output flag value. Matching is case-insensitive
// and "yml" is accepted for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (want text, json or yaml)", ErrUnknownFormat, s)
	}
}

// Envelope mirrors the HTTP success envelope.
type Envelope struct {
	Success bool          `json:"success" yaml:"success"`
	Data    carbon.Result `json:"data" yaml:"data"`
}

// Write renders res to w in the requested format.
func Write(w io.Writer, res carbon.Result, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, res)
	case FormatYAML:
		return writeYAML(w, res)
	case FormatText, "":
		return RenderText(w, res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, res carbon.Result) error {
	data, err := json.MarshalIndent(Envelope{Success: true, Data: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing json report: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, res carbon.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Envelope{Success: true, Data: res}); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}
