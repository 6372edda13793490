package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonwise/internal/carbon"
)

// DecodeJSON reads one JSON object from r and parses it.
// An empty body or a literal null yields the default input.
func DecodeJSON(r io.Reader) (carbon.Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return carbon.Input{}, fmt.Errorf("reading profile: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Parse(nil)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return carbon.Input{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return Parse(raw)
}

// DecodeYAML reads one YAML document from r and parses it. JSON documents
// are valid YAML and decode the same way. An empty document yields the
// default input.
func DecodeYAML(r io.Reader) (carbon.Input, error) {
	raw, err := ReadYAML(r)
	if err != nil {
		return carbon.Input{}, err
	}
	return Parse(raw)
}

// ReadYAML reads one YAML document from r as an untyped record, for callers
// that merge overrides before calling Parse. An empty document yields nil.
func ReadYAML(r io.Reader) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return raw, nil
}
