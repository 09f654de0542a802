package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Text is a field that may be written as a string or a number and is kept
// as text. Numbers keep their shortest decimal form: 0.5 becomes "0.5".
type Text string

// UnmarshalJSON accepts strings, numbers and null.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*t = Text(n)
	return nil
}

// UnmarshalTOML accepts TOML strings, integers and floats.
func (t *Text) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*t = Text(v)
	case int64:
		*t = Text(strconv.FormatInt(v, 10))
	case float64:
		*t = Text(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("expected string or number, got %T", v)
	}
	return nil
}

// UnmarshalYAML accepts any scalar.
func (t *Text) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	if n.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(n.Value)
	return nil
}

// UnmarshalText is used for CSV cells.
func (t *Text) UnmarshalText(b []byte) error {
	*t = Text(b)
	return nil
}

// MarshalText writes the text unchanged.
func (t Text) MarshalText() ([]byte, error) {
	return []byte(t), nil
}
