package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// Format is a file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatCSV, FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be one of: csv, toml, yaml, json)", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot tell the format of %q: no file extension", path)
	}
	return ParseFormat(ext)
}

func unsupportedReport(f Format) error {
	return errors.New(errors.ErrCodeInvalidFormat, "reports can be written as json or csv, not %s", f)
}
