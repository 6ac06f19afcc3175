package output

import (
	"fmt"
	"strings"
)

// Format is the name of an output format.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats returns the names of the supported formats, for use in flag help.
func Formats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// ParseFormat converts a format name, ignoring case, into a format. The empty string means JSON.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatTable:
		return FormatTable, nil
	}
	return "", fmt.Errorf("unsupported output format '%s', valid formats are %s",
		value, strings.Join(Formats(), ", "))
}
