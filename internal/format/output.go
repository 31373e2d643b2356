// Package format writes CLI payloads as JSON or EDN.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type Format string

const (
	JSON Format = "json"
	EDN  Format = "edn"
)

var ErrUnknownFormat = errors.New("unknown format")

// ValidFormats returns the accepted format names.
func ValidFormats() []Format { return []Format{JSON, EDN} }

func (f Format) IsValid() bool {
	for _, v := range ValidFormats() {
		if f == v {
			return true
		}
	}
	return false
}

// Parse accepts a format name; the empty string means JSON.
func Parse(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return JSON, nil
	}
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (want json or edn)", ErrUnknownFormat, s)
	}
	return f, nil
}

// Write writes v in the requested format.
func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := Parse(format)
	if err != nil {
		return err
	}
	switch f {
	case EDN:
		return WriteEDN(w, v, pretty)
	default:
		return WriteJSON(w, v, pretty)
	}
}

// WriteJSON writes strict JSON followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
