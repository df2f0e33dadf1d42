package ui

import (
	"io"
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how command results are printed
type Format int

const (
	FormatAuto Format = iota
	FormatTerminal
	FormatText
	FormatJSON
)

// formatNames lists the accepted spellings of each format, canonical first
var formatNames = map[Format][]string{
	FormatAuto:     {"auto", ""},
	FormatTerminal: {"term", "terminal"},
	FormatText:     {"text", "plain"},
	FormatJSON:     {"json"},
}

func (f Format) String() string {
	if names, ok := formatNames[f]; ok {
		return names[0]
	}
	return "unknown"
}

// ParseFormat accepts any spelling in formatNames, ignoring case
func ParseFormat(s string) (Format, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for format, names := range formatNames {
		for _, name := range names {
			if name == want {
				return format, nil
			}
		}
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput, "unknown format: %s", s).
		WithDetail("format", s)
}

// DetectFormat picks the format used for FormatAuto. Styled output is only
// written to a colour-capable terminal; pipes, files and in-memory writers
// get plain text.
func DetectFormat(w io.Writer) Format {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatText
	}
	if termenv.NewOutput(w).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
