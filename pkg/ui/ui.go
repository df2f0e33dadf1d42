// Package ui prints command results: application listings, toggle
// outcomes, manifest status and migration reports, as styled terminal
// output, plain text or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/ui/json"
	"github.com/arthur-debert/apphide/pkg/ui/terminal"
	"github.com/arthur-debert/apphide/pkg/ui/text"
)

// Renderer prints the values in pkg/ui/display
type Renderer interface {
	RenderResult(result interface{}) error
	RenderError(err error) error
	RenderMessage(msg string) error
}

var constructors = map[Format]func(io.Writer) (Renderer, error){
	FormatTerminal: func(w io.Writer) (Renderer, error) { return renderer(terminal.New(w)) },
	FormatText:     func(w io.Writer) (Renderer, error) { return renderer(text.New(w)) },
	FormatJSON:     func(w io.Writer) (Renderer, error) { return renderer(json.New(w)) },
}

// renderer keeps a failed constructor from returning a typed nil
func renderer[R Renderer](r R, err error) (Renderer, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}

// NewRenderer returns the renderer for format writing to output.
// FormatAuto is resolved with DetectFormat.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	if format == FormatAuto {
		format = DetectFormat(output)
	}
	build, ok := constructors[format]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %d", int(format))
	}
	return build(output)
}
