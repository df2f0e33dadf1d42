// Package json prints results as indented JSON documents, one per call
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/apphide/pkg/errors"
)

type errorDocument struct {
	Error   string                 `json:"error"`
	Code    errors.ErrorCode       `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type messageDocument struct {
	Message string `json:"message"`
}

// Renderer writes JSON documents
type Renderer struct {
	enc *json.Encoder
}

// New returns a renderer writing to w. Paths and names are written
// unescaped so "&" in a launcher name stays readable.
func New(w io.Writer) (*Renderer, error) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return &Renderer{enc: enc}, nil
}

// RenderResult encodes result as is; the display types carry their tags
func (r *Renderer) RenderResult(result interface{}) error {
	return r.enc.Encode(result)
}

// RenderError encodes err with its code and details. Errors without a
// code carry only the message.
func (r *Renderer) RenderError(err error) error {
	doc := errorDocument{
		Error:   errors.Message(err),
		Details: errors.GetErrorDetails(err),
	}
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		doc.Code = code
	}
	return r.enc.Encode(doc)
}

func (r *Renderer) RenderMessage(msg string) error {
	return r.enc.Encode(messageDocument{Message: msg})
}
