// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/apphide/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.AppList:
		return r.renderApps(v)
	case *display.ChangeResult:
		return r.renderChanges(v)
	case *display.StatusResult:
		return r.renderStatus(v)
	case *display.MigrateResult:
		_, err := fmt.Fprintf(r.output, "Migrated %d file(s) from %s\n", v.Migrated, v.LegacyDir)
		return err
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderApps(list *display.AppList) error {
	if len(list.Apps) == 0 {
		_, err := fmt.Fprintln(r.output, "No applications found")
		return err
	}
	for _, app := range list.Apps {
		if _, err := fmt.Fprintf(r.output, "%-28s %-8s %s\n", app.Name, display.StateLabel(app.Visible), app.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderChanges(res *display.ChangeResult) error {
	for _, c := range res.Changes {
		var err error
		if c.Changed {
			_, err = fmt.Fprintf(r.output, "%s is now %s (%s)\n", c.App.Name, display.StateLabel(c.App.Visible), c.App.ID)
		} else {
			_, err = fmt.Fprintf(r.output, "%s is already %s (%s)\n", c.App.Name, display.StateLabel(c.App.Visible), c.App.ID)
		}
		if err != nil {
			return err
		}
	}
	if res.Message != "" && res.AnyChanged() {
		if _, err := fmt.Fprintln(r.output, res.Message); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderStatus(res *display.StatusResult) error {
	if _, err := fmt.Fprintf(r.output, "Manifest: %s\n", res.Manifest); err != nil {
		return err
	}
	if len(res.Files) == 0 {
		_, err := fmt.Fprintln(r.output, "No tracked files")
		return err
	}
	for _, f := range res.Files {
		if _, err := fmt.Fprintf(r.output, "%-9s %s\n", f.State, f.Path); err != nil {
			return err
		}
	}
	return nil
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
