// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/ui/display"
	"github.com/arthur-debert/apphide/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
)

// Renderer provides rich terminal output styled from the style registry
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{output: w}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.AppList:
		return r.print(r.apps(v))
	case *display.ChangeResult:
		return r.print(r.changes(v))
	case *display.StatusResult:
		return r.print(r.status(v))
	case *display.MigrateResult:
		return r.print(fmt.Sprintf("%s %s\n",
			styles.Render("Success", fmt.Sprintf("Migrated %d file(s) from", v.Migrated)),
			styles.Render("FilePath", v.LegacyDir)))
	default:
		// For unknown types, just print them
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) print(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}

func stateCell(visible bool) string {
	if visible {
		return styles.Render("Visible", display.StateLabel(true))
	}
	return styles.Render("Hidden", display.StateLabel(false))
}

func (r *Renderer) apps(list *display.AppList) string {
	var b strings.Builder
	title := "Applications"
	if list.Filter != "" && list.Filter != display.FilterAll {
		title = fmt.Sprintf("Applications (%s)", list.Filter)
	}
	b.WriteString(styles.Render("Header", title) + "\n")

	if len(list.Apps) == 0 {
		b.WriteString(styles.Render("Muted", "No applications found") + "\n")
		return b.String()
	}

	for _, app := range list.Apps {
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Render("Name", app.Name),
			stateCell(app.Visible),
			styles.Render("ID", app.ID),
		)
		b.WriteString(row + "\n")
		if app.Description != "" {
			b.WriteString("  " + styles.Render("Description", app.Description) + "\n")
		}
	}
	return b.String()
}

func (r *Renderer) changes(res *display.ChangeResult) string {
	var b strings.Builder
	for _, c := range res.Changes {
		name := styles.Render("Bold", c.App.Name)
		if c.Changed {
			fmt.Fprintf(&b, "%s %s is now %s\n", styles.Render("Success", "✓"), name, stateCell(c.App.Visible))
		} else {
			fmt.Fprintf(&b, "%s %s is already %s\n", styles.Render("Muted", "-"), name, stateCell(c.App.Visible))
		}
	}
	if res.Message != "" && res.AnyChanged() {
		b.WriteString("\n" + styles.Render("Info", res.Message) + "\n")
	}
	return b.String()
}

func (r *Renderer) status(res *display.StatusResult) string {
	var b strings.Builder
	b.WriteString(styles.Render("Header", "Tracked files") + "\n")
	b.WriteString(styles.Render("Muted", "manifest ") + styles.Render("FilePath", res.Manifest) + "\n")
	if len(res.Files) == 0 {
		b.WriteString(styles.Render("Muted", "No tracked files") + "\n")
		return b.String()
	}
	for _, f := range res.Files {
		style := "Success"
		switch f.State {
		case "modified":
			style = "Warning"
		case "missing":
			style = "Error"
		}
		fmt.Fprintf(&b, "%s %s\n", styles.GetStyle(style).Width(9).Render(f.State), f.Path)
	}
	return b.String()
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	msg := styles.Render("Error", "Error:") + " " + errors.Message(err)
	if code := errors.GetErrorCode(err); code != errors.ErrUnknown {
		msg += " " + styles.Render("Muted", "["+string(code)+"]")
	}
	return r.print(msg + "\n")
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.print(styles.Render("Info", msg) + "\n")
}
