// Package display defines the results commands hand to the renderers.
package display

import "github.com/arthur-debert/apphide/pkg/core"

// Filter values for AppList
const (
	FilterAll     = "all"
	FilterHidden  = "hidden"
	FilterVisible = "visible"
)

// AppList is the result of the list command
type AppList struct {
	Filter string         `json:"filter"`
	Apps   []core.Listing `json:"apps"`
}

// Change is the outcome for one application of hide or show
type Change struct {
	App     core.Listing `json:"app"`
	Changed bool         `json:"changed"`
}

// ChangeResult is the result of the hide and show commands
type ChangeResult struct {
	Command string   `json:"command"`
	Changes []Change `json:"changes"`
	Message string   `json:"message,omitempty"`
}

// AnyChanged reports whether at least one application changed state
func (r *ChangeResult) AnyChanged() bool {
	for _, c := range r.Changes {
		if c.Changed {
			return true
		}
	}
	return false
}

// StatusResult is the result of the status command
type StatusResult struct {
	Manifest string             `json:"manifest"`
	Files    []core.TrackedFile `json:"files"`
}

// MigrateResult is the result of the migrate command
type MigrateResult struct {
	LegacyDir string `json:"legacy_dir"`
	Migrated  int    `json:"migrated"`
}

// FilterApps keeps the listings matching filter
func FilterApps(apps []core.Listing, filter string) []core.Listing {
	if filter == "" || filter == FilterAll {
		return apps
	}
	out := make([]core.Listing, 0, len(apps))
	for _, app := range apps {
		if (filter == FilterVisible) == app.Visible {
			out = append(out, app)
		}
	}
	return out
}

// StateLabel returns the word used for an application's visibility
func StateLabel(visible bool) string {
	if visible {
		return "visible"
	}
	return "hidden"
}
