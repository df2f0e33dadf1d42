package core

// Listing is one application as presented to the user
type Listing struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Visible     bool   `json:"visible"`

	// Path is the effective descriptor.
	Path string `json:"path"`

	// SavePath is where an override is written.
	SavePath string `json:"save_path"`

	// Overridden is true when a user file shadows a system one.
	Overridden bool `json:"overridden"`

	// Tracked is true when the save path was written by apphide.
	Tracked bool `json:"tracked"`
}

// TrackedFile is one manifest entry and its state on disk
type TrackedFile struct {
	Path  string `json:"path"`
	State string `json:"state"`
}
