package core

import (
	"strings"

	"github.com/arthur-debert/apphide/pkg/catalog"
	"github.com/arthur-debert/apphide/pkg/config"
	"github.com/arthur-debert/apphide/pkg/desktop"
	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/filesystem"
	"github.com/arthur-debert/apphide/pkg/logging"
	"github.com/arthur-debert/apphide/pkg/overrides"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/arthur-debert/apphide/pkg/tracker"
	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultIcon is shown for applications without an Icon key
const DefaultIcon = "application-default-icon"

// Options configures New
type Options struct {
	// FS defaults to the OS filesystem.
	FS types.FS

	// Paths overrides directory discovery; zero values use XDG.
	Paths paths.Options

	// Config defaults to the embedded defaults plus environment.
	Config *config.Config
}

// App is the application context
type App struct {
	fs      types.FS
	paths   paths.Paths
	config  *config.Config
	tracker *tracker.Tracker
	apps    []*overrides.Resolver
	scanned bool
	logger  zerolog.Logger
}

// New resolves the directories and opens the tracker
func New(opts Options) (*App, error) {
	logger := logging.GetLogger("core")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load("", nil)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	pathOpts := opts.Paths
	pathOpts.ExtraDirs = append(append([]string{}, pathOpts.ExtraDirs...), cfg.Search.ExtraDirs...)
	pathOpts.UserOnly = pathOpts.UserOnly || !cfg.Search.IncludeSystem
	if pathOpts.TrackerFile == "" {
		pathOpts.TrackerFile = cfg.Tracker.File
	}
	p, err := paths.New(pathOpts)
	if err != nil {
		return nil, err
	}

	tr, err := tracker.Open(tracker.Options{
		FS:              fs,
		File:            p.TrackerFile(),
		DataRoot:        p.DataHome(),
		LegacyDir:       p.LegacyTrackerDir(),
		ApplicationsDir: p.ApplicationsDir(),
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("data_home", p.DataHome()).
		Strs("roots", p.SearchRoots()).
		Str("tracker", p.TrackerFile()).
		Strs("desktops", cfg.Desktops()).
		Msg("Application context ready")

	return &App{
		fs:      fs,
		paths:   p,
		config:  cfg,
		tracker: tr,
		logger:  logger,
	}, nil
}

// Paths returns the resolved directories
func (a *App) Paths() paths.Paths {
	return a.paths
}

// Config returns the effective configuration
func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) deps() overrides.Deps {
	return overrides.Deps{
		FS:          a.fs,
		Parser:      desktop.NewParser(a.fs),
		Tracker:     a.tracker,
		DataHome:    a.paths.DataHome(),
		SearchRoots: a.paths.SearchRoots(),
		Desktops:    a.config.Desktops(),
	}
}

// resolvers scans once per App
func (a *App) resolvers() ([]*overrides.Resolver, error) {
	if a.scanned {
		return a.apps, nil
	}
	apps, err := catalog.NewScanner(a.deps()).Scan()
	if err != nil {
		return nil, err
	}
	a.apps = apps
	a.scanned = true
	return apps, nil
}

// List returns every displayable application sorted by name
func (a *App) List() ([]Listing, error) {
	apps, err := a.resolvers()
	if err != nil {
		return nil, err
	}

	out := make([]Listing, 0, len(apps))
	for _, r := range apps {
		out = append(out, a.listing(r))
	}
	return out, nil
}

// Find returns the listing for one application
func (a *App) Find(id string) (Listing, error) {
	r, err := a.lookup(id)
	if err != nil {
		return Listing{}, err
	}
	return a.listing(r), nil
}

// SetVisible shows or hides the application with the given desktop file id.
// The .desktop suffix may be omitted.
func (a *App) SetVisible(id string, visible bool) error {
	r, err := a.lookup(id)
	if err != nil {
		return err
	}
	if err := r.SetVisible(visible); err != nil {
		a.logger.Error().Err(err).Str("app", r.ID()).Bool("visible", visible).Msg("Failed to change visibility")
		return err
	}
	return nil
}

func (a *App) lookup(id string) (*overrides.Resolver, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New(errors.ErrInvalidInput, "application id is empty")
	}
	if !strings.HasSuffix(id, desktop.FileExtension) {
		id += desktop.FileExtension
	}

	apps, err := a.resolvers()
	if err != nil {
		return nil, err
	}
	for _, r := range apps {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound, "no application named %s", id).
		WithDetail("id", id)
}

func (a *App) listing(r *overrides.Resolver) Listing {
	icon := r.Icon()
	if icon == "" {
		icon = DefaultIcon
	}
	path := ""
	if cur := r.Current(); cur != nil {
		path = cur.Path()
	}
	return Listing{
		ID:          r.ID(),
		Name:        r.Name(),
		Icon:        icon,
		Description: r.Description(),
		Visible:     r.Visible(),
		Path:        path,
		SavePath:    r.SavePath(),
		Overridden:  r.Overridden(),
		Tracked:     r.Tracked(),
	}
}

// Status reports every file in the tracker manifest
func (a *App) Status() ([]TrackedFile, error) {
	var out []TrackedFile
	for _, path := range a.tracker.Paths() {
		state, err := a.tracker.Check(path)
		if err != nil {
			return nil, err
		}
		out = append(out, TrackedFile{Path: path, State: string(state)})
	}
	return out, nil
}

// Migrate converts the legacy tracker directory, returning the number of
// files added to the manifest
func (a *App) Migrate() (int, error) {
	before := len(a.tracker.Paths())
	if err := a.tracker.MigrateLegacy(a.paths.LegacyTrackerDir(), a.paths.ApplicationsDir()); err != nil {
		return 0, err
	}
	return len(a.tracker.Paths()) - before, nil
}

// Close flushes pending tracker changes
func (a *App) Close() error {
	return a.tracker.Flush()
}
