package cli

import (
	"embed"

	"github.com/arthur-debert/apphide/internal/version"
	"github.com/arthur-debert/apphide/pkg/cobrax/topics"
	"github.com/arthur-debert/apphide/pkg/config"
	"github.com/arthur-debert/apphide/pkg/core"
	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/logging"
	"github.com/arthur-debert/apphide/pkg/paths"
	"github.com/arthur-debert/apphide/pkg/types"
	"github.com/arthur-debert/apphide/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// rootOptions holds the global flags
type rootOptions struct {
	verbosity int
	format    string
	configDir string
	desktop   string
	userOnly  bool

	// fs and paths replace the OS filesystem and XDG discovery in tests
	fs    types.FS
	paths paths.Options
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootOptions{})
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "apphide",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.format, "format", "f", "", MsgFlagFormat)
	flags.StringVar(&opts.configDir, "config-dir", "", MsgFlagConfigDir)
	flags.StringVar(&opts.desktop, "desktop", "", MsgFlagDesktop)
	flags.BoolVar(&opts.userOnly, "user-only", false, MsgFlagUserOnly)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newHideCmd(opts))
	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newMigrateCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	// Topic-based help from the embedded markdown files
	topicOpts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.InitializeWithOptions(rootCmd, topicFiles, "topics", topicOpts); err != nil {
		log.Warn().Err(err).Msg("Failed to load help topics")
	}

	return rootCmd
}

// pathOptions merges the flags into the directory overrides
func (o *rootOptions) pathOptions() paths.Options {
	p := o.paths
	if o.configDir != "" {
		p.ConfigDir = o.configDir
	}
	return p
}

// loadConfig reads the configuration with the command line flags applied last
func (o *rootOptions) loadConfig() (*config.Config, error) {
	p, err := paths.New(o.pathOptions())
	if err != nil {
		return nil, err
	}

	overrides := map[string]interface{}{}
	if o.format != "" {
		overrides["output.format"] = o.format
	}
	if o.desktop != "" {
		overrides["desktop.current"] = o.desktop
	}
	if o.userOnly {
		overrides["search.include_system"] = false
	}

	return config.Load(p.ConfigDir(), overrides)
}

// session is what a command runs against
type session struct {
	app      *core.App
	renderer ui.Renderer
}

// open builds the application context and the renderer for cmd
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}

	format, err := ui.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	app, err := core.New(core.Options{
		FS:     o.fs,
		Paths:  o.pathOptions(),
		Config: cfg,
	})
	if err != nil {
		return nil, err
	}

	return &session{app: app, renderer: renderer}, nil
}

func (s *session) close() {
	if err := s.app.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to save the manifest")
	}
}

// RenderError prints err to the command's error stream in the format
// selected by --format
func RenderError(cmd *cobra.Command, err error) {
	value, _ := cmd.PersistentFlags().GetString("format")
	format, parseErr := ui.ParseFormat(value)
	if parseErr != nil {
		format = ui.FormatText
	}
	renderer, rerr := ui.NewRenderer(format, cmd.ErrOrStderr())
	if rerr != nil {
		return
	}
	_ = renderer.RenderError(err)
}
