package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/apphide/internal/version"
	"github.com/arthur-debert/apphide/pkg/config"
	"github.com/arthur-debert/apphide/pkg/desktop"
	"github.com/arthur-debert/apphide/pkg/errors"
	"github.com/arthur-debert/apphide/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// appCompletion completes desktop file ids of applications whose
// visibility differs from visible
func appCompletion(opts *rootOptions, visible bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, err := opts.open(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer s.close()

		apps, err := s.app.List()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		var ids []string
		for _, app := range apps {
			if app.Visible == visible {
				continue
			}
			id := strings.TrimSuffix(app.ID, desktop.FileExtension)
			if contains(args, id) || contains(args, app.ID) {
				continue
			}
			ids = append(ids, id)
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var hidden, visible bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			apps, err := s.app.List()
			if err != nil {
				return fmt.Errorf(MsgErrListApps, err)
			}

			filter := display.FilterAll
			switch {
			case hidden:
				filter = display.FilterHidden
			case visible:
				filter = display.FilterVisible
			}
			log.Info().Int("apps", len(apps)).Str("filter", filter).Msg("Listing applications")

			return s.renderer.RenderResult(&display.AppList{
				Filter: filter,
				Apps:   display.FilterApps(apps, filter),
			})
		},
	}

	cmd.Flags().BoolVar(&hidden, "hidden", false, MsgFlagHidden)
	cmd.Flags().BoolVar(&visible, "visible", false, MsgFlagVisible)
	cmd.MarkFlagsMutuallyExclusive("hidden", "visible")

	return cmd
}

func newHideCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "hide <app>...",
		Short:             MsgHideShort,
		Long:              MsgHideLong,
		Example:           MsgHideExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: appCompletion(opts, false),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args, false)
		},
	}
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "show <app>...",
		Short:             MsgShowShort,
		Long:              MsgShowLong,
		Example:           MsgShowExample,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: appCompletion(opts, true),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToggle(cmd, opts, args, true)
		},
	}
}

// runToggle applies the visibility to every named application in order.
// On failure the changes made so far are still reported.
func runToggle(cmd *cobra.Command, opts *rootOptions, ids []string, visible bool) error {
	s, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	result := &display.ChangeResult{Command: cmd.Name(), Message: MsgRelogin}

	var failure error
	for _, id := range ids {
		before, err := s.app.Find(id)
		if err != nil {
			failure = err
			break
		}
		if err := s.app.SetVisible(id, visible); err != nil {
			failure = err
			break
		}
		after, err := s.app.Find(id)
		if err != nil {
			failure = err
			break
		}
		result.Changes = append(result.Changes, display.Change{
			App:     after,
			Changed: before.Visible != after.Visible,
		})
	}

	if len(result.Changes) > 0 {
		if err := s.renderer.RenderResult(result); err != nil {
			return err
		}
	}
	return failure
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			files, err := s.app.Status()
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}

			return s.renderer.RenderResult(&display.StatusResult{
				Manifest: s.app.Paths().TrackerFile(),
				Files:    files,
			})
		},
	}
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "migrate",
		Short:   MsgMigrateShort,
		Long:    MsgMigrateLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			migrated, err := s.app.Migrate()
			if err != nil {
				return fmt.Errorf(MsgErrMigrate, err)
			}

			return s.renderer.RenderResult(&display.MigrateResult{
				LegacyDir: s.app.Paths().LegacyTrackerDir(),
				Migrated:  migrated,
			})
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GenerateConfigContent())
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			data, err := config.Generate(cfg)
			if err != nil {
				return fmt.Errorf(MsgErrConfig, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Long:    MsgVersionLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "apphide version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return errors.Newf(errors.ErrInvalidInput, "unsupported shell: %s", args[0])
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
			}
			if err := doc.GenManTree(cmd.Root(), ManHeader(), dir); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write man pages to %s", dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)

	return cmd
}

// ManHeader is the header of the generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "APPHIDE",
		Section: "1",
		Source:  "apphide " + version.Version,
		Manual:  "apphide manual",
	}
}
