package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Hide and show applications in the desktop menu"
	MsgListShort       = "List applications shown in the menu"
	MsgHideShort       = "Hide applications from the menu"
	MsgShowShort       = "Show hidden applications again"
	MsgStatusShort     = "Show files written by apphide"
	MsgMigrateShort    = "Import the legacy tracking directory"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgRelogin = "You may need to log out and back in for the change to take effect"

	// Error messages
	MsgErrListApps   = "failed to list applications: %w"
	MsgErrStatus     = "failed to read the manifest: %w"
	MsgErrMigrate    = "failed to migrate: %w"
	MsgErrConfig     = "failed to render configuration: %w"
	MsgErrFilterBoth = "--hidden and --visible are mutually exclusive"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagConfigDir = "Directory holding config.toml and the manifest"
	MsgFlagDesktop   = "Current desktop names, ':' separated (overrides XDG_CURRENT_DESKTOP)"
	MsgFlagUserOnly  = "Only consider applications in the user data directory"
	MsgFlagHidden    = "Only list hidden applications"
	MsgFlagVisible   = "Only list visible applications"
	MsgFlagDefaults  = "Print the commented default configuration instead"
	MsgFlagManDir    = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimRight(msgListExampleRaw, "\n")

	//go:embed msgs/hide-long.txt
	msgHideLongRaw string
	MsgHideLong    = strings.TrimSpace(msgHideLongRaw)

	//go:embed msgs/hide-example.txt
	msgHideExampleRaw string
	MsgHideExample    = strings.TrimRight(msgHideExampleRaw, "\n")

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/show-example.txt
	msgShowExampleRaw string
	MsgShowExample    = strings.TrimRight(msgShowExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/migrate-long.txt
	msgMigrateLongRaw string
	MsgMigrateLong    = strings.TrimSpace(msgMigrateLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
