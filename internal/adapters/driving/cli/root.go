// Package cli provides the cobra command tree for pdfindex.
// It is a driving adapter: every command talks to the core through the
// driving ports injected with SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
	"github.com/custodia-labs/pdfindex/internal/logger"
)

var (
	version = "dev"
	verbose bool

	libraryService   driving.LibraryService
	highlightService driving.HighlightService
	topicService     driving.TopicService
	bookmarkService  driving.BookmarkService
	backupService    driving.BackupService
	integrityService driving.IntegrityService
	settingsService  driving.SettingsService

	// libraryRoot is where watched folders must live.
	libraryRoot string
)

var rootCmd = &cobra.Command{
	Use:   "pdfindex",
	Short: "Topic and highlight index for your PDF library",
	Long: `pdfindex keeps a local index of PDF documents, the rectangular highlights
drawn on their pages, and a tree of topics those highlights are filed under.

Everything is stored locally. Use the subcommands to manage documents,
highlights, topics and bookmarks, export or import backups, audit the store,
or browse it interactively with "pdfindex tui".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

// Services holds the driving ports used by the commands.
type Services struct {
	Library   driving.LibraryService
	Highlight driving.HighlightService
	Topic     driving.TopicService
	Bookmark  driving.BookmarkService
	Backup    driving.BackupService
	Integrity driving.IntegrityService
	Settings  driving.SettingsService

	// LibraryRoot is the configured library root, used by the watcher.
	LibraryRoot string
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	libraryService = s.Library
	highlightService = s.Highlight
	topicService = s.Topic
	bookmarkService = s.Bookmark
	backupService = s.Backup
	integrityService = s.Integrity
	settingsService = s.Settings
	libraryRoot = s.LibraryRoot
}

// SetVersion sets the version reported by "pdfindex version".
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
