package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/adapters/driving/watch"
	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Register PDFs in a folder as they appear",
	Long: `Register every PDF already under dir, then keep watching dir and its
subfolders for new PDFs until interrupted.

When library.root is set, dir must be inside it and documents are stored
relative to it.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var watchOnce bool

func init() {
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "Scan once and exit")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	dir := args[0]

	w := watch.New(libraryService, libraryRoot)
	w.OnRegister = func(doc domain.Document) {
		cmd.Printf("  %s  %s\n", doc.ID, doc.DecodedPath())
	}

	count, err := w.Scan(cmd.Context(), dir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	cmd.Printf("Found %d PDFs in %s\n", count, dir)
	if watchOnce {
		return nil
	}

	cmd.Println("Watching for new PDFs. Press Ctrl+C to stop.")
	return w.Run(cmd.Context(), dir)
}
