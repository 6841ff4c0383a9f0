package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

var pdfCmd = &cobra.Command{
	Use:     "pdf",
	Aliases: []string{"doc"},
	Short:   "Manage registered PDF documents",
	Long: `List, open, and remove the PDF documents known to the index.

Document paths start with "/" and are resolved against the library root
setting when one is configured.`,
}

var pdfListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runPDFList,
}

var pdfOpenCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Register a document and mark it as last opened",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFOpen,
}

var pdfGetCmd = &cobra.Command{
	Use:   "get [pdf-id]",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFGet,
}

var pdfRemoveCmd = &cobra.Command{
	Use:   "remove [pdf-id]",
	Short: "Remove a document with its highlights and bookmarks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPDFRemove,
}

var pdfLastCmd = &cobra.Command{
	Use:   "last",
	Short: "Show the last opened document",
	Long: `Show the last opened document if its file still exists and is a PDF.
A stale pointer is cleared.`,
	Args: cobra.NoArgs,
	RunE: runPDFLast,
}

var pdfDirectionCmd = &cobra.Command{
	Use:   "direction [pdf-id] [ltr|rtl]",
	Short: "Show or set the reading direction of a document",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPDFDirection,
}

var pdfTitle string

func init() {
	pdfOpenCmd.Flags().StringVarP(&pdfTitle, "title", "t", "", "Display title (defaults to the file name)")

	pdfCmd.AddCommand(pdfListCmd)
	pdfCmd.AddCommand(pdfOpenCmd)
	pdfCmd.AddCommand(pdfGetCmd)
	pdfCmd.AddCommand(pdfRemoveCmd)
	pdfCmd.AddCommand(pdfLastCmd)
	pdfCmd.AddCommand(pdfDirectionCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runPDFList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	docs, err := libraryService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}
	if len(docs) == 0 {
		cmd.Println("No documents registered.")
		return nil
	}

	lastID, err := libraryService.GetLastOpened(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read last opened document: %w", err)
	}

	for _, doc := range docs {
		marker := " "
		if doc.ID == lastID {
			marker = "*"
		}
		cmd.Printf("%s %s  %s\n", marker, doc.ID, doc.DecodedPath())
		if doc.Title != "" {
			cmd.Printf("    Title: %s\n", doc.Title)
		}
	}
	cmd.Printf("\nTotal: %d documents\n", len(docs))
	return nil
}

func runPDFOpen(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Open(cmd.Context(), args[0], pdfTitle)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened %s\n", doc.ID)
	cmd.Printf("  Title: %s\n", doc.Title)
	cmd.Printf("  Path:  %s\n", doc.DecodedPath())
	return nil
}

func runPDFGet(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	dir, err := libraryService.ReadingDirection(cmd.Context(), doc.ID)
	if err != nil {
		return fmt.Errorf("failed to get reading direction: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  Title:     %s\n", doc.Title)
	cmd.Printf("  Path:      %s\n", doc.DecodedPath())
	cmd.Printf("  Direction: %s\n", dir.Description())

	if highlightService != nil {
		hs, err := highlightService.ListByPDF(cmd.Context(), doc.ID)
		if err != nil {
			return fmt.Errorf("failed to list highlights: %w", err)
		}
		cmd.Printf("  Highlights: %d\n", len(hs))
	}
	return nil
}

func runPDFRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	if err := libraryService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runPDFLast(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	doc, err := libraryService.ResolveLastOpened(cmd.Context())
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No last opened document.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve last opened document: %w", err)
	}

	cmd.Printf("%s  %s\n", doc.ID, doc.DecodedPath())
	return nil
}

func runPDFDirection(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	id := args[0]
	if len(args) == 1 {
		dir, err := libraryService.ReadingDirection(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get reading direction: %w", err)
		}
		cmd.Println(dir.String())
		return nil
	}

	dir := domain.ReadingDirection(args[1])
	if !dir.IsValid() {
		return fmt.Errorf("invalid reading direction %q: use ltr or rtl", args[1])
	}
	if err := libraryService.SetReadingDirection(cmd.Context(), id, dir); err != nil {
		return fmt.Errorf("failed to set reading direction: %w", err)
	}
	cmd.Printf("Reading direction of %s set to %s\n", id, dir.Description())
	return nil
}
