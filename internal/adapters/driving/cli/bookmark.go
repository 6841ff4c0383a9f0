package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"bm"},
	Short:   "Manage page bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [pdf-id] [page] [title]",
	Short: "Bookmark a page",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  runBookmarkAdd,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list [pdf-id]",
	Short: "List the bookmarks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkList,
}

var bookmarkDeleteCmd = &cobra.Command{
	Use:   "delete [bookmark-id]",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkDelete,
}

func init() {
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkDeleteCmd)
	rootCmd.AddCommand(bookmarkCmd)
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	page, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid page %q: %w", args[1], err)
	}
	title := ""
	if len(args) == 3 {
		title = args[2]
	}

	b, err := bookmarkService.Add(cmd.Context(), args[0], page, title)
	if err != nil {
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	cmd.Printf("Created %s on %s page %d\n", b.ID, b.PDFID, b.Page)
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	bookmarks, err := bookmarkService.ListByPDF(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		cmd.Println("No bookmarks.")
		return nil
	}
	for _, b := range bookmarks {
		cmd.Printf("  %s  p.%d  %s\n", b.ID, b.Page, b.Title)
	}
	return nil
}

func runBookmarkDelete(cmd *cobra.Command, args []string) error {
	if bookmarkService == nil {
		return errors.New("bookmark service not configured")
	}

	if err := bookmarkService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
