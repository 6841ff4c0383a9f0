package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
	"github.com/custodia-labs/pdfindex/internal/core/ports/driving"
)

var highlightCmd = &cobra.Command{
	Use:     "highlight",
	Aliases: []string{"hl"},
	Short:   "Manage highlights",
	Long: `Create, list, and delete rectangular highlights.

Coordinates are page-local pixels at the canonical page width.`,
}

var highlightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a highlight from a box",
	Args:  cobra.NoArgs,
	RunE:  runHighlightAdd,
}

var highlightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List highlights of a document or topic",
	Long: `List highlights by document (--pdf), optionally narrowed to one page
(--page), or by topic (--topic).`,
	Args: cobra.NoArgs,
	RunE: runHighlightList,
}

var highlightGetCmd = &cobra.Command{
	Use:   "get [highlight-id]",
	Short: "Show a highlight",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightGet,
}

var highlightDeleteCmd = &cobra.Command{
	Use:   "delete [highlight-id]",
	Short: "Delete a highlight",
	Args:  cobra.ExactArgs(1),
	RunE:  runHighlightDelete,
}

var highlightTopicsCmd = &cobra.Command{
	Use:   "topics [highlight-id] [topic-ids]",
	Short: "Replace the topics of a highlight",
	Long: `Replace the topic set of a highlight with a comma separated list of
topic ids. An empty list leaves the highlight without topics.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runHighlightTopics,
}

var (
	hlPDF         string
	hlPage        int
	hlTop         float64
	hlLeft        float64
	hlWidth       float64
	hlHeight      float64
	hlTopics      string
	hlBook        string
	hlVolume      string
	hlChapter     string
	hlTags        string
	hlDescription string
	hlTopic       string
)

func init() {
	f := highlightAddCmd.Flags()
	f.StringVar(&hlPDF, "pdf", "", "Document id")
	f.IntVar(&hlPage, "page", 0, "Page number (1-based)")
	f.Float64Var(&hlTop, "top", 0, "Top edge in pixels")
	f.Float64Var(&hlLeft, "left", 0, "Left edge in pixels")
	f.Float64Var(&hlWidth, "width", 0, "Box width in pixels")
	f.Float64Var(&hlHeight, "height", 0, "Box height in pixels")
	f.StringVar(&hlTopics, "topics", "", "Comma separated topic ids")
	f.StringVar(&hlBook, "book", "", "Book")
	f.StringVar(&hlVolume, "volume", "", "Volume")
	f.StringVar(&hlChapter, "chapter", "", "Chapter")
	f.StringVar(&hlTags, "tags", "", "Comma separated tags")
	f.StringVarP(&hlDescription, "description", "d", "", "Description")

	highlightListCmd.Flags().StringVar(&hlPDF, "pdf", "", "Document id")
	highlightListCmd.Flags().IntVar(&hlPage, "page", 0, "Only this page (requires --pdf)")
	highlightListCmd.Flags().StringVar(&hlTopic, "topic", "", "Topic id")

	highlightCmd.AddCommand(highlightAddCmd)
	highlightCmd.AddCommand(highlightListCmd)
	highlightCmd.AddCommand(highlightGetCmd)
	highlightCmd.AddCommand(highlightDeleteCmd)
	highlightCmd.AddCommand(highlightTopicsCmd)
	rootCmd.AddCommand(highlightCmd)
}

func runHighlightAdd(cmd *cobra.Command, _ []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	h, err := highlightService.Create(cmd.Context(), driving.HighlightDraft{
		PDFID:       hlPDF,
		Page:        hlPage,
		Box:         domain.Box{Top: hlTop, Left: hlLeft, Width: hlWidth, Height: hlHeight},
		TopicIDs:    splitIDs(hlTopics),
		Book:        hlBook,
		Volume:      hlVolume,
		Chapter:     hlChapter,
		Tags:        hlTags,
		Description: hlDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to create highlight: %w", err)
	}

	cmd.Printf("Created %s on %s page %d\n", h.ID, h.PDFID, h.Page)
	return nil
}

func runHighlightList(cmd *cobra.Command, _ []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	var (
		hs  []domain.Highlight
		err error
	)
	switch {
	case hlTopic != "" && hlPDF != "":
		return errors.New("use either --pdf or --topic, not both")
	case hlTopic != "":
		hs, err = highlightService.ListByTopic(cmd.Context(), hlTopic)
	case hlPDF != "" && hlPage > 0:
		hs, err = highlightService.ListForPage(cmd.Context(), hlPDF, hlPage)
	case hlPDF != "":
		hs, err = highlightService.ListByPDF(cmd.Context(), hlPDF)
	default:
		return errors.New("--pdf or --topic is required")
	}
	if err != nil {
		return fmt.Errorf("failed to list highlights: %w", err)
	}

	if len(hs) == 0 {
		cmd.Println("No highlights found.")
		return nil
	}
	for i := range hs {
		printHighlightLine(cmd, &hs[i])
	}
	cmd.Printf("\nTotal: %d highlights\n", len(hs))
	return nil
}

func runHighlightGet(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	h, err := highlightService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get highlight: %w", err)
	}

	cmd.Printf("Highlight: %s\n\n", h.ID)
	cmd.Printf("  Document: %s\n", h.PDFID)
	cmd.Printf("  Page:     %d\n", h.Page)
	cmd.Printf("  Box:      top=%g left=%g width=%g height=%g\n", h.Top, h.Left, h.Width, h.Height)
	cmd.Printf("  Topics:   %s\n", describeTopics(cmd, h.TopicIDs))
	if h.Book != "" {
		cmd.Printf("  Book:     %s\n", h.Book)
	}
	if h.Volume != "" {
		cmd.Printf("  Volume:   %s\n", h.Volume)
	}
	if h.Chapter != "" {
		cmd.Printf("  Chapter:  %s\n", h.Chapter)
	}
	if len(h.Tags) > 0 {
		cmd.Printf("  Tags:     %s\n", strings.Join(h.Tags, ", "))
	}
	if h.Description != "" {
		cmd.Printf("  Description: %s\n", h.Description)
	}
	cmd.Printf("  Created:  %s\n", h.CreatedTime().UTC().Format("2006-01-02 15:04:05"))
	return nil
}

func runHighlightDelete(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	if err := highlightService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete highlight: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runHighlightTopics(cmd *cobra.Command, args []string) error {
	if highlightService == nil {
		return errors.New("highlight service not configured")
	}

	var ids []string
	if len(args) == 2 {
		ids = splitIDs(args[1])
	}
	h, err := highlightService.SetTopics(cmd.Context(), args[0], ids)
	if err != nil {
		return fmt.Errorf("failed to set topics: %w", err)
	}
	cmd.Printf("Topics of %s: %s\n", h.ID, describeTopics(cmd, h.TopicIDs))
	return nil
}

func printHighlightLine(cmd *cobra.Command, h *domain.Highlight) {
	cmd.Printf("  %s  %s p.%d", h.ID, h.PDFID, h.Page)
	if len(h.TopicIDs) > 0 {
		cmd.Printf("  [%s]", strings.Join(h.TopicIDs, ", "))
	}
	cmd.Println()
	if h.Description != "" {
		cmd.Printf("      %s\n", h.Description)
	}
}

// describeTopics renders topic ids as breadcrumbs when the topic service
// is available. Ids that do not resolve are shown as they are.
func describeTopics(cmd *cobra.Command, ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		label := id
		if topicService != nil {
			if p, err := topicService.FormattedPath(cmd.Context(), id); err == nil && p != "" {
				label = fmt.Sprintf("%s (%s)", p, id)
			}
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "; ")
}

// splitIDs splits a comma separated id list, dropping blanks.
func splitIDs(csv string) []string {
	return domain.ParseTags(csv)
}
