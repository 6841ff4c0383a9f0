package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage the topic hierarchy",
	Long: `Create, rename, move, and delete topics.

Topics form a forest. Deleting a topic is refused while it has children.
Highlights that belong only to a deleted topic are deleted with it.`,
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the topic tree",
	Args:  cobra.NoArgs,
	RunE:  runTopicList,
}

var topicAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Create a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicAdd,
}

var topicRenameCmd = &cobra.Command{
	Use:   "rename [topic-id] [name]",
	Short: "Rename a topic",
	Args:  cobra.ExactArgs(2),
	RunE:  runTopicRename,
}

var topicMoveCmd = &cobra.Command{
	Use:   "move [topic-id]",
	Short: "Move a topic under a new parent",
	Long: `Move a topic under the topic given by --parent. Omit --parent to make
the topic a root. Moves that would create a cycle are refused.`,
	Args: cobra.ExactArgs(1),
	RunE: runTopicMove,
}

var topicDeleteCmd = &cobra.Command{
	Use:   "delete [topic-id]",
	Short: "Delete a topic after showing its impact",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicDelete,
}

var topicPathCmd = &cobra.Command{
	Use:   "path [topic-id]",
	Short: "Show the breadcrumb of a topic",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicPath,
}

var topicSubtreeCmd = &cobra.Command{
	Use:   "subtree [topic-id]",
	Short: "List a topic and its descendants",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicSubtree,
}

var topicSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find topics by name or path",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicSearch,
}

var topicGraphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the topic graph",
	Long: `Print the node and edge projection of the topic forest. With --layout
each topic is printed with its tree layout position instead.`,
	Args: cobra.NoArgs,
	RunE: runTopicGraph,
}

var (
	topicParent string
	topicID     string
	topicYes    bool
	topicJSON   bool
	topicLayout bool
)

func init() {
	topicAddCmd.Flags().StringVarP(&topicParent, "parent", "p", "", "Parent topic id (omit for a root)")
	topicAddCmd.Flags().StringVar(&topicID, "id", "", "Topic id (generated when omitted)")
	topicMoveCmd.Flags().StringVarP(&topicParent, "parent", "p", "", "New parent topic id (omit for a root)")
	topicDeleteCmd.Flags().BoolVarP(&topicYes, "yes", "y", false, "Delete without asking")
	topicGraphCmd.Flags().BoolVar(&topicJSON, "json", false, "Print JSON")
	topicGraphCmd.Flags().BoolVar(&topicLayout, "layout", false, "Print layout positions")

	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicRenameCmd)
	topicCmd.AddCommand(topicMoveCmd)
	topicCmd.AddCommand(topicDeleteCmd)
	topicCmd.AddCommand(topicPathCmd)
	topicCmd.AddCommand(topicSubtreeCmd)
	topicCmd.AddCommand(topicSearchCmd)
	topicCmd.AddCommand(topicGraphCmd)
	rootCmd.AddCommand(topicCmd)
}

func runTopicList(cmd *cobra.Command, _ []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	topics, err := topicService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list topics: %w", err)
	}
	if len(topics) == 0 {
		cmd.Println("No topics.")
		return nil
	}

	for _, line := range treeLines(topics) {
		cmd.Println(line)
	}
	cmd.Printf("\nTotal: %d topics\n", len(topics))
	return nil
}

func runTopicAdd(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	t, err := topicService.Add(cmd.Context(), topicID, args[0], topicParent)
	if err != nil {
		return fmt.Errorf("failed to add topic: %w", err)
	}
	cmd.Printf("Created topic %s (%s)\n", t.ID, t.Name)
	return nil
}

func runTopicRename(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	if err := topicService.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename topic: %w", err)
	}
	cmd.Printf("Renamed %s to %s\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runTopicMove(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	if err := topicService.Move(cmd.Context(), args[0], topicParent); err != nil {
		return fmt.Errorf("failed to move topic: %w", err)
	}
	if topicParent == "" {
		cmd.Printf("Moved %s to the top level\n", args[0])
	} else {
		cmd.Printf("Moved %s under %s\n", args[0], topicParent)
	}
	return nil
}

func runTopicDelete(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}
	id := args[0]

	impact, err := topicService.AnalyzeDeleteImpact(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to analyse topic: %w", err)
	}
	if !impact.CanDelete() {
		return &domain.HasChildrenError{TopicID: id, ChildrenCount: impact.ChildrenCount}
	}

	cmd.Printf("Deleting topic %s:\n", id)
	cmd.Printf("  %d highlight(s) will be deleted\n", len(impact.HighlightsAffectedSoleTopic))
	for _, h := range impact.HighlightsAffectedSoleTopic {
		cmd.Printf("    %s  %s p.%d\n", h.ID, h.PDFID, h.Page)
	}
	cmd.Printf("  %d highlight(s) keep their other topics\n", len(impact.HighlightsAffectedMultiTopic))

	if !topicYes {
		ok, err := confirm(cmd, "Delete this topic?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := topicService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	cmd.Printf("Deleted topic %s\n", id)
	return nil
}

func runTopicPath(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	p, err := topicService.FormattedPath(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	cmd.Println(p)
	return nil
}

func runTopicSubtree(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	topics, err := topicService.Subtree(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get subtree: %w", err)
	}
	for _, t := range topics {
		cmd.Printf("  %s  %s\n", t.ID, t.Name)
	}
	return nil
}

func runTopicSearch(cmd *cobra.Command, args []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	topics, err := topicService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to search topics: %w", err)
	}
	if len(topics) == 0 {
		cmd.Println("No matching topics.")
		return nil
	}
	for _, t := range topics {
		p, err := topicService.FormattedPath(cmd.Context(), t.ID)
		if err != nil {
			p = t.Name
		}
		cmd.Printf("  %s  %s\n", t.ID, p)
	}
	return nil
}

func runTopicGraph(cmd *cobra.Command, _ []string) error {
	if topicService == nil {
		return errors.New("topic service not configured")
	}

	if topicLayout {
		positioned, err := topicService.Layout(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to lay out topics: %w", err)
		}
		if topicJSON {
			return printJSON(cmd, positioned)
		}
		for _, p := range positioned {
			cmd.Printf("  %s  (%g, %g)\n", p.Topic.ID, p.X, p.Y)
		}
		return nil
	}

	graph, err := topicService.Graph(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	if topicJSON {
		return printJSON(cmd, graph)
	}
	cmd.Printf("Nodes: %d\n", len(graph.Nodes))
	for _, e := range graph.Edges {
		cmd.Printf("  %s -> %s\n", e.Source, e.Target)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// treeLines renders topics as an indented tree. Topics whose parent is
// missing are shown as roots; topics only reachable through a parent
// cycle are listed last.
func treeLines(topics []domain.Topic) []string {
	byID := make(map[string]bool, len(topics))
	for _, t := range topics {
		byID[t.ID] = true
	}
	children := make(map[string][]domain.Topic)
	var roots []domain.Topic
	for _, t := range topics {
		if t.IsRoot() || !byID[t.Parent()] {
			roots = append(roots, t)
			continue
		}
		children[t.Parent()] = append(children[t.Parent()], t)
	}

	byName := func(ts []domain.Topic) {
		sort.SliceStable(ts, func(i, j int) bool {
			if ts[i].Name != ts[j].Name {
				return ts[i].Name < ts[j].Name
			}
			return ts[i].ID < ts[j].ID
		})
	}

	seen := make(map[string]bool, len(topics))
	var lines []string
	var walk func(t domain.Topic, depth int)
	walk = func(t domain.Topic, depth int) {
		if seen[t.ID] {
			return
		}
		seen[t.ID] = true
		lines = append(lines, fmt.Sprintf("%s%s  (%s)", strings.Repeat("  ", depth), t.Name, t.ID))
		kids := children[t.ID]
		byName(kids)
		for _, c := range kids {
			walk(c, depth+1)
		}
	}

	byName(roots)
	for _, r := range roots {
		walk(r, 0)
	}
	for _, t := range topics {
		if !seen[t.ID] {
			walk(t, 0)
		}
	}
	return lines
}
