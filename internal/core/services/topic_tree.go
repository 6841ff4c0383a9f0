package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/pdfindex/internal/core/domain"
)

// BuildPath returns the chain of topics from the root down to id.
// The walk stops at a root, at a missing parent, or at a topic already on
// the path. An unknown id yields an empty path.
func BuildPath(topics []domain.Topic, id string) []domain.Topic {
	byID := indexTopics(topics)
	var reversed []domain.Topic
	seen := make(map[string]bool)

	for cur := id; cur != "" && !seen[cur]; {
		t, ok := byID[cur]
		if !ok {
			break
		}
		seen[cur] = true
		reversed = append(reversed, t)
		cur = t.Parent()
	}

	path := make([]domain.Topic, len(reversed))
	for i, t := range reversed {
		path[len(reversed)-1-i] = t
	}
	return path
}

// FormatPath joins topic names with sep, or with domain.DefaultPathSeparator
// when sep is empty.
func FormatPath(path []domain.Topic, sep string) string {
	if sep == "" {
		sep = domain.DefaultPathSeparator
	}
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = t.Name
	}
	return strings.Join(names, sep)
}

// BuildGraph projects topics onto nodes and parent-to-child edges.
// Every topic with a parent gets an edge, even when the parent is missing.
func BuildGraph(topics []domain.Topic) domain.TopicGraph {
	graph := domain.TopicGraph{
		Nodes: make([]domain.TopicNode, 0, len(topics)),
		Edges: []domain.TopicEdge{},
	}
	for _, t := range topics {
		graph.Nodes = append(graph.Nodes, domain.TopicNode{ID: t.ID, Name: t.Name, ParentID: t.ParentID})
		if !t.IsRoot() {
			graph.Edges = append(graph.Edges, domain.TopicEdge{
				ID:     "edge-" + t.ID,
				Source: t.Parent(),
				Target: t.ID,
			})
		}
	}
	return graph
}

// ComputeLayout assigns tree coordinates to every topic.
//
// Depth maps to y = depth * SpacingY. Leaves take the next cursor column
// and advance it by SpacingX; parents sit at the mean x of their children.
// One extra column separates consecutive root trees. Topics whose parent
// is missing are laid out as further roots after the resolvable trees, and
// topics only reachable through a parent cycle come last. Each topic is
// placed exactly once. Results follow the input order.
func ComputeLayout(topics []domain.Topic, opts domain.LayoutOptions) []domain.PositionedTopic {
	defaults := domain.DefaultLayoutOptions()
	if opts.SpacingX <= 0 {
		opts.SpacingX = defaults.SpacingX
	}
	if opts.SpacingY <= 0 {
		opts.SpacingY = defaults.SpacingY
	}

	byID := indexTopics(topics)
	children := childrenOf(topics)
	positions := make(map[string]domain.PositionedTopic, len(topics))
	cursor := 0.0

	var place func(t domain.Topic, depth int) float64
	place = func(t domain.Topic, depth int) float64 {
		positions[t.ID] = domain.PositionedTopic{Topic: t}

		var xs []float64
		for _, child := range children[t.ID] {
			if _, done := positions[child.ID]; done {
				continue
			}
			xs = append(xs, place(child, depth+1))
		}

		var x float64
		if len(xs) == 0 {
			x = cursor
			cursor += opts.SpacingX
		} else {
			sum := 0.0
			for _, cx := range xs {
				sum += cx
			}
			x = sum / float64(len(xs))
		}

		positions[t.ID] = domain.PositionedTopic{Topic: t, X: x, Y: float64(depth) * opts.SpacingY}
		return x
	}

	placeTree := func(t domain.Topic) {
		if _, done := positions[t.ID]; done {
			return
		}
		place(t, 0)
		cursor += opts.SpacingX
	}

	for _, t := range topics {
		if t.IsRoot() {
			placeTree(t)
		}
	}
	for _, t := range topics {
		if _, ok := byID[t.Parent()]; !t.IsRoot() && !ok {
			placeTree(t)
		}
	}
	for _, t := range topics {
		placeTree(t)
	}

	result := make([]domain.PositionedTopic, 0, len(topics))
	for _, t := range topics {
		result = append(result, positions[t.ID])
	}
	return result
}

// Subtree returns the topic with id followed by all its descendants in
// breadth-first order. An unknown id yields nil.
func Subtree(topics []domain.Topic, id string) []domain.Topic {
	byID := indexTopics(topics)
	root, ok := byID[id]
	if !ok {
		return nil
	}

	children := childrenOf(topics)
	seen := map[string]bool{id: true}
	result := []domain.Topic{root}
	for i := 0; i < len(result); i++ {
		for _, child := range children[result[i].ID] {
			if seen[child.ID] {
				continue
			}
			seen[child.ID] = true
			result = append(result, child)
		}
	}
	return result
}

// SearchTopics returns topics whose name or formatted path contains query.
// Matching is case-folded and NFC-normalised. An empty query matches all.
func SearchTopics(topics []domain.Topic, query, sep string) []domain.Topic {
	fold := cases.Fold()
	needle := fold.String(norm.NFC.String(strings.TrimSpace(query)))
	if needle == "" {
		return append([]domain.Topic{}, topics...)
	}

	result := []domain.Topic{}
	for _, t := range topics {
		name := fold.String(norm.NFC.String(t.Name))
		if strings.Contains(name, needle) {
			result = append(result, t)
			continue
		}
		full := fold.String(norm.NFC.String(FormatPath(BuildPath(topics, t.ID), sep)))
		if strings.Contains(full, needle) {
			result = append(result, t)
		}
	}
	return result
}

// normaliseName trims and NFC-normalises a topic name.
func normaliseName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

func indexTopics(topics []domain.Topic) map[string]domain.Topic {
	byID := make(map[string]domain.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	return byID
}

// childrenOf groups topics by parent id, keeping input order.
func childrenOf(topics []domain.Topic) map[string][]domain.Topic {
	children := make(map[string][]domain.Topic)
	for _, t := range topics {
		if !t.IsRoot() {
			children[t.Parent()] = append(children[t.Parent()], t)
		}
	}
	return children
}
