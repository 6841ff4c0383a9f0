package domain

import "fmt"

// GapKind classifies a dangling reference.
type GapKind string

// Kinds of referential gaps.
const (
	GapHighlightDocument GapKind = "highlight_document"
	GapHighlightTopic    GapKind = "highlight_topic"
	GapTopicParent       GapKind = "topic_parent"
	GapTopicCycle        GapKind = "topic_cycle"
	GapBookmarkDocument  GapKind = "bookmark_document"
	GapLastOpened        GapKind = "last_opened"
)

// ReferentialGap is a record that references an id which no longer exists.
// Readers tolerate gaps; the audit only reports them.
type ReferentialGap struct {
	Kind GapKind `json:"kind"`

	// RecordID is the record holding the reference ("" for the
	// last-opened pointer).
	RecordID string `json:"recordId"`

	// MissingID is the referenced id that does not resolve.
	MissingID string `json:"missingId"`
}

func (g ReferentialGap) String() string {
	switch g.Kind {
	case GapLastOpened:
		return fmt.Sprintf("last opened document %s does not exist", g.MissingID)
	case GapTopicCycle:
		return fmt.Sprintf("topic %s is on a parent cycle", g.RecordID)
	default:
		return fmt.Sprintf("%s %s references missing %s", g.Kind, g.RecordID, g.MissingID)
	}
}

// IntegrityReport lists all gaps found by an audit.
type IntegrityReport struct {
	Documents  int              `json:"documents"`
	Highlights int              `json:"highlights"`
	Topics     int              `json:"topics"`
	Bookmarks  int              `json:"bookmarks"`
	Gaps       []ReferentialGap `json:"gaps"`
}

// OK reports whether no gaps were found.
func (r *IntegrityReport) OK() bool {
	return len(r.Gaps) == 0
}
