package domain

import (
	"math"
	"strings"
	"time"
)

// MinBoxSize is the size in pixels a drawn box must exceed in both
// dimensions before it can become a highlight.
const MinBoxSize = 4.0

// Highlight is a rectangular annotation anchored to one page of one Document.
// Coordinates are page-local pixels at the canonical unscaled page width.
type Highlight struct {
	// ID is generated at creation and never changes.
	ID string `json:"id" yaml:"id"`

	// PDFID is the owning Document.
	PDFID string `json:"pdfId" yaml:"pdfId"`

	// Page is 1-based.
	Page int `json:"page" yaml:"page"`

	Top    float64 `json:"top" yaml:"top"`
	Left   float64 `json:"left" yaml:"left"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// TopicIDs is the set of topics this highlight belongs to.
	// Order carries no meaning but is preserved by every store.
	TopicIDs []string `json:"topicIds" yaml:"topicIds"`

	// Book, Volume and Chapter are free-text provenance fields.
	Book    string `json:"book,omitempty" yaml:"book,omitempty"`
	Volume  string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Chapter string `json:"chapter,omitempty" yaml:"chapter,omitempty"`

	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// CreatedAt is the creation time in epoch milliseconds.
	CreatedAt int64 `json:"createdAt" yaml:"createdAt"`
}

// NewHighlight creates a highlight with an empty topic set.
func NewHighlight(id, pdfID string, page int, box Box, createdAt time.Time) Highlight {
	return Highlight{
		ID:        id,
		PDFID:     pdfID,
		Page:      page,
		Top:       box.Top,
		Left:      box.Left,
		Width:     box.Width,
		Height:    box.Height,
		TopicIDs:  []string{},
		CreatedAt: createdAt.UnixMilli(),
	}
}

// Box returns the highlight's rectangle.
func (h Highlight) Box() Box {
	return Box{Top: h.Top, Left: h.Left, Width: h.Width, Height: h.Height}
}

// HasTopic reports whether the highlight belongs to the given topic.
func (h Highlight) HasTopic(topicID string) bool {
	for _, id := range h.TopicIDs {
		if id == topicID {
			return true
		}
	}
	return false
}

// WithoutTopic returns a copy of the highlight with topicID removed from
// its topic set.
func (h Highlight) WithoutTopic(topicID string) Highlight {
	kept := make([]string, 0, len(h.TopicIDs))
	for _, id := range h.TopicIDs {
		if id != topicID {
			kept = append(kept, id)
		}
	}
	h.TopicIDs = kept
	return h
}

// CreatedTime returns CreatedAt as a time.Time.
func (h Highlight) CreatedTime() time.Time {
	return time.UnixMilli(h.CreatedAt)
}

// Point is a pixel position on a rendered page.
type Point struct {
	X float64
	Y float64
}

// Box is a top-left anchored rectangle.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// NormaliseBox converts a drag gesture into a box, whichever corner the
// drag started from.
func NormaliseBox(start, end Point) Box {
	return Box{
		Top:    math.Min(start.Y, end.Y),
		Left:   math.Min(start.X, end.X),
		Width:  math.Abs(end.X - start.X),
		Height: math.Abs(end.Y - start.Y),
	}
}

// IsDrawable reports whether the box exceeds MinBoxSize in both dimensions.
func (b Box) IsDrawable() bool {
	return b.Width > MinBoxSize && b.Height > MinBoxSize
}

// Scale returns the box multiplied by factor, used to map between the
// canonical page width and the rendered width.
func (b Box) Scale(factor float64) Box {
	return Box{
		Top:    b.Top * factor,
		Left:   b.Left * factor,
		Width:  b.Width * factor,
		Height: b.Height * factor,
	}
}

// ParseTags splits a comma separated tag list, trimming whitespace and
// dropping empty entries.
func ParseTags(csv string) []string {
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
