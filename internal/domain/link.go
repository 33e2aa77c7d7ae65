package domain

import "time"

// Link is a saved URL together with the analysis produced by the extraction pipeline.
//
// ID and CreatedAt are owned by the store: the pipeline builds a Link without them
// and the store assigns both exactly once on Create.
type Link struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque identifier assigned by the store.
	ID string `json:"id"`

	// URL is the original input URL, validated as absolute before extraction.
	URL string `json:"url"`

	// ─────────────────────────────
	// Extracted content
	// ─────────────────────────────

	// Title is at most TitleMaxRunes long, "Untitled" when nothing was found.
	Title string `json:"title"`

	// Summary is the "Key insights" section or a prefix of Content.
	Summary string `json:"summary"`

	// Content is the full text returned by the AI content service.
	Content string `json:"content"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	// Category is always a member of Categories.
	// It is the only field that may be changed after creation.
	Category Category `json:"category"`

	// Tags holds one or two topic labels, never empty.
	Tags []string `json:"tags"`

	// Source is the URL hostname without a leading "www.".
	Source string `json:"source"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set by the store when the link is persisted.
	CreatedAt time.Time `json:"createdAt"`
}

// HasTag reports whether the link carries the given tag.
func (l *Link) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DisplayTitle returns the title, or the URL when the link has no title at all.
func (l *Link) DisplayTitle() string {
	if l.Title != "" {
		return l.Title
	}
	return l.URL
}
