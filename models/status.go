package models

// ContentStatus is a publication state. Any status may move to any other.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "draft"
	StatusPublished ContentStatus = "published"
	StatusArchived  ContentStatus = "archived"

	// StatusScheduled is never stored; it is computed for published content with a future publish date.
	StatusScheduled ContentStatus = "scheduled"
)

// Valid reports whether s may be stored
func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
