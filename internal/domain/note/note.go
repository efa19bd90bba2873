package note

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Note is the note aggregate (immutable value object).
// The store owns canonical notes and hands out copies.
type Note struct {
	id        uuid.UUID
	userID    string
	content   string
	createdAt time.Time
	updatedAt time.Time
	metadata  map[string]any
}

// New creates a note with a fresh identifier. created_at and updated_at are both set to now.
func New(content, userID string, now time.Time) Note {
	return Note{
		id:        uuid.New(),
		userID:    userID,
		content:   content,
		createdAt: now,
		updatedAt: now,
		metadata:  map[string]any{},
	}
}

// ID returns the note identifier.
func (n *Note) ID() uuid.UUID { return n.id }

// UserID returns the owner identifier.
func (n *Note) UserID() string { return n.userID }

// Content returns the note text.
func (n *Note) Content() string { return n.content }

// CreatedAt returns the creation timestamp.
func (n *Note) CreatedAt() time.Time { return n.createdAt }

// UpdatedAt returns the timestamp of the last content change.
func (n *Note) UpdatedAt() time.Time { return n.updatedAt }

// Metadata returns the open metadata mapping.
func (n *Note) Metadata() map[string]any { return n.metadata }

// OwnedBy reports whether userID owns the note.
func (n *Note) OwnedBy(userID string) bool { return n.userID == userID }

// WithContent returns a copy with new content. updated_at advances only when the text changes
// and never moves backwards.
func (n Note) WithContent(content string, now time.Time) Note {
	if content == n.content {
		return n
	}
	n.content = content
	if now.Before(n.updatedAt) {
		now = n.updatedAt
	}
	n.updatedAt = now
	return n
}

// WithMetadata returns a copy with patch merged key-wise into metadata.
// Later values win. Nested values are replaced, never merged.
func (n Note) WithMetadata(patch map[string]any) Note {
	merged := make(map[string]any, len(n.metadata)+len(patch))
	maps.Copy(merged, n.metadata)
	maps.Copy(merged, patch)
	n.metadata = merged
	return n
}

// Clone returns a copy whose metadata map is detached from n.
func (n Note) Clone() Note {
	n.metadata = maps.Clone(n.metadata)
	if n.metadata == nil {
		n.metadata = map[string]any{}
	}
	return n
}

// Stats is an aggregate view over the note collection.
type Stats struct {
	TotalNotes  int
	UniqueUsers int
	StorageType string
}
