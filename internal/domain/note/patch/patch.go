package patch

// Patch is a partial note update. Nil fields are unchanged.
// Metadata is merged key-wise; there is no deletion operator.
type Patch struct {
	content  *string
	metadata map[string]any
}

// New creates a Patch. An empty patch is valid and leaves the note unchanged.
func New(content *string, metadata map[string]any) Patch {
	return Patch{content: content, metadata: metadata}
}

// Metadata creates a metadata-only patch.
func Metadata(metadata map[string]any) Patch {
	return Patch{metadata: metadata}
}

// Content returns the new content, or nil if unchanged.
func (p Patch) Content() *string { return p.content }

// Metadata returns the metadata entries to merge.
func (p Patch) Metadata() map[string]any { return p.metadata }

// HasContent reports whether the patch includes content.
func (p Patch) HasContent() bool { return p.content != nil }

// HasMetadata reports whether the patch includes metadata entries.
func (p Patch) HasMetadata() bool { return p.metadata != nil }
