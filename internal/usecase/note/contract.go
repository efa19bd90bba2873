package note

import (
	"context"

	"github.com/google/uuid"

	domnote "github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/domain/note/patch"
)

// Repository defines the storage contract for notes.
// Get, Update and Delete report domain.ErrNotFound and domain.ErrUnauthorized.
type Repository interface {
	Create(ctx context.Context, content, userID string) (domnote.Note, error)
	List(ctx context.Context, userID string) ([]domnote.Note, error)
	Get(ctx context.Context, id uuid.UUID, userID string) (domnote.Note, error)
	Update(ctx context.Context, id uuid.UUID, userID string, p patch.Patch) (domnote.Note, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) (bool, error)
	Stats(ctx context.Context) (domnote.Stats, error)
}
