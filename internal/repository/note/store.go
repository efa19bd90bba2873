package note

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/notekeep/internal/domain"
	domnote "github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/domain/note/patch"
)

// StorageType is reported by Stats.
const StorageType = "in_memory"

type entry struct {
	note domnote.Note
	seq  uint64 // insertion order, breaks created_at ties in List
}

// Store is a volatile in-process note store.
// A single RWMutex guards the collection; every read-check-write runs under the write lock.
type Store struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]entry
	seq   uint64
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		notes: make(map[uuid.UUID]entry),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create stores a new note for userID.
func (s *Store) Create(_ context.Context, content, userID string) (domnote.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := domnote.New(content, userID, s.now())
	for {
		if _, taken := s.notes[n.ID()]; !taken {
			break
		}
		n = domnote.New(content, userID, n.CreatedAt())
	}

	s.seq++
	s.notes[n.ID()] = entry{note: n, seq: s.seq}
	return n.Clone(), nil
}

// List returns notes owned by userID, newest first.
// Unknown and empty user ids yield an empty slice.
func (s *Store) List(_ context.Context, userID string) ([]domnote.Note, error) {
	s.mu.RLock()
	owned := make([]entry, 0)
	for _, e := range s.notes {
		if e.note.OwnedBy(userID) {
			owned = append(owned, e)
		}
	}
	s.mu.RUnlock()

	sort.Slice(owned, func(i, j int) bool {
		ci, cj := owned[i].note.CreatedAt(), owned[j].note.CreatedAt()
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return owned[i].seq > owned[j].seq
	})

	out := make([]domnote.Note, len(owned))
	for i, e := range owned {
		out[i] = e.note.Clone()
	}
	return out, nil
}

// Get returns a note owned by userID.
func (s *Store) Get(_ context.Context, id uuid.UUID, userID string) (domnote.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.owned(id, userID)
	if err != nil {
		return domnote.Note{}, err
	}
	return e.note.Clone(), nil
}

// Update applies p to the note atomically.
// Content replaces the text and advances updated_at only when it differs.
// Metadata is merged key-wise.
func (s *Store) Update(_ context.Context, id uuid.UUID, userID string, p patch.Patch) (domnote.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.owned(id, userID)
	if err != nil {
		return domnote.Note{}, err
	}

	n := e.note
	if p.HasContent() {
		n = n.WithContent(*p.Content(), s.now())
	}
	if p.HasMetadata() {
		n = n.WithMetadata(p.Metadata())
	}

	e.note = n
	s.notes[id] = e
	return n.Clone(), nil
}

// Delete removes the note. A missing note reports false without error.
func (s *Store) Delete(_ context.Context, id uuid.UUID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.notes[id]
	if !ok {
		return false, nil
	}
	if !e.note.OwnedBy(userID) {
		return false, domain.ErrUnauthorized
	}
	delete(s.notes, id)
	return true, nil
}

// Stats aggregates over the live collection.
func (s *Store) Stats(_ context.Context) (domnote.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[string]struct{})
	for _, e := range s.notes {
		users[e.note.UserID()] = struct{}{}
	}
	return domnote.Stats{
		TotalNotes:  len(s.notes),
		UniqueUsers: len(users),
		StorageType: StorageType,
	}, nil
}

// owned must be called with s.mu held.
func (s *Store) owned(id uuid.UUID, userID string) (entry, error) {
	e, ok := s.notes[id]
	if !ok {
		return entry{}, domain.ErrNotFound
	}
	if !e.note.OwnedBy(userID) {
		return entry{}, domain.ErrUnauthorized
	}
	return e, nil
}
