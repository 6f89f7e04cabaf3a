package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"notesapi/model"
	"notesapi/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ repository.NoteRepository = (*Repo)(nil)

// Repo keeps notes in a map. IDs are ObjectID hex strings so they look and validate
// exactly like the ones handed out by MongoDB.
type Repo struct {
	mu    sync.RWMutex
	notes map[string]model.Note
}

func NewRepository() *Repo {
	return &Repo{
		notes: make(map[string]model.Note),
	}
}

func (r *Repo) Create(_ context.Context, note *model.Note) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(note.Title, "") {
		return nil, repository.ErrDuplicateTitle
	}

	stored := *note
	stored.ID = primitive.NewObjectID().Hex()
	r.notes[stored.ID] = stored

	return &stored, nil
}

func (r *Repo) Get(_ context.Context, id string) (*model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	if !exists {
		return nil, repository.ErrNoteNotFound
	}

	return &note, nil
}

func (r *Repo) List(_ context.Context, skip, limit int64) ([]*model.Note, error) {
	r.mu.RLock()
	all := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		all = append(all, note)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if skip >= int64(len(all)) {
		return []*model.Note{}, nil
	}
	end := int64(len(all))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	page := make([]*model.Note, 0, end-skip)
	for i := skip; i < end; i++ {
		note := all[i]
		page = append(page, &note)
	}
	return page, nil
}

func (r *Repo) Update(_ context.Context, id string, patch model.NotePatch, updatedAt time.Time) (*model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, exists := r.notes[id]
	if !exists {
		return nil, repository.ErrNoteNotFound
	}

	if patch.Title != nil && r.titleTaken(*patch.Title, id) {
		return nil, repository.ErrDuplicateTitle
	}

	patch.Apply(&note)
	note.UpdatedAt = updatedAt
	r.notes[id] = note

	return &note, nil
}

func (r *Repo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}

	delete(r.notes, id)
	return nil
}

// titleTaken must be called with the lock held.
func (r *Repo) titleTaken(title, exceptID string) bool {
	for id, note := range r.notes {
		if id != exceptID && note.Title == title {
			return true
		}
	}
	return false
}
