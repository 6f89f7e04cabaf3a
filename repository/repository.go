package repository

import (
	"context"
	"errors"
	"time"

	"notesapi/model"
)

var (
	ErrNoteNotFound   = errors.New("note not found")
	ErrDuplicateTitle = errors.New("a note with this title already exists")
)

// NoteRepository is the persistence client behind the notes service. Implementations
// assign the note ID on Create and report unknown IDs with ErrNoteNotFound.
type NoteRepository interface {
	// Create stores a new note and returns it with its assigned ID.
	Create(ctx context.Context, note *model.Note) (*model.Note, error)

	// Get returns the note with the given ID.
	Get(ctx context.Context, id string) (*model.Note, error)

	// List returns at most limit notes after skipping skip, ordered by creation time then ID.
	List(ctx context.Context, skip, limit int64) ([]*model.Note, error)

	// Update sets the present fields of patch plus updatedAt and returns the stored result.
	Update(ctx context.Context, id string, patch model.NotePatch, updatedAt time.Time) (*model.Note, error)

	// Delete removes the note permanently.
	Delete(ctx context.Context, id string) error
}
