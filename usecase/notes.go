package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"notesapi/dto"
	"notesapi/model"
	"notesapi/repository"
	"notesapi/utils"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPage      = 1
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type NotesService struct {
	NotesRepo repository.NoteRepository
	clock     utils.Clock
}

// NewNotesService wires the service to a repository. A nil clock means wall-clock time.
func NewNotesService(repo repository.NoteRepository, clock utils.Clock) *NotesService {
	if clock == nil {
		clock = utils.RealTime{}
	}
	return &NotesService{
		NotesRepo: repo,
		clock:     clock,
	}
}

// ValidateCreate checks a create payload and returns the normalized note to store.
// It never touches persistence.
func ValidateCreate(req dto.CreateNoteRequest) (model.Note, error) {
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		return model.Note{}, NewValidationError(fields...)
	}
	return req.ToNote(), nil
}

// ValidatePatch checks a partial update payload. A present title must not be blank.
func ValidatePatch(req dto.UpdateNoteRequest) (model.NotePatch, error) {
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		return model.NotePatch{}, NewValidationError(fields...)
	}
	return req.ToPatch(), nil
}

// NormalizePagination applies the defaults and clamps limit to MaxPageLimit.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit < 1:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}
	return page, limit
}

// now is truncated to the millisecond precision of BSON dates so a note read back
// from the store compares equal to the one returned on write.
func (svc *NotesService) now() time.Time {
	return svc.clock.Now().UTC().Truncate(time.Millisecond)
}

func (svc *NotesService) Create(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error) {
	note, err := ValidateCreate(req)
	if err != nil {
		return nil, err
	}

	now := svc.now()
	note.CreatedAt = now
	note.UpdatedAt = now

	created, err := svc.NotesRepo.Create(ctx, &note)
	if err != nil {
		return nil, mapRepoError("create note", "", err)
	}
	return created, nil
}

func (svc *NotesService) Get(ctx context.Context, id string) (*model.Note, error) {
	note, err := svc.NotesRepo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError("get note", id, err)
	}
	return note, nil
}

// List returns the given page in creation order. page and limit are normalized first.
func (svc *NotesService) List(ctx context.Context, page, limit int) ([]*model.Note, error) {
	page, limit = NormalizePagination(page, limit)

	if int64(page-1) > math.MaxInt64/int64(limit) {
		return []*model.Note{}, nil
	}
	skip := int64(page-1) * int64(limit)

	notes, err := svc.NotesRepo.List(ctx, skip, int64(limit))
	if err != nil {
		return nil, mapRepoError("list notes", "", err)
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return notes, nil
}

// Update applies only the fields present in req. An empty patch just refreshes UpdatedAt.
func (svc *NotesService) Update(ctx context.Context, id string, req dto.UpdateNoteRequest) (*model.Note, error) {
	patch, err := ValidatePatch(req)
	if err != nil {
		return nil, err
	}

	existing, err := svc.NotesRepo.Get(ctx, id)
	if err != nil {
		return nil, mapRepoError("get note", id, err)
	}

	if patch.IsEmpty() {
		log.WithField("note_id", id).Debug("empty patch, only refreshing updatedAt")
	}

	updatedAt := svc.now()
	if updatedAt.Before(existing.CreatedAt) {
		updatedAt = existing.CreatedAt
	}

	updated, err := svc.NotesRepo.Update(ctx, id, patch, updatedAt)
	if err != nil {
		return nil, mapRepoError("update note", id, err)
	}
	return updated, nil
}

// Delete removes the note. Deleting an unknown ID is reported as ErrNotFound.
func (svc *NotesService) Delete(ctx context.Context, id string) error {
	if err := svc.NotesRepo.Delete(ctx, id); err != nil {
		return mapRepoError("delete note", id, err)
	}
	return nil
}

func mapRepoError(op, id string, err error) error {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, repository.ErrDuplicateTitle):
		return &ConflictError{Field: "title", Message: repository.ErrDuplicateTitle.Error()}
	default:
		return &PersistenceError{Op: op, Err: err}
	}
}
