package dto

import (
	"strings"
	"time"

	"notesapi/model"
)

// CreateNoteRequest is the body of POST /api/notes.
type CreateNoteRequest struct {
	Title     string  `json:"title" validate:"notblank,max=255"`
	Content   string  `json:"content" validate:"max=50000"`
	Category  *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Published *bool   `json:"published,omitempty"`
}

// UpdateNoteRequest is the body of PATCH /api/notes/:id. Absent or null fields are not changed.
type UpdateNoteRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	Content   *string `json:"content,omitempty" validate:"omitempty,max=50000"`
	Category  *string `json:"category,omitempty" validate:"omitempty,max=100"`
	Published *bool   `json:"published,omitempty"`
}

// ToNote normalizes the request into a note without identity or timestamps.
func (r CreateNoteRequest) ToNote() model.Note {
	note := model.Note{
		Title:   strings.TrimSpace(r.Title),
		Content: r.Content,
	}
	if r.Category != nil {
		note.Category = strings.TrimSpace(*r.Category)
	}
	if r.Published != nil {
		note.Published = *r.Published
	}
	return note
}

// ToPatch normalizes the request into a patch. Only non-nil fields are carried over.
func (r UpdateNoteRequest) ToPatch() model.NotePatch {
	patch := model.NotePatch{
		Content:   r.Content,
		Published: r.Published,
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		patch.Title = &title
	}
	if r.Category != nil {
		category := strings.TrimSpace(*r.Category)
		patch.Category = &category
	}
	return patch
}

type NoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NoteData struct {
	Note NoteResponse `json:"note"`
}

type SingleNoteResponse struct {
	Status string   `json:"status"`
	Data   NoteData `json:"data"`
}

type NoteListResponse struct {
	Status  string         `json:"status"`
	Results int            `json:"results"`
	Notes   []NoteResponse `json:"notes"`
}

// Convert a single note to NoteResponse
func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Category:  note.Category,
		Published: note.Published,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// Convert slice of notes to slice of NoteResponse
func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}

func NewSingleNoteResponse(note *model.Note) *SingleNoteResponse {
	return &SingleNoteResponse{
		Status: "success",
		Data:   NoteData{Note: ToNoteResponse(note)},
	}
}

func NewNoteListResponse(notes []*model.Note) *NoteListResponse {
	return &NoteListResponse{
		Status:  "success",
		Results: len(notes),
		Notes:   ToNoteResponses(notes),
	}
}
