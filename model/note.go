package model

import (
	"time"
)

// Note is the stored note. ID is assigned by the repository on insert and never changes.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NotePatch holds the fields of a partial update. A nil field is left untouched.
type NotePatch struct {
	Title     *string
	Content   *string
	Category  *string
	Published *bool
}

// IsEmpty reports whether the patch changes no field.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Category == nil && p.Published == nil
}

// Apply copies the present fields of the patch onto the note.
func (p NotePatch) Apply(note *Note) {
	if p.Title != nil {
		note.Title = *p.Title
	}
	if p.Content != nil {
		note.Content = *p.Content
	}
	if p.Category != nil {
		note.Category = *p.Category
	}
	if p.Published != nil {
		note.Published = *p.Published
	}
}
