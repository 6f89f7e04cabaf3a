package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotePatchIsEmpty(t *testing.T) {
	assert.True(t, NotePatch{}.IsEmpty())

	published := false
	assert.False(t, NotePatch{Published: &published}.IsEmpty())

	blank := ""
	assert.False(t, NotePatch{Content: &blank}.IsEmpty())
}

func TestNotePatchApply(t *testing.T) {
	note := Note{Title: "Groceries", Content: "milk", Category: "home", Published: true}

	content := "eggs"
	published := false
	NotePatch{Content: &content, Published: &published}.Apply(&note)

	assert.Equal(t, "Groceries", note.Title)
	assert.Equal(t, "eggs", note.Content)
	assert.Equal(t, "home", note.Category)
	assert.False(t, note.Published)

	before := note
	NotePatch{}.Apply(&note)
	assert.Equal(t, before, note)
}
