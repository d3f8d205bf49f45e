package notes

import (
	"fmt"
	"time"
)

// Storage keys.
const (
	KeyNotes    = "notes"
	KeySaveTime = "saveTime"
)

// DefaultLabel is the save button text before the first save.
const DefaultLabel = "Save"

// Page is what the note pad shows.
type Page struct {
	Content   string
	SaveLabel string
}

// Pad loads and saves the single note.
type Pad struct {
	store Store
}

// NewPad creates a Pad on store.
func NewPad(store Store) *Pad {
	return &Pad{store: store}
}

// Load returns the stored note, or an empty page labelled "Save".
func (p *Pad) Load() (Page, error) {
	content, _, err := p.store.Get(KeyNotes)
	if err != nil {
		return Page{}, err
	}
	label, ok, err := p.store.Get(KeySaveTime)
	if err != nil {
		return Page{}, err
	}
	if !ok {
		label = DefaultLabel
	}
	return Page{Content: content, SaveLabel: label}, nil
}

// Save stores content and stamps the label with now.
func (p *Pad) Save(content string, now time.Time) (Page, error) {
	if err := p.store.Set(KeyNotes, content); err != nil {
		return Page{}, err
	}
	label := SaveLabel(now)
	if err := p.store.Set(KeySaveTime, label); err != nil {
		return Page{}, err
	}
	return Page{Content: content, SaveLabel: label}, nil
}

// SaveLabel formats the save button text, e.g. "Save (last: 2024/05/01 22:03:09)".
func SaveLabel(t time.Time) string {
	return fmt.Sprintf("Save (last: %s)", t.Format("2006/01/02 15:04:05"))
}
