package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a reference to an external Drive file belonging to a chapter.
type Document struct {
	ID    string
	Title string
	URL   string
	Type  DocType
}

// Chapter is a named section of a project, mapped 1:1 to a spreadsheet tab.
// SheetTabName is derived from the title once, at creation, and kept
// stable afterwards.
type Chapter struct {
	ID           string
	Title        string
	SheetTabName string
	Documents    []Document
}

// ResolveTabName returns the stored tab name, deriving one from the
// title only when nothing was stored (projects loaded from older sheets).
func (c *Chapter) ResolveTabName() string {
	if c.SheetTabName != "" {
		return c.SheetTabName
	}
	return DeriveTabName(c.Title)
}

// Placeholder is a named substitution variable used for template-style
// replacement in linked documents. Keys are normalized and unique within
// a project; the key never changes after creation.
type Placeholder struct {
	Key         string
	Value       string
	Description string
}

// Project is a unit of architectural work backed by one external
// spreadsheet. SheetID is absent until the external sheet is created and
// is immutable once assigned; deleting the project record never deletes
// the sheet.
type Project struct {
	ID           string
	Name         string
	Description  string
	SheetID      string
	IsTemplate   bool
	CreatedAt    time.Time
	Chapters     []Chapter
	Placeholders []Placeholder
}

// SheetURL returns the browser URL of the project's spreadsheet, or ""
// when no sheet has been attached yet.
func (p *Project) SheetURL() string {
	if p.SheetID == "" {
		return ""
	}
	return "https://docs.google.com/spreadsheets/d/" + p.SheetID
}

// AddChapter appends a chapter with a tab name derived from the title.
// The title must be non-empty and the derived tab name must not collide
// with any existing chapter's resolved tab name.
func (p *Project) AddChapter(title string) (*Chapter, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	tabName := DeriveTabName(title)
	for i := range p.Chapters {
		if p.Chapters[i].ResolveTabName() == tabName {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTabName, tabName)
		}
	}
	p.Chapters = append(p.Chapters, Chapter{
		ID:           uuid.New().String(),
		Title:        title,
		SheetTabName: tabName,
	})
	return &p.Chapters[len(p.Chapters)-1], nil
}

// RemoveChapter removes the chapter with the given ID from the local
// structure. The corresponding external tab is left in place: local and
// remote deletion are decoupled.
func (p *Project) RemoveChapter(chapterID string) bool {
	for i := range p.Chapters {
		if p.Chapters[i].ID == chapterID {
			p.Chapters = append(p.Chapters[:i], p.Chapters[i+1:]...)
			return true
		}
	}
	return false
}

// FindChapter returns the chapter with the given ID, or nil.
func (p *Project) FindChapter(chapterID string) *Chapter {
	for i := range p.Chapters {
		if p.Chapters[i].ID == chapterID {
			return &p.Chapters[i]
		}
	}
	return nil
}

// AddDocument appends a document reference to the chapter with the given ID.
func (p *Project) AddDocument(chapterID, title, url string, docType DocType) (*Document, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	ch := p.FindChapter(chapterID)
	if ch == nil {
		return nil, fmt.Errorf("chapter not found: %q", chapterID)
	}
	ch.Documents = append(ch.Documents, Document{
		ID:    uuid.New().String(),
		Title: title,
		URL:   url,
		Type:  docType,
	})
	return &ch.Documents[len(ch.Documents)-1], nil
}

// AllDocuments returns every document across all chapters in order.
func (p *Project) AllDocuments() []Document {
	var docs []Document
	for i := range p.Chapters {
		docs = append(docs, p.Chapters[i].Documents...)
	}
	return docs
}

// DisplayID returns a short identifier for display, truncating UUIDs.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
