// Package export holds the final-compilation side of a project: choosing
// which documents go into the deliverable and running the staged
// compile pipeline.
package export

import "github.com/estudiarq/archisheets/internal/domain"

// Selection is the user-chosen subset of documents destined for the
// final compilation. A fresh selection contains every document of every
// chapter.
type Selection struct {
	ids     []string
	members map[string]bool
}

// NewSelection builds a Selection containing all of the project's
// documents.
func NewSelection(p *domain.Project) *Selection {
	s := &Selection{members: map[string]bool{}}
	for _, doc := range p.AllDocuments() {
		s.ids = append(s.ids, doc.ID)
		s.members[doc.ID] = true
	}
	return s
}

// Toggle flips membership of the given document ID.
func (s *Selection) Toggle(docID string) {
	if s.members[docID] {
		s.members[docID] = false
		return
	}
	if _, known := s.members[docID]; known {
		s.members[docID] = true
		return
	}
	// Unknown IDs become selected members; the selection does not claim
	// to know the project's full document set after construction.
	s.ids = append(s.ids, docID)
	s.members[docID] = true
}

// Selected reports whether the document is part of the export.
func (s *Selection) Selected(docID string) bool {
	return s.members[docID]
}

// SelectedCount returns how many documents are currently selected.
func (s *Selection) SelectedCount() int {
	n := 0
	for _, id := range s.ids {
		if s.members[id] {
			n++
		}
	}
	return n
}

// SelectedIDs returns the selected document IDs in insertion order.
func (s *Selection) SelectedIDs() []string {
	var out []string
	for _, id := range s.ids {
		if s.members[id] {
			out = append(out, id)
		}
	}
	return out
}
