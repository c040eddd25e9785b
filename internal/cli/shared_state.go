package cli

import "github.com/estudiarq/archisheets/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Token is the bearer credential resolved at TUI startup.
	Token string

	// Active is the fully loaded project being edited, nil on the
	// dashboard.
	Active *domain.Project

	// Busy marks a sync in progress for the active project, so views can
	// disable conflicting actions.
	Busy bool

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject stores the opened project in shared state.
func (s *SharedState) SetActiveProject(p *domain.Project) {
	s.Active = p
	s.Busy = false
}

// ClearActiveProject drops the active project context.
func (s *SharedState) ClearActiveProject() {
	s.Active = nil
	s.Busy = false
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and the status
// bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
