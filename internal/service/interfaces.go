// Package service composes the remote catalog, the local cache and the
// spreadsheet sync into the operations the CLI and TUI call. Services
// accept interfaces and return domain structs; all remote calls carry the
// caller's context and bearer token.
package service

import (
	"context"
	"errors"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

// ErrSyncInFlight indicates a sync for the same project is already
// running; the caller should retry once it finishes.
var ErrSyncInFlight = errors.New("sync already in progress for this project")

// ProjectService manages the project lifecycle against the remote
// catalog and project spreadsheets.
type ProjectService interface {
	// Create allocates a project spreadsheet, registers it in the
	// catalog, pushes the initial structure and caches the result.
	Create(ctx context.Context, token, name, description string, isTemplate bool) (*domain.Project, error)

	// CreateFromTemplate creates a project and copies the template's
	// chapters and placeholders into it before the initial sync.
	CreateFromTemplate(ctx context.Context, token, name, description string, template *domain.Project) (*domain.Project, error)

	// List returns catalog stubs, refreshing the local cache on success
	// and falling back to it when the remote store is unreachable.
	List(ctx context.Context, token string) ([]*domain.Project, error)

	// ListTemplates returns only the catalog entries flagged as templates.
	ListTemplates(ctx context.Context, token string) ([]*domain.Project, error)

	// Open loads a stub's chapters, placeholders and documents from its
	// spreadsheet.
	Open(ctx context.Context, token string, stub *domain.Project) (*domain.Project, error)
}

// Syncer pushes a project's structure to its spreadsheet.
type Syncer interface {
	// Sync runs one sync for the project. At most one sync per project
	// runs at a time; overlapping calls fail with ErrSyncInFlight.
	Sync(ctx context.Context, token string, project *domain.Project) (*sheetsync.Plan, error)
}
