// Package catalog manages the master list of projects: one spreadsheet
// tab (PROJECTES) whose rows point at each project's own sheet.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheets"
	"github.com/estudiarq/archisheets/internal/sheetsync"
	"github.com/google/uuid"
)

const (
	// CatalogTab is the master sheet tab holding one row per project.
	CatalogTab = "PROJECTES"

	catalogReadRange   = CatalogTab + "!A2:E"
	catalogAppendRange = CatalogTab + "!A:E"

	// sheetTitlePrefix marks project spreadsheets in Drive.
	sheetTitlePrefix = "ARCHI - "
)

// ErrCatalogTabMissing indicates the master sheet has no PROJECTES tab.
var ErrCatalogTabMissing = errors.New("master sheet has no PROJECTES tab")

// Registry is the project catalog over the remote master sheet.
type Registry struct {
	store         sheets.Store
	masterSheetID string
}

// NewRegistry creates a Registry reading and appending rows of the given
// master spreadsheet.
func NewRegistry(store sheets.Store, masterSheetID string) *Registry {
	return &Registry{store: store, masterSheetID: masterSheetID}
}

// Create allocates a new project spreadsheet (CONFIG + ESTRUCTURA tabs),
// registers it in the master catalog and returns the in-memory project,
// seeded with the default placeholder set. The returned SheetID is
// assigned by the remote store and never changes afterwards.
//
// The catalog append happens after sheet creation; when it fails the
// sheet already exists in Drive, so the error names the orphaned sheet
// instead of pretending nothing happened.
func (r *Registry) Create(ctx context.Context, token, name string, isTemplate bool) (*domain.Project, error) {
	sheetID, err := r.store.CreateSpreadsheet(ctx, token, sheetTitlePrefix+name,
		[]string{sheetsync.TabConfig, sheetsync.TabStructure})
	if err != nil {
		return nil, fmt.Errorf("creating project sheet: %w", err)
	}

	p := &domain.Project{
		ID:           uuid.New().String(),
		Name:         name,
		SheetID:      sheetID,
		IsTemplate:   isTemplate,
		CreatedAt:    time.Now().UTC(),
		Placeholders: domain.DefaultPlaceholders(),
	}

	row := []string{
		p.ID,
		p.Name,
		p.SheetID,
		p.CreatedAt.Format(time.RFC3339),
		boolToFlag(p.IsTemplate),
	}
	if err := r.store.AppendRow(ctx, token, r.masterSheetID, catalogAppendRange, row); err != nil {
		return nil, fmt.Errorf("registering project %q (sheet %s already created): %w", name, sheetID, err)
	}

	return p, nil
}

// List reads the master catalog and reconstructs lightweight project
// stubs, in row order. Chapters and placeholders stay empty until the
// project is opened; only the catalog columns are populated.
func (r *Registry) List(ctx context.Context, token string) ([]*domain.Project, error) {
	rows, err := r.store.GetValues(ctx, token, r.masterSheetID, catalogReadRange)
	if err != nil {
		if errors.Is(err, sheets.ErrNotFound) {
			return nil, fmt.Errorf("%w (sheet %s)", ErrCatalogTabMissing, r.masterSheetID)
		}
		return nil, fmt.Errorf("reading master catalog: %w", err)
	}

	projects := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		p := stubFromRow(row)
		if p != nil {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// FindBySheetID lists the catalog and returns the project stub with the
// given sheet ID, or nil when it has not appeared yet. The catalog is
// appended asynchronously after sheet creation, so a fresh project can
// legitimately be absent for a short while.
func (r *Registry) FindBySheetID(ctx context.Context, token, sheetID string) (*domain.Project, error) {
	projects, err := r.List(ctx, token)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.SheetID == sheetID {
			return p, nil
		}
	}
	return nil, nil
}

// stubFromRow maps one catalog row [id, name, sheetId, createdAt,
// isTemplate] to a project stub. Rows without an id are skipped; short
// rows are tolerated (trailing empty cells are omitted by the API).
func stubFromRow(row []string) *domain.Project {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	if cell(0) == "" {
		return nil
	}

	createdAt, err := time.Parse(time.RFC3339, cell(3))
	if err != nil {
		createdAt = time.Time{}
	}

	return &domain.Project{
		ID:         cell(0),
		Name:       cell(1),
		SheetID:    cell(2),
		CreatedAt:  createdAt,
		IsTemplate: cell(4) == "TRUE",
	}
}

func boolToFlag(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
