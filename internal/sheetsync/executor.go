package sheetsync

import (
	"context"
	"fmt"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheets"
)

// Executor runs sync plans against a remote store.
type Executor struct {
	store sheets.Store
}

// NewExecutor creates an Executor backed by the given store.
func NewExecutor(store sheets.Store) *Executor {
	return &Executor{store: store}
}

// Sync computes and executes a plan for the project. Tab creation must be
// acknowledged before any value write is issued; if creation fails the
// write step is never attempted and local state is untouched (fail-fast,
// no partial retries). Each range write replaces the whole range, so a
// repeated Sync is idempotent. There is no cross-client locking: two
// concurrent syncs race and the later write wins.
func (e *Executor) Sync(ctx context.Context, token string, project *domain.Project) (*Plan, error) {
	if project.SheetID == "" {
		return nil, fmt.Errorf("project %q has no spreadsheet attached", project.Name)
	}

	existing, err := e.store.GetTabTitles(ctx, token, project.SheetID)
	if err != nil {
		return nil, fmt.Errorf("inspecting spreadsheet: %w", err)
	}

	plan, err := Compute(existing, project)
	if err != nil {
		return nil, err
	}

	if err := e.store.BatchCreateTabs(ctx, token, project.SheetID, plan.CreateTabs); err != nil {
		return nil, fmt.Errorf("creating tabs: %w", err)
	}

	if err := e.store.BatchWriteRanges(ctx, token, project.SheetID, plan.Writes); err != nil {
		return nil, fmt.Errorf("writing values: %w", err)
	}

	return plan, nil
}
