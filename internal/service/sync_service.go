package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

type syncService struct {
	executor *sheetsync.Executor
	observer UseCaseObserver

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSyncService creates a Syncer that serializes syncs per project.
// During a sync the project is busy: a second call for the same sheet
// fails with ErrSyncInFlight instead of racing the first.
func NewSyncService(executor *sheetsync.Executor, observers ...UseCaseObserver) Syncer {
	return &syncService{
		executor: executor,
		observer: useCaseObserverOrNoop(observers),
		inFlight: map[string]bool{},
	}
}

func (s *syncService) Sync(ctx context.Context, token string, project *domain.Project) (plan *sheetsync.Plan, err error) {
	if project.SheetID == "" {
		return nil, fmt.Errorf("project %q has no spreadsheet attached", project.Name)
	}

	s.mu.Lock()
	if s.inFlight[project.SheetID] {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSyncInFlight, project.Name)
	}
	s.inFlight[project.SheetID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, project.SheetID)
		s.mu.Unlock()
	}()

	start := time.Now()
	defer func() {
		fields := map[string]any{"sheet_id": project.SheetID}
		if plan != nil {
			fields["tabs_created"] = len(plan.CreateTabs)
			fields["ranges_written"] = len(plan.Writes)
		}
		observe(ctx, s.observer, "project_sync", start, err, fields)
	}()

	return s.executor.Sync(ctx, token, project)
}
