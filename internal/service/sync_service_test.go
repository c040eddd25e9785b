package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/sheetsync"
	"github.com/estudiarq/archisheets/internal/testutil"
)

// blockingStore stalls the first GetTabTitles until released, so a
// second sync can be attempted while the first is provably still running.
type blockingStore struct {
	*testutil.FakeSheetStore
	entered chan struct{}
	release chan struct{}
	first   atomic.Bool
}

func (b *blockingStore) GetTabTitles(ctx context.Context, token, sheetID string) ([]string, error) {
	if b.first.CompareAndSwap(false, true) {
		close(b.entered)
		<-b.release
	}
	return b.FakeSheetStore.GetTabTitles(ctx, token, sheetID)
}

func TestSyncService_RejectsOverlappingSync(t *testing.T) {
	fake := testutil.NewFakeSheetStore()
	fake.AddSpreadsheet("sheet-1", sheetsync.TabConfig, sheetsync.TabStructure)
	store := &blockingStore{
		FakeSheetStore: fake,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	syncer := NewSyncService(sheetsync.NewExecutor(store))

	project := &domain.Project{ID: "p1", Name: "Casa A", SheetID: "sheet-1"}

	done := make(chan error, 1)
	go func() {
		_, err := syncer.Sync(context.Background(), "tok", project)
		done <- err
	}()

	<-store.entered
	_, err := syncer.Sync(context.Background(), "tok", project)
	assert.ErrorIs(t, err, ErrSyncInFlight)

	close(store.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("first sync never finished")
	}

	// The flag is cleared once the sync completes.
	_, err = syncer.Sync(context.Background(), "tok", project)
	assert.NoError(t, err)
}

func TestSyncService_DifferentProjectsDoNotBlock(t *testing.T) {
	fake := testutil.NewFakeSheetStore()
	fake.AddSpreadsheet("sheet-1", sheetsync.TabConfig, sheetsync.TabStructure)
	fake.AddSpreadsheet("sheet-2", sheetsync.TabConfig, sheetsync.TabStructure)
	store := &blockingStore{
		FakeSheetStore: fake,
		entered:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	syncer := NewSyncService(sheetsync.NewExecutor(store))

	first := &domain.Project{ID: "p1", Name: "Casa A", SheetID: "sheet-1"}
	second := &domain.Project{ID: "p2", Name: "Casa B", SheetID: "sheet-2"}

	done := make(chan error, 1)
	go func() {
		_, err := syncer.Sync(context.Background(), "tok", first)
		done <- err
	}()

	<-store.entered
	_, err := syncer.Sync(context.Background(), "tok", second)
	assert.NoError(t, err)

	close(store.release)
	require.NoError(t, <-done)
}

func TestSyncService_NoSheet(t *testing.T) {
	syncer := NewSyncService(sheetsync.NewExecutor(testutil.NewFakeSheetStore()))
	_, err := syncer.Sync(context.Background(), "tok", &domain.Project{Name: "Sense full"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spreadsheet attached")
}

func TestSyncService_EmitsEvent(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	store.AddSpreadsheet("sheet-1", sheetsync.TabConfig, sheetsync.TabStructure)
	obs := &recordingObserver{}
	syncer := NewSyncService(sheetsync.NewExecutor(store), obs)

	p := &domain.Project{ID: "p1", Name: "Casa A", SheetID: "sheet-1"}
	_, err := p.AddChapter("01 Memòria")
	require.NoError(t, err)

	plan, err := syncer.Sync(context.Background(), "tok", p)
	require.NoError(t, err)
	assert.Equal(t, []string{"01_MEMÒRIA"}, plan.CreateTabs)

	names := obs.names()
	require.Contains(t, names, "project_sync")
	for _, e := range obs.events {
		if e.Name == "project_sync" {
			assert.True(t, e.Success)
			assert.Equal(t, 1, e.Fields["tabs_created"])
		}
	}
}
