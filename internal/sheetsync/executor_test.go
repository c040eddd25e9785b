package sheetsync

import (
	"context"
	"errors"
	"testing"

	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executorProject(t *testing.T, store *testutil.FakeSheetStore) *domain.Project {
	t.Helper()
	store.AddSpreadsheet("sheet-1", "CONFIG", "ESTRUCTURA")
	p := &domain.Project{Name: "Casa Pere", SheetID: "sheet-1"}
	ch, err := p.AddChapter("01 Memòria")
	require.NoError(t, err)
	_, err = p.AddDocument(ch.ID, "01.01 Objecte", "https://docs.google.com/document/d/1", domain.DocGoogleDoc)
	require.NoError(t, err)
	return p
}

func TestExecutor_Sync_CreatesTabsThenWrites(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	p := executorProject(t, store)

	plan, err := NewExecutor(store).Sync(context.Background(), "tok", p)
	require.NoError(t, err)

	assert.Equal(t, []string{"01_MEMÒRIA"}, plan.CreateTabs)
	assert.Equal(t,
		[]string{"GetTabTitles", "BatchCreateTabs", "BatchWriteRanges"},
		store.Calls, "tab creation must be acknowledged before values are written")

	ss := store.Spreadsheets["sheet-1"]
	assert.Contains(t, ss.Tabs, "01_MEMÒRIA")
	assert.Contains(t, ss.Ranges, "CONFIG!A1:C")
	assert.Contains(t, ss.Ranges, "ESTRUCTURA!A1:C")
	assert.Contains(t, ss.Ranges, "01_MEMÒRIA!A1:B")
}

func TestExecutor_Sync_FailedTabCreationPreventsWrites(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	p := executorProject(t, store)
	store.CreateTabsErr = errors.New("boom")

	_, err := NewExecutor(store).Sync(context.Background(), "tok", p)
	require.Error(t, err)

	assert.Equal(t, 0, store.CallCount("BatchWriteRanges"),
		"value write must never be issued after a failed tab creation")
}

func TestExecutor_Sync_SecondRunCreatesNothing(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	p := executorProject(t, store)
	ex := NewExecutor(store)

	_, err := ex.Sync(context.Background(), "tok", p)
	require.NoError(t, err)
	plan, err := ex.Sync(context.Background(), "tok", p)
	require.NoError(t, err)

	assert.Empty(t, plan.CreateTabs)
	assert.Equal(t, 1, store.CallCount("BatchCreateTabs"))
	assert.Equal(t, 2, store.CallCount("BatchWriteRanges"))
}

func TestExecutor_Sync_NoSheetAttached(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	p := &domain.Project{Name: "local only"}

	_, err := NewExecutor(store).Sync(context.Background(), "tok", p)
	assert.Error(t, err)
	assert.Empty(t, store.Calls)
}

func TestExecutor_Sync_RemovedChapterLeavesTabAlone(t *testing.T) {
	store := testutil.NewFakeSheetStore()
	p := executorProject(t, store)
	ex := NewExecutor(store)

	_, err := ex.Sync(context.Background(), "tok", p)
	require.NoError(t, err)

	p.RemoveChapter(p.Chapters[0].ID)
	_, err = ex.Sync(context.Background(), "tok", p)
	require.NoError(t, err)

	// Local removal never issues a remote deletion.
	assert.Contains(t, store.Spreadsheets["sheet-1"].Tabs, "01_MEMÒRIA")
}
