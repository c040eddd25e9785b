package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/estudiarq/archisheets/internal/sheets"
)

// FakeSpreadsheet is the in-memory state of one fake remote spreadsheet.
type FakeSpreadsheet struct {
	Title  string
	Tabs   []string
	Ranges map[string][][]string
	// AppendedRows records rows added via AppendRow, keyed by tab title
	// so that appends to PROJECTES!A:E are visible when reading
	// PROJECTES!A2:E.
	AppendedRows map[string][][]string
}

// FakeSheetStore is an in-memory sheets.Store for tests. It records every
// call and supports per-method error injection.
type FakeSheetStore struct {
	mu sync.Mutex

	Spreadsheets map[string]*FakeSpreadsheet
	nextID       int

	// Calls lists method names in invocation order.
	Calls []string

	// Error injection, checked before any state change.
	CreateErr     error
	TabTitlesErr  error
	CreateTabsErr error
	WriteErr      error
	GetValuesErr  error
	AppendErr     error
}

// NewFakeSheetStore creates an empty fake store.
func NewFakeSheetStore() *FakeSheetStore {
	return &FakeSheetStore{Spreadsheets: map[string]*FakeSpreadsheet{}}
}

// AddSpreadsheet seeds a spreadsheet with the given ID and tabs.
func (f *FakeSheetStore) AddSpreadsheet(id string, tabs ...string) *FakeSpreadsheet {
	f.mu.Lock()
	defer f.mu.Unlock()
	ss := &FakeSpreadsheet{
		Tabs:         append([]string{}, tabs...),
		Ranges:       map[string][][]string{},
		AppendedRows: map[string][][]string{},
	}
	f.Spreadsheets[id] = ss
	return ss
}

func (f *FakeSheetStore) record(call string) {
	f.Calls = append(f.Calls, call)
}

// CallCount returns how many times the named method was invoked.
func (f *FakeSheetStore) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *FakeSheetStore) CreateSpreadsheet(_ context.Context, _, title string, initialTabs []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CreateSpreadsheet")
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	f.nextID++
	id := fmt.Sprintf("fake-sheet-%d", f.nextID)
	f.Spreadsheets[id] = &FakeSpreadsheet{
		Title:        title,
		Tabs:         append([]string{}, initialTabs...),
		Ranges:       map[string][][]string{},
		AppendedRows: map[string][][]string{},
	}
	return id, nil
}

func (f *FakeSheetStore) GetTabTitles(_ context.Context, _, sheetID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetTabTitles")
	if f.TabTitlesErr != nil {
		return nil, f.TabTitlesErr
	}
	ss, ok := f.Spreadsheets[sheetID]
	if !ok {
		return nil, sheets.ErrNotFound
	}
	return append([]string{}, ss.Tabs...), nil
}

func (f *FakeSheetStore) BatchCreateTabs(_ context.Context, _, sheetID string, titles []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(titles) == 0 {
		return nil
	}
	f.record("BatchCreateTabs")
	if f.CreateTabsErr != nil {
		return f.CreateTabsErr
	}
	ss, ok := f.Spreadsheets[sheetID]
	if !ok {
		return sheets.ErrNotFound
	}
	ss.Tabs = append(ss.Tabs, titles...)
	return nil
}

func (f *FakeSheetStore) BatchWriteRanges(_ context.Context, _, sheetID string, data []sheets.ValueRange) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("BatchWriteRanges")
	if f.WriteErr != nil {
		return f.WriteErr
	}
	ss, ok := f.Spreadsheets[sheetID]
	if !ok {
		return sheets.ErrNotFound
	}
	for _, vr := range data {
		ss.Ranges[vr.Range] = vr.Values
	}
	return nil
}

func (f *FakeSheetStore) GetValues(_ context.Context, _, sheetID, rng string) ([][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetValues")
	if f.GetValuesErr != nil {
		return nil, f.GetValuesErr
	}
	ss, ok := f.Spreadsheets[sheetID]
	if !ok {
		return nil, sheets.ErrNotFound
	}
	rows := append([][]string{}, ss.Ranges[rng]...)
	rows = append(rows, ss.AppendedRows[tabOf(rng)]...)
	return rows, nil
}

// tabOf strips the cell part of an A1-notation range.
func tabOf(rng string) string {
	for i := 0; i < len(rng); i++ {
		if rng[i] == '!' {
			return rng[:i]
		}
	}
	return rng
}

func (f *FakeSheetStore) AppendRow(_ context.Context, _, sheetID, rng string, row []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AppendRow")
	if f.AppendErr != nil {
		return f.AppendErr
	}
	ss, ok := f.Spreadsheets[sheetID]
	if !ok {
		return sheets.ErrNotFound
	}
	tab := tabOf(rng)
	ss.AppendedRows[tab] = append(ss.AppendedRows[tab], row)
	return nil
}

var _ sheets.Store = (*FakeSheetStore)(nil)
