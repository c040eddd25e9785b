package cli

import (
	"testing"

	"github.com/estudiarq/archisheets/internal/teatest"
)

// TestDriver wraps teatest.Driver with appModel inspection helpers
// (view stack, shared state, transient output) the generic driver
// cannot see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for a test App, sets the terminal
// size, and drains Init() — the dashboard load runs synchronously
// against the fake sheet store.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app, "test-token")
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports whether the app has signaled a quit, either via
// the model's own flag or a tea.QuitMsg seen by the driver.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// LastOutput returns the transient output shown in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
