package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
)

// runTUI resolves the credential and starts the interactive program.
func runTUI(app *App) error {
	token, err := app.Credentials.Token()
	if err != nil {
		return err
	}
	p := tea.NewProgram(newAppModel(app, token), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and a transient output area.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool

	// Transient output from view actions, displayed in the content area
	// until the next keypress.
	lastOutput string
}

func newAppModel(app *App, token string) appModel {
	state := &SharedState{App: app, Token: token}
	m := appModel{state: state}

	// Start with the dashboard as the home view.
	m.viewStack = []View{newDashboardView(state)}

	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		if v := m.activeView(); v != nil {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.lastOutput = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.lastOutput = ""
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		// Broadcast to ALL views in the stack so underlying views reload
		// data after mutations made in views above them.
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case cmdOutputMsg:
		m.lastOutput = msg.output
		return m, nil

	case wizardCompleteMsg:
		// Atomically pop the wizard view and execute the follow-up command.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.lastOutput = ""
		return m, tea.Batch(msg.nextCmd, refreshCmd())
	}

	// Forward other messages (async load results, ticks) to every view so
	// results reach the view that requested them even after navigation.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// Any key dismisses transient output, then falls through.
	if m.lastOutput != "" {
		m.lastOutput = ""
	}

	// Forms capture all input, including 'q' and Esc.
	if v := m.activeView(); v != nil && v.ID() == ViewForm {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// Pop view stack (go back)
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
			if len(m.viewStack) == 1 {
				m.state.ClearActiveProject()
			}
			return m, nil
		}
		return m, nil
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.lastOutput != "" {
		sections = append(sections, m.lastOutput)
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("archisheets")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	header := title + breadcrumb

	if m.state.Active != nil {
		name := formatter.StyleGreen.Render(m.state.Active.Name)
		header += "  " + formatter.Dim("[") + name + formatter.Dim("]")
		if m.state.Busy {
			header += " " + formatter.StyleYellow.Render("⟳")
		}
	}

	sep := formatter.Dim(strings.Repeat("─", maxInt(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	}

	bar := strings.Join(hints, "  ")
	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", maxInt(m.state.Width, 20)))
	return sep + "\n" + bar
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// errorText renders an error line for transient output.
func errorText(err error) string {
	return "\n  " + formatter.StyleRed.Render("Error: "+err.Error())
}

// successText renders a confirmation line for transient output.
func successText(format string, args ...any) string {
	return "\n  " + formatter.StyleGreen.Render("✓ ") + fmt.Sprintf(format, args...)
}
