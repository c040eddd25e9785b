package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that the catalog has been loaded.
type dashboardLoadedMsg struct {
	projects []*domain.Project
	err      error
}

// projectOpenedMsg signals that a project's full structure has been read
// from its spreadsheet.
type projectOpenedMsg struct {
	project *domain.Project
	err     error
}

// projectCreatedMsg signals the outcome of a project creation wizard.
type projectCreatedMsg struct {
	project *domain.Project
	err     error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI: the project catalog with
// a selection cursor.
type dashboardView struct {
	state   *SharedState
	loading bool
	opening bool
	err     error

	projects []*domain.Project
	cursor   int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Projectes" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "obrir")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nou projecte")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "plantilles")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refrescar")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "sortir")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	token := v.state.Token
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background(), token)
		return dashboardLoadedMsg{projects: projects, err: err}
	}
}

func (v *dashboardView) openSelected() tea.Cmd {
	if v.cursor >= len(v.projects) {
		return nil
	}
	stub := v.projects[v.cursor]
	app := v.state.App
	token := v.state.Token
	return func() tea.Msg {
		p, err := app.Projects.Open(context.Background(), token, stub)
		return projectOpenedMsg{project: p, err: err}
	}
}

func (v *dashboardView) startNewProject() tea.Cmd {
	var name, description string
	var isTemplate bool
	form := wizardNewProject(&name, &description, &isTemplate)
	app := v.state.App
	token := v.state.Token

	done := func() tea.Cmd {
		return func() tea.Msg {
			p, err := app.Projects.Create(context.Background(), token, name, description, isTemplate)
			return projectCreatedMsg{project: p, err: err}
		}
	}
	return pushView(newWizardView(v.state, "Nou projecte", form, done))
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.projects = msg.projects
		if v.cursor >= len(v.projects) {
			v.cursor = maxInt(0, len(v.projects)-1)
		}
		return v, nil

	case projectOpenedMsg:
		v.opening = false
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		v.state.SetActiveProject(msg.project)
		return v, pushView(newProjectEditorView(v.state))

	case projectCreatedMsg:
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		v.loading = true
		return v, tea.Batch(
			v.loadData(),
			outputCmd(successText("Projecte %q creat.\n  %s", msg.project.Name, formatter.Dim(msg.project.SheetURL()))),
		)

	case refreshViewMsg:
		v.loading = true
		v.err = nil
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.projects)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.projects) && !v.opening {
				v.opening = true
				return v, v.openSelected()
			}
		case "n":
			return v, v.startNewProject()
		case "t":
			return v, pushView(newTemplateLibraryView(v.state))
		case "r":
			v.loading = true
			v.err = nil
			return v, v.loadData()
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregant el catàleg...")
	}
	if v.err != nil {
		return errorText(v.err)
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(v.projects) == 0 {
		b.WriteString("  " + formatter.Dim("Cap projecte encara. Prem 'n' per crear-ne un."))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range v.projects {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}

		created := ""
		if !p.CreatedAt.IsZero() {
			created = p.CreatedAt.Format("2006-01-02")
		}

		line := fmt.Sprintf("%s%-32s %s", cursor, nameStyle.Render(padRight(p.Name, 32)), formatter.Dim(created))
		if p.IsTemplate {
			line += "  " + formatter.TemplateBadge(true)
		}
		b.WriteString(line + "\n")
	}

	if v.opening {
		b.WriteString("\n  " + formatter.Dim("Obrint el projecte..."))
	}

	return b.String()
}

// padRight pads s with spaces to width, truncating when longer.
func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
