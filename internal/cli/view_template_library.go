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

// templatesLoadedMsg signals that the template catalog has been loaded.
type templatesLoadedMsg struct {
	templates []*domain.Project
	err       error
}

// templateLibraryView lists template projects and instantiates new
// projects from them.
type templateLibraryView struct {
	state   *SharedState
	loading bool
	err     error

	templates []*domain.Project
	cursor    int
}

func newTemplateLibraryView(state *SharedState) *templateLibraryView {
	return &templateLibraryView{state: state, loading: true}
}

func (v *templateLibraryView) ID() ViewID    { return ViewTemplateLibrary }
func (v *templateLibraryView) Title() string { return "Plantilles" }

func (v *templateLibraryView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "usar plantilla")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refrescar")),
	}
}

func (v *templateLibraryView) Init() tea.Cmd {
	return v.loadData()
}

func (v *templateLibraryView) loadData() tea.Cmd {
	app := v.state.App
	token := v.state.Token
	return func() tea.Msg {
		templates, err := app.Projects.ListTemplates(context.Background(), token)
		return templatesLoadedMsg{templates: templates, err: err}
	}
}

// startUseTemplate opens the selected template (to read its structure)
// and creates a project from it with a freshly entered name.
func (v *templateLibraryView) startUseTemplate() tea.Cmd {
	if v.cursor >= len(v.templates) {
		return nil
	}
	stub := v.templates[v.cursor]
	app := v.state.App
	token := v.state.Token

	var name, description string
	form := huhProjectFromTemplateForm(stub.Name, &name, &description)

	done := func() tea.Cmd {
		return func() tea.Msg {
			ctx := context.Background()
			template, err := app.Projects.Open(ctx, token, stub)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			p, err := app.Projects.CreateFromTemplate(ctx, token, name, description, template)
			return projectCreatedMsg{project: p, err: err}
		}
	}
	return pushView(newWizardView(v.state, "Usar plantilla", form, done))
}

func (v *templateLibraryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case templatesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.templates = msg.templates
		if v.cursor >= len(v.templates) {
			v.cursor = maxInt(0, len(v.templates)-1)
		}
		return v, nil

	case projectCreatedMsg:
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		return v, outputCmd(successText("Projecte %q creat a partir de la plantilla.\n  %s",
			msg.project.Name, formatter.Dim(msg.project.SheetURL())))

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.templates)-1 {
				v.cursor++
			}
		case "enter", "u":
			return v, v.startUseTemplate()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

func (v *templateLibraryView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Carregant plantilles...")
	}
	if v.err != nil {
		return errorText(v.err)
	}

	var b strings.Builder
	b.WriteString("\n")

	if len(v.templates) == 0 {
		b.WriteString("  " + formatter.Dim("Cap plantilla. Crea un projecte marcat com a plantilla des del tauler."))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range v.templates {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		created := ""
		if !t.CreatedAt.IsZero() {
			created = t.CreatedAt.Format("2006-01-02")
		}
		b.WriteString(fmt.Sprintf("  %s%-32s %s\n", cursor, nameStyle.Render(padRight(t.Name, 32)), formatter.Dim(created)))
	}

	return b.String()
}
