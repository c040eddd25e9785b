package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/export"
)

// ── messages ─────────────────────────────────────────────────────────────────

// exportProgressMsg carries one completed pipeline step.
type exportProgressMsg struct {
	progress export.Progress
}

// exportDoneMsg signals the pipeline finished or failed.
type exportDoneMsg struct {
	err error
}

// ── view ─────────────────────────────────────────────────────────────────────

// exportView selects the documents to include in the compiled dossier
// and runs the staged export pipeline over them.
type exportView struct {
	state     *SharedState
	selection *export.Selection
	docs      []domain.Document
	cursor    int

	running  bool
	finished bool
	progress *export.Progress
	runErr   error

	// events streams pipeline progress from the worker goroutine into
	// the bubbletea loop.
	events chan tea.Msg
	cancel context.CancelFunc
}

func newExportView(state *SharedState) *exportView {
	p := state.Active
	return &exportView{
		state:     state,
		selection: export.NewSelection(p),
		docs:      p.AllDocuments(),
	}
}

func (v *exportView) ID() ViewID    { return ViewExport }
func (v *exportView) Title() string { return "Exportar" }

func (v *exportView) ShortHelp() []key.Binding {
	if v.running {
		return []key.Binding{
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel·lar")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("espai", "marcar")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compilar")),
	}
}

func (v *exportView) Init() tea.Cmd { return nil }

// ── pipeline bridge ──────────────────────────────────────────────────────────

// startRun launches the pipeline in a goroutine and begins listening for
// its progress events.
func (v *exportView) startRun() tea.Cmd {
	if v.selection.SelectedCount() == 0 {
		return outputCmd(errorText(export.ErrNothingSelected))
	}

	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.events = make(chan tea.Msg, len(export.Steps)+1)
	v.running = true
	v.finished = false
	v.progress = nil
	v.runErr = nil

	pipeline := v.state.App.Export
	selection := v.selection
	events := v.events

	go func() {
		err := pipeline.Run(ctx, selection, func(p export.Progress) {
			events <- exportProgressMsg{progress: p}
		})
		events <- exportDoneMsg{err: err}
		close(events)
	}()

	return v.nextEvent()
}

// nextEvent waits for the next pipeline message.
func (v *exportView) nextEvent() tea.Cmd {
	events := v.events
	return func() tea.Msg {
		return <-events
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *exportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.state.Active == nil {
		return v, popView()
	}

	switch msg := msg.(type) {
	case exportProgressMsg:
		p := msg.progress
		v.progress = &p
		return v, v.nextEvent()

	case exportDoneMsg:
		v.running = false
		v.finished = true
		v.runErr = msg.err
		v.cancel = nil
		return v, nil

	case tea.KeyMsg:
		if v.running {
			if msg.String() == "c" && v.cancel != nil {
				v.cancel()
			}
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.docs)-1 {
				v.cursor++
			}
		case " ":
			if v.cursor < len(v.docs) {
				v.selection.Toggle(v.docs[v.cursor].ID)
			}
		case "enter":
			return v, v.startRun()
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *exportView) View() string {
	var b strings.Builder
	b.WriteString("\n")

	if v.running || v.finished {
		return v.renderProgress()
	}

	if len(v.docs) == 0 {
		b.WriteString("  " + formatter.Dim("Cap document al projecte. Afegeix documents als capítols abans d'exportar."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %s %d/%d documents seleccionats\n\n",
		formatter.Dim("Memòria de"), v.selection.SelectedCount(), len(v.docs)))

	for i, d := range v.docs {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		mark := formatter.Dim("[ ]")
		if v.selection.Selected(d.ID) {
			mark = formatter.StyleGreen.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %s%s %-40s %s\n",
			cursor, mark, padRight(d.Title, 40), formatter.StylePurple.Render(string(d.Type))))
	}

	return b.String()
}

func (v *exportView) renderProgress() string {
	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleBold.Render("Compilant la memòria") + "\n\n")

	completed := 0
	if v.progress != nil {
		completed = v.progress.StepIndex + 1
	}
	for i, label := range export.Steps {
		switch {
		case i < completed:
			b.WriteString("  " + formatter.StyleGreen.Render("✓") + " " + label + "\n")
		case i == completed && v.running:
			b.WriteString("  " + formatter.StyleYellow.Render("⟳") + " " + formatter.Bold(label) + "\n")
		default:
			b.WriteString("  " + formatter.Dim("· "+label) + "\n")
		}
	}

	fraction := 0.0
	if v.progress != nil {
		fraction = v.progress.Fraction
	}
	b.WriteString("\n  " + formatter.RenderProgress(fraction, 24) + "\n")

	if v.finished {
		if v.runErr != nil {
			b.WriteString(errorText(v.runErr) + "\n")
		} else {
			b.WriteString("\n  " + formatter.StyleGreen.Render("✓ Memòria compilada.") + "\n")
		}
		b.WriteString("  " + formatter.Dim("esc: tornar") + "\n")
	}

	return b.String()
}
