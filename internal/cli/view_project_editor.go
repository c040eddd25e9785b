package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
	"github.com/estudiarq/archisheets/internal/intelligence"
	"github.com/estudiarq/archisheets/internal/sheetsync"
)

// ── messages ─────────────────────────────────────────────────────────────────

// syncDoneMsg signals that a spreadsheet sync finished.
type syncDoneMsg struct {
	plan *sheetsync.Plan
	took time.Duration
	err  error
}

// chaptersSuggestedMsg carries AI-proposed chapters for the project.
type chaptersSuggestedMsg struct {
	suggestions []intelligence.ChapterSuggestion
	err         error
}

// ── view ─────────────────────────────────────────────────────────────────────

// projectEditorView edits the structure of the active project: its
// chapter list and the documents of each chapter. Edits are local until
// synced to the spreadsheet.
type projectEditorView struct {
	state  *SharedState
	cursor int

	// dirty is set by local mutations and cleared by a successful sync.
	dirty bool
}

func newProjectEditorView(state *SharedState) *projectEditorView {
	return &projectEditorView{state: state}
}

func (v *projectEditorView) ID() ViewID    { return ViewProjectEditor }
func (v *projectEditorView) Title() string { return "Editor" }

func (v *projectEditorView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "capítol")),
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "document")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "esborrar")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "claus")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sincronitzar")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "exportar")),
	}
	if v.state.App.Suggest != nil {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "suggerir capítols")))
	}
	return bindings
}

func (v *projectEditorView) Init() tea.Cmd { return nil }

// ── actions ──────────────────────────────────────────────────────────────────

func (v *projectEditorView) startSync() tea.Cmd {
	app := v.state.App
	token := v.state.Token
	project := v.state.Active
	v.state.Busy = true
	return func() tea.Msg {
		start := time.Now()
		plan, err := app.Sync.Sync(context.Background(), token, project)
		return syncDoneMsg{plan: plan, took: time.Since(start), err: err}
	}
}

func (v *projectEditorView) startAddChapter() tea.Cmd {
	var title string
	form := wizardInputText("Títol del capítol", "01 Memòria descriptiva", true, &title)
	project := v.state.Active

	done := func() tea.Cmd {
		return func() tea.Msg {
			ch, err := project.AddChapter(title)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			v.dirty = true
			return cmdOutputMsg{output: successText("Capítol %q afegit (pestanya %s).", ch.Title, ch.SheetTabName)}
		}
	}
	return pushView(newWizardView(v.state, "Nou capítol", form, done))
}

func (v *projectEditorView) startAddDocument() tea.Cmd {
	project := v.state.Active
	if v.cursor >= len(project.Chapters) {
		return outputCmd(errorText(fmt.Errorf("cap capítol seleccionat")))
	}
	chapterID := project.Chapters[v.cursor].ID

	var title, url, docType string
	form := wizardNewDocument(&title, &url, &docType)

	done := func() tea.Cmd {
		return func() tea.Msg {
			doc, err := project.AddDocument(chapterID, title, url, domain.ParseDocType(docType))
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			v.dirty = true
			return cmdOutputMsg{output: successText("Document %q afegit.", doc.Title)}
		}
	}
	return pushView(newWizardView(v.state, "Nou document", form, done))
}

func (v *projectEditorView) startRemoveChapter() tea.Cmd {
	project := v.state.Active
	if v.cursor >= len(project.Chapters) {
		return nil
	}
	ch := project.Chapters[v.cursor]

	var confirmed bool
	form := wizardConfirm(
		fmt.Sprintf("Esborrar el capítol %q? La pestanya %s es manté al full.", ch.Title, ch.ResolveTabName()),
		&confirmed,
	)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return cmdOutputMsg{output: "\n  " + formatter.Dim("Cancel·lat.")}
			}
			project.RemoveChapter(ch.ID)
			v.dirty = true
			return cmdOutputMsg{output: successText("Capítol %q esborrat localment.", ch.Title)}
		}
	}
	return pushView(newWizardView(v.state, "Esborrar capítol", form, done))
}

func (v *projectEditorView) startSuggestChapters() tea.Cmd {
	suggest := v.state.App.Suggest
	project := v.state.Active
	return func() tea.Msg {
		suggestions, err := suggest.SuggestChapters(context.Background(), project.Description)
		return chaptersSuggestedMsg{suggestions: suggestions, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *projectEditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	project := v.state.Active
	if project == nil {
		return v, popView()
	}

	switch msg := msg.(type) {
	case syncDoneMsg:
		v.state.Busy = false
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		v.dirty = false
		return v, outputCmd("\n" + formatter.FormatSyncResult(project.Name, msg.plan, msg.took))

	case chaptersSuggestedMsg:
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		added := 0
		var skipped []string
		for _, s := range msg.suggestions {
			if _, err := project.AddChapter(s.Title); err != nil {
				skipped = append(skipped, s.Title)
				continue
			}
			added++
		}
		if added > 0 {
			v.dirty = true
		}
		out := successText("%d capítols suggerits afegits.", added)
		if len(skipped) > 0 {
			out += "\n  " + formatter.Dim("Omesos (pestanya duplicada): "+strings.Join(skipped, ", "))
		}
		return v, outputCmd(out)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(project.Chapters)-1 {
				v.cursor++
			}
		case "a":
			return v, v.startAddChapter()
		case "o":
			return v, v.startAddDocument()
		case "d":
			return v, v.startRemoveChapter()
		case "p":
			return v, pushView(newPlaceholderEditorView(v.state))
		case "x":
			return v, pushView(newExportView(v.state))
		case "s":
			if v.state.Busy {
				return v, outputCmd("\n  " + formatter.StyleYellow.Render("Hi ha una sincronització en curs."))
			}
			return v, v.startSync()
		case "g":
			if v.state.App.Suggest != nil {
				return v, tea.Batch(
					outputCmd("\n  "+formatter.Dim("Demanant suggeriments de capítols...")),
					v.startSuggestChapters(),
				)
			}
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *projectEditorView) View() string {
	p := v.state.Active
	var b strings.Builder

	b.WriteString("\n  " + formatter.StyleBold.Render(p.Name))
	if v.dirty {
		b.WriteString("  " + formatter.StyleYellow.Render("● canvis sense sincronitzar"))
	}
	b.WriteString("\n  " + formatter.Dim(p.SheetURL()) + "\n\n")

	if len(p.Chapters) == 0 {
		b.WriteString("  " + formatter.Dim("Cap capítol. Prem 'a' per afegir-ne un."))
		b.WriteString("\n")
		return b.String()
	}

	for i := range p.Chapters {
		ch := &p.Chapters[i]
		cursor := "  "
		titleStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			titleStyle = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("  %s%-34s %s %s\n",
			cursor,
			titleStyle.Render(padRight(ch.Title, 34)),
			formatter.Dim(ch.ResolveTabName()),
			formatter.Dim(fmt.Sprintf("(%d docs)", len(ch.Documents))),
		))
		if i == v.cursor {
			for _, d := range ch.Documents {
				b.WriteString(fmt.Sprintf("        %s %-38s %s\n",
					formatter.Dim("·"),
					padRight(d.Title, 38),
					formatter.StylePurple.Render(string(d.Type)),
				))
			}
		}
	}

	return b.String()
}
