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

// valuesSuggestedMsg carries AI-proposed values for empty placeholders.
type valuesSuggestedMsg struct {
	suggestions map[string]string
	err         error
}

// placeholderEditorView edits the key/value table of the active project.
// Keys are immutable once added; only value and description change.
type placeholderEditorView struct {
	state  *SharedState
	cursor int
}

func newPlaceholderEditorView(state *SharedState) *placeholderEditorView {
	return &placeholderEditorView{state: state}
}

func (v *placeholderEditorView) ID() ViewID    { return ViewPlaceholderEditor }
func (v *placeholderEditorView) Title() string { return "Claus" }

func (v *placeholderEditorView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "afegir")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "valor")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "esborrar")),
	}
	if v.state.App.Suggest != nil {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "omplir amb IA")))
	}
	return bindings
}

func (v *placeholderEditorView) Init() tea.Cmd { return nil }

// ── actions ──────────────────────────────────────────────────────────────────

func (v *placeholderEditorView) startAdd() tea.Cmd {
	var rawKey string
	form := wizardInputText("Nova clau", "client nom", true, &rawKey)
	project := v.state.Active

	done := func() tea.Cmd {
		return func() tea.Msg {
			ph, err := project.AddPlaceholder(rawKey)
			if err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			if ph == nil {
				return cmdOutputMsg{output: "\n  " + formatter.Dim("Clau buida, res a afegir.")}
			}
			return cmdOutputMsg{output: successText("Clau {{%s}} afegida.", ph.Key)}
		}
	}
	return pushView(newWizardView(v.state, "Nova clau", form, done))
}

func (v *placeholderEditorView) startEditValue() tea.Cmd {
	project := v.state.Active
	if v.cursor >= len(project.Placeholders) {
		return nil
	}
	index := v.cursor
	ph := project.Placeholders[index]

	value := ph.Value
	form := wizardInputText(fmt.Sprintf("Valor de {{%s}}", ph.Key), ph.Description, false, &value)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if err := project.UpdatePlaceholder(index, domain.FieldValue, value); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			return cmdOutputMsg{output: successText("{{%s}} actualitzat.", ph.Key)}
		}
	}
	return pushView(newWizardView(v.state, "Editar valor", form, done))
}

func (v *placeholderEditorView) startRemove() tea.Cmd {
	project := v.state.Active
	if v.cursor >= len(project.Placeholders) {
		return nil
	}
	index := v.cursor
	ph := project.Placeholders[index]

	var confirmed bool
	form := wizardConfirm(fmt.Sprintf("Esborrar la clau {{%s}}?", ph.Key), &confirmed)

	done := func() tea.Cmd {
		return func() tea.Msg {
			if !confirmed {
				return cmdOutputMsg{output: "\n  " + formatter.Dim("Cancel·lat.")}
			}
			if err := project.RemovePlaceholder(index); err != nil {
				return cmdOutputMsg{output: errorText(err)}
			}
			return cmdOutputMsg{output: successText("Clau {{%s}} esborrada.", ph.Key)}
		}
	}
	return pushView(newWizardView(v.state, "Esborrar clau", form, done))
}

// startSuggestValues asks the generative backend for values for every
// placeholder that is still empty.
func (v *placeholderEditorView) startSuggestValues() tea.Cmd {
	project := v.state.Active
	suggest := v.state.App.Suggest

	var emptyKeys []string
	for _, ph := range project.Placeholders {
		if ph.Value == "" {
			emptyKeys = append(emptyKeys, ph.Key)
		}
	}
	if len(emptyKeys) == 0 {
		return outputCmd("\n  " + formatter.Dim("Totes les claus ja tenen valor."))
	}

	return func() tea.Msg {
		suggestions, err := suggest.SuggestPlaceholderValues(
			context.Background(), project.Name, project.Description, emptyKeys)
		return valuesSuggestedMsg{suggestions: suggestions, err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *placeholderEditorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	project := v.state.Active
	if project == nil {
		return v, popView()
	}

	switch msg := msg.(type) {
	case valuesSuggestedMsg:
		if msg.err != nil {
			return v, outputCmd(errorText(msg.err))
		}
		applied := project.ApplySuggestions(msg.suggestions)
		return v, outputCmd(successText("%d valors suggerits aplicats.", applied))

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(project.Placeholders)-1 {
				v.cursor++
			}
		case "a":
			return v, v.startAdd()
		case "e", "enter":
			return v, v.startEditValue()
		case "d":
			return v, v.startRemove()
		case "i":
			if v.state.App.Suggest != nil {
				return v, tea.Batch(
					outputCmd("\n  "+formatter.Dim("Demanant valors suggerits...")),
					v.startSuggestValues(),
				)
			}
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *placeholderEditorView) View() string {
	p := v.state.Active
	var b strings.Builder
	b.WriteString("\n")

	if len(p.Placeholders) == 0 {
		b.WriteString("  " + formatter.Dim("Cap clau definida. Prem 'a' per afegir-ne una."))
		b.WriteString("\n")
		return b.String()
	}

	for i, ph := range p.Placeholders {
		cursor := "  "
		keyStyle := formatter.StyleBlue
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			keyStyle = formatter.StyleBold
		}
		value := ph.Value
		if value == "" {
			value = formatter.Dim("(buit)")
		}
		b.WriteString(fmt.Sprintf("  %s%-24s %-26s %s\n",
			cursor,
			keyStyle.Render(padRight("{{"+ph.Key+"}}", 24)),
			value,
			formatter.Dim(ph.Description),
		))
	}

	return b.String()
}
