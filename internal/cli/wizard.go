package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
)

// archiHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func archiHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardInputText creates a huh form for a single text input.
func wizardInputText(title, placeholder string, required bool, result *string) *huh.Form {
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(result)

	if required {
		input = input.Validate(func(s string) error {
			if s == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
	}

	return huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(archiHuhTheme()).WithShowHelp(false)
}

// wizardNewProject collects name and description for a new project, with
// an optional template toggle.
func wizardNewProject(name, description *string, isTemplate *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom del projecte").
				Placeholder("Casa ...").
				Value(name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("el nom és obligatori")
					}
					return nil
				}),
			huh.NewInput().
				Title("Descripció (opcional)").
				Value(description),
			huh.NewConfirm().
				Title("És una plantilla?").
				Affirmative("Sí").
				Negative("No").
				Value(isTemplate),
		),
	).WithTheme(archiHuhTheme()).WithShowHelp(false)
}

// wizardNewDocument collects a document reference for a chapter.
func wizardNewDocument(title, url, docType *string) *huh.Form {
	*docType = string(domain.DocGoogleDoc)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nom del document").
				Value(title).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("el nom és obligatori")
					}
					return nil
				}),
			huh.NewInput().
				Title("URL de Drive").
				Placeholder("https://docs.google.com/...").
				Value(url),
			huh.NewSelect[string]().
				Title("Tipus").
				Options(
					huh.NewOption("Google Doc", string(domain.DocGoogleDoc)),
					huh.NewOption("Google Sheet", string(domain.DocGoogleSheet)),
					huh.NewOption("PDF", string(domain.DocPDF)),
					huh.NewOption("Altres", string(domain.DocOther)),
				).
				Value(docType),
		),
	).WithTheme(archiHuhTheme()).WithShowHelp(false)
}

// huhProjectFromTemplateForm collects the name and description for a
// project instantiated from the named template.
func huhProjectFromTemplateForm(templateName string, name, description *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Nom del nou projecte (plantilla %q)", templateName)).
				Value(name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("el nom és obligatori")
					}
					return nil
				}),
			huh.NewInput().
				Title("Descripció (opcional)").
				Value(description),
		),
	).WithTheme(archiHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Sí").
				Negative("No").
				Value(result),
		),
	).WithTheme(archiHuhTheme()).WithShowHelp(false)
}
