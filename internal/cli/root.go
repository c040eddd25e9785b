package cli

import (
	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/auth"
	"github.com/estudiarq/archisheets/internal/export"
	"github.com/estudiarq/archisheets/internal/intelligence"
	"github.com/estudiarq/archisheets/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects    service.ProjectService
	Sync        service.Syncer
	Export      *export.Pipeline
	Credentials auth.CredentialProvider

	// Suggest is nil when the generative backend is not configured;
	// commands degrade to their non-assisted behavior.
	Suggest intelligence.SuggestService

	// IsInteractive reports whether stdin is a terminal, deciding if the
	// bare invocation opens the TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "archisheets" command and registers
// all subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "archisheets",
		Short: "Project manager for architecture studios backed by Google Sheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newProjectCmd(app),
		newChapterCmd(app),
		newPlaceholderCmd(app),
		newSyncCmd(app),
		newExportCmd(app),
		newTemplateCmd(app),
		newUICmd(app),
	)

	return root
}
