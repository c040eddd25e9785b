package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "export PROJECT",
		Short: "Compile the project dossier from its linked documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			p, err := openProject(ctx, app, token, args[0])
			if err != nil {
				return err
			}

			// Everything is selected by default; --exclude prunes by title.
			selection := export.NewSelection(p)
			for _, title := range exclude {
				for _, d := range p.AllDocuments() {
					if d.Title == title {
						selection.Toggle(d.ID)
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Compilant %q (%d documents)\n\n", p.Name, selection.SelectedCount())

			out := cmd.OutOrStdout()
			err = app.Export.Run(ctx, selection, func(pr export.Progress) {
				fmt.Fprintf(out, "  %s %s  %s\n",
					formatter.StyleGreen.Render("✓"), pr.Label,
					formatter.Dim(fmt.Sprintf("(%d/%d)", pr.StepIndex+1, pr.Total)))
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "\nMemòria compilada.")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&exclude, "exclude", nil, "Document titles to leave out")

	return cmd
}
