package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage project templates",
	}

	cmd.AddCommand(
		newTemplateListCmd(app),
		newTemplateUseCmd(app),
	)

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List template projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			templates, err := app.Projects.ListTemplates(context.Background(), token)
			if err != nil {
				return app.remoteErr(err)
			}

			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cap plantilla. Crea un projecte amb --template.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(templates))
			return nil
		},
	}
}

func newTemplateUseCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "use TEMPLATE",
		Short: "Create a project from a template's structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			template, err := openProject(ctx, app, token, args[0])
			if err != nil {
				return err
			}
			if !template.IsTemplate {
				return fmt.Errorf("%q is not a template", template.Name)
			}

			p, err := app.Projects.CreateFromTemplate(ctx, token, name, description, template)
			if err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Creat %q a partir de la plantilla %q (%d capítols)\n%s\n",
				p.Name, template.Name, len(p.Chapters), p.SheetURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the new project")
	cmd.Flags().StringVar(&description, "desc", "", "Description for the new project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
