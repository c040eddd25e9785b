package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/intelligence"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectURLCmd(app),
		newProjectSummaryCmd(app),
	)

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var name, description string
	var isTemplate bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project with its own spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := app.Projects.Create(context.Background(), token, name, description, isTemplate)
			if err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Creat el projecte %q\n%s\n", p.Name, p.SheetURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "desc", "", "Project description")
	cmd.Flags().BoolVar(&isTemplate, "template", false, "Mark as a reusable template")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			projects, err := app.Projects.List(context.Background(), token)
			if err != nil {
				return app.remoteErr(err)
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cap projecte al catàleg.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PROJECT",
		Short: "Show a project's structure and placeholder table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := openProject(context.Background(), app, token, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(p))
			return nil
		},
	}
}

func newProjectURLCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "url PROJECT",
		Short: "Print the project's spreadsheet URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			stub, err := resolveProject(context.Background(), app, token, args[0])
			if err != nil {
				return err
			}
			if stub.SheetURL() == "" {
				return fmt.Errorf("project %q has no spreadsheet attached", stub.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), stub.SheetURL())
			return nil
		},
	}
}

func newProjectSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary PROJECT",
		Short: "Draft an introduction for the project dossier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Suggest == nil {
				return fmt.Errorf("generative drafting is not configured: set ARCHISHEETS_LLM_API_KEY")
			}

			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, args[0])
			if err != nil {
				return err
			}

			// Drafting is advisory: a failed call prints the fixed
			// fallback text instead of failing the command.
			text, err := app.Suggest.Summarize(ctx, p)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), intelligence.FallbackSummary)
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("("+err.Error()+")"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
