package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
)

func newPlaceholderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "placeholder",
		Aliases: []string{"clau"},
		Short:   "Manage a project's substitution keys",
	}

	cmd.AddCommand(
		newPlaceholderListCmd(app),
		newPlaceholderAddCmd(app),
		newPlaceholderSetCmd(app),
		newPlaceholderRemoveCmd(app),
		newPlaceholderSuggestCmd(app),
	)

	return cmd
}

func newPlaceholderListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List substitution keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := openProject(context.Background(), app, token, project)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlaceholders(p.Placeholders))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPlaceholderAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add KEY",
		Short: "Add a substitution key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, project)
			if err != nil {
				return err
			}

			ph, err := p.AddPlaceholder(args[0])
			if err != nil {
				return err
			}
			if ph == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Clau buida, res a afegir.")
				return nil
			}

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Clau {{%s}} afegida\n", ph.Key)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPlaceholderSetCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a key's value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, project)
			if err != nil {
				return err
			}

			index := placeholderIndex(p, args[0])
			if index < 0 {
				return fmt.Errorf("key not found: %q", domain.NormalizeKey(args[0]))
			}
			if err := p.UpdatePlaceholder(index, domain.FieldValue, args[1]); err != nil {
				return err
			}

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "{{%s}} = %q\n", p.Placeholders[index].Key, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPlaceholderRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove KEY",
		Short: "Remove a substitution key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, project)
			if err != nil {
				return err
			}

			index := placeholderIndex(p, args[0])
			if index < 0 {
				return fmt.Errorf("key not found: %q", domain.NormalizeKey(args[0]))
			}
			key := p.Placeholders[index].Key
			if err := p.RemovePlaceholder(index); err != nil {
				return err
			}

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Clau {{%s}} esborrada\n", key)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newPlaceholderSuggestCmd(app *App) *cobra.Command {
	var project string
	var apply bool

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Draft values for empty keys with the generative backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Suggest == nil {
				return fmt.Errorf("generative drafting is not configured: set ARCHISHEETS_LLM_API_KEY")
			}

			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, project)
			if err != nil {
				return err
			}

			var emptyKeys []string
			for _, ph := range p.Placeholders {
				if ph.Value == "" {
					emptyKeys = append(emptyKeys, ph.Key)
				}
			}
			if len(emptyKeys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Totes les claus ja tenen valor.")
				return nil
			}

			suggestions, err := app.Suggest.SuggestPlaceholderValues(ctx, p.Name, p.Description, emptyKeys)
			if err != nil {
				return err
			}

			for key, value := range suggestions {
				fmt.Fprintf(cmd.OutOrStdout(), "{{%s}} → %q\n", key, value)
			}

			if !apply {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Executa amb --apply per desar-los."))
				return nil
			}

			applied := p.ApplySuggestions(suggestions)
			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d valors aplicats i sincronitzats\n", applied)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Apply the suggested values and sync")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
