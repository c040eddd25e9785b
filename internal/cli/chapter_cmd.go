package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
	"github.com/estudiarq/archisheets/internal/domain"
)

func newChapterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapter",
		Short: "Manage project chapters",
	}

	cmd.AddCommand(
		newChapterAddCmd(app),
		newChapterListCmd(app),
		newChapterRemoveCmd(app),
		newChapterDocCmd(app),
	)

	return cmd
}

func newChapterAddCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a chapter and push its tab to the spreadsheet",
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

			ch, err := p.AddChapter(args[0])
			if err != nil {
				return err
			}

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Capítol %q afegit (pestanya %s)\n", ch.Title, ch.SheetTabName)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newChapterListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's chapters",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			p, err := openProject(context.Background(), app, token, project)
			if err != nil {
				return err
			}

			if len(p.Chapters) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cap capítol encara.")
				return nil
			}
			for i := range p.Chapters {
				ch := &p.Chapters[i]
				fmt.Fprintf(cmd.OutOrStdout(), "%-34s %s (%d docs)\n",
					ch.Title, formatter.Dim(ch.ResolveTabName()), len(ch.Documents))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newChapterRemoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "remove CHAPTER",
		Short: "Remove a chapter locally (the spreadsheet tab is kept)",
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

			ch := findChapterByRef(p, args[0])
			if ch == nil {
				return fmt.Errorf("chapter not found: %q", args[0])
			}
			tab := ch.ResolveTabName()
			p.RemoveChapter(ch.ID)

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Capítol esborrat. La pestanya %s es manté al full.\n", tab)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newChapterDocCmd(app *App) *cobra.Command {
	var project, chapter, url, docType string

	cmd := &cobra.Command{
		Use:   "doc TITLE",
		Short: "Link a Drive document into a chapter",
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

			ch := findChapterByRef(p, chapter)
			if ch == nil {
				return fmt.Errorf("chapter not found: %q", chapter)
			}

			doc, err := p.AddDocument(ch.ID, args[0], url, domain.ParseDocType(docType))
			if err != nil {
				return err
			}

			if _, err := app.Sync.Sync(ctx, token, p); err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Document %q enllaçat a %s\n", doc.Title, ch.ResolveTabName())
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project reference (name or ID)")
	cmd.Flags().StringVar(&chapter, "chapter", "", "Chapter title or tab name")
	cmd.Flags().StringVar(&url, "url", "", "Drive URL of the document")
	cmd.Flags().StringVar(&docType, "type", "DOC", "Document type (DOC|SHEET|PDF|OTHER)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("chapter")

	return cmd
}
