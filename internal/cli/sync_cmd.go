package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/estudiarq/archisheets/internal/cli/formatter"
)

func newSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync PROJECT",
		Short: "Push the project structure to its spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			ctx := context.Background()
			p, err := openProject(ctx, app, token, args[0])
			if err != nil {
				return err
			}

			start := time.Now()
			plan, err := app.Sync.Sync(ctx, token, p)
			if err != nil {
				return app.remoteErr(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSyncResult(p.Name, plan, time.Since(start)))
			return nil
		},
	}
}
