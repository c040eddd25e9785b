package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Google API bearer token",
		Long: "Stores the OAuth bearer token used for every spreadsheet call.\n" +
			"Obtain one with gcloud: gcloud auth print-access-token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Token: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return fmt.Errorf("no token given")
			}

			if err := app.Credentials.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credencial desada.")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Bearer token (prompted when omitted)")
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop the stored credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Credentials.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credencial esborrada.")
			return nil
		},
	})

	return cmd
}

func newUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive terminal interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}
