package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTokenCmd(newApp appFactory) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", userFlag)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			token, err := a.Services.Auth.IssueToken(userID)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userFlag, "user", "", "user id (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
