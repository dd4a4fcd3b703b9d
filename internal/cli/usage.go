package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newUsageCmd(newApp appFactory) *cobra.Command {
	var userFlag string

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Show today's refresh calls against the user's plan budget",
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

			user, err := a.Repos.User.GetByID(cmd.Context(), nil, userID)
			if err != nil {
				return fmt.Errorf("load user: %w", err)
			}
			if user == nil {
				return fmt.Errorf("user %s not found", userID)
			}
			used, err := a.Services.Budget.Used(cmd.Context(), userID, time.Now())
			if err != nil {
				return fmt.Errorf("read usage: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "plan=%s used=%d limit=%d entitled=%t\n",
				user.Plan, used, a.Cfg.Plans.Budget(user.Plan), a.Cfg.Plans.Entitled(user.Plan, user.SubscriptionStatus))
			return nil
		},
	}
	cmd.Flags().StringVar(&userFlag, "user", "", "user id (required)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
