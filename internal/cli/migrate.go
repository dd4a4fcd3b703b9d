package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/garage-backend/internal/data/db"
	"github.com/yungbote/garage-backend/internal/platform/envutil"
	"github.com/yungbote/garage-backend/internal/platform/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(envutil.String("LOG_MODE", "development"))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			svc, err := db.NewService(log, db.ConfigFromEnv())
			if err != nil {
				return err
			}
			defer svc.Close()

			if err := svc.AutoMigrateAll(); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema up to date.")
			return nil
		},
	}
}
