package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/garage-backend/internal/modules/prediction"
	"github.com/yungbote/garage-backend/internal/platform/apierr"
)

func newRefreshCmd(newApp appFactory) *cobra.Command {
	var userFlag, vehicleFlag string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Recompute maintenance predictions for a user",
		Long: `Run the prediction refresh for one user, exactly as the API does.
The user's stored plan applies: entitlement and the daily call budget are enforced.

Examples:
  garagectl refresh --user 2b1c...
  garagectl refresh --user 2b1c... --vehicle 9f0e... --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", userFlag)
			if err != nil {
				return err
			}
			var vehicleID uuid.UUID
			if strings.TrimSpace(vehicleFlag) != "" {
				if vehicleID, err = parseID("vehicle", vehicleFlag); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Services.Predictions.RefreshForUser(cmd.Context(), userID, vehicleID)
			if err != nil {
				return describeAPIError("refresh", err)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printOutcomes(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&userFlag, "user", "", "user id (required)")
	cmd.Flags().StringVar(&vehicleFlag, "vehicle", "", "limit the refresh to one vehicle")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func printOutcomes(w io.Writer, res prediction.RefreshResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VEHICLE\tSTATE\tSOURCE\tUPDATED\tERROR")
	for _, o := range res.Vehicles {
		errText := ""
		if o.Err != nil {
			errText = o.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.VehicleID, o.State, o.Source, o.Updated, errText)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d prediction(s) written across %d vehicle(s).\n", res.Updated, len(res.Vehicles))
}

func parseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("invalid --%s %q", name, raw)
	}
	return id, nil
}

func describeAPIError(op string, err error) error {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		return fmt.Errorf("%s: %s (%d): %w", op, ae.Code, ae.Status, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
