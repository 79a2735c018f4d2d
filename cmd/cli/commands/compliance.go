package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/services"
)

func tierMarker(tier compliance.Tier) string {
	switch tier {
	case compliance.TierOverdue:
		return "✗"
	case compliance.TierDueSoon:
		return "!"
	default:
		return "✓"
	}
}

// DrillComplianceCmd creates the drillCompliance command
func DrillComplianceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "drillCompliance <vessel_id>",
		Short: "Show the recurrence status of every drill type on a vessel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := services.VesselDrillCompliance(app.Ctx, app.Database, app.Database,
				app.Logger, args[0], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\nDrill compliance for vessel %s:\n\n", args[0])
			for _, s := range statuses {
				if s.Status.DaysUntilDue == compliance.NeverCompletedDays {
					fmt.Printf("  %s %-24s %-12s never completed\n",
						tierMarker(s.Status.Tier), s.DrillType.Name, s.Status.Tier)
					continue
				}
				fmt.Printf("  %s %-24s %-12s due %s (%+d days)\n",
					tierMarker(s.Status.Tier), s.DrillType.Name, s.Status.Tier,
					s.Status.DueDate.Format(dateLayout), s.Status.DaysUntilDue)
			}
			fmt.Println()

			return nil
		},
	}
}

// PlanDrillsCmd creates the planDrills command
func PlanDrillsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planDrills <vessel_id>",
		Short: "Project upcoming drill dates over the planning horizon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, _ := cmd.Flags().GetInt("horizon")
			if horizon <= 0 {
				horizon = app.Cfg.PlanningHorizonDays
			}

			planned, err := services.PlanDrillCalendar(app.Ctx, app.Database, app.Database,
				app.Logger, args[0], app.Cfg.CalendarOverrides(), time.Now(), horizon)
			if err != nil {
				return err
			}

			fmt.Printf("\nPlanned drills for vessel %s over the next %d days:\n\n", args[0], horizon)
			for _, p := range planned {
				fmt.Printf("  %s (every %d days):\n", p.DrillType.Name, p.DrillType.MinFrequencyDays)
				if len(p.Dates) == 0 {
					fmt.Printf("    none due in this window\n")
				}
				for _, d := range p.Dates {
					fmt.Printf("    %s\n", d.Format("2006-01-02 (Monday)"))
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Int("horizon", 0, "Planning horizon in days (defaults to config)")

	return cmd
}
