package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/services"
)

// FleetStatusCmd creates the fleetStatus command
func FleetStatusCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleetStatus",
		Short: "Roll compliance up across the fleet (or one vessel)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vesselID, _ := cmd.Flags().GetString("vessel")
			window, _ := cmd.Flags().GetInt("window")
			if window <= 0 {
				window = app.Cfg.ReportWindowDays
			}

			report, err := services.FleetComplianceReport(app.Ctx, app.Database, app.Logger,
				services.FleetReportInput{
					CompanyID:  app.Cfg.CompanyID,
					VesselID:   vesselID,
					Now:        time.Now(),
					WindowDays: window,
					Cutpoints:  app.Cfg.ReviewCutpoints(),
				})
			if err != nil {
				return err
			}

			scope := "fleet"
			if vesselID != "" {
				scope = "vessel " + vesselID
			}
			fmt.Printf("\nCompliance report for %s (%d-day window):\n\n", scope, window)

			fmt.Printf("Drills:\n")
			for _, tier := range []compliance.Tier{compliance.TierOverdue, compliance.TierDueSoon, compliance.TierOnSchedule} {
				fmt.Printf("  %-12s %d\n", tier, report.DrillTierCounts[tier])
			}
			if report.NearestDueDrill != nil {
				fmt.Printf("  Most urgent: %s on %s\n", report.NearestDueDrill.Name, report.NearestDueDrill.VesselID)
			}

			fmt.Printf("\nDocument reviews:\n")
			for _, band := range []compliance.ReviewBand{compliance.BandOverdue, compliance.BandUrgent, compliance.BandWarning, compliance.BandNormal} {
				fmt.Printf("  %-12s %d\n", band, report.ReviewBandCounts[band])
			}
			if report.NearestDueReview != nil {
				fmt.Printf("  Most urgent: %s\n", report.NearestDueReview.Name)
			}

			fmt.Printf("\nMandatory reading:\n")
			fmt.Printf("  Documents:           %d\n", report.MandatoryDocs)
			fmt.Printf("  Fully acknowledged:  %d\n", report.FullyAcknowledgedDocs)
			fmt.Printf("  Crew acknowledgment: %d%%\n", report.AcknowledgmentPercent)

			fmt.Printf("\nCompliance rate: %.2f%%\n\n", report.ComplianceRate)

			return nil
		},
	}

	cmd.Flags().String("vessel", "", "Limit the report to one vessel")
	cmd.Flags().Int("window", 0, "Reporting window in days (defaults to config)")

	return cmd
}

// EmergencyInfoCmd creates the emergencyInfo command
func EmergencyInfoCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "emergencyInfo <vessel_id>",
		Short: "Show emergency contacts and procedures for a vessel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts, err := app.Database.ListEmergencyContacts(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list emergency contacts: %w", err)
			}
			procedures, err := app.Database.ListEmergencyProcedures(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list emergency procedures: %w", err)
			}

			fmt.Printf("\nEmergency contacts for vessel %s:\n\n", args[0])
			for _, c := range contacts {
				fmt.Printf("  [%s] %s (%s) - %s", strings.ToUpper(c.EmergencyType), c.Name, c.Role, c.Phone)
				if c.Email != "" {
					fmt.Printf(" / %s", c.Email)
				}
				fmt.Println()
			}

			fmt.Printf("\nProcedures:\n\n")
			for _, p := range procedures {
				fmt.Printf("  [%s] %s\n", strings.ToUpper(p.EmergencyType), p.Title)
				for i, step := range p.Steps {
					fmt.Printf("    %2d. %s\n", i+1, step)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
