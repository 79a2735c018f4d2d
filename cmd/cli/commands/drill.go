package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/services"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	return date, nil
}

// ScheduleDrillCmd creates the scheduleDrill command
func ScheduleDrillCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheduleDrill <vessel_id> <drill_type_id> <date>",
		Short: "Schedule a new drill and allocate its drill number",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args[2])
			if err != nil {
				return err
			}
			scenario, _ := cmd.Flags().GetString("scenario")
			objectives, _ := cmd.Flags().GetStringSlice("objective")
			weather, _ := cmd.Flags().GetString("weather")
			location, _ := cmd.Flags().GetString("location")

			drill, err := services.ScheduleDrill(app.Ctx, app.Database, app.Database, app.Logger,
				services.ScheduleDrillInput{
					CompanyID:     app.Cfg.CompanyID,
					VesselID:      args[0],
					DrillTypeID:   args[1],
					ScheduledDate: date,
					Now:           time.Now(),
					Scenario:      scenario,
					Objectives:    objectives,
					Weather:       weather,
					Location:      location,
				})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Drill scheduled!\n\n")
			fmt.Printf("Drill Number: %s\n", drill.DrillNumber)
			fmt.Printf("Drill ID:     %s\n", drill.ID)
			fmt.Printf("Date:         %s\n", drill.ScheduledDate.Format(dateLayout))
			if len(drill.Objectives) > 0 {
				fmt.Printf("Objectives:\n")
				for i, obj := range drill.Objectives {
					fmt.Printf("  %2d. %s\n", i+1, obj)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("scenario", "", "Drill scenario description")
	cmd.Flags().StringSlice("objective", nil, "Drill objective (repeatable)")
	cmd.Flags().String("weather", "", "Weather conditions")
	cmd.Flags().String("location", "", "Location on board")

	return cmd
}

// StartDrillCmd creates the startDrill command
func StartDrillCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "startDrill <drill_id>",
		Short: "Move a scheduled drill to in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.StartDrill(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Drill %s is now in progress\n\n", args[0])
			return nil
		},
	}
}

// drillReportFile is the YAML shape of a completion report supplied with
// --report. Objective evaluations refer to objectives by zero-based index.
type drillReportFile struct {
	Participants []services.ParticipantInput `yaml:"participants"`
	Evaluations  []services.EvaluationInput  `yaml:"evaluations"`
	Equipment    []services.EquipmentInput   `yaml:"equipment"`
	Deficiencies []services.DeficiencyInput  `yaml:"deficiencies"`
}

// CompleteDrillCmd creates the completeDrill command
func CompleteDrillCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completeDrill <drill_id> <actual_date> <conducted_by_id>",
		Short: "Complete a drill, recording its report atomically",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			actualDate, err := parseDate(args[1])
			if err != nil {
				return err
			}
			duration, _ := cmd.Flags().GetInt("duration")
			rating, _ := cmd.Flags().GetInt("rating")
			lessons, _ := cmd.Flags().GetString("lessons")
			reportPath, _ := cmd.Flags().GetString("report")

			var report drillReportFile
			if reportPath != "" {
				data, err := os.ReadFile(reportPath)
				if err != nil {
					return fmt.Errorf("failed to read report file: %w", err)
				}
				if err := yaml.Unmarshal(data, &report); err != nil {
					return fmt.Errorf("failed to parse report file: %w", err)
				}
			}

			drill, err := services.CompleteDrill(app.Ctx, app.Database, app.Logger,
				services.CompleteDrillInput{
					DrillID:        args[0],
					ActualDate:     actualDate,
					ConductedByID:  args[2],
					DurationMins:   duration,
					OverallRating:  rating,
					LessonsLearned: lessons,
					Participants:   report.Participants,
					Evaluations:    report.Evaluations,
					Equipment:      report.Equipment,
					Deficiencies:   report.Deficiencies,
				})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Drill %s completed!\n\n", drill.DrillNumber)
			fmt.Printf("Participants: %d\n", len(report.Participants))
			fmt.Printf("Deficiencies: %d\n\n", len(report.Deficiencies))

			return nil
		},
	}

	cmd.Flags().Int("duration", 30, "Drill duration in minutes")
	cmd.Flags().Int("rating", 3, "Overall rating 1-5")
	cmd.Flags().String("lessons", "", "Lessons learned")
	cmd.Flags().String("report", "", "YAML file with participants, evaluations, equipment and deficiencies")

	return cmd
}

// CancelDrillCmd creates the cancelDrill command
func CancelDrillCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelDrill <drill_id> <reason>",
		Short: "Cancel a drill, recording why",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CancelDrill(app.Ctx, app.Database, app.Logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Drill %s cancelled\n\n", args[0])
			return nil
		},
	}
}

// DeleteDrillCmd creates the deleteDrill command
func DeleteDrillCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deleteDrill <drill_id>",
		Short: "Remove a drill that was scheduled in error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.DeleteDrill(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Drill %s deleted\n\n", args[0])
			return nil
		},
	}
}

// PostponeDrillCmd creates the postponeDrill command
func PostponeDrillCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "postponeDrill <drill_id> <reason>",
		Short: "Postpone a drill, recording why",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.PostponeDrill(app.Ctx, app.Database, app.Logger, args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Drill %s postponed\n\n", args[0])
			return nil
		},
	}
}
