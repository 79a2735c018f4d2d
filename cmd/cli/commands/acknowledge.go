package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/services"
)

// AcknowledgeCmd creates the acknowledge command
func AcknowledgeCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "acknowledge <document_id> <user_id>",
		Short: "Record that a crew member has read a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ack, err := services.AcknowledgeDocument(app.Ctx, app.Database, app.Database,
				app.Logger, args[0], args[1], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Acknowledgment recorded at %s\n\n", ack.AcknowledgedAt.Format(time.RFC3339))
			return nil
		},
	}
}

// AckStatsCmd creates the ackStats command
func AckStatsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ackStats <document_id>",
		Short: "Show acknowledgment progress for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := app.Database.GetDocument(app.Ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch document: %w", err)
			}

			crew, err := app.Database.ListActiveCrew(app.Ctx, doc.CompanyID, doc.VesselID)
			if err != nil {
				return fmt.Errorf("failed to list crew: %w", err)
			}

			stats, err := services.AcknowledgmentStats(app.Ctx, app.Database, app.Logger,
				doc.ID, len(crew))
			if err != nil {
				return err
			}

			fmt.Printf("\nAcknowledgments for %s (%s):\n\n", doc.Title, doc.DocumentNumber)
			fmt.Printf("  Acknowledged: %d\n", stats.Acknowledged)
			fmt.Printf("  Pending:      %d\n", stats.Pending)
			fmt.Printf("  Complete:     %d%%\n\n", stats.PercentComplete)

			showPending, _ := cmd.Flags().GetBool("pending")
			if showPending {
				pending, err := services.PendingAcknowledgments(app.Ctx, app.Database,
					app.Database, app.Database, app.Logger, doc.ID)
				if err != nil {
					return err
				}
				if len(pending) > 0 {
					fmt.Printf("Still to acknowledge:\n")
					for _, id := range pending {
						fmt.Printf("  - %s\n", id)
					}
					fmt.Println()
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("pending", false, "List crew members who have not acknowledged")

	return cmd
}
