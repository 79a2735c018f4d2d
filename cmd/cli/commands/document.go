package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/services"
)

// CreateDocumentCmd creates the createDocument command
func CreateDocumentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createDocument <document_number> <title> <author_id>",
		Short: "Register a new controlled document as a draft",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			revision, _ := cmd.Flags().GetString("revision")
			vessel, _ := cmd.Flags().GetString("vessel")
			mandatory, _ := cmd.Flags().GetBool("mandatory")

			input := services.CreateDocumentInput{
				CompanyID:      app.Cfg.CompanyID,
				DocumentNumber: args[0],
				Title:          args[1],
				Revision:       revision,
				MandatoryRead:  mandatory,
				AuthorID:       args[2],
			}
			if vessel != "" {
				input.VesselID = &vessel
			}

			doc, err := services.CreateDocument(app.Ctx, app.Database, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Document created!\n\n")
			fmt.Printf("Document ID: %s\n", doc.ID)
			fmt.Printf("Number:      %s\n", doc.DocumentNumber)
			fmt.Printf("Status:      %s\n\n", doc.Status)

			return nil
		},
	}

	cmd.Flags().String("revision", "A", "Revision identifier")
	cmd.Flags().String("vessel", "", "Limit the document to one vessel (fleet-wide when empty)")
	cmd.Flags().Bool("mandatory", false, "Require every active crew member to acknowledge")

	return cmd
}

// SubmitDocumentCmd creates the submitDocument command
func SubmitDocumentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submitDocument <document_id>",
		Short: "Submit a draft document for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.SubmitForReview(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Document %s submitted for review\n\n", args[0])
			return nil
		},
	}
}

// ApproveDocumentCmd creates the approveDocument command
func ApproveDocumentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approveDocument <document_id> <approver_id>",
		Short: "Approve a document under review and start its review cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, _ := cmd.Flags().GetInt("review-interval")
			if interval <= 0 {
				interval = app.Cfg.ReviewIntervalDays
			}

			err := services.ApproveDocument(app.Ctx, app.Database, app.Logger,
				args[0], args[1], interval, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Document %s approved (next review in %d days)\n\n", args[0], interval)
			return nil
		},
	}

	cmd.Flags().Int("review-interval", 0, "Days until the next review (defaults to config)")

	return cmd
}

// RejectDocumentCmd creates the rejectDocument command
func RejectDocumentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rejectDocument <document_id> <approver_id> <feedback>",
		Short: "Reject a document under review back to draft with feedback",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := services.RejectDocument(app.Ctx, app.Database, app.Logger,
				args[0], args[1], args[2], time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Document %s returned to draft\n\n", args[0])
			return nil
		},
	}
}

// MarkReviewedCmd creates the markReviewed command
func MarkReviewedCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markReviewed <document_id> <reviewer_id> <next_review_date>",
		Short: "Record a periodic review and roll the next review date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := parseDate(args[2])
			if err != nil {
				return err
			}
			comments, _ := cmd.Flags().GetString("comments")

			err = services.MarkDocumentReviewed(app.Ctx, app.Database, app.Logger,
				args[0], args[1], next, comments, time.Now())
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Document %s reviewed, next review %s\n\n", args[0], next.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().String("comments", "", "Review comments")

	return cmd
}

// ObsoleteDocumentCmd creates the obsoleteDocument command
func ObsoleteDocumentCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "obsoleteDocument <document_id>",
		Short: "Retire a document permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ObsoleteDocument(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n✓ Document %s marked obsolete\n\n", args[0])
			return nil
		},
	}
}
