package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// DefaultReportWindowDays is the reporting window for the compliance rate
// when the caller does not specify one.
const DefaultReportWindowDays = 90

// FleetReportInput scopes a fleet compliance report. VesselID narrows the
// report to one vessel; empty means the whole fleet.
type FleetReportInput struct {
	CompanyID  string    `validate:"required"`
	VesselID   string
	Now        time.Time `validate:"required"`
	WindowDays int
	Cutpoints  compliance.ReviewCutpoints
}

// NearestDueItem identifies the single most urgent obligation in a category
type NearestDueItem struct {
	Name     string
	VesselID string
	Status   compliance.Status
}

// FleetReport is the read-side rollup of every obligation in scope. It is
// recomputed from stored dates on every call and never cached.
type FleetReport struct {
	DrillTierCounts  map[compliance.Tier]int
	ReviewBandCounts map[compliance.ReviewBand]int
	NearestDueDrill  *NearestDueItem
	NearestDueReview *NearestDueItem

	MandatoryDocs         int
	FullyAcknowledgedDocs int
	AcknowledgmentPercent int

	// ComplianceRate is the percentage of on-time completions among
	// completed-in-window plus currently-due obligations
	ComplianceRate float64
}

// FleetComplianceReport rolls individual obligation states up into fleet-wide
// counts. Pure read: safe to recompute on every request.
func FleetComplianceReport(ctx context.Context, database db.Database, logger *zap.Logger,
	input FleetReportInput) (*FleetReport, error) {

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid report input: %w", err)
	}
	if input.WindowDays <= 0 {
		input.WindowDays = DefaultReportWindowDays
	}
	if input.Cutpoints == (compliance.ReviewCutpoints{}) {
		input.Cutpoints = compliance.DefaultReviewCutpoints()
	}

	vessels, err := reportVessels(ctx, database, input)
	if err != nil {
		return nil, err
	}

	report := &FleetReport{
		DrillTierCounts:  make(map[compliance.Tier]int),
		ReviewBandCounts: make(map[compliance.ReviewBand]int),
	}

	currentlyDue, err := rollupDrills(ctx, database, logger, input, vessels, report)
	if err != nil {
		return nil, err
	}

	if err := rollupDocumentReviews(ctx, database, logger, input, report); err != nil {
		return nil, err
	}

	if err := rollupAcknowledgments(ctx, database, logger, input, report); err != nil {
		return nil, err
	}

	if err := computeComplianceRate(ctx, database, input, currentlyDue, report); err != nil {
		return nil, err
	}

	logger.Info("Computed fleet compliance report",
		zap.String("company_id", input.CompanyID),
		zap.Int("vessels", len(vessels)),
		zap.Float64("compliance_rate", report.ComplianceRate))

	return report, nil
}

func reportVessels(ctx context.Context, database db.Database, input FleetReportInput) ([]db.Vessel, error) {
	if input.VesselID != "" {
		vessel, err := database.GetVessel(ctx, input.VesselID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up vessel: %w", err)
		}
		return []db.Vessel{*vessel}, nil
	}

	vessels, err := database.ListVessels(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vessels: %w", err)
	}
	return vessels, nil
}

// rollupDrills counts drill obligation tiers across every vessel and drill
// type in scope and returns how many obligations are currently due
func rollupDrills(ctx context.Context, database db.Database, logger *zap.Logger,
	input FleetReportInput, vessels []db.Vessel, report *FleetReport) (int, error) {

	currentlyDue := 0
	for _, vessel := range vessels {
		statuses, err := VesselDrillCompliance(ctx, database, database, logger, vessel.ID, input.Now)
		if err != nil {
			return 0, err
		}
		for _, s := range statuses {
			report.DrillTierCounts[s.Status.Tier]++
			if s.Status.Tier != compliance.TierOnSchedule {
				currentlyDue++
			}
			if report.NearestDueDrill == nil || s.Status.DaysUntilDue < report.NearestDueDrill.Status.DaysUntilDue {
				report.NearestDueDrill = &NearestDueItem{
					Name:     s.DrillType.Name,
					VesselID: vessel.ID,
					Status:   s.Status,
				}
			}
		}
	}
	return currentlyDue, nil
}

func rollupDocumentReviews(ctx context.Context, database db.Database, logger *zap.Logger,
	input FleetReportInput, report *FleetReport) error {

	statuses, err := DocumentsDueForReview(ctx, database, logger, input.CompanyID, input.Now, input.Cutpoints)
	if err != nil {
		return err
	}

	for _, s := range statuses {
		if input.VesselID != "" && s.Document.VesselID != nil && *s.Document.VesselID != input.VesselID {
			continue
		}
		report.ReviewBandCounts[s.Band]++
		if report.NearestDueReview == nil || s.Status.DaysUntilDue < report.NearestDueReview.Status.DaysUntilDue {
			vesselID := ""
			if s.Document.VesselID != nil {
				vesselID = *s.Document.VesselID
			}
			report.NearestDueReview = &NearestDueItem{
				Name:     s.Document.Title,
				VesselID: vesselID,
				Status:   s.Status,
			}
		}
	}
	return nil
}

// rollupAcknowledgments aggregates mandatory-read progress. Only documents
// flagged mandatory participate; voluntary acknowledgments are excluded.
func rollupAcknowledgments(ctx context.Context, database db.Database, logger *zap.Logger,
	input FleetReportInput, report *FleetReport) error {

	mandatory, err := database.ListDocuments(ctx, db.DocumentFilter{
		CompanyID:     input.CompanyID,
		VesselID:      input.VesselID,
		Status:        db.DocumentApproved,
		MandatoryOnly: true,
	})
	if err != nil {
		return fmt.Errorf("failed to list mandatory documents: %w", err)
	}

	totalRequired := 0
	totalAcked := 0
	for _, doc := range mandatory {
		crew, err := database.ListActiveCrew(ctx, doc.CompanyID, doc.VesselID)
		if err != nil {
			return fmt.Errorf("failed to list crew: %w", err)
		}
		stats, err := AcknowledgmentStats(ctx, database, logger, doc.ID, len(crew))
		if err != nil {
			return err
		}

		report.MandatoryDocs++
		if len(crew) > 0 && stats.Acknowledged >= len(crew) {
			report.FullyAcknowledgedDocs++
		}
		totalRequired += len(crew)
		totalAcked += stats.Acknowledged
	}

	if totalRequired > 0 {
		report.AcknowledgmentPercent = int(math.Round(100 * float64(totalAcked) / float64(totalRequired)))
	}
	return nil
}

// computeComplianceRate derives the window rate: completions on or before
// their planned date over completed-in-window plus currently-due. An empty
// denominator reports fully compliant.
func computeComplianceRate(ctx context.Context, database db.Database, input FleetReportInput,
	currentlyDue int, report *FleetReport) error {

	windowStart := input.Now.AddDate(0, 0, -input.WindowDays)
	completed, err := database.ListDrills(ctx, db.DrillFilter{
		CompanyID:      input.CompanyID,
		VesselID:       input.VesselID,
		Status:         db.DrillCompleted,
		CompletedAfter: &windowStart,
	})
	if err != nil {
		return fmt.Errorf("failed to list completed drills: %w", err)
	}

	onTime := 0
	for _, drill := range completed {
		if drill.ActualDate != nil && !drill.ActualDate.After(drill.ScheduledDate) {
			onTime++
		}
	}

	denominator := len(completed) + currentlyDue
	if denominator == 0 {
		report.ComplianceRate = 100
		return nil
	}
	report.ComplianceRate = math.Round(10000*float64(onTime)/float64(denominator)) / 100
	return nil
}
