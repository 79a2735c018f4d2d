package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// ReviewUrgency classifies a document's review obligation. The stored next
// review date is the anchor (the review frequency is implicit in it); the
// raw day count is then bucketed with the caller's cutpoints. A document
// without a next review date has never entered a review cycle and reports as
// overdue.
func ReviewUrgency(doc *db.Document, now time.Time, cut compliance.ReviewCutpoints) (compliance.ReviewBand, compliance.Status) {
	if doc.NextReviewDate == nil {
		status := compliance.Status{
			Tier:         compliance.TierOverdue,
			DueDate:      now,
			DaysUntilDue: compliance.NeverCompletedDays,
		}
		return compliance.BandOverdue, status
	}

	status := compliance.EvaluateDeadline(*doc.NextReviewDate, now)
	return compliance.ClassifyReview(status.DaysUntilDue, cut), status
}

// DocumentReviewStatus pairs one approved document with its review band
type DocumentReviewStatus struct {
	Document db.Document
	Band     compliance.ReviewBand
	Status   compliance.Status
}

// DocumentsDueForReview returns the review position of every approved
// document in a company, most urgent first.
func DocumentsDueForReview(ctx context.Context, docs db.DocumentStore, logger *zap.Logger,
	companyID string, now time.Time, cut compliance.ReviewCutpoints) ([]DocumentReviewStatus, error) {

	approved, err := docs.ListDocuments(ctx, db.DocumentFilter{
		CompanyID: companyID,
		Status:    db.DocumentApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list approved documents: %w", err)
	}

	statuses := make([]DocumentReviewStatus, 0, len(approved))
	for _, doc := range approved {
		band, status := ReviewUrgency(&doc, now, cut)
		statuses = append(statuses, DocumentReviewStatus{Document: doc, Band: band, Status: status})
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Status.DaysUntilDue < statuses[j].Status.DaysUntilDue
	})

	logger.Debug("Computed document review urgencies",
		zap.String("company_id", companyID),
		zap.Int("documents", len(statuses)))

	return statuses, nil
}
