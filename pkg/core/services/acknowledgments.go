package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// AcknowledgeDocument records that a user has read a document. The store's
// uniqueness constraint guarantees at most one row per (document, user);
// a duplicate call surfaces db.ErrDuplicateAcknowledgment, which callers
// treat as benign.
func AcknowledgeDocument(ctx context.Context, docs db.DocumentStore, acks db.AcknowledgmentStore,
	logger *zap.Logger, documentID, userID string, now time.Time) (*db.Acknowledgment, error) {

	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	ack := &db.Acknowledgment{
		ID:             uuid.New().String(),
		DocumentID:     documentID,
		UserID:         userID,
		AcknowledgedAt: now,
	}

	if err := acks.InsertAcknowledgment(ctx, ack); err != nil {
		return nil, err
	}

	logger.Info("Recorded document acknowledgment",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("user_id", userID),
		zap.Bool("mandatory_read", doc.MandatoryRead))

	return ack, nil
}

// AckStats summarizes acknowledgment progress for one document
type AckStats struct {
	Acknowledged    int
	Pending         int
	PercentComplete int
}

// AcknowledgmentStats computes completion figures for a document against the
// number of crew required to read it. Zero required crew yields zero percent
// rather than a division error.
func AcknowledgmentStats(ctx context.Context, acks db.AcknowledgmentStore, logger *zap.Logger,
	documentID string, totalRequiredCrew int) (AckStats, error) {

	count, err := acks.CountAcknowledgments(ctx, documentID)
	if err != nil {
		return AckStats{}, fmt.Errorf("failed to count acknowledgments: %w", err)
	}

	stats := AckStats{Acknowledged: count}
	if totalRequiredCrew > 0 {
		pending := totalRequiredCrew - count
		if pending < 0 {
			pending = 0
		}
		stats.Pending = pending
		stats.PercentComplete = int(math.Round(100 * float64(count) / float64(totalRequiredCrew)))
	}

	return stats, nil
}

// PendingAcknowledgments returns the ids of active crew who have not yet
// acknowledged a document. The list feeds the external reminder dispatch;
// this engine only supplies it.
func PendingAcknowledgments(ctx context.Context, docs db.DocumentStore, acks db.AcknowledgmentStore,
	ref db.ReferenceStore, logger *zap.Logger, documentID string) ([]string, error) {

	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	crew, err := ref.ListActiveCrew(ctx, doc.CompanyID, doc.VesselID)
	if err != nil {
		return nil, fmt.Errorf("failed to list crew: %w", err)
	}

	ackedIDs, err := acks.ListAcknowledgedUserIDs(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list acknowledgments: %w", err)
	}

	acked := make(map[string]bool, len(ackedIDs))
	for _, id := range ackedIDs {
		acked[id] = true
	}

	var pending []string
	for _, member := range crew {
		if !acked[member.ID] {
			pending = append(pending, member.ID)
		}
	}

	logger.Debug("Computed pending acknowledgments",
		zap.String("document_number", doc.DocumentNumber),
		zap.Int("pending", len(pending)))

	return pending, nil
}
