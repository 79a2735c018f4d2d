package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// DefaultReviewIntervalDays is the review cycle applied at first approval
// when no policy override is configured.
const DefaultReviewIntervalDays = 365

// CreateDocumentInput carries everything needed to register a new draft
type CreateDocumentInput struct {
	CompanyID      string `validate:"required"`
	DocumentNumber string `validate:"required"`
	Title          string `validate:"required"`
	Revision       string
	CategoryID     *string
	VesselID       *string
	MandatoryRead  bool
	AuthorID       string `validate:"required"`
}

// CreateDocument registers a new controlled document in the Draft state
func CreateDocument(ctx context.Context, docs db.DocumentStore, logger *zap.Logger,
	input CreateDocumentInput) (*db.Document, error) {

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid document input: %w", err)
	}

	doc := &db.Document{
		ID:             uuid.New().String(),
		CompanyID:      input.CompanyID,
		DocumentNumber: input.DocumentNumber,
		Title:          input.Title,
		Status:         db.DocumentDraft,
		Revision:       input.Revision,
		CategoryID:     input.CategoryID,
		VesselID:       input.VesselID,
		MandatoryRead:  input.MandatoryRead,
		AuthorID:       input.AuthorID,
	}

	logger.Info("Creating document",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("title", doc.Title))

	if err := docs.InsertDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc, nil
}

// SubmitForReview moves a draft document into review
func SubmitForReview(ctx context.Context, docs db.DocumentStore, logger *zap.Logger, documentID string) error {
	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Status != db.DocumentDraft {
		return &db.InvalidTransitionError{
			Entity: "document " + doc.DocumentNumber,
			From:   string(doc.Status),
			To:     string(db.DocumentUnderReview),
		}
	}

	logger.Info("Submitting document for review", zap.String("document_number", doc.DocumentNumber))

	if err := docs.UpdateDocumentStatus(ctx, documentID, db.DocumentDraft, db.DocumentUnderReview); err != nil {
		return fmt.Errorf("failed to submit document for review: %w", err)
	}
	return nil
}

// ApproveDocument moves an under-review document to Approved, setting the
// issue date if it was never set and scheduling the first review
// reviewIntervalDays from approval.
func ApproveDocument(ctx context.Context, docs db.DocumentStore, logger *zap.Logger,
	documentID, approverID string, reviewIntervalDays int, now time.Time) error {

	if reviewIntervalDays <= 0 {
		reviewIntervalDays = DefaultReviewIntervalDays
	}

	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Status != db.DocumentUnderReview {
		return &db.InvalidTransitionError{
			Entity: "document " + doc.DocumentNumber,
			From:   string(doc.Status),
			To:     string(db.DocumentApproved),
		}
	}

	nextReview := now.AddDate(0, 0, reviewIntervalDays)

	logger.Info("Approving document",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("approver_id", approverID),
		zap.Time("next_review", nextReview))

	if err := docs.ApproveDocument(ctx, documentID, now, nextReview); err != nil {
		return fmt.Errorf("failed to approve document: %w", err)
	}
	return nil
}

// RejectDocument sends an under-review document back to Draft, recording the
// reviewer's feedback for the author. Feedback must not be blank.
func RejectDocument(ctx context.Context, docs db.DocumentStore, logger *zap.Logger,
	documentID, approverID, feedback string, now time.Time) error {

	if strings.TrimSpace(feedback) == "" {
		return &db.ValidationError{Field: "feedback", Reason: "must not be blank"}
	}

	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Status != db.DocumentUnderReview {
		return &db.InvalidTransitionError{
			Entity: "document " + doc.DocumentNumber,
			From:   string(doc.Status),
			To:     string(db.DocumentDraft),
		}
	}

	logger.Info("Rejecting document",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("approver_id", approverID))

	if err := docs.UpdateDocumentStatus(ctx, documentID, db.DocumentUnderReview, db.DocumentDraft); err != nil {
		return fmt.Errorf("failed to reject document: %w", err)
	}

	review := &db.DocumentReview{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		ReviewerID: approverID,
		Kind:       db.ReviewKindRejection,
		Comments:   feedback,
		CreatedAt:  now,
	}
	if err := docs.InsertDocumentReview(ctx, review); err != nil {
		return fmt.Errorf("failed to record rejection feedback: %w", err)
	}
	return nil
}

// MarkDocumentReviewed records a periodic review of an approved document and
// rolls its next review date forward. The document stays Approved; the
// operation is only available while it is.
func MarkDocumentReviewed(ctx context.Context, docs db.DocumentStore, logger *zap.Logger,
	documentID, reviewerID string, nextReviewDate time.Time, comments string, now time.Time) error {

	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Status != db.DocumentApproved {
		return &db.InvalidTransitionError{
			Entity: "document " + doc.DocumentNumber,
			From:   string(doc.Status),
			To:     string(db.DocumentApproved),
		}
	}

	logger.Info("Recording document review",
		zap.String("document_number", doc.DocumentNumber),
		zap.Time("next_review", nextReviewDate))

	if err := docs.SetNextReviewDate(ctx, documentID, nextReviewDate); err != nil {
		return fmt.Errorf("failed to roll review date: %w", err)
	}

	review := &db.DocumentReview{
		ID:             uuid.New().String(),
		DocumentID:     documentID,
		ReviewerID:     reviewerID,
		Kind:           db.ReviewKindPeriodic,
		Comments:       comments,
		NextReviewDate: &nextReviewDate,
		CreatedAt:      now,
	}
	if err := docs.InsertDocumentReview(ctx, review); err != nil {
		return fmt.Errorf("failed to record review comments: %w", err)
	}
	return nil
}

// ObsoleteDocument retires a document from any state. Obsolete is terminal
// and irreversible; obsoleting an already obsolete document is a no-op.
func ObsoleteDocument(ctx context.Context, docs db.DocumentStore, logger *zap.Logger, documentID string) error {
	doc, err := docs.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}

	if doc.Status == db.DocumentObsolete {
		return nil
	}

	logger.Info("Marking document obsolete",
		zap.String("document_number", doc.DocumentNumber),
		zap.String("previous_status", string(doc.Status)))

	if err := docs.UpdateDocumentStatus(ctx, documentID, doc.Status, db.DocumentObsolete); err != nil {
		return fmt.Errorf("failed to mark document obsolete: %w", err)
	}
	return nil
}
