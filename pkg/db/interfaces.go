package db

import (
	"context"
	"time"
)

// DrillFilter narrows drill listings. Zero-value fields are ignored.
type DrillFilter struct {
	CompanyID      string
	VesselID       string
	DrillTypeID    string
	Status         DrillStatus
	CompletedAfter *time.Time
}

// DocumentFilter narrows document listings. Zero-value fields are ignored.
type DocumentFilter struct {
	CompanyID     string
	VesselID      string
	Status        DocumentStatus
	MandatoryOnly bool
}

// DrillStore defines the interface for drill database operations
type DrillStore interface {
	GetDrill(ctx context.Context, id string) (*Drill, error)
	// NextDrillSequence atomically advances and returns the company's drill
	// number sequence. Safe under concurrent schedule calls.
	NextDrillSequence(ctx context.Context, companyID string) (int, error)
	InsertDrill(ctx context.Context, drill *Drill) error
	// UpdateDrillStatus transitions a drill conditionally on the status the
	// caller observed. Returns ErrConcurrentModification if the row exists
	// but no longer has status from.
	UpdateDrillStatus(ctx context.Context, id string, from, to DrillStatus, reason string) error
	// CompleteDrill persists the completion fields and all sub-records in a
	// single transaction, conditional on the observed status.
	CompleteDrill(ctx context.Context, drill *Drill, observed DrillStatus,
		participants []DrillParticipant, evaluations []ObjectiveEvaluation,
		equipment []EquipmentCheck, deficiencies []DrillDeficiency) error
	// LatestCompletedDrill returns the most recently completed drill for the
	// vessel and drill type, ordered by actual date falling back to the
	// scheduled date. Returns ErrNotFound when no drill was ever completed.
	LatestCompletedDrill(ctx context.Context, vesselID, drillTypeID string) (*Drill, error)
	ListDrills(ctx context.Context, filter DrillFilter) ([]Drill, error)
	// DeleteDrill removes a drill and all of its sub-records together.
	DeleteDrill(ctx context.Context, id string) error
}

// DocumentStore defines the interface for document database operations
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*Document, error)
	InsertDocument(ctx context.Context, doc *Document) error
	// UpdateDocumentStatus transitions a document conditionally on the status
	// the caller observed.
	UpdateDocumentStatus(ctx context.Context, id string, from, to DocumentStatus) error
	// ApproveDocument moves an under-review document to approved, setting the
	// issue date only if it was never set, and recording the next review date.
	ApproveDocument(ctx context.Context, id string, issueDate, nextReviewDate time.Time) error
	// SetNextReviewDate rolls the review cycle forward on an approved
	// document, conditional on the document still being approved.
	SetNextReviewDate(ctx context.Context, id string, next time.Time) error
	InsertDocumentReview(ctx context.Context, review *DocumentReview) error
	ListDocumentReviews(ctx context.Context, documentID string) ([]DocumentReview, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error)
}

// AcknowledgmentStore defines the interface for acknowledgment operations
type AcknowledgmentStore interface {
	// InsertAcknowledgment records a read confirmation. Returns
	// ErrDuplicateAcknowledgment if one already exists for the pair; the
	// store must never create a second row.
	InsertAcknowledgment(ctx context.Context, ack *Acknowledgment) error
	CountAcknowledgments(ctx context.Context, documentID string) (int, error)
	ListAcknowledgedUserIDs(ctx context.Context, documentID string) ([]string, error)
}

// ReferenceStore defines the interface for administrator-maintained
// reference data. The engine only reads it.
type ReferenceStore interface {
	GetVessel(ctx context.Context, id string) (*Vessel, error)
	ListVessels(ctx context.Context, companyID string) ([]Vessel, error)
	GetDrillType(ctx context.Context, id string) (*DrillType, error)
	ListDrillTypes(ctx context.Context) ([]DrillType, error)
	// ListActiveCrew returns active crew for a vessel, or for the whole
	// company when vesselID is nil.
	ListActiveCrew(ctx context.Context, companyID string, vesselID *string) ([]CrewMember, error)
	ListEmergencyContacts(ctx context.Context, vesselID string) ([]EmergencyContact, error)
	ListEmergencyProcedures(ctx context.Context, vesselID string) ([]EmergencyProcedure, error)
}

// Database defines the interface for all database operations.
// The postgres.DB implementation satisfies it in full.
type Database interface {
	DrillStore
	DocumentStore
	AcknowledgmentStore
	ReferenceStore
}
