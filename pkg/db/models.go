package db

import "time"

// DrillStatus is the lifecycle state of a scheduled drill.
// Completed, Cancelled and Postponed are terminal; a cancelled or postponed
// drill is rescheduled by creating a new Drill.
type DrillStatus string

const (
	DrillScheduled  DrillStatus = "scheduled"
	DrillInProgress DrillStatus = "in_progress"
	DrillCompleted  DrillStatus = "completed"
	DrillCancelled  DrillStatus = "cancelled"
	DrillPostponed  DrillStatus = "postponed"
)

// DocumentStatus is the workflow state of a controlled document.
type DocumentStatus string

const (
	DocumentDraft       DocumentStatus = "draft"
	DocumentUnderReview DocumentStatus = "under_review"
	DocumentApproved    DocumentStatus = "approved"
	DocumentObsolete    DocumentStatus = "obsolete"
)

// ObligationCategory classifies why a drill type is required.
type ObligationCategory string

const (
	CategoryRegulatory ObligationCategory = "regulatory"
	CategoryCompany    ObligationCategory = "company"
	CategoryVoluntary  ObligationCategory = "voluntary"
)

// DeficiencySeverity grades a deficiency found during a drill.
type DeficiencySeverity string

const (
	SeverityMinor    DeficiencySeverity = "minor"
	SeverityMajor    DeficiencySeverity = "major"
	SeverityCritical DeficiencySeverity = "critical"
)

// Vessel represents a vessel in the fleet
type Vessel struct {
	ID        string
	CompanyID string
	Name      string
	IMONumber string
	Flag      string
}

// CrewMember represents a crew member assigned to a vessel
type CrewMember struct {
	ID        string
	CompanyID string
	VesselID  *string // nil when shore-based
	FullName  string
	Rank      string
	Active    bool
}

// DrillType is administrator-maintained reference data describing one class
// of recurring drill obligation. MinFrequencyDays is the required repeat
// interval; the engine never creates or edits drill types.
type DrillType struct {
	ID               string
	Name             string
	Category         ObligationCategory
	MinFrequencyDays int
	Description      string
}

// Drill represents one scheduled-and-tracked instance of a drill obligation.
// ActualDate is set exactly when Status is DrillCompleted.
type Drill struct {
	ID             string
	CompanyID      string
	VesselID       string
	DrillTypeID    string
	DrillNumber    string // DRILL-<year>-<seq>, sequential per company
	Status         DrillStatus
	StatusReason   string // cancellation or postponement reason
	ScheduledDate  time.Time
	ActualDate     *time.Time
	ConductedByID  *string
	Scenario       string
	Objectives     []string
	DurationMins   *int
	OverallRating  *int // 1-5, set on completion
	LessonsLearned string
	Weather        string
	Location       string
}

// DrillParticipant records one crew member's attendance at a drill
type DrillParticipant struct {
	ID                string
	DrillID           string
	CrewMemberID      string
	Expected          bool
	Attended          bool
	PerformanceRating *int
}

// ObjectiveEvaluation records whether one drill objective was achieved.
// ObjectiveIndex refers into the parent drill's Objectives list.
type ObjectiveEvaluation struct {
	ID             string
	DrillID        string
	ObjectiveIndex int
	Achieved       bool
	Notes          string
}

// DrillDeficiency records a deficiency observed during a drill
type DrillDeficiency struct {
	ID                 string
	DrillID            string
	Description        string
	Severity           DeficiencySeverity
	CorrectiveActionID *string
}

// EquipmentCheck records the condition of equipment used in a drill
type EquipmentCheck struct {
	ID            string
	DrillID       string
	EquipmentName string
	Used          bool
	Status        string
}

// Document represents a controlled document. A nil VesselID means the
// document applies company-wide. Documents are never hard-deleted once
// acknowledged; retirement is the Obsolete status.
type Document struct {
	ID             string
	CompanyID      string
	DocumentNumber string // unique within company
	Title          string
	Status         DocumentStatus
	Revision       string
	CategoryID     *string
	VesselID       *string
	MandatoryRead  bool
	AuthorID       string
	IssueDate      *time.Time
	NextReviewDate *time.Time
}

// DocumentReviewKind distinguishes periodic review comments from rejection
// feedback returned to the author.
type DocumentReviewKind string

const (
	ReviewKindPeriodic  DocumentReviewKind = "periodic"
	ReviewKindRejection DocumentReviewKind = "rejection"
)

// DocumentReview is one recorded review or rejection comment on a document
type DocumentReview struct {
	ID             string
	DocumentID     string
	ReviewerID     string
	Kind           DocumentReviewKind
	Comments       string
	NextReviewDate *time.Time // set for periodic reviews only
	CreatedAt      time.Time
}

// Acknowledgment records that a user has confirmed reading a document.
// At most one row exists per (DocumentID, UserID).
type Acknowledgment struct {
	ID             string
	DocumentID     string
	UserID         string
	AcknowledgedAt time.Time
}

// EmergencyContact is static per-vessel reference data for one emergency type
type EmergencyContact struct {
	ID            string
	VesselID      string
	EmergencyType string
	Name          string
	Role          string
	Phone         string
	Email         string
	Priority      int
}

// EmergencyProcedure is the static response procedure for one emergency type
type EmergencyProcedure struct {
	ID            string
	VesselID      string
	EmergencyType string
	Title         string
	Steps         []string
}
