package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// ParticipantInput describes one crew member's attendance at a drill
type ParticipantInput struct {
	CrewMemberID      string `yaml:"crewMemberID" validate:"required"`
	Expected          bool   `yaml:"expected"`
	Attended          bool   `yaml:"attended"`
	PerformanceRating *int   `yaml:"performanceRating,omitempty" validate:"omitempty,min=1,max=5"`
}

// EvaluationInput describes the outcome of one drill objective
type EvaluationInput struct {
	ObjectiveIndex int    `yaml:"objectiveIndex" validate:"min=0"`
	Achieved       bool   `yaml:"achieved"`
	Notes          string `yaml:"notes,omitempty"`
}

// EquipmentInput describes one piece of equipment checked during a drill
type EquipmentInput struct {
	EquipmentName string `yaml:"equipmentName" validate:"required"`
	Used          bool   `yaml:"used"`
	Status        string `yaml:"status,omitempty"`
}

// DeficiencyInput describes a deficiency observed during a drill
type DeficiencyInput struct {
	Description        string                `yaml:"description" validate:"required"`
	Severity           db.DeficiencySeverity `yaml:"severity" validate:"required,oneof=minor major critical"`
	CorrectiveActionID *string               `yaml:"correctiveActionID,omitempty"`
}

// CompleteDrillInput carries the completion record for a scheduled drill
type CompleteDrillInput struct {
	DrillID        string    `validate:"required"`
	ActualDate     time.Time `validate:"required"`
	ConductedByID  string    `validate:"required"`
	DurationMins   int       `validate:"min=1"`
	OverallRating  int       `validate:"min=1,max=5"`
	LessonsLearned string
	Participants   []ParticipantInput `validate:"dive"`
	Evaluations    []EvaluationInput  `validate:"dive"`
	Equipment      []EquipmentInput   `validate:"dive"`
	Deficiencies   []DeficiencyInput  `validate:"dive"`
}

// CompleteDrill transitions a drill to Completed and persists all sub-records
// atomically with the parent. The transition is only allowed from Scheduled
// or InProgress; any other state is an invalid transition.
func CompleteDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger,
	input CompleteDrillInput) (*db.Drill, error) {

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid completion input: %w", err)
	}

	drill, err := drills.GetDrill(ctx, input.DrillID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drill: %w", err)
	}

	if drill.Status != db.DrillScheduled && drill.Status != db.DrillInProgress {
		return nil, &db.InvalidTransitionError{
			Entity: "drill " + drill.DrillNumber,
			From:   string(drill.Status),
			To:     string(db.DrillCompleted),
		}
	}

	// Evaluations must refer to objectives the drill actually has
	for _, e := range input.Evaluations {
		if e.ObjectiveIndex >= len(drill.Objectives) {
			return nil, &db.ValidationError{
				Field:  "evaluations",
				Reason: fmt.Sprintf("objective index %d out of range (%d objectives)", e.ObjectiveIndex, len(drill.Objectives)),
			}
		}
	}

	observed := drill.Status
	drill.Status = db.DrillCompleted
	drill.ActualDate = &input.ActualDate
	drill.ConductedByID = &input.ConductedByID
	drill.DurationMins = &input.DurationMins
	drill.OverallRating = &input.OverallRating
	drill.LessonsLearned = input.LessonsLearned

	participants := make([]db.DrillParticipant, len(input.Participants))
	for i, p := range input.Participants {
		participants[i] = db.DrillParticipant{
			ID:                uuid.New().String(),
			DrillID:           drill.ID,
			CrewMemberID:      p.CrewMemberID,
			Expected:          p.Expected,
			Attended:          p.Attended,
			PerformanceRating: p.PerformanceRating,
		}
	}

	evaluations := make([]db.ObjectiveEvaluation, len(input.Evaluations))
	for i, e := range input.Evaluations {
		evaluations[i] = db.ObjectiveEvaluation{
			ID:             uuid.New().String(),
			DrillID:        drill.ID,
			ObjectiveIndex: e.ObjectiveIndex,
			Achieved:       e.Achieved,
			Notes:          e.Notes,
		}
	}

	equipment := make([]db.EquipmentCheck, len(input.Equipment))
	for i, c := range input.Equipment {
		equipment[i] = db.EquipmentCheck{
			ID:            uuid.New().String(),
			DrillID:       drill.ID,
			EquipmentName: c.EquipmentName,
			Used:          c.Used,
			Status:        c.Status,
		}
	}

	deficiencies := make([]db.DrillDeficiency, len(input.Deficiencies))
	for i, f := range input.Deficiencies {
		deficiencies[i] = db.DrillDeficiency{
			ID:                 uuid.New().String(),
			DrillID:            drill.ID,
			Description:        f.Description,
			Severity:           f.Severity,
			CorrectiveActionID: f.CorrectiveActionID,
		}
	}

	logger.Info("Completing drill",
		zap.String("drill_number", drill.DrillNumber),
		zap.Time("actual_date", input.ActualDate),
		zap.Int("rating", input.OverallRating),
		zap.Int("participants", len(participants)),
		zap.Int("deficiencies", len(deficiencies)))

	if err := drills.CompleteDrill(ctx, drill, observed, participants, evaluations, equipment, deficiencies); err != nil {
		return nil, fmt.Errorf("failed to complete drill: %w", err)
	}

	return drill, nil
}
