package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

var validate = validator.New()

// ScheduleDrillInput carries everything needed to schedule a new drill.
// Now anchors the drill number's year: a drill scheduled in December for
// January carries the year it was created in, not the year it runs.
type ScheduleDrillInput struct {
	CompanyID     string    `validate:"required"`
	VesselID      string    `validate:"required"`
	DrillTypeID   string    `validate:"required"`
	ScheduledDate time.Time `validate:"required"`
	Now           time.Time `validate:"required"`
	Scenario      string
	Objectives    []string
	Weather       string
	Location      string
}

// ScheduleDrill creates a new drill in the Scheduled state and allocates the
// next sequential drill number for the company. The number is drawn from a
// store-side sequence so concurrent schedule calls never collide.
func ScheduleDrill(ctx context.Context, drills db.DrillStore, ref db.ReferenceStore,
	logger *zap.Logger, input ScheduleDrillInput) (*db.Drill, error) {

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("invalid schedule input: %w", err)
	}

	if _, err := ref.GetVessel(ctx, input.VesselID); err != nil {
		return nil, fmt.Errorf("failed to look up vessel: %w", err)
	}
	drillType, err := ref.GetDrillType(ctx, input.DrillTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up drill type: %w", err)
	}

	seq, err := drills.NextDrillSequence(ctx, input.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate drill number: %w", err)
	}

	drill := &db.Drill{
		ID:            uuid.New().String(),
		CompanyID:     input.CompanyID,
		VesselID:      input.VesselID,
		DrillTypeID:   input.DrillTypeID,
		DrillNumber:   fmt.Sprintf("DRILL-%04d-%03d", input.Now.Year(), seq),
		Status:        db.DrillScheduled,
		ScheduledDate: input.ScheduledDate,
		Scenario:      input.Scenario,
		Objectives:    input.Objectives,
		Weather:       input.Weather,
		Location:      input.Location,
	}

	logger.Info("Scheduling drill",
		zap.String("drill_number", drill.DrillNumber),
		zap.String("vessel_id", drill.VesselID),
		zap.String("drill_type", drillType.Name),
		zap.Time("scheduled_date", drill.ScheduledDate))

	if err := drills.InsertDrill(ctx, drill); err != nil {
		return nil, fmt.Errorf("failed to insert drill: %w", err)
	}

	return drill, nil
}
