package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// DrillCompliance computes the compliance status of one drill obligation for
// a vessel. Only completed drills count; a drill type with no completed
// drill ever is overdue by definition. The anchor date is the actual
// completion date, falling back to the scheduled date if absent.
func DrillCompliance(ctx context.Context, drills db.DrillStore, ref db.ReferenceStore,
	logger *zap.Logger, vesselID, drillTypeID string, now time.Time) (compliance.Status, error) {

	drillType, err := ref.GetDrillType(ctx, drillTypeID)
	if err != nil {
		return compliance.Status{}, fmt.Errorf("failed to look up drill type: %w", err)
	}

	latest, err := drills.LatestCompletedDrill(ctx, vesselID, drillTypeID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			logger.Debug("No completed drill on record",
				zap.String("vessel_id", vesselID),
				zap.String("drill_type", drillType.Name))
			return compliance.Evaluate(nil, drillType.MinFrequencyDays, now), nil
		}
		return compliance.Status{}, fmt.Errorf("failed to fetch latest completed drill: %w", err)
	}

	anchor := latest.ActualDate
	if anchor == nil {
		anchor = &latest.ScheduledDate
	}

	return compliance.Evaluate(anchor, drillType.MinFrequencyDays, now), nil
}

// VesselDrillStatus pairs one drill type with its computed compliance status
type VesselDrillStatus struct {
	DrillType db.DrillType
	Status    compliance.Status
}

// VesselDrillCompliance computes the compliance status of every drill type
// for one vessel
func VesselDrillCompliance(ctx context.Context, drills db.DrillStore, ref db.ReferenceStore,
	logger *zap.Logger, vesselID string, now time.Time) ([]VesselDrillStatus, error) {

	drillTypes, err := ref.ListDrillTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drill types: %w", err)
	}

	statuses := make([]VesselDrillStatus, 0, len(drillTypes))
	for _, dt := range drillTypes {
		status, err := DrillCompliance(ctx, drills, ref, logger, vesselID, dt.ID, now)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, VesselDrillStatus{DrillType: dt, Status: status})
	}
	return statuses, nil
}
