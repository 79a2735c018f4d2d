package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// StartDrill moves a drill from Scheduled to InProgress. Starting is
// optional; a scheduled drill may be completed directly.
func StartDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger, drillID string) error {
	drill, err := drills.GetDrill(ctx, drillID)
	if err != nil {
		return fmt.Errorf("failed to fetch drill: %w", err)
	}

	if drill.Status != db.DrillScheduled {
		return &db.InvalidTransitionError{
			Entity: "drill " + drill.DrillNumber,
			From:   string(drill.Status),
			To:     string(db.DrillInProgress),
		}
	}

	logger.Info("Starting drill", zap.String("drill_number", drill.DrillNumber))

	if err := drills.UpdateDrillStatus(ctx, drillID, db.DrillScheduled, db.DrillInProgress, ""); err != nil {
		return fmt.Errorf("failed to start drill: %w", err)
	}
	return nil
}

// CancelDrill moves a drill to the terminal Cancelled state. A non-blank
// reason is required; rescheduling means creating a new drill.
func CancelDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger, drillID, reason string) error {
	return terminateDrill(ctx, drills, logger, drillID, db.DrillCancelled, reason)
}

// PostponeDrill moves a drill to the terminal Postponed state. A non-blank
// reason is required; rescheduling means creating a new drill.
func PostponeDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger, drillID, reason string) error {
	return terminateDrill(ctx, drills, logger, drillID, db.DrillPostponed, reason)
}

// DeleteDrill removes a drill that was scheduled in error. Only drills still
// in Scheduled are deletable; anything started or closed stays on record.
func DeleteDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger, drillID string) error {
	drill, err := drills.GetDrill(ctx, drillID)
	if err != nil {
		return fmt.Errorf("failed to fetch drill: %w", err)
	}

	if drill.Status != db.DrillScheduled {
		return &db.ValidationError{Field: "status", Reason: "only scheduled drills can be deleted"}
	}

	logger.Info("Deleting drill", zap.String("drill_number", drill.DrillNumber))

	if err := drills.DeleteDrill(ctx, drillID); err != nil {
		return fmt.Errorf("failed to delete drill: %w", err)
	}
	return nil
}

func terminateDrill(ctx context.Context, drills db.DrillStore, logger *zap.Logger,
	drillID string, to db.DrillStatus, reason string) error {

	if strings.TrimSpace(reason) == "" {
		return &db.ValidationError{Field: "reason", Reason: "must not be blank"}
	}

	drill, err := drills.GetDrill(ctx, drillID)
	if err != nil {
		return fmt.Errorf("failed to fetch drill: %w", err)
	}

	if drill.Status != db.DrillScheduled && drill.Status != db.DrillInProgress {
		return &db.InvalidTransitionError{
			Entity: "drill " + drill.DrillNumber,
			From:   string(drill.Status),
			To:     string(to),
		}
	}

	logger.Info("Closing drill without completion",
		zap.String("drill_number", drill.DrillNumber),
		zap.String("status", string(to)),
		zap.String("reason", reason))

	if err := drills.UpdateDrillStatus(ctx, drillID, drill.Status, to, reason); err != nil {
		return fmt.Errorf("failed to update drill status: %w", err)
	}
	return nil
}
