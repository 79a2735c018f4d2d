package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

// PlannedDrills lists the upcoming planned dates for one drill type
type PlannedDrills struct {
	DrillType db.DrillType
	Dates     []time.Time
}

// PlanDrillCalendar projects the upcoming drill dates for a vessel over the
// planning horizon. A drill type with a configured RRULE override follows
// that rule; otherwise dates step forward by the type's required frequency,
// anchored on the last completed drill (or on `from` when none exists).
func PlanDrillCalendar(ctx context.Context, drills db.DrillStore, ref db.ReferenceStore,
	logger *zap.Logger, vesselID string, overrides map[string]string,
	from time.Time, horizonDays int) ([]PlannedDrills, error) {

	if horizonDays <= 0 {
		return nil, &db.ValidationError{Field: "horizonDays", Reason: "must be positive"}
	}

	drillTypes, err := ref.ListDrillTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list drill types: %w", err)
	}

	until := from.AddDate(0, 0, horizonDays)
	planned := make([]PlannedDrills, 0, len(drillTypes))

	for _, dt := range drillTypes {
		anchor, err := planningAnchor(ctx, drills, vesselID, dt.ID, from)
		if err != nil {
			return nil, err
		}

		var dates []time.Time
		if rule, ok := overrides[dt.ID]; ok {
			dates, err = expandRule(rule, anchor, from, until)
			if err != nil {
				return nil, fmt.Errorf("invalid calendar override for %s: %w", dt.Name, err)
			}
		} else {
			dates = stepByFrequency(anchor, dt.MinFrequencyDays, from, until)
		}

		logger.Debug("Planned drill dates",
			zap.String("vessel_id", vesselID),
			zap.String("drill_type", dt.Name),
			zap.Int("dates", len(dates)))

		planned = append(planned, PlannedDrills{DrillType: dt, Dates: dates})
	}

	return planned, nil
}

// planningAnchor is the date the next recurrence is measured from: the last
// completed drill when there is one, otherwise the start of the plan
func planningAnchor(ctx context.Context, drills db.DrillStore, vesselID, drillTypeID string,
	from time.Time) (time.Time, error) {

	latest, err := drills.LatestCompletedDrill(ctx, vesselID, drillTypeID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return from, nil
		}
		return time.Time{}, fmt.Errorf("failed to fetch latest completed drill: %w", err)
	}

	if latest.ActualDate != nil {
		return *latest.ActualDate, nil
	}
	return latest.ScheduledDate, nil
}

func expandRule(rule string, anchor, from, until time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, err
	}
	r.DTStart(anchor)
	return r.Between(from, until, true), nil
}

func stepByFrequency(anchor time.Time, frequencyDays int, from, until time.Time) []time.Time {
	var dates []time.Time
	for next := anchor.AddDate(0, 0, frequencyDays); !next.After(until); next = next.AddDate(0, 0, frequencyDays) {
		if next.Before(from) {
			continue
		}
		dates = append(dates, next)
	}
	return dates
}
