package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

var planFrom = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestPlanDrillCalendar_FrequencyStepping(t *testing.T) {
	mock := newMockDatabase()
	mock.drillTypes = []db.DrillType{{ID: "type-fire", Name: "Fire Drill", MinFrequencyDays: 30}}

	// Last fire drill ran 10 days before the plan start
	done := planFrom.AddDate(0, 0, -10)
	mock.latestCompleted["vessel-1/type-fire"] = &db.Drill{
		ID:         "drill-1",
		Status:     db.DrillCompleted,
		ActualDate: &done,
	}

	logger := zap.NewNop()
	ctx := context.Background()

	planned, err := PlanDrillCalendar(ctx, mock, mock, logger, "vessel-1", nil, planFrom, 90)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	// Anchored on the completion date: +30, +60, +90 days from it; the
	// fourth step falls outside the 90-day horizon
	expected := []time.Time{
		done.AddDate(0, 0, 30),
		done.AddDate(0, 0, 60),
		done.AddDate(0, 0, 90),
	}
	assert.Equal(t, expected, planned[0].Dates)
}

func TestPlanDrillCalendar_NoHistory(t *testing.T) {
	mock := newMockDatabase()
	mock.drillTypes = []db.DrillType{{ID: "type-abandon", Name: "Abandon Ship", MinFrequencyDays: 90}}

	logger := zap.NewNop()
	ctx := context.Background()

	planned, err := PlanDrillCalendar(ctx, mock, mock, logger, "vessel-1", nil, planFrom, 180)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	// Never run before: first occurrence one full interval after plan start
	assert.Equal(t, []time.Time{
		planFrom.AddDate(0, 0, 90),
		planFrom.AddDate(0, 0, 180),
	}, planned[0].Dates)
}

func TestPlanDrillCalendar_RRuleOverride(t *testing.T) {
	mock := newMockDatabase()
	mock.drillTypes = []db.DrillType{{ID: "type-fire", Name: "Fire Drill", MinFrequencyDays: 30}}

	logger := zap.NewNop()
	ctx := context.Background()

	overrides := map[string]string{"type-fire": "FREQ=MONTHLY;BYMONTHDAY=1"}
	planned, err := PlanDrillCalendar(ctx, mock, mock, logger, "vessel-1", overrides, planFrom, 92)
	require.NoError(t, err)
	require.Len(t, planned, 1)

	// First of June, July, August and September all fall inside the window
	require.Len(t, planned[0].Dates, 4)
	for _, d := range planned[0].Dates {
		assert.Equal(t, 1, d.Day())
	}
}

func TestPlanDrillCalendar_InvalidOverride(t *testing.T) {
	mock := newMockDatabase()
	mock.drillTypes = []db.DrillType{{ID: "type-fire", Name: "Fire Drill", MinFrequencyDays: 30}}

	logger := zap.NewNop()
	ctx := context.Background()

	overrides := map[string]string{"type-fire": "FREQ=SOMETIMES"}
	_, err := PlanDrillCalendar(ctx, mock, mock, logger, "vessel-1", overrides, planFrom, 90)
	assert.Error(t, err)
}

func TestPlanDrillCalendar_InvalidHorizon(t *testing.T) {
	mock := newMockDatabase()
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := PlanDrillCalendar(ctx, mock, mock, logger, "vessel-1", nil, planFrom, 0)

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "horizonDays", validationErr.Field)
}
