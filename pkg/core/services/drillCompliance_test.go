package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/core/compliance"
	"github.com/digbyberriman-collab/maritime-master-sub000/pkg/db"
)

var complianceNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func TestDrillCompliance_NeverCompleted(t *testing.T) {
	mock := fixtureMock()
	logger := zap.NewNop()
	ctx := context.Background()

	status, err := DrillCompliance(ctx, mock, mock, logger, "vessel-1", "type-fire", complianceNow)
	require.NoError(t, err)

	assert.Equal(t, compliance.TierOverdue, status.Tier)
	assert.Equal(t, compliance.NeverCompletedDays, status.DaysUntilDue)
}

func TestDrillCompliance_OverdueByFive(t *testing.T) {
	// 90-day obligation, last completed 95 days ago
	mock := fixtureMock()
	actual := complianceNow.AddDate(0, 0, -95)
	mock.latestCompleted["vessel-1/type-abandon"] = &db.Drill{
		ID:            "drill-old",
		Status:        db.DrillCompleted,
		ScheduledDate: actual.AddDate(0, 0, -1),
		ActualDate:    &actual,
	}
	logger := zap.NewNop()
	ctx := context.Background()

	status, err := DrillCompliance(ctx, mock, mock, logger, "vessel-1", "type-abandon", complianceNow)
	require.NoError(t, err)

	assert.Equal(t, compliance.TierOverdue, status.Tier)
	assert.Equal(t, -5, status.DaysUntilDue)
}

func TestDrillCompliance_ScheduledDateFallback(t *testing.T) {
	// A completed drill with no actual date anchors on its scheduled date
	mock := fixtureMock()
	mock.latestCompleted["vessel-1/type-fire"] = &db.Drill{
		ID:            "drill-old",
		Status:        db.DrillCompleted,
		ScheduledDate: complianceNow.AddDate(0, 0, -10),
	}
	logger := zap.NewNop()
	ctx := context.Background()

	status, err := DrillCompliance(ctx, mock, mock, logger, "vessel-1", "type-fire", complianceNow)
	require.NoError(t, err)

	// 30-day frequency, anchored 10 days back
	assert.Equal(t, 20, status.DaysUntilDue)
	assert.Equal(t, compliance.TierOnSchedule, status.Tier)
}

func TestDrillCompliance_UnknownDrillType(t *testing.T) {
	mock := fixtureMock()
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := DrillCompliance(ctx, mock, mock, logger, "vessel-1", "type-missing", complianceNow)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestVesselDrillCompliance(t *testing.T) {
	mock := fixtureMock()
	recent := complianceNow.AddDate(0, 0, -10)
	mock.latestCompleted["vessel-1/type-fire"] = &db.Drill{
		ID:         "drill-recent",
		Status:     db.DrillCompleted,
		ActualDate: &recent,
	}
	logger := zap.NewNop()
	ctx := context.Background()

	statuses, err := VesselDrillCompliance(ctx, mock, mock, logger, "vessel-1", complianceNow)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	byType := make(map[string]compliance.Status)
	for _, s := range statuses {
		byType[s.DrillType.ID] = s.Status
	}

	// Fire drill done 10 days into its 30-day cycle; abandon ship never done
	assert.Equal(t, compliance.TierOnSchedule, byType["type-fire"].Tier)
	assert.Equal(t, compliance.TierOverdue, byType["type-abandon"].Tier)
}
