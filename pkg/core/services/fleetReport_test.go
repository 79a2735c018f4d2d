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

var reportNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func reportMock() *mockDatabase {
	mock := newMockDatabase()
	mock.vessels["vessel-1"] = &db.Vessel{ID: "vessel-1", CompanyID: "company-1", Name: "MV Northern Star"}
	mock.drillTypes = []db.DrillType{
		{ID: "type-fire", Name: "Fire Drill", MinFrequencyDays: 30},
		{ID: "type-abandon", Name: "Abandon Ship", MinFrequencyDays: 90},
	}

	// Fire drill done 25 days ago: due in 5 days (DueSoon).
	// Abandon ship never done: Overdue.
	fireDone := reportNow.AddDate(0, 0, -25)
	mock.latestCompleted["vessel-1/type-fire"] = &db.Drill{
		ID:         "drill-fire",
		Status:     db.DrillCompleted,
		ActualDate: &fireDone,
	}
	return mock
}

func TestFleetComplianceReport(t *testing.T) {
	mock := reportMock()

	// One completed-in-window drill, done on its planned day
	done := reportNow.AddDate(0, 0, -25)
	mock.listDrillsOut = []db.Drill{
		{ID: "drill-fire", Status: db.DrillCompleted, ScheduledDate: done, ActualDate: &done},
	}

	// One mandatory document, one of two crew acknowledged
	doc := approvedDocWithReview("m", reportNow.AddDate(0, 0, 15))
	doc.MandatoryRead = true
	mock.documents[doc.ID] = &doc
	mock.crew = []db.CrewMember{{ID: "crew-1"}, {ID: "crew-2"}}
	mock.acks["m/crew-1"] = &db.Acknowledgment{ID: "a1", DocumentID: "m", UserID: "crew-1"}

	logger := zap.NewNop()
	ctx := context.Background()

	report, err := FleetComplianceReport(ctx, mock, logger, FleetReportInput{
		CompanyID: "company-1",
		Now:       reportNow,
	})
	require.NoError(t, err)

	// Drill tiers: fire DueSoon, abandon Overdue
	assert.Equal(t, 1, report.DrillTierCounts[compliance.TierDueSoon])
	assert.Equal(t, 1, report.DrillTierCounts[compliance.TierOverdue])
	assert.Equal(t, 0, report.DrillTierCounts[compliance.TierOnSchedule])

	// Nearest-due drill is the never-completed abandon ship obligation
	require.NotNil(t, report.NearestDueDrill)
	assert.Equal(t, "Abandon Ship", report.NearestDueDrill.Name)

	// Document review: 15 days out is Urgent
	assert.Equal(t, 1, report.ReviewBandCounts[compliance.BandUrgent])
	require.NotNil(t, report.NearestDueReview)
	assert.Equal(t, 15, report.NearestDueReview.Status.DaysUntilDue)

	// Acknowledgments: one mandatory doc, half read
	assert.Equal(t, 1, report.MandatoryDocs)
	assert.Equal(t, 0, report.FullyAcknowledgedDocs)
	assert.Equal(t, 50, report.AcknowledgmentPercent)

	// Rate: 1 on-time completion, 2 currently due -> 1/3
	assert.InDelta(t, 33.33, report.ComplianceRate, 0.01)
}

func TestFleetComplianceReport_EmptyFleet(t *testing.T) {
	mock := newMockDatabase()
	logger := zap.NewNop()
	ctx := context.Background()

	report, err := FleetComplianceReport(ctx, mock, logger, FleetReportInput{
		CompanyID: "company-1",
		Now:       reportNow,
	})
	require.NoError(t, err)

	assert.Empty(t, report.DrillTierCounts)
	assert.Nil(t, report.NearestDueDrill)
	// Nothing completed and nothing due counts as fully compliant
	assert.Equal(t, float64(100), report.ComplianceRate)
}

func TestFleetComplianceReport_SingleVessel(t *testing.T) {
	mock := reportMock()
	mock.vessels["vessel-2"] = &db.Vessel{ID: "vessel-2", CompanyID: "company-1", Name: "MV Southern Cross"}
	logger := zap.NewNop()
	ctx := context.Background()

	report, err := FleetComplianceReport(ctx, mock, logger, FleetReportInput{
		CompanyID: "company-1",
		VesselID:  "vessel-1",
		Now:       reportNow,
	})
	require.NoError(t, err)

	// Only vessel-1's two obligations counted
	total := 0
	for _, n := range report.DrillTierCounts {
		total += n
	}
	assert.Equal(t, 2, total)
}

func TestFleetComplianceReport_MissingInput(t *testing.T) {
	mock := newMockDatabase()
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := FleetComplianceReport(ctx, mock, logger, FleetReportInput{Now: reportNow})
	assert.Error(t, err)
}
