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

func scheduledDrill(status db.DrillStatus) *db.Drill {
	return &db.Drill{
		ID:            "drill-1",
		CompanyID:     "company-1",
		VesselID:      "vessel-1",
		DrillTypeID:   "type-fire",
		DrillNumber:   "DRILL-2025-004",
		Status:        status,
		ScheduledDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Objectives:    []string{"Muster", "Deploy hoses"},
	}
}

func completionInput() CompleteDrillInput {
	return CompleteDrillInput{
		DrillID:        "drill-1",
		ActualDate:     time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		ConductedByID:  "crew-master",
		DurationMins:   45,
		OverallRating:  4,
		LessonsLearned: "Hose deployment was slow",
		Participants: []ParticipantInput{
			{CrewMemberID: "crew-1", Expected: true, Attended: true},
			{CrewMemberID: "crew-2", Expected: true, Attended: false},
		},
		Evaluations: []EvaluationInput{
			{ObjectiveIndex: 0, Achieved: true},
			{ObjectiveIndex: 1, Achieved: false, Notes: "Took 8 minutes"},
		},
		Equipment: []EquipmentInput{
			{EquipmentName: "Fire hose #2", Used: true, Status: "serviceable"},
		},
		Deficiencies: []DeficiencyInput{
			{Description: "Nozzle valve stiff", Severity: db.SeverityMinor},
		},
	}
}

func TestCompleteDrill(t *testing.T) {
	mock := newMockDatabase()
	mock.drills["drill-1"] = scheduledDrill(db.DrillScheduled)
	logger := zap.NewNop()
	ctx := context.Background()

	drill, err := CompleteDrill(ctx, mock, logger, completionInput())
	require.NoError(t, err)

	assert.Equal(t, db.DrillCompleted, drill.Status)
	require.NotNil(t, drill.ActualDate)
	assert.Equal(t, 4, *drill.OverallRating)

	// Parent and sub-records were handed to the store together
	require.Len(t, mock.completedSubRecords, 1)
	recs := mock.completedSubRecords[0]
	assert.Len(t, recs.participants, 2)
	assert.Len(t, recs.evaluations, 2)
	assert.Len(t, recs.equipment, 1)
	assert.Len(t, recs.deficiencies, 1)
	for _, p := range recs.participants {
		assert.Equal(t, "drill-1", p.DrillID)
		assert.NotEmpty(t, p.ID)
	}
}

func TestCompleteDrill_FromInProgress(t *testing.T) {
	mock := newMockDatabase()
	mock.drills["drill-1"] = scheduledDrill(db.DrillInProgress)
	logger := zap.NewNop()
	ctx := context.Background()

	drill, err := CompleteDrill(ctx, mock, logger, completionInput())
	require.NoError(t, err)
	assert.Equal(t, db.DrillCompleted, drill.Status)
}

func TestCompleteDrill_InvalidTransition(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	for _, status := range []db.DrillStatus{db.DrillCompleted, db.DrillCancelled, db.DrillPostponed} {
		t.Run(string(status), func(t *testing.T) {
			mock := newMockDatabase()
			mock.drills["drill-1"] = scheduledDrill(status)

			_, err := CompleteDrill(ctx, mock, logger, completionInput())

			var transitionErr *db.InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, string(status), transitionErr.From)
			assert.Equal(t, string(db.DrillCompleted), transitionErr.To)
			assert.Empty(t, mock.completedSubRecords)
		})
	}
}

func TestCompleteDrill_RatingOutOfRange(t *testing.T) {
	mock := newMockDatabase()
	mock.drills["drill-1"] = scheduledDrill(db.DrillScheduled)
	logger := zap.NewNop()
	ctx := context.Background()

	for _, rating := range []int{0, 6} {
		input := completionInput()
		input.OverallRating = rating

		_, err := CompleteDrill(ctx, mock, logger, input)
		assert.Error(t, err, "rating %d", rating)
	}
}

func TestCompleteDrill_ObjectiveIndexOutOfRange(t *testing.T) {
	mock := newMockDatabase()
	mock.drills["drill-1"] = scheduledDrill(db.DrillScheduled)
	logger := zap.NewNop()
	ctx := context.Background()

	input := completionInput()
	input.Evaluations = append(input.Evaluations, EvaluationInput{ObjectiveIndex: 5})

	_, err := CompleteDrill(ctx, mock, logger, input)

	var validationErr *db.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "evaluations", validationErr.Field)
}

func TestCompleteDrill_ConcurrentWriter(t *testing.T) {
	// Another writer cancelled the drill after this caller observed Scheduled
	inner := newMockDatabase()
	inner.drills["drill-1"] = scheduledDrill(db.DrillCancelled)
	mock := &staleReadMock{mockDatabase: inner, observedDrillStatus: db.DrillScheduled}
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := CompleteDrill(ctx, mock, logger, completionInput())

	assert.ErrorIs(t, err, db.ErrConcurrentModification)
	assert.Equal(t, db.DrillCancelled, inner.drills["drill-1"].Status)
	assert.Empty(t, inner.completedSubRecords)
}
