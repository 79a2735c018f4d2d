// Package compliance computes the urgency of recurring obligations.
//
// All functions are pure: the current time is always an explicit parameter
// and no result is ever cached, so urgency is recomputed on every read from
// stored dates.
package compliance

import (
	"math"
	"time"
)

// Tier is the urgency classification of an obligation's due date
type Tier string

const (
	TierOverdue    Tier = "overdue"
	TierDueSoon    Tier = "due_soon"
	TierOnSchedule Tier = "on_schedule"
)

// DueSoonWindowDays is the number of days before the due date at which an
// obligation moves from OnSchedule to DueSoon.
const DueSoonWindowDays = 7

// NeverCompletedDays is the DaysUntilDue sentinel for obligations that have
// never been satisfied. It sorts below any real overdue value.
const NeverCompletedDays = -999999

// Status is the computed compliance position of one obligation
type Status struct {
	Tier         Tier
	DueDate      time.Time
	DaysUntilDue int
}

// Evaluate computes the compliance status of an obligation from the date it
// was last satisfied and its required frequency. A nil lastDate means the
// obligation was never satisfied and is overdue by definition.
func Evaluate(lastDate *time.Time, frequencyDays int, now time.Time) Status {
	if lastDate == nil {
		return Status{
			Tier:         TierOverdue,
			DueDate:      now,
			DaysUntilDue: NeverCompletedDays,
		}
	}

	dueDate := lastDate.AddDate(0, 0, frequencyDays)
	days := daysUntil(dueDate, now)

	return Status{
		Tier:         classify(days),
		DueDate:      dueDate,
		DaysUntilDue: days,
	}
}

// EvaluateDeadline computes the compliance status of an obligation whose due
// date is stored directly (document reviews, certificate expiry) rather than
// derived from a last-satisfied date plus frequency.
func EvaluateDeadline(dueDate, now time.Time) Status {
	days := daysUntil(dueDate, now)
	return Status{
		Tier:         classify(days),
		DueDate:      dueDate,
		DaysUntilDue: days,
	}
}

// daysUntil returns the whole days from now until due, rounded up
func daysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

func classify(days int) Tier {
	switch {
	case days < 0:
		return TierOverdue
	case days <= DueSoonWindowDays:
		return TierDueSoon
	default:
		return TierOnSchedule
	}
}

// ReviewBand is the finer urgency classification used for document reviews
// and certificate expiry reporting.
type ReviewBand string

const (
	BandOverdue ReviewBand = "overdue"
	BandUrgent  ReviewBand = "urgent"
	BandWarning ReviewBand = "warning"
	BandNormal  ReviewBand = "normal"
)

// ReviewCutpoints parameterizes the review band thresholds so each reporting
// call site can classify the same raw DaysUntilDue with its own policy.
type ReviewCutpoints struct {
	// UrgentWithinDays is the exclusive upper bound of the Urgent band
	UrgentWithinDays int
	// WarningWithinDays is the exclusive upper bound of the Warning band;
	// Normal is open-ended above it
	WarningWithinDays int
}

// DefaultReviewCutpoints returns the standard 30/60 day review thresholds
func DefaultReviewCutpoints() ReviewCutpoints {
	return ReviewCutpoints{UrgentWithinDays: 30, WarningWithinDays: 60}
}

// ClassifyReview buckets a raw DaysUntilDue into a review band
func ClassifyReview(daysUntilDue int, cut ReviewCutpoints) ReviewBand {
	switch {
	case daysUntilDue < 0:
		return BandOverdue
	case daysUntilDue < cut.UrgentWithinDays:
		return BandUrgent
	case daysUntilDue < cut.WarningWithinDays:
		return BandWarning
	default:
		return BandNormal
	}
}
