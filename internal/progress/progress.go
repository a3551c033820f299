// Package progress aggregates raw activities into weekly goal progress and
// classifies the outcome of a week.
package progress

import (
	"math"
	"strings"
	"time"

	"github.com/coleburton/rundown-sub000/internal/activity"
	"github.com/coleburton/rundown-sub000/internal/goals"
	"github.com/coleburton/rundown-sub000/internal/week"
)

// MetersPerMile converts Strava distances to the miles shown to athletes.
const MetersPerMile = 1609.34

// Outcome is the tri-state classification of a week.
type Outcome string

const (
	OutcomeMet     Outcome = "met"
	OutcomePartial Outcome = "partial"
	OutcomeMissed  Outcome = "missed"
)

func isRun(activityType string) bool {
	return strings.Contains(strings.ToLower(activityType), "run")
}

func isRide(activityType string) bool {
	t := strings.ToLower(activityType)
	return strings.Contains(t, "bike") || strings.Contains(t, "cycling") || strings.Contains(t, "ride")
}

// Aggregate filters activities to the window and reduces them to a single
// progress value under the goal type's rules. Distance goals sum meters,
// convert to miles and round once at the end; count goals return whole
// numbers. An unknown goal type counts all activities, the same defensive
// default the dashboard always had.
func Aggregate(goalType goals.Type, activities []activity.Activity, w week.Window) float64 {
	var weekly []activity.Activity
	for _, a := range activities {
		if w.Contains(a.OccurredAt) {
			weekly = append(weekly, a)
		}
	}

	var progress float64
	switch goalType {
	case goals.TotalRuns:
		for _, a := range weekly {
			if isRun(a.Type) {
				progress++
			}
		}
	case goals.TotalMilesRun:
		for _, a := range weekly {
			if isRun(a.Type) {
				progress += a.DistanceMeters / MetersPerMile
			}
		}
	case goals.TotalRides:
		for _, a := range weekly {
			if isRide(a.Type) {
				progress++
			}
		}
	case goals.TotalMilesBiking:
		for _, a := range weekly {
			if isRide(a.Type) {
				progress += a.DistanceMeters / MetersPerMile
			}
		}
	default: // total_activities and anything unrecognized
		progress = float64(len(weekly))
	}

	if goalType.IsDistance() {
		progress = math.Round(progress*10) / 10
	}
	return progress
}

// RunMiles sums the running distance in the window regardless of goal type.
// The dashboard shows it alongside every week.
func RunMiles(activities []activity.Activity, w week.Window) float64 {
	var miles float64
	for _, a := range activities {
		if w.Contains(a.OccurredAt) && isRun(a.Type) {
			miles += a.DistanceMeters / MetersPerMile
		}
	}
	return miles
}

// CountsTowardGoal reports whether a single activity contributes to the goal
// type. Used to annotate activity lists, not to aggregate: note the ride
// check here excludes types that also mention "run", which the aggregate
// filter deliberately does not.
func CountsTowardGoal(a activity.Activity, goalType goals.Type) bool {
	t := strings.ToLower(a.Type)
	switch goalType {
	case goals.TotalRuns, goals.TotalMilesRun:
		return strings.Contains(t, "run")
	case goals.TotalRides, goals.TotalMilesBiking:
		return strings.Contains(t, "bike") || strings.Contains(t, "cycling") ||
			(strings.Contains(t, "ride") && !strings.Contains(t, "run"))
	default:
		return true
	}
}

// Classification is the judged state of a single week.
type Classification struct {
	Outcome   Outcome `json:"status"`
	IsOnTrack bool    `json:"is_on_track"`
	IsBehind  bool    `json:"is_behind"`
	DaysLeft  int     `json:"days_left"`
}

// Classify judges progress against target. IsOnTrack and IsBehind are only
// meaningful for the current week (offset 0); past weeks are settled history
// and are never "behind". IsBehind additionally requires two or fewer days
// left in the week.
func Classify(progress, target float64, weekOffset int, today time.Time) Classification {
	var c Classification

	switch {
	case progress >= target:
		c.Outcome = OutcomeMet
	case progress > 0:
		c.Outcome = OutcomePartial
	default:
		c.Outcome = OutcomeMissed
	}

	c.IsOnTrack = progress >= target
	if weekOffset == 0 {
		c.DaysLeft = week.DaysLeft(today)
		c.IsBehind = c.DaysLeft <= 2 && progress < target
	}
	return c
}
