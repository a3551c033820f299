// Package goals defines the weekly goal types used by the progress core and
// resolves which goal definition was in effect for a given week.
package goals

import "time"

// Type enumerates the goal types the dashboard progress core understands.
// The settings subsystem carries its own, unrelated enumeration — see
// settings.go. The two are distinct bounded contexts and must not be mixed.
type Type string

const (
	TotalActivities  Type = "total_activities"
	TotalRuns        Type = "total_runs"
	TotalMilesRun    Type = "total_miles_running"
	TotalRides       Type = "total_rides_biking"
	TotalMilesBiking Type = "total_miles_biking"
)

// Definition is a (type, target) pair describing what an athlete must achieve
// in a week. EffectiveDate is the calendar day the definition starts applying,
// until superseded by a later-dated definition.
type Definition struct {
	GoalType      Type      `json:"goal_type"`
	TargetValue   float64   `json:"target_value"`
	EffectiveDate time.Time `json:"effective_date"`
}

// Default is the goal applied when an athlete has no configured goal at all.
// An athlete with no goal history still gets a rendered week.
func Default() Definition {
	return Definition{GoalType: TotalActivities, TargetValue: 3}
}

// IsDistance reports whether progress for the type is measured in miles
// rather than an activity count.
func (t Type) IsDistance() bool {
	return t == TotalMilesRun || t == TotalMilesBiking
}

// Resolve returns the definition from history with the latest effective date
// on or before weekStart. History need not be sorted. If no entry qualifies,
// fallback is returned unchanged. Resolve never fails; missing data degrades
// to the fallback.
//
// Comparison is at calendar-day granularity. Dates are normalized to
// YYYY-MM-DD strings before comparing so a goal set late in the evening still
// applies to a week starting at midnight the same day.
func Resolve(history []Definition, weekStart time.Time, fallback Definition) Definition {
	target := weekStart.Format("2006-01-02")

	best := -1
	bestDate := ""
	for i, def := range history {
		d := def.EffectiveDate.Format("2006-01-02")
		if d > target {
			continue
		}
		if best == -1 || d > bestDate {
			best = i
			bestDate = d
		}
	}

	if best == -1 {
		return fallback
	}
	return history[best]
}

// Display holds the presentation metadata for a goal type.
type Display struct {
	Unit  string `json:"unit"`
	Emoji string `json:"emoji"`
	Name  string `json:"name"`
}

// DisplayText returns the unit, emoji and name used when rendering a goal
// type. Unknown types render as runs, matching the aggregation fallback.
func DisplayText(t Type) Display {
	switch t {
	case TotalRuns:
		return Display{Unit: "runs", Emoji: "🏃‍♂️", Name: "Runs"}
	case TotalMilesRun:
		return Display{Unit: "miles run", Emoji: "📏", Name: "Running Miles"}
	case TotalActivities:
		return Display{Unit: "activities", Emoji: "🏋️‍♀️", Name: "Activities"}
	case TotalRides:
		return Display{Unit: "rides", Emoji: "🚴‍♂️", Name: "Bike Rides"}
	case TotalMilesBiking:
		return Display{Unit: "miles cycled", Emoji: "🚵‍♀️", Name: "Cycling Miles"}
	default:
		return Display{Unit: "runs", Emoji: "🏃‍♂️", Name: "Runs"}
	}
}
