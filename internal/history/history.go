// Package history builds the rolling weekly results the dashboard charts.
// Each week is resolved, aggregated, classified and given its message
// independently, so one bad week never takes down the batch.
package history

import (
	"time"

	"github.com/coleburton/rundown-sub000/internal/activity"
	"github.com/coleburton/rundown-sub000/internal/goals"
	"github.com/coleburton/rundown-sub000/internal/messages"
	"github.com/coleburton/rundown-sub000/internal/progress"
	"github.com/coleburton/rundown-sub000/internal/week"
)

// DefaultWeeksBack is the window length the dashboard shows.
const DefaultWeeksBack = 12

// maxWeekActivities caps the per-week activity list in results.
const maxWeekActivities = 10

// WeekActivity is an activity annotated with whether it counted toward the
// week's goal.
type WeekActivity struct {
	activity.Activity
	CountsTowardGoal bool `json:"counts_toward_goal"`
}

// WeeklyResult is one judged week. Derived on demand, never persisted.
type WeeklyResult struct {
	WeekOffset  int              `json:"week_offset"`
	WeekStart   time.Time        `json:"week_start"`
	WeekEnd     time.Time        `json:"week_end"`
	Progress    float64          `json:"progress"`
	Target      float64          `json:"goal"`
	GoalType    goals.Type       `json:"goal_type"`
	GoalDisplay goals.Display    `json:"goal_display"`
	Status      progress.Outcome `json:"status"`
	IsOnTrack   bool             `json:"is_on_track"`
	IsBehind    bool             `json:"is_behind"`
	DaysLeft    int              `json:"days_left"`
	Message     messages.Message `json:"motivational_message"`
	Activities  []WeekActivity   `json:"activities"`
	RunMiles    float64          `json:"weekly_distance"`
}

// resolveGoal is swappable so tests can force a week to fail.
var resolveGoal = goals.Resolve

// Build computes weeksBack results for the athlete, offsets ascending from 0
// (the current week). Missing goal history degrades to the default goal and
// missing activities to zero progress; a week that fails outright becomes a
// placeholder result rather than aborting the batch.
func Build(userID string, acts []activity.Activity, goalHistory []goals.Definition, weeksBack int, today time.Time) []WeeklyResult {
	if weeksBack <= 0 {
		weeksBack = DefaultWeeksBack
	}

	results := make([]WeeklyResult, 0, weeksBack)
	for i := 0; i < weeksBack; i++ {
		results = append(results, buildWeek(userID, acts, goalHistory, i, today))
	}
	return results
}

func buildWeek(userID string, acts []activity.Activity, goalHistory []goals.Definition, offset int, today time.Time) (result WeeklyResult) {
	w := week.WindowAt(today, offset)

	// Per-week isolation: substitute a placeholder rather than letting one
	// week's failure empty the whole history.
	defer func() {
		if r := recover(); r != nil {
			result = fallbackWeek(offset, w)
		}
	}()

	def := resolveGoal(goalHistory, w.Start, goals.Default())
	prog := progress.Aggregate(def.GoalType, acts, w)
	cls := progress.Classify(prog, def.TargetValue, offset, today)

	scenario := messages.ScenarioFor(offset, prog, def.TargetValue)
	seed := messages.Seed(userID, offset, scenario, prog, def.TargetValue)
	msg := messages.Select(scenario, prog, def.TargetValue, def.GoalType, seed)

	var weekActs []WeekActivity
	for _, a := range acts {
		if !w.Contains(a.OccurredAt) {
			continue
		}
		weekActs = append(weekActs, WeekActivity{
			Activity:         a,
			CountsTowardGoal: progress.CountsTowardGoal(a, def.GoalType),
		})
		if len(weekActs) == maxWeekActivities {
			break
		}
	}

	return WeeklyResult{
		WeekOffset:  offset,
		WeekStart:   w.Start,
		WeekEnd:     w.End,
		Progress:    prog,
		Target:      def.TargetValue,
		GoalType:    def.GoalType,
		GoalDisplay: goals.DisplayText(def.GoalType),
		Status:      cls.Outcome,
		IsOnTrack:   cls.IsOnTrack,
		IsBehind:    cls.IsBehind,
		DaysLeft:    cls.DaysLeft,
		Message:     msg,
		Activities:  weekActs,
		RunMiles:    progress.RunMiles(acts, w),
	}
}

func fallbackWeek(offset int, w week.Window) WeeklyResult {
	def := goals.Default()
	return WeeklyResult{
		WeekOffset:  offset,
		WeekStart:   w.Start,
		WeekEnd:     w.End,
		Target:      def.TargetValue,
		GoalType:    def.GoalType,
		GoalDisplay: goals.DisplayText(def.GoalType),
		Status:      progress.OutcomeMissed,
		Message:     messages.ConnectionIssue(),
	}
}
