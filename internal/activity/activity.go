// Package activity defines the normalized activity record consumed by the
// progress core. Upstream records arrive in two shapes — straight from the
// Strava API or as rows previously synced to the database — and both are
// normalized here, at the boundary, so the core only ever sees one type.
package activity

import "time"

// Activity is an immutable fact about a completed workout. Matching against
// goal types is done by case-insensitive substring search on Type, not exact
// enumeration, so "VirtualRun" counts as a run.
type Activity struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Type            string    `json:"type"`
	OccurredAt      time.Time `json:"occurred_at"`
	DistanceMeters  float64   `json:"distance_meters"`
	DurationSeconds float64   `json:"duration_seconds"`
}

// Normalize clamps dirty numeric fields so partial upstream data never
// reaches the core. Negative distances and durations become 0.
func Normalize(a Activity) Activity {
	if a.DistanceMeters < 0 {
		a.DistanceMeters = 0
	}
	if a.DurationSeconds < 0 {
		a.DurationSeconds = 0
	}
	if a.Name == "" {
		a.Name = "Activity"
	}
	return a
}
