package goals

// SettingsType is the goal enumeration used by the goals-management settings
// subsystem. It is intentionally NOT reconciled with Type: the dashboard core
// and the settings screens grew separate vocabularies and unifying them is a
// product decision, not ours. Never feed a SettingsType to the aggregator.
type SettingsType string

const (
	SettingsWeeklyRuns      SettingsType = "weekly_runs"
	SettingsMonthlyDistance SettingsType = "monthly_distance"
	SettingsWeeklyDistance  SettingsType = "weekly_distance"
	SettingsStreakDays      SettingsType = "streak_days"
	SettingsCustom          SettingsType = "custom"
)

// ValidSettingsType reports whether s is one of the known settings goal types.
func ValidSettingsType(s SettingsType) bool {
	switch s {
	case SettingsWeeklyRuns, SettingsMonthlyDistance, SettingsWeeklyDistance, SettingsStreakDays, SettingsCustom:
		return true
	}
	return false
}
