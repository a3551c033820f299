package model

import (
	"time"

	"github.com/jackc/pgtype"
	"gorm.io/gorm"
)

// Athlete represents a connected Strava athlete in the database
type Athlete struct {
	gorm.Model
	UserID            string `gorm:"uniqueIndex"`
	StravaAthleteID   int64  `gorm:"uniqueIndex"`
	StravaAthleteName string
	StravaAuthToken   pgtype.JSONB `gorm:"type:jsonb;default:'{}'"`
	LastActivityID    int64
	NudgeStyle        string // messages.Style; empty means supportive
}

// ActivityRecord is a synced Strava activity. Activities are immutable facts:
// rows are inserted by the webhook sync and never updated.
type ActivityRecord struct {
	gorm.Model
	AthleteID        uint  `gorm:"index"`
	StravaActivityID int64 `gorm:"uniqueIndex"`
	Name             string
	Type             string
	StartDateLocal   time.Time `gorm:"index"`
	Distance         float64   // meters
	MovingTime       float64   // seconds
}

// GoalChange is one row of an athlete's goal history. The progress core
// judges each past week against the change in effect at that week's start.
type GoalChange struct {
	gorm.Model
	AthleteID     uint `gorm:"index"`
	GoalType      string
	TargetValue   float64
	EffectiveDate time.Time `gorm:"index"`
}

// SettingsGoal belongs to the goals-management settings subsystem, which
// carries its own goal-type vocabulary. Never fed to the progress core.
type SettingsGoal struct {
	gorm.Model
	AthleteID   uint `gorm:"index"`
	GoalType    string
	TargetValue float64
	TargetUnit  string
	IsActive    bool
}

// BuddyLink names the accountability buddy who receives nudges when the
// athlete misses a weekly goal.
type BuddyLink struct {
	gorm.Model
	AthleteID    uint `gorm:"uniqueIndex"`
	BuddyName    string
	BuddyContact string
}

// NudgeRecord logs a dispatched buddy nudge for auditing.
type NudgeRecord struct {
	gorm.Model
	NudgeID     string `gorm:"uniqueIndex"`
	AthleteID   uint   `gorm:"index"`
	Kind        string
	Style       string
	MessageHash string
	Body        string
}
