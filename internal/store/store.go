// Package store holds the database queries that feed the progress core.
// The core takes plain in-memory collections; everything gorm-shaped stops
// here.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/coleburton/rundown-sub000/internal/activity"
	"github.com/coleburton/rundown-sub000/internal/goals"
	"github.com/coleburton/rundown-sub000/internal/model"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// AthleteByStravaID looks an athlete up by their Strava athlete id.
func (s *Store) AthleteByStravaID(stravaID int64) (*model.Athlete, error) {
	var athlete model.Athlete
	if err := s.db.First(&athlete, "strava_athlete_id = ?", stravaID).Error; err != nil {
		return nil, fmt.Errorf("finding athlete %d: %w", stravaID, err)
	}
	return &athlete, nil
}

// AthleteByUserID looks an athlete up by the app-level user id.
func (s *Store) AthleteByUserID(userID string) (*model.Athlete, error) {
	var athlete model.Athlete
	if err := s.db.First(&athlete, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("finding athlete %q: %w", userID, err)
	}
	return &athlete, nil
}

// SaveActivity inserts a synced activity, ignoring repeats of the same
// Strava activity id.
func (s *Store) SaveActivity(rec *model.ActivityRecord) error {
	err := s.db.Where(model.ActivityRecord{StravaActivityID: rec.StravaActivityID}).
		FirstOrCreate(rec).Error
	if err != nil {
		return fmt.Errorf("saving activity %d: %w", rec.StravaActivityID, err)
	}
	return nil
}

// ActivitiesSince returns the athlete's activities on or after since,
// normalized into the core activity type, newest first.
func (s *Store) ActivitiesSince(athleteID uint, since time.Time) ([]activity.Activity, error) {
	var rows []model.ActivityRecord
	err := s.db.Where("athlete_id = ? AND start_date_local >= ?", athleteID, since).
		Order("start_date_local desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing activities for athlete %d: %w", athleteID, err)
	}

	acts := make([]activity.Activity, 0, len(rows))
	for _, row := range rows {
		acts = append(acts, activity.Normalize(activity.Activity{
			ID:              strconv.FormatInt(row.StravaActivityID, 10),
			Name:            row.Name,
			Type:            row.Type,
			OccurredAt:      row.StartDateLocal,
			DistanceMeters:  row.Distance,
			DurationSeconds: row.MovingTime,
		}))
	}
	return acts, nil
}

// GoalHistory returns the athlete's goal changes as core definitions.
func (s *Store) GoalHistory(athleteID uint) ([]goals.Definition, error) {
	var rows []model.GoalChange
	err := s.db.Where("athlete_id = ?", athleteID).
		Order("effective_date desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing goal history for athlete %d: %w", athleteID, err)
	}

	defs := make([]goals.Definition, 0, len(rows))
	for _, row := range rows {
		defs = append(defs, goals.Definition{
			GoalType:      goals.Type(row.GoalType),
			TargetValue:   row.TargetValue,
			EffectiveDate: row.EffectiveDate,
		})
	}
	return defs, nil
}

// RecordGoalChange appends a goal change to the athlete's history.
func (s *Store) RecordGoalChange(change *model.GoalChange) error {
	if err := s.db.Create(change).Error; err != nil {
		return fmt.Errorf("recording goal change: %w", err)
	}
	return nil
}

// ActiveSettingsGoals returns the settings-subsystem goals for an athlete.
func (s *Store) ActiveSettingsGoals(athleteID uint) ([]model.SettingsGoal, error) {
	var rows []model.SettingsGoal
	err := s.db.Where("athlete_id = ? AND is_active = ?", athleteID, true).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing settings goals for athlete %d: %w", athleteID, err)
	}
	return rows, nil
}

// ReplaceSettingsGoal deactivates previous settings goals of the same type
// and stores the new one.
func (s *Store) ReplaceSettingsGoal(goal *model.SettingsGoal) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.SettingsGoal{}).
			Where("athlete_id = ? AND goal_type = ?", goal.AthleteID, goal.GoalType).
			Update("is_active", false).Error
		if err != nil {
			return fmt.Errorf("deactivating settings goals: %w", err)
		}
		goal.IsActive = true
		if err := tx.Create(goal).Error; err != nil {
			return fmt.Errorf("creating settings goal: %w", err)
		}
		return nil
	})
}

// BuddyFor returns the athlete's accountability buddy, or nil if none is set.
func (s *Store) BuddyFor(athleteID uint) (*model.BuddyLink, error) {
	var buddy model.BuddyLink
	err := s.db.First(&buddy, "athlete_id = ?", athleteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding buddy for athlete %d: %w", athleteID, err)
	}
	return &buddy, nil
}

// AthletesWithBuddies returns every athlete who has a buddy configured,
// the population the weekly nudge run evaluates.
func (s *Store) AthletesWithBuddies() ([]model.Athlete, error) {
	var athletes []model.Athlete
	err := s.db.Joins("JOIN buddy_links ON buddy_links.athlete_id = athletes.id").
		Find(&athletes).Error
	if err != nil {
		return nil, fmt.Errorf("listing athletes with buddies: %w", err)
	}
	return athletes, nil
}

// RecordNudge logs a dispatched nudge.
func (s *Store) RecordNudge(rec *model.NudgeRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("recording nudge: %w", err)
	}
	return nil
}
