// Package goalcfg serves goal configuration: the dashboard goal history and
// the settings subsystem's goals. The two use different goal vocabularies
// and are deliberately kept apart.
package goalcfg

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coleburton/rundown-sub000/internal/cache"
	"github.com/coleburton/rundown-sub000/internal/goals"
	"github.com/coleburton/rundown-sub000/internal/model"
	"github.com/coleburton/rundown-sub000/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type goalChangeRequest struct {
	UserID        string  `json:"user_id"`
	GoalType      string  `json:"goal_type"`
	TargetValue   float64 `json:"target_value"`
	EffectiveDate string  `json:"effective_date"` // YYYY-MM-DD, defaults to today
}

type settingsGoalRequest struct {
	UserID      string  `json:"user_id"`
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	TargetUnit  string  `json:"target_unit"`
}

// GoalChangeHandler appends a goal change to the athlete's history. Past
// weeks keep being judged against the change that was in effect then, so
// changes are only ever appended, never rewritten.
func GoalChangeHandler(db *gorm.DB, che cache.Cache, log logrus.FieldLogger) http.HandlerFunc {
	st := store.New(db)

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var req goalChangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if req.UserID == "" || req.TargetValue <= 0 {
			http.Error(w, "user_id and a positive target_value are required", http.StatusBadRequest)
			return
		}

		effective := time.Now()
		if req.EffectiveDate != "" {
			parsed, err := time.Parse("2006-01-02", req.EffectiveDate)
			if err != nil {
				http.Error(w, "effective_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			effective = parsed
		}

		athlete, err := st.AthleteByUserID(req.UserID)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		change := model.GoalChange{
			AthleteID:     athlete.ID,
			GoalType:      req.GoalType,
			TargetValue:   req.TargetValue,
			EffectiveDate: effective,
		}
		if err := st.RecordGoalChange(&change); err != nil {
			log.WithError(err).Error("unable to record goal change")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// The cached history is stale the moment the goal changes.
		if che != nil {
			key := fmt.Sprintf("history:%s", req.UserID)
			if err := che.Delete(r.Context(), key); err != nil {
				log.WithError(err).Warn("unable to invalidate history cache")
			}
		}

		w.WriteHeader(http.StatusCreated)
		writeJSON(w, change, log)
	}
}

// SettingsGoalHandler reads and writes the settings subsystem's goals. Its
// goal types (weekly_runs, monthly_distance, ...) never reach the progress
// core.
func SettingsGoalHandler(db *gorm.DB, log logrus.FieldLogger) http.HandlerFunc {
	st := store.New(db)

	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userID := r.URL.Query().Get("user_id")
			if userID == "" {
				http.Error(w, "missing query param: user_id", http.StatusBadRequest)
				return
			}
			athlete, err := st.AthleteByUserID(userID)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			rows, err := st.ActiveSettingsGoals(athlete.ID)
			if err != nil {
				log.WithError(err).Error("unable to list settings goals")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			writeJSON(w, rows, log)

		case http.MethodPost:
			var req settingsGoalRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			if !goals.ValidSettingsType(goals.SettingsType(req.GoalType)) {
				http.Error(w, "unknown goal_type", http.StatusBadRequest)
				return
			}
			athlete, err := st.AthleteByUserID(req.UserID)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
				return
			}
			goal := model.SettingsGoal{
				AthleteID:   athlete.ID,
				GoalType:    req.GoalType,
				TargetValue: req.TargetValue,
				TargetUnit:  req.TargetUnit,
			}
			if err := st.ReplaceSettingsGoal(&goal); err != nil {
				log.WithError(err).Error("unable to store settings goal")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusCreated)
			writeJSON(w, goal, log)

		default:
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any, log logrus.FieldLogger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
	}
}
