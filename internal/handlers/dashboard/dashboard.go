// Package dashboard serves the 12-week goal history the app charts.
package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coleburton/rundown-sub000/internal/cache"
	"github.com/coleburton/rundown-sub000/internal/history"
	"github.com/coleburton/rundown-sub000/internal/store"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// cacheTTL keeps history responses warm between webhook syncs.
const cacheTTL = 5 * time.Minute

var titler = cases.Title(language.English)

type weekActivity struct {
	history.WeekActivity
	TypeLabel string `json:"type_label"`
}

type weekResponse struct {
	history.WeeklyResult
	Activities []weekActivity `json:"activities"`
}

// HistoryHandler returns the weekly history endpoint. The store supplies
// activities and goal history; the progress core does the rest. Responses
// are cached per athlete, and cache failures degrade to recomputing.
func HistoryHandler(db *gorm.DB, che cache.Cache, log logrus.FieldLogger) http.HandlerFunc {
	st := store.New(db)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			http.Error(w, "missing query param: user_id", http.StatusBadRequest)
			return
		}

		cacheKey := fmt.Sprintf("history:%s", userID)
		if che != nil {
			var cached []weekResponse
			if err := che.GetJSON(r.Context(), cacheKey, &cached); err == nil && len(cached) > 0 {
				writeJSON(w, cached, log)
				return
			}
		}

		athlete, err := st.AthleteByUserID(userID)
		if err != nil {
			log.WithError(err).Warn("athlete not found")
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		now := time.Now()
		since := now.AddDate(0, 0, -7*history.DefaultWeeksBack)

		// Missing activities or goal history degrade to defaults; the
		// history builder handles empty inputs.
		acts, err := st.ActivitiesSince(athlete.ID, since)
		if err != nil {
			log.WithError(err).Warn("unable to load activities")
		}
		goalHistory, err := st.GoalHistory(athlete.ID)
		if err != nil {
			log.WithError(err).Warn("unable to load goal history")
		}

		results := history.Build(userID, acts, goalHistory, history.DefaultWeeksBack, now)

		weeks := make([]weekResponse, 0, len(results))
		for _, res := range results {
			wk := weekResponse{WeeklyResult: res}
			for _, a := range res.Activities {
				wk.Activities = append(wk.Activities, weekActivity{
					WeekActivity: a,
					TypeLabel:    titler.String(a.Type),
				})
			}
			weeks = append(weeks, wk)
		}

		if che != nil {
			if raw, err := json.Marshal(weeks); err == nil {
				if err := che.SetWithTTL(r.Context(), cacheKey, string(raw), cacheTTL); err != nil {
					log.WithError(err).Warn("unable to cache history")
				}
			}
		}

		writeJSON(w, weeks, log)
	}
}

func writeJSON(w http.ResponseWriter, v any, log logrus.FieldLogger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding history response")
	}
}
