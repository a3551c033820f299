// Package sync implements the webhook handler that pulls new Strava
// activities into the database as they happen.
package sync

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/coleburton/rundown-sub000/internal/client"
	"github.com/coleburton/rundown-sub000/internal/database"
	"github.com/coleburton/rundown-sub000/internal/model"
	"github.com/coleburton/rundown-sub000/internal/store"
	"github.com/coleburton/rundown-sub000/internal/strava"
	"github.com/jackc/pgtype"
	"golang.org/x/oauth2"
)

// SyncHandler receives Strava webhook events and persists new activities.
// The progress core never talks to Strava; everything it sees comes through
// here first.
func SyncHandler(w http.ResponseWriter, r *http.Request) {
	var webhook strava.WebhookPayload
	if r.Body == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &webhook); err != nil {
		log.Println("[ERROR] unable to unmarshal webhook payload:", err)
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	// We only react to new activities for now
	if webhook.AspectType != "create" || webhook.ObjectType != "activity" {
		w.WriteHeader(http.StatusOK)
		log.Println("[INFO] ignoring non-create webhook")
		return
	}

	db, err := database.InitDB()
	if err != nil {
		log.Println("[ERROR] unable to connect to database:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	st := store.New(db)

	athlete, err := st.AthleteByStravaID(webhook.OwnerID)
	if err != nil {
		log.Println("[ERROR] unknown athlete:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if athlete.LastActivityID == webhook.ObjectID && os.Getenv("DEBUG") != "1" {
		w.WriteHeader(http.StatusOK)
		log.Println("[INFO] ignoring repeat event")
		return
	}

	// Create the OAuth http.Client
	authToken := &oauth2.Token{}
	if err := athlete.StravaAuthToken.AssignTo(authToken); err != nil {
		log.Println("[ERROR] unable to assign Strava auth token:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if authToken.AccessToken == "" {
		log.Println("[ERROR] no access token found")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	ts := strava.OauthConfig.TokenSource(r.Context(), authToken)
	tc := oauth2.NewClient(r.Context(), ts)

	newToken, err := ts.Token()
	if err != nil {
		log.Println("[ERROR] unable to refresh token:", err)
		return
	}
	if newToken.AccessToken != authToken.AccessToken {
		// Persist the whole token, not just the access token, so the next
		// event can unmarshal it with its refresh token and expiry intact.
		var tokenJSON pgtype.JSONB
		raw, err := json.Marshal(newToken)
		if err == nil {
			err = tokenJSON.Set(raw)
		}
		if err != nil {
			log.Println("[ERROR] unable to marshal refreshed token:", err)
		} else if err := db.Model(athlete).Update("strava_auth_token", tokenJSON).Error; err != nil {
			log.Println("[ERROR] unable to persist refreshed token:", err)
		} else {
			log.Println("[INFO] updated token")
		}
	}

	surl, _ := url.Parse(strava.BaseURL)
	sc := client.NewClient(surl, tc)

	apiActivity, err := strava.GetActivity(r.Context(), sc, webhook.ObjectID)
	if err != nil {
		log.Println("[ERROR] unable to get activity:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Printf("[INFO] Activity:%s (%d)", apiActivity.Name, apiActivity.ID)

	normalized := apiActivity.Normalize()
	rec := model.ActivityRecord{
		AthleteID:        athlete.ID,
		StravaActivityID: apiActivity.ID,
		Name:             normalized.Name,
		Type:             normalized.Type,
		StartDateLocal:   normalized.OccurredAt,
		Distance:         normalized.DistanceMeters,
		MovingTime:       normalized.DurationSeconds,
	}
	if err := st.SaveActivity(&rec); err != nil {
		log.Println("[ERROR] unable to save activity:", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	log.Printf("[INFO] synced activity %d for athlete %d", apiActivity.ID, athlete.StravaAthleteID)

	// Update the athlete's last activity ID
	db.Model(athlete).Updates(map[string]interface{}{
		"last_activity_id": webhook.ObjectID,
	})

	w.WriteHeader(http.StatusOK)
	if _, err = w.Write([]byte(``)); err != nil {
		log.Println("[ERROR]", err)
	}
}
