// Package strava implements the Strava API surface the sync needs: OAuth
// configuration, activity fetches, and webhook payloads. API records are
// normalized into the core activity type here, at the boundary.
package strava

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/coleburton/rundown-sub000/internal/activity"
	"github.com/coleburton/rundown-sub000/internal/client"
	"golang.org/x/oauth2"
)

var (
	BaseURL     = "https://www.strava.com/api/v3"
	OauthConfig = &oauth2.Config{
		ClientID:     os.Getenv("STRAVA_CLIENT_ID"),
		ClientSecret: os.Getenv("STRAVA_CLIENT_SECRET"),
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://www.strava.com/oauth/authorize",
			TokenURL: "https://www.strava.com/oauth/token",
		},
		RedirectURL: os.Getenv("STRAVA_REDIRECT_URI"),
		Scopes:      []string{"activity:read_all"},
	}
)

// Athlete holds the athlete fields embedded in activity responses.
type Athlete struct {
	ID int64 `json:"id"`
}

// Activity struct holds only the data we want from the Strava API for an activity.
type Activity struct {
	ID             int64     `json:"id"`
	Athlete        Athlete   `json:"athlete"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	SportType      string    `json:"sport_type"`
	StartDate      time.Time `json:"start_date"`
	StartDateLocal time.Time `json:"start_date_local"`
	Distance       float64   `json:"distance"`
	MovingTime     float64   `json:"moving_time"`
	ElapsedTime    int64     `json:"elapsed_time"`
	Trainer        bool      `json:"trainer"`
}

// WebhookPayload is the event Strava POSTs when an activity changes.
// https://developers.strava.com/docs/webhooks/#event-data
type WebhookPayload struct {
	AspectType     string `json:"aspect_type"`
	EventTime      int64  `json:"event_time"`
	ObjectID       int64  `json:"object_id"`
	ObjectType     string `json:"object_type"`
	OwnerID        int64  `json:"owner_id"`
	SubscriptionID int64  `json:"subscription_id"`
}

// Normalize converts an API activity into the core type, clamping dirty
// numerics on the way through.
func (a *Activity) Normalize() activity.Activity {
	return activity.Normalize(activity.Activity{
		ID:              strconv.FormatInt(a.ID, 10),
		Name:            a.Name,
		Type:            a.Type,
		OccurredAt:      a.StartDateLocal,
		DistanceMeters:  a.Distance,
		DurationSeconds: a.MovingTime,
	})
}

func GetActivity(ctx context.Context, c *client.Client, id int64) (*Activity, error) {
	var a Activity
	req, err := c.NewRequest(ctx, http.MethodGet, fmt.Sprintf("/api/v3/activities/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("creating get activity request: %w", err)
	}

	resp, err := c.Do(req, &a)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("getting activity %d: %w", id, err)
	}

	return &a, nil
}

// ListActivities fetches a page of the authenticated athlete's activities
// recorded after the given time.
func ListActivities(ctx context.Context, c *client.Client, after time.Time, page, perPage int) ([]Activity, error) {
	var acts []Activity
	path := fmt.Sprintf("/api/v3/athlete/activities?after=%d&page=%d&per_page=%d", after.Unix(), page, perPage)
	req, err := c.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating list activities request: %w", err)
	}

	resp, err := c.Do(req, &acts)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}

	return acts, nil
}
