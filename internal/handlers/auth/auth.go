// Package auth implements the Strava OAuth handler.
package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/coleburton/rundown-sub000/internal/database"
	"github.com/coleburton/rundown-sub000/internal/model"
	"github.com/coleburton/rundown-sub000/internal/strava"
	"github.com/jackc/pgtype"
)

// AuthHandler exchanges the OAuth code, stores the token on the athlete row
// and subscribes to the activity feed. With no state it redirects to Strava.
func AuthHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.Error("unable to parse form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	state := r.Form.Get("state")
	stateToken := os.Getenv("STATE_TOKEN")

	if state == "" {
		u := strava.OauthConfig.AuthCodeURL(stateToken)
		slog.Info("redirecting to strava auth", "url", u)
		http.Redirect(w, r, u, http.StatusFound)
		return
	}

	if state != stateToken {
		http.Error(w, "state invalid", http.StatusBadRequest)
		return
	}
	code := r.Form.Get("code")
	if code == "" {
		http.Error(w, "code not found", http.StatusBadRequest)
		return
	}

	token, err := strava.OauthConfig.Exchange(r.Context(), code)
	if err != nil {
		slog.Error("token exchange failed", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	athlete, ok := token.Extra("athlete").(map[string]any)
	if !ok {
		slog.Error("unable to get athlete info")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	athleteID := int64(0)
	if id, ok := athlete["id"].(float64); ok {
		athleteID = int64(id)
	}
	username, _ := athlete["username"].(string)

	db, err := database.InitDB()
	if err != nil {
		slog.Error("unable to connect to database", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var tokenJSON pgtype.JSONB
	raw, err := json.Marshal(token)
	if err == nil {
		err = tokenJSON.Set(raw)
	}
	if err != nil {
		slog.Error("unable to serialize token", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var row model.Athlete
	db.Where(model.Athlete{StravaAthleteID: athleteID}).FirstOrCreate(&row)
	result := db.Model(&row).Updates(map[string]interface{}{
		"strava_athlete_name": username,
		"strava_auth_token":   tokenJSON,
	})
	if result.Error != nil {
		slog.Error("unable to store athlete", "error", result.Error)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	slog.Info("successfully authenticated", "username", username)

	// Subscribe to the activity stream - should this be here?
	ok, err = Subscribe()
	if !ok {
		slog.Error("failed to subscribe to strava webhook", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	slog.Info("successfully subscribed to strava activity feed")

	http.Redirect(w, r, "/start", http.StatusFound)
}
