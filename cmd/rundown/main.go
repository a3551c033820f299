package main

import (
	"context"
	"log"
	"net/http"
	"os"

	// Autoloads .env file to supply environment variables
	_ "github.com/joho/godotenv/autoload"

	"github.com/coleburton/rundown-sub000/internal/cache"
	"github.com/coleburton/rundown-sub000/internal/config"
	"github.com/coleburton/rundown-sub000/internal/database"
	"github.com/coleburton/rundown-sub000/internal/handlers/auth"
	"github.com/coleburton/rundown-sub000/internal/handlers/callback"
	"github.com/coleburton/rundown-sub000/internal/handlers/dashboard"
	"github.com/coleburton/rundown-sub000/internal/handlers/goalcfg"
	"github.com/coleburton/rundown-sub000/internal/handlers/sync"
	"github.com/coleburton/rundown-sub000/internal/logger"
	"github.com/coleburton/rundown-sub000/internal/nudge"
	"github.com/coleburton/rundown-sub000/internal/store"
)

func main() {
	cfg := config.Load()
	port := ":" + cfg.Port
	if val, ok := os.LookupEnv("FUNCTIONS_CUSTOMHANDLER_PORT"); ok {
		port = ":" + val
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("failed to initialise database: %v", err)
	}

	che, err := cache.NewRedisCache(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	st := store.New(db)
	nudgeLog := logger.NewLogger("nudge")
	nudges := nudge.NewService(st, nudge.NewDeduplicator(che), &nudge.LogNotifier{Log: nudgeLog}, nudgeLog)
	cron, err := nudges.Schedule(cfg.NudgeCron)
	if err != nil {
		log.Fatalf("failed to schedule nudges: %v", err)
	}
	defer cron.Stop()

	http.HandleFunc("/start", indexHandler)
	http.HandleFunc("/auth", auth.AuthHandler)
	http.HandleFunc("/webhook", webhookHandler)
	http.Handle("/history", dashboard.HistoryHandler(db, che, logger.NewLogger("dashboard")))
	http.Handle("/goals", goalcfg.GoalChangeHandler(db, che, logger.NewLogger("goals")))
	http.Handle("/settings-goals", goalcfg.SettingsGoalHandler(db, logger.NewLogger("settings")))

	log.Println("Starting server on port", port)
	log.Fatal(http.ListenAndServe(port, nil)) //#nosec: G114
}

func indexHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("Rundown")); err != nil {
		log.Println(err)
	}
}

func webhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		callback.CallbackHandler(w, r)
	}
	if r.Method == "POST" {
		sync.SyncHandler(w, r)
	}
}
