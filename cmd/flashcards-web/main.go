package main

import (
	"flag"
	"log"

	"github.com/robfig/cron/v3"

	"flashcards/internal/config"
	"flashcards/internal/pack"
	"flashcards/internal/webui"
)

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	packsPath := flag.String("packs", cfg.PacksDir, "directory containing flash card packs")
	sessionDB := flag.String("session-db", cfg.SessionDB, "SQLite file for per-session uploads (empty keeps uploads in memory)")
	rescanSpec := flag.String("rescan", cfg.RescanCron, "cron spec for rescanning the packs directory (empty disables)")
	flag.Parse()

	packsDir, err := pack.NewDir(*packsPath)
	if err != nil {
		log.Fatalf("packs directory unavailable: %v", err)
	}

	var uploads *pack.SQLiteStorage
	if *sessionDB != "" {
		uploads, err = pack.NewSQLiteStorage(*sessionDB)
		if err != nil {
			log.Fatalf("session storage unavailable: %v", err)
		}
		defer uploads.Close()
	}

	api := webui.NewAPI(packsDir, uploads)

	if *rescanSpec != "" {
		scheduler := cron.New()
		if _, err := scheduler.AddFunc(*rescanSpec, api.Rescan); err != nil {
			log.Fatalf("invalid rescan spec %q: %v", *rescanSpec, err)
		}
		scheduler.Start()
		log.Printf("packs rescan scheduled: %s", *rescanSpec)
	}

	app := webui.NewApp(api)
	log.Printf("flashcards-web listening on %s", *addr)
	log.Fatal(app.Listen(*addr))
}
