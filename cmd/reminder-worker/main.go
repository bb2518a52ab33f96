package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/starlove/together/internal/config"
	"github.com/starlove/together/internal/docstore/firestoredoc"
	"github.com/starlove/together/internal/platform/logger"
	"github.com/starlove/together/internal/reminder"
)

// One-shot batch job: mail a reminder for every activity scheduled today,
// then exit. Scheduling (cron or similar) lives outside this binary, and
// repeated invocations will send duplicate mails.
func main() {
	_ = godotenv.Load()

	log := logger.New("reminder-worker")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.MailRelayURL == "" || cfg.MailFrom == "" {
		log.Fatal().Msg("TOGETHER_MAIL_RELAY_URL and TOGETHER_MAIL_FROM are required")
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatal().Err(err).Str("time_zone", cfg.TimeZone).Msg("Invalid time zone")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := firestoredoc.New(ctx, cfg.GCPProjectID, cfg.GoogleCredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Document store unavailable")
	}
	defer func() { _ = store.Close() }()

	r := reminder.New(store, cfg.MailRelayURL, cfg.MailFrom, loc, log)
	sent, err := r.Run(ctx, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Reminder run failed")
	}
	log.Info().Int("sent", sent).Msg("Reminder run finished")
}
