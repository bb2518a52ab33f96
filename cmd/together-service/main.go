package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/starlove/together/internal/api"
	"github.com/starlove/together/internal/api/ws"
	"github.com/starlove/together/internal/auth"
	"github.com/starlove/together/internal/config"
	"github.com/starlove/together/internal/docstore"
	"github.com/starlove/together/internal/docstore/firestoredoc"
	"github.com/starlove/together/internal/docstore/memdoc"
	"github.com/starlove/together/internal/localstate"
	"github.com/starlove/together/internal/model"
	"github.com/starlove/together/internal/platform/logger"
	"github.com/starlove/together/internal/services"
	"github.com/starlove/together/internal/theme"
)

func main() {
	// No .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	log := logger.New("together-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// -------- Document store ----------------
	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Document store unavailable")
	}
	defer func() { _ = store.Close() }()

	// -------- Identity provider -------------
	var authorizer auth.Authorizer
	if cfg.APIKeys != "" {
		authorizer, err = auth.NewStaticAuthorizer(cfg.APIKeys)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid API key table")
		}
	} else {
		log.Warn().Msg("No API keys configured, using local dev authorizer")
		authorizer = auth.NewDevAuthorizer()
	}

	// -------- Local device state ------------
	dbPath, err := localstate.DBPath()
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot resolve local state path")
	}
	stateDB, err := localstate.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot open local state")
	}
	defer func() { _ = stateDB.Close() }()

	themeMgr, err := theme.NewManager(localstate.NewThemeStore(stateDB))
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load theme preference")
	}

	// -------- Collection views --------------
	activitySvc := services.NewActivityService(store, cfg.ActivityOwnerOnly, log)
	noteSvc := services.NewNoteService(store, log)
	memorySvc := services.NewMemoryService(store, log)

	hub := ws.NewHub(map[string]ws.SnapshotFunc{
		services.CollectionActivities: func() interface{} { return activitySvc.Snapshot() },
		services.CollectionNotes:      func() interface{} { return noteSvc.Snapshot() },
		services.CollectionMemories:   func() interface{} { return memorySvc.Snapshot() },
	}, log)
	go hub.Run()

	wireFanout(hub, activitySvc, noteSvc, memorySvc)

	for name, svc := range map[string]interface{ Start(context.Context) error }{
		services.CollectionActivities: activitySvc,
		services.CollectionNotes:      noteSvc,
		services.CollectionMemories:   memorySvc,
	} {
		if err := svc.Start(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("Live query failed to open")
		}
	}
	defer activitySvc.Stop()
	defer noteSvc.Stop()
	defer memorySvc.Stop()

	// -------- Router & Server ---------------
	router := api.NewRouter(api.Deps{
		Activities: activitySvc,
		Notes:      noteSvc,
		Memories:   memorySvc,
		Theme:      themeMgr,
		Authorizer: authorizer,
		Hub:        hub,
	})
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}
	log.Info().Msg("Server exited")
}

func newStore(ctx context.Context, cfg *config.Config) (docstore.Store, error) {
	if cfg.DocStore == "memory" {
		return memdoc.New(), nil
	}
	return firestoredoc.New(ctx, cfg.GCPProjectID, cfg.GoogleCredentialsFile)
}

// wireFanout forwards every snapshot replacement to the WebSocket hub.
func wireFanout(hub *ws.Hub, a *services.ActivityService, n *services.NoteService, m *services.MemoryService) {
	a.View().OnChange(func(snap []model.Activity) {
		hub.BroadcastSnapshot(services.CollectionActivities, snap)
	})
	n.View().OnChange(func(snap []model.Note) {
		hub.BroadcastSnapshot(services.CollectionNotes, snap)
	})
	m.View().OnChange(func(snap []model.Memory) {
		hub.BroadcastSnapshot(services.CollectionMemories, snap)
	})
}
