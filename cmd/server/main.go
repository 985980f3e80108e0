package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hperssn/mapty/internal/app"
	"github.com/hperssn/mapty/internal/config"
	"github.com/hperssn/mapty/internal/geo"
	httpapi "github.com/hperssn/mapty/internal/http"
	"github.com/hperssn/mapty/internal/storage"
	"github.com/hperssn/mapty/internal/ui"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slot, err := storage.Open(cfg.StorageDriver, cfg.StorageDSN)
	if err != nil {
		log.Fatalf("failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer slot.Close()

	hub := ui.NewHub(cfg.EventHistory)

	var (
		geolocator app.Geolocator
		positions  *geo.Reported
	)
	if cfg.Home != nil {
		geolocator = geo.Static{Coords: *cfg.Home}
		log.Printf("using configured home position %s", *cfg.Home)
	} else {
		positions = geo.NewReported(cfg.GeolocationTimeout)
		geolocator = positions
	}

	ctrl, err := app.New(ctx, app.Deps{
		Geolocator: geolocator,
		Maps:       hub,
		List:       hub,
		Form:       hub,
		Alerts:     hub,
		Reloader:   hub,
		Slot:       slot,
	}, app.WithZoom(cfg.MapZoom), app.WithCollapseDelay(cfg.FormCollapseDelay))
	if err != nil {
		log.Fatalf("failed to load workouts: %v", err)
	}

	startSession := func() {
		go func() {
			err := ctrl.Start(ctx)
			switch {
			case err == nil, errors.Is(err, app.ErrSessionReset):
			case errors.Is(err, app.ErrAlreadyStarted):
				log.Printf("session start skipped: %v", err)
			default:
				log.Printf("session start failed: %v", err)
			}
		}()
	}
	startSession()

	router := httpapi.NewRouter(httpapi.Deps{
		Controller:   ctrl,
		Hub:          hub,
		Positions:    positions,
		StaticDir:    cfg.StaticDir,
		StartSession: startSession,
	})

	// Only a header timeout: /api/events keeps its connection open.
	server := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("listening on %s", cfg.HTTPAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
