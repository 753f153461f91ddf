package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ocrstream/internal/config"
	"ocrstream/internal/httpapi"
	"ocrstream/internal/hub"
	"ocrstream/internal/pipeline"
)

const shutdownTimeout = 5 * time.Second

func settingsFrom(cfg config.Config) pipeline.Settings {
	return pipeline.Settings{
		Language:    cfg.Lang,
		UseGPU:      cfg.UseGPU,
		DetModelDir: cfg.DetModelDir,
		RecModelDir: cfg.RecModelDir,
		Workers:     cfg.NumWorkers,
	}
}

// serve runs the pool, the hub loop and the HTTP server until SIGINT/SIGTERM.
func serve(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	log, closer, err := stderrLogger(cfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings := settingsFrom(cfg)
	if rep := pipeline.SanityCheck(settings); !rep.OK() {
		log.Warn().Strs("errors", rep.Errors).Msg("recognizer sanity check failed; frames will report errors")
	}

	pool := pipeline.NewPool(pipeline.PoolConfig{
		QueueCapacity: cfg.QueueCapacity,
		DrainTimeout:  cfg.DrainTimeout(),
		Logger:        &log,
	})
	if err := pool.Start(settings); err != nil {
		return fmt.Errorf("start pool: %w", err)
	}

	h := hub.New(pool, hub.Config{
		BroadcastInterval: cfg.BroadcastInterval(),
		LivenessInterval:  cfg.LivenessInterval(),
		IdleTimeout:       cfg.IdleTimeout(),
		WriteTimeout:      cfg.WriteTimeout(),
		MaxMessageBytes:   cfg.MaxMessageBytes,
		NotifyDrops:       cfg.NotifyDrops,
		OCRInterval:       cfg.OCRInterval,
		ROI:               cfg.InitialROI(),
		AllowedOrigins:    cfg.CORSOrigins,
		Logger:            &log,
	})
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	go func() {
		if err := h.Run(hubCtx); err != nil {
			log.Error().Err(err).Msg("hub loop")
		}
	}()

	httpapi.SetLogger(log)
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, nil, nil)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Int("workers", settings.Workers).Str("lang", settings.Language).Msg("ocrstreamd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errc:
		serveErr = err
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	// Websocket connections are hijacked; the hub closes them.
	cancelHub()
	<-h.Done()
	rep := pool.Shutdown()
	log.Info().Int("workers", rep.Workers).Int("leaked", rep.Leaked).Dur("drain", rep.Duration).Msg("pool stopped")
	if serveErr != nil {
		return fmt.Errorf("server error: %w", serveErr)
	}
	return nil
}
