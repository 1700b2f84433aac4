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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"poextract/internal/config"
	"poextract/internal/extract"
	"poextract/internal/handler"
	"poextract/internal/logger"
	"poextract/internal/port"
	"poextract/internal/router"
	"poextract/internal/service"
	"poextract/internal/source"
	s3storage "poextract/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Setup(cfg.Log)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage. s3:// references fail with a 404 when no client is available.
	var storage port.ObjectStorage
	s3Client, err := s3storage.NewS3Client(ctx, &cfg.S3)
	if err != nil {
		log.Warn().Err(err).Msg("s3 client unavailable, s3:// references disabled")
	} else {
		storage = s3Client
	}

	// Initialize extractors
	wrapWidth := cfg.Extract.WrapWidth
	if wrapWidth <= 0 {
		wrapWidth = extract.DefaultWrapWidth
	}
	pdfExtractor := extract.NewPDFExtractor(wrapWidth)
	ocrEngine := extract.NewOCREngine(cfg.OCR)
	if err := ocrEngine.Available(); err != nil {
		log.Warn().Err(err).Msg("image extraction will fail until tesseract is installed")
	}
	dispatcher := extract.NewDispatcher(
		pdfExtractor,
		extract.NewDocumentExtractor(wrapWidth),
		extract.NewRawExtractor(),
		ocrEngine,
	)

	// Initialize services
	fetcher := source.NewFetcher(&cfg.Fetch, storage)
	extractionSvc := service.NewExtractionService(fetcher, pdfExtractor, dispatcher)

	// Initialize handlers
	infoH := handler.NewInfoHandler()
	extractH := handler.NewExtractHandler(extractionSvc)
	healthH := handler.NewHealthHandler(ocrEngine)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, infoH, extractH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
