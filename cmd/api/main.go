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

	_ "cv-normalizer/docs" // Swagger docs
	"cv-normalizer/internal/api"
	"cv-normalizer/internal/config"
	"cv-normalizer/internal/cv"
	"cv-normalizer/internal/logger"
	"cv-normalizer/internal/storage"

	"go.uber.org/zap"
)

// @title CV Normalizer API
// @version 1.0
// @description Turns CV files in heterogeneous formats into normalized text, semantic HTML and a structural skeleton

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.EnvFile != "" {
		log.Info("loaded env file", zap.String("path", cfg.EnvFile))
	} else {
		log.Info(".env file not found, using environment variables")
	}

	vocab := cv.DefaultVocabulary()
	if cfg.VocabularyFile != "" {
		if vocab, err = cv.LoadVocabulary(cfg.VocabularyFile); err != nil {
			return err
		}
		log.Info("vocabulary loaded", zap.String("path", cfg.VocabularyFile),
			zap.Int("sections", len(vocab.Sections)), zap.Int("skills", len(vocab.Skills)))
	}

	parser := cv.NewCVParser(cv.ParserConfig{
		UploadsDir: cfg.UploadsDir,
		Tools: cv.ToolOptions{
			ConverterBinary:  cfg.ConverterBinary,
			PDFToTextBinary:  cfg.PDFToTextBinary,
			UnrtfBinary:      cfg.UnrtfBinary,
			ConverterTimeout: cfg.ConverterTimeout,
		},
		Vocabulary: vocab,
		Logger:     log,
	})

	var store api.Store
	if cfg.DatabaseURL != "" {
		log.Info("connecting to database")
		db, err := storage.NewDB(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db open: %w", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = db.Migrate(ctx)
		cancel()
		if err != nil {
			return err
		}
		store = db
		log.Info("database connected")
	} else {
		log.Info("DATABASE_URL not set, persistence disabled")
	}

	apiSrv := api.NewAPI(parser, store, api.Options{
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         log,
	})
	defer apiSrv.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(apiSrv),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2*cfg.ConverterTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	log.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-idleConnsClosed
	return nil
}
