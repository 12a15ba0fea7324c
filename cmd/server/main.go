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

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrivision/config"
	"agrivision/database"
	"agrivision/router"

	// Activity
	actCtrlImp "agrivision/pkg/activity/controllerImp"
	actRepoImp "agrivision/pkg/activity/repositoryImp"
	actSvcImp "agrivision/pkg/activity/serviceImp"

	// Field
	fieldCtrlImp "agrivision/pkg/field/controllerImp"
	fieldRepoImp "agrivision/pkg/field/repositoryImp"
	fieldSvcImp "agrivision/pkg/field/serviceImp"

	// Soil
	soilCtrlImp "agrivision/pkg/soil/controllerImp"
	soilRepoImp "agrivision/pkg/soil/repositoryImp"
	soilSvcImp "agrivision/pkg/soil/serviceImp"

	// Rules/LLM
	"agrivision/pkg/advisory"
	"agrivision/pkg/ai"

	// Auth + Health
	authCtrlImp "agrivision/pkg/auth/controllerImp"
	healthCtrlImp "agrivision/pkg/health/controllerImp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1) Config + logger
	cfg, warnings := config.Load()
	log, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	for _, w := range warnings {
		log.Warn(w)
	}
	log.Info("config loaded", cfg.Fields()...)

	// 2) DB (sqlite) + migrations
	db, err := database.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return err
	}

	// 3) Advisory tables; a broken table falls back to the built-in bands
	src := cfg.AdvisorySources()
	engine, err := advisory.LoadFromFiles(src)
	custom := err == nil && !src.Empty()
	if err != nil {
		log.Warn("advisory tables rejected, using defaults", zap.Error(err))
		engine = advisory.Default()
	}

	// 4) LLM (mock fallback)
	var llm ai.Client
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, log)
	} else {
		llm = ai.NewMock()
	}

	// 5) Repos/Services/Controllers
	actSvc := actSvcImp.NewActivityService(actRepoImp.New(db), cfg.HistoryLimit, log)
	fRepo := fieldRepoImp.New(db)
	fSvc := fieldSvcImp.NewFieldService(fRepo, actSvc, log)
	sSvc := soilSvcImp.NewSoilService(engine, llm, soilRepoImp.New(db), fRepo, actSvc, log)

	e := echo.New()
	e.HideBanner = true
	r := router.New(
		e,
		router.Options{Log: log, RequireUser: cfg.RequireUser},
		fieldCtrlImp.New(fSvc),
		soilCtrlImp.New(sSvc),
		actCtrlImp.New(actSvc),
		authCtrlImp.NewAuthController(),
		healthCtrlImp.NewHealthCtrl(db, custom),
	)

	// 6) Start; SIGINT/SIGTERM drain in-flight requests
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", ":"+cfg.Port))
		errc <- r.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.Shutdown(shutdownCtx)
}
