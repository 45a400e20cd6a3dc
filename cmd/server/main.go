package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TFMV/nlmunicipality/internal/bootstrap"
	"github.com/TFMV/nlmunicipality/pkg/api"
	"github.com/TFMV/nlmunicipality/pkg/metrics"
	"github.com/TFMV/nlmunicipality/pkg/utils"
)

func main() {
	log := utils.NewLogger("server")

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to the YAML config file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start engine", "error", err)
	}
	defer rt.Close()

	if err := metrics.RegisterCache(rt.Cache); err != nil {
		log.Warn("cache metrics not registered", "error", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.NewHandler(rt.Engine, cfg.Engine.Workers, log), log)
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: router}

	go func() {
		log.Info("starting server", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
