package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"example.com/truco_online/internal/config"
	"example.com/truco_online/internal/game"
	"example.com/truco_online/internal/logging"
	"example.com/truco_online/internal/table"
	"example.com/truco_online/internal/ws"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "", "Lua config file (default $TRUCO_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rules := game.DefaultRules()
	rules.TargetScore = cfg.TargetScore

	tbl := table.New(game.NewMatch(rules, rand.New(rand.NewSource(seed))), log.Named("table"), table.Options{
		NextHandDelay: cfg.NextHandDelay,
		RematchDelay:  cfg.RematchDelay,
	})
	hub := ws.NewHub(tbl, cfg.OriginAllowlist, log.Named("ws"))
	go func() {
		if err := tbl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("table stopped", zap.Error(err))
		}
	}()
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(hub, cfg.OriginAllowlist, cfg.StaticDir, log.Named("http")),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.Strings("origins", cfg.OriginAllowlist),
		zap.Int("target_score", cfg.TargetScore),
		zap.Int64("seed", seed),
	)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped")
	return nil
}
