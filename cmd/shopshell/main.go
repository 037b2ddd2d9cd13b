package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/JesusQuilleli/family-frontend-sub001/internal/config"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/familyshop"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/precache"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/push"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/querycache"
	"github.com/JesusQuilleli/family-frontend-sub001/internal/shell"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := buildLogger(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// 2. Storefront API client + query cache
	shop := familyshop.NewClient(familyshop.Config{
		BaseURL: cfg.API.BaseURL,
		Origin:  cfg.API.Origin,
		Token:   cfg.API.Token,
		Timeout: cfg.API.Timeout,
	})
	cache := querycache.New()

	// 3. Precache store
	store, err := precache.Open(cfg.Precache.Path, logger)
	if err != nil {
		logger.Fatal("open precache store", zap.Error(err))
	}
	fetcher := precache.NewFetcher(cfg.API.Origin, cfg.API.Timeout)

	// 4. Push worker: precache on install, purge on activation, then
	// consume push messages. SkipWaiting + ClientsClaim so a new build
	// takes over without a restart dance.
	var src push.Source
	if len(cfg.Push.Brokers) > 0 {
		ks := push.NewKafkaSource(cfg.Push.Brokers, cfg.Push.Topic, cfg.Push.GroupID)
		defer ks.Close()
		src = ks
	}

	var manifest []precache.ManifestEntry
	worker := push.NewWorker(src, &push.LogNotifier{Log: logger}, nil, logger,
		push.SkipWaiting(),
		push.ClientsClaim(),
		push.OnInstall(func(ctx context.Context) error {
			entries, err := fetcher.Manifest(ctx, cfg.Precache.ManifestPath)
			if err != nil {
				return err
			}
			manifest = entries
			return store.Install(ctx, fetcher, entries)
		}),
		push.OnActivate(func(ctx context.Context) error {
			_, err := store.Purge(ctx, precache.Keep(manifest))
			return err
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerDone := make(chan error, 1)
	go func() {
		workerDone <- worker.Run(ctx)
	}()

	// 5. Periodic precache re-sync and cache sweep
	sched := cron.New()
	_, err = sched.AddFunc(cfg.Precache.SyncSpec, func() {
		syncCtx, syncCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer syncCancel()
		entries, err := fetcher.Manifest(syncCtx, cfg.Precache.ManifestPath)
		if err != nil {
			logger.Warn("manifest fetch failed", zap.Error(err))
			return
		}
		if err := store.Sync(syncCtx, fetcher, entries); err != nil {
			logger.Warn("precache sync failed", zap.Error(err))
		}
	})
	if err != nil {
		logger.Fatal("schedule precache sync", zap.Error(err))
	}
	_, _ = sched.AddFunc("@every 10m", func() {
		if removed := cache.Sweep(30 * time.Minute); removed > 0 {
			logger.Debug("query cache swept", zap.Int("removed", removed))
		}
	})
	sched.Start()
	defer sched.Stop()

	// 6. Shell server
	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: shell.NewServer(store, shop, cache, logger),
	}

	go func() {
		logger.Info("starting shell server", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 7. Wait for interrupt signal or worker failure
	quit := make(chan os.Signal, 2)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("shutting down")
	case err := <-workerDone:
		if err != nil && err != context.Canceled {
			logger.Error("push worker stopped", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func buildLogger(mode string) (*zap.Logger, error) {
	if mode == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
