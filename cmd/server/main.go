package main

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/favour-22/alx-polly/internal/adapters/gotrue"
	"github.com/favour-22/alx-polly/internal/adapters/postgres"
	"github.com/favour-22/alx-polly/internal/adapters/redis"
	"github.com/favour-22/alx-polly/internal/config"
	"github.com/favour-22/alx-polly/internal/core/auth"
	"github.com/favour-22/alx-polly/internal/core/event"
	"github.com/favour-22/alx-polly/internal/core/poll"
	"github.com/favour-22/alx-polly/internal/logger"
	"github.com/favour-22/alx-polly/internal/transport/rest"
	"github.com/favour-22/alx-polly/internal/transport/ws"
	"github.com/favour-22/alx-polly/internal/workers"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.AuthJWTSecret == "" {
		panic("FATAL: SUPABASE_JWT_SECRET is mandatory for Server!")
	}

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer dbPool.Close()

	redisClient, err := redis.InitRedis(cfg.RedisURL, log)
	if err != nil {
		log.Error("failed to init redis", "error", err)
		return
	}
	defer redisClient.Close()

	pollRepo := postgres.NewPollRepository(dbPool)
	voteRepo := postgres.NewVoteRepository(dbPool)
	voteTally := redis.NewVoteTally(redisClient)

	bus := event.New(log)

	provider := gotrue.NewClient(cfg.AuthURL, cfg.AuthAnonKey)
	authService := auth.NewService(provider, cfg.AuthJWTSecret, log)
	pollService := poll.NewService(pollRepo, voteRepo, voteTally, bus, log)

	hub := ws.NewHub(ctx, log)
	go hub.Run()
	ws.RegisterSubscribers(bus, hub)
	wsHandler := ws.NewWebHandler(hub, log, cfg.AuthJWTSecret, cfg.AllowedOrigins)

	authHandler := rest.NewAuthHandler(authService, cfg)
	pollHandler := rest.NewPollHandler(pollService)

	router := rest.NewRouter(cfg, &rest.RouterDeps{
		Ws:   wsHandler,
		Auth: authHandler,
		Poll: pollHandler,
	})

	workerManager := workers.NewManager(workers.NewScheduler(log), log, pollService)
	workerManager.Start(ctx)

	srv := rest.NewServer(router, cfg.Address, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Start(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		hub.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("http: server error", "error", err)
	}

	log.Info("server stopped")
}
