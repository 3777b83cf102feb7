package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/efuayankey/NextToIntern/internal/config"
	api "github.com/efuayankey/NextToIntern/internal/http"
	"github.com/efuayankey/NextToIntern/internal/log"
	"github.com/efuayankey/NextToIntern/internal/metrics"
	"github.com/efuayankey/NextToIntern/internal/queue"
	"github.com/efuayankey/NextToIntern/internal/repo"
)

func main() {
	cfg := config.Load()

	if _, err := log.Init(cfg.Prod()); err != nil {
		panic(err)
	}
	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	rds := repo.NewRedis(cfg.RedisAddr)
	if err := rds.Ping(ctx); err != nil {
		log.Infof("redis unavailable, rate limiting disabled: %v", err)
		rds = nil
	} else {
		defer rds.Close()
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			log.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
		pub = p
	}
	defer pub.Close()

	h := api.NewHandler(store, cfg.JWTSecret, cfg.RefreshTTLDays, rds, cfg.RateLimitPerMin, pub, cfg.EventsExchange)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.Infof("nexttointern listening on :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}
}
