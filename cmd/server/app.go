package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"printshop/internal/cache"
	"printshop/internal/config"
	"printshop/internal/db"
	"printshop/internal/logx"
	"printshop/internal/repo"
	"printshop/internal/storefront"
	"printshop/internal/syncer"
)

// app holds the process-wide dependencies shared by every command.
type app struct {
	cfg     *config.Config
	db      *gorm.DB
	rdb     *redis.Client
	store   *repo.Catalog
	catalog repo.Reader
	cache   *cache.Catalog
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})

	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DB_DSN is empty (check your .env)")
	}
	gdb, err := db.OpenAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: gdb, store: repo.NewCatalog(gdb)}
	a.catalog = a.store

	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		logx.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
	} else if rdb != nil {
		ttl, _ := cfg.CacheTTL()
		a.rdb = rdb
		a.cache = cache.NewCatalog(rdb, a.store, ttl)
		a.catalog = a.cache
		logx.Info().Dur("ttl", ttl).Msg("catalog cache enabled")
	}
	return a, nil
}

// syncer needs storefront credentials. A missing cache is passed as a
// nil Invalidator, not a typed nil.
func (a *app) syncer() (*syncer.Syncer, error) {
	if err := a.cfg.Shopify.Validate(); err != nil {
		return nil, err
	}
	client := storefront.New(a.cfg.Shopify)
	if a.cache == nil {
		return syncer.New(client, a.store, nil), nil
	}
	return syncer.New(client, a.store, a.cache), nil
}

func (a *app) users() *repo.Users {
	return repo.NewUsers(a.db)
}

func (a *app) ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func (a *app) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logx.Error().Err(err).Msg("server shutdown failed")
	}
}
