package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"printshop/internal/errx"
	"printshop/internal/logx"
	"printshop/internal/storefront"
	"printshop/internal/syncer"
	"printshop/internal/web"
)

var syncOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&syncOnStart, "sync", false, "Sync the catalog before accepting requests")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.SessionSecret == "dev_fallback_secret" && a.cfg.Environment().IsProduction() {
		logx.Warn().Msg("SESSION_SECRET is the development fallback")
	}

	sync, err := a.syncer()
	if err != nil {
		logx.Warn().Err(err).Msg("storefront not configured, sync and checkout will fail")
	}
	if syncOnStart && sync != nil {
		if _, err := sync.Run(ctx); err != nil {
			logx.Error().Err(err).Msg("initial sync failed, serving the stored snapshot")
		}
	}

	deps := web.Deps{
		Catalog:       a.catalog,
		Users:         a.users(),
		Checkout:      storefront.New(a.cfg.Shopify),
		SyncLog:       a.store,
		Ping:          a.ping,
		SessionSecret: a.cfg.SessionSecret,
		ContactNumber: a.cfg.ContactNumber,
		Env:           a.cfg.Environment(),
	}
	if a.cfg.Redis.URL != "" {
		store, err := web.RedisSessionStore(a.cfg.Redis, a.cfg.SessionSecret)
		if err != nil {
			logx.Warn().Err(err).Msg("redis sessions unavailable, keeping carts in cookies")
		} else {
			deps.Sessions = store
			logx.Info().Int("cartLimit", store.CartLimit).Msg("sessions stored in redis")
		}
	}
	if sync != nil {
		deps.Syncer = sync
	} else {
		deps.Syncer = unconfigured{errx.New(err, http.StatusServiceUnavailable, "storefront is not configured")}
	}

	srv := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: web.NewRouter(deps),
	}
	go func() {
		<-ctx.Done()
		shutdown(srv)
	}()

	logx.Info().Str("addr", srv.Addr).Str("env", a.cfg.Env).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logx.Info().Msg("server stopped")
	return nil
}

// unconfigured is the syncer used when storefront credentials are missing.
type unconfigured struct{ err error }

func (u unconfigured) Run(context.Context) (*syncer.Report, error) {
	return nil, u.err
}
