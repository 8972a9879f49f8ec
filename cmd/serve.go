package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crazythinker/studio/assets"
	"github.com/crazythinker/studio/internal/feat/contact"
	"github.com/crazythinker/studio/internal/feat/content"
	"github.com/crazythinker/studio/internal/feat/site"
	"github.com/crazythinker/studio/internal/web"
	"github.com/crazythinker/studio/pkg/ct/app"
	"github.com/crazythinker/studio/pkg/ct/config"
	"github.com/crazythinker/studio/pkg/ct/logger"
	"github.com/crazythinker/studio/pkg/ct/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, cfg, log, catalog)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(ctx context.Context, cfg *config.Config, log logger.Logger, catalog *content.Catalog) error {
	log.Infof("Starting studio %s [%s mode]", Version, cfg.Env)

	sender := contact.SimulatedSender{Delay: cfg.Contact.SendDelay}
	sessions := site.NewStore(cfg, sender, log)
	siteHandler := site.NewHandler(sessions, catalog, assets.FS, cfg, log)
	contactHandler := contact.NewHandler(sessions, cfg, log)

	maxAge := 3600
	if cfg.IsDev() {
		maxAge = 0
	}
	fileServer := web.NewFileServer(assets.FS, maxAge, log)

	router := chi.NewRouter()
	middleware.DefaultStack(router, cfg.Server.RequestTimeout)
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Visitor(cfg.Session.CookieName, cfg.Session.IdleTTL))

	deps := []any{sessions, siteHandler, contactHandler, fileServer}

	lifecycles, registrars := app.Setup(deps...)
	if err := app.Start(ctx, log, lifecycles, registrars, router); err != nil {
		return fmt.Errorf("startup failed: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		app.Stop(stopCtx, log, lifecycles)
	}()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Server listening on %s", cfg.Server.Addr)
		return app.Serve(gctx, srv, log, cfg.Server.ShutdownGrace)
	})
	g.Go(func() error {
		reportSessions(gctx, sessions, log, cfg.Session.SweepInterval)
		return nil
	})

	return g.Wait()
}

// reportSessions logs the live session count at debug level until ctx ends.
func reportSessions(ctx context.Context, sessions *site.Store, log logger.Logger, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			log.Debugf("Active sessions: %d", sessions.Len())
		case <-ctx.Done():
			return
		}
	}
}
