package cmd

import (
	"time"

	"storelisting/core/jsonx"
	"storelisting/core/loader"
	"storelisting/core/logger"
	"storelisting/core/middleware/auth"
	"storelisting/core/middleware/rayid"
	"storelisting/feature/appstore"
	"storelisting/feature/journal"
	"storelisting/feature/play"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP server exposing the App Store, Play and journal endpoints.
Backends without credentials are left disabled.`,
	RunE: runServe,
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	logg := rt.log
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	appStoreSvc, err := rt.appStoreService()
	if err != nil {
		return err
	}
	playSvc, err := rt.playService(ctx)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             rt.cfg.Server.BodyLimit(),
		JSONEncoder:           jsonx.Marshal,
		JSONDecoder:           jsonx.Unmarshal,
	})

	mgr := loader.NewManager(logg)
	mgr.Register(appstore.NewFeature(appStoreSvc))
	mgr.Register(play.NewFeature(playSvc))
	mgr.Register(journal.NewFeature(rt.journal))

	// 1. RayID (Must be first to trace everything)
	app.Use(rayid.New())

	// 2. Request logging
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 3. Auth (everything but the health check)
	app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{"/health"}}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
		errCh <- app.Listen(":" + rt.cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}
