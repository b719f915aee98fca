package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"laion-dataset/core/loader"
	"laion-dataset/core/logger"
	"laion-dataset/core/middleware/auth"
	"laion-dataset/core/middleware/rayid"
	"laion-dataset/core/storage"
	"laion-dataset/feature/integrity"
	"laion-dataset/feature/laion"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "laion-dataset/docs/swagger"
)

// @title LAION-400M Dataset API
// @version 1.0
// @description API for browsing and ingesting the manually downloaded LAION-400M shards.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the dataset server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newSession()
		if err != nil {
			return err
		}
		defer rt.Close()
		cfg, logg := rt.cfg, rt.logger
		zap.ReplaceGlobals(logg)

		db := rt.catalogDB()

		// Storage is only needed by the structure check
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable", zap.Error(err))
		} else {
			store = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(laion.NewFeature(laion.NewService(rt.builder(), logg), cfg.Server))
		mgr.Register(integrity.NewFeature(integrity.NewService(
			store, cfg.Storage.Bucket, db, cfg.Dataset.ManualDir, cfg.Dataset.Range(), logg)))

		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray id
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("manual_dir", cfg.Dataset.ManualDir))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
