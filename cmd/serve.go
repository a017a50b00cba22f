package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/spf13/cobra"

	"newmeclass_backend/internals/configs"
	database "newmeclass_backend/internals/databases"
	scheduler "newmeclass_backend/internals/features/users/auth/scheduler"
	middlewares "newmeclass_backend/internals/middlewares"
	routes "newmeclass_backend/internals/route"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Jalankan HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "AutoMigrate sebelum server jalan")
	rootCmd.AddCommand(serveCmd)
}

// NewApp: fiber app lengkap (middleware + routes), dipisah supaya bisa dites.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		BodyLimit:               8 * 1024 * 1024, // upload gambar maks 5MB + overhead multipart
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timeout per request
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)

		// analisis LLM butuh waktu lebih lama dari statement_timeout DB
		ctx, cancel := context.WithTimeout(c.Context(), configs.LLMTimeout+10*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	})

	middlewares.SetupMiddlewares(app)
	return app
}

func runServe(cmd *cobra.Command, args []string) error {
	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if autoMigrate {
		if err := database.Migrate(database.DB); err != nil {
			return err
		}
	}
	database.WarmUpQueries()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ⏱ scheduler setelah DB siap, berhenti bersama ctx
	scheduler.StartBlacklistCleanupScheduler(ctx, database.DB)

	app := NewApp()
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = configs.LLMTimeout + 30*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", port)
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	select {
	case err := <-errCh:
		database.Close()
		return err
	case <-ctx.Done():
	}

	// graceful shutdown + tutup pool DB
	log.Println("[INFO] 🛑 Shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("[WARN] ⚠️ Shutdown: %v", err)
	}
	database.Close()
	return nil
}
