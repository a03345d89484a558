package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/text/language"

	"shopfront/internal/cache"
	"shopfront/internal/config"
	"shopfront/internal/http/handlers"
	applog "shopfront/internal/log"
	"shopfront/internal/query"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	products, err := services.LoadCatalog(repos.NewProductRepo(db), services.CatalogSource{
		Size:  cfg.CatalogSize,
		Seed:  cfg.CatalogSeed,
		Reuse: cfg.CatalogReuse,
	})
	if err != nil {
		log.Fatal(err)
	}

	tag, err := language.Parse(cfg.Collation)
	if err != nil {
		applog.Warn("config.collation.invalid", err, map[string]any{"value": cfg.Collation})
		tag = language.English
	}
	engine := query.New(products,
		query.WithLatency(cfg.LatencyMin, cfg.LatencyMax),
		query.WithCollation(tag),
	)

	// Result cache is optional; a dead Redis only costs the speed-up.
	var rc *cache.Cache
	var resultCache services.ResultCache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		rc, err = cache.Dial(ctx, cfg.RedisAddr, "shopfront:", cfg.CacheTTL)
		cancel()
		if err != nil {
			applog.Warn("cache.disabled", err, map[string]any{"addr": cfg.RedisAddr})
		} else {
			defer rc.Close()
			// stale pages from a previous catalog would lie
			if err := rc.Flush(context.Background()); err != nil {
				applog.Warn("cache.flush.fail", err, nil)
			}
			resultCache = rc
			applog.Event("cache.enabled", map[string]any{"addr": cfg.RedisAddr, "ttl": cfg.CacheTTL.String()})
		}
	}
	catalog := services.NewCatalogService(engine, resultCache)

	app := fiber.New(fiber.Config{
		AppName:      "shopfront",
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/healthz"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	deps := handlers.NewDeps(db, catalog, rc)
	deps.Mount(app, handlers.DefaultLimits())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		applog.Event("server.shutdown", nil)
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	applog.Event("server.start", map[string]any{"port": cfg.Port, "products": engine.Len()})
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
