package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/jmoiron/sqlx"

	"shopfront/internal/cache"
	applog "shopfront/internal/log"
	"shopfront/internal/repos"
	"shopfront/internal/services"
)

type Deps struct {
	Catalog *services.CatalogService

	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	WishlistHandler  *WishlistHandler
	StoreHandler     *StoreHandler
}

// NewDeps wires handlers over a ready catalog store. rc may be nil.
func NewDeps(db *sqlx.DB, catalog *services.CatalogService, rc *cache.Cache) *Deps {
	cartSvc := services.NewCartService(repos.NewCartRepo(db), catalog)
	wishSvc := services.NewWishlistService(repos.NewWishlistRepo(db), catalog)

	return &Deps{
		Catalog:          catalog,
		CategoryHandler:  &CategoryHandler{Catalog: catalog},
		ProductHandler:   &ProductHandler{Catalog: catalog},
		InventoryHandler: &InventoryHandler{Catalog: catalog},
		SearchHandler:    &SearchHandler{Catalog: catalog},
		CartHandler:      &CartHandler{Cart: cartSvc},
		WishlistHandler:  &WishlistHandler{Wish: wishSvc},
		StoreHandler:     &StoreHandler{Catalog: catalog, Cache: rc},
	}
}

type RouteLimits struct {
	SearchMax          int
	SearchWindow       time.Duration
	AvailabilityMax    int
	AvailabilityWindow time.Duration
	Timeout            time.Duration // per-request deadline for catalog calls
}

func DefaultLimits() RouteLimits {
	return RouteLimits{
		SearchMax:          30,
		SearchWindow:       time.Minute,
		AvailabilityMax:    15,
		AvailabilityWindow: 30 * time.Second,
		Timeout:            5 * time.Second,
	}
}

func throttle(max int, window time.Duration, tag string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|" + tag
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate."+tag+".hit", nil)
			return fail(c, fiber.StatusTooManyRequests, "rate limit exceeded, retry soon")
		},
	})
}

// Mount registers the JSON API and the trailing 404.
func (d *Deps) Mount(app *fiber.App, lim RouteLimits) {
	app.Get("/healthz", d.StoreHandler.Health)

	api := app.Group("/api/v1", Deadline(lim.Timeout))

	searchLimiter := throttle(lim.SearchMax, lim.SearchWindow, "search")
	api.Get("/products", searchLimiter, d.SearchHandler.Search)
	api.Get("/suggestions", searchLimiter, d.SearchHandler.Suggest)
	api.Get("/products/:id", d.ProductHandler.Detail)
	api.Get("/products/:id/related", d.ProductHandler.Related)
	api.Get("/products/:id/availability",
		throttle(lim.AvailabilityMax, lim.AvailabilityWindow, "availability"), d.InventoryHandler.Check)

	api.Get("/collections/:name", d.CategoryHandler.Collection)
	api.Get("/categories", d.CategoryHandler.Categories)
	api.Get("/brands", d.CategoryHandler.Brands)
	api.Get("/price-range", d.CategoryHandler.PriceRange)
	api.Get("/facets", d.CategoryHandler.Facets)

	api.Get("/cart", d.CartHandler.View)
	api.Post("/cart", d.CartHandler.Add)
	api.Post("/cart/remove", d.CartHandler.Remove)

	api.Get("/wishlist", d.WishlistHandler.List)
	api.Post("/wishlist", d.WishlistHandler.Save)
	api.Post("/wishlist/remove", d.WishlistHandler.Unsave)

	api.Get("/store/state", d.StoreHandler.State)

	app.Use(NotFound)
}
