package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/taletrail/taletrail-backend/internal/config"
	"github.com/taletrail/taletrail-backend/internal/handlers"
	"github.com/taletrail/taletrail-backend/internal/middleware"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	UserBook     *handlers.UserBookHandler
	Book         *handlers.BookHandler
	Catalog      *handlers.CatalogHandler
	Review       *handlers.ReviewHandler
	Blog         *handlers.BlogHandler
	Feedback     *handlers.FeedbackHandler
	Watchlist    *handlers.WatchlistHandler
	Subscription *handlers.SubscriptionHandler
	Health       *handlers.HealthHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	protected := middleware.JWTProtected(cfg)

	api.Post("/auth/logout", protected, h.Auth.Logout)
	api.Delete("/auth/account", protected, h.Auth.DeleteAccount)

	// Profile
	profile := api.Group("/user/profile", protected)
	profile.Get("/my-profile", h.Profile.GetMyProfile)
	profile.Put("/my-profile", h.Profile.UpdateMyProfile)
	profile.Delete("/my-profile", h.Profile.DeleteMyProfile)

	// Reading list — the owning user always comes from the token
	userBook := api.Group("/user-book", protected)
	userBook.Get("/", h.UserBook.List)
	userBook.Get("/in-progress", h.UserBook.ListInProgress)
	userBook.Post("/", h.UserBook.Add)
	userBook.Put("/:bookId", h.UserBook.Update)
	userBook.Delete("/:bookId", h.UserBook.Remove)

	// Books — public read, authenticated write
	api.Get("/book", h.Book.List)
	api.Get("/book/:id", h.Book.Get)
	api.Post("/book", protected, h.Book.Create)
	api.Put("/book/:id", protected, h.Book.Update)
	api.Delete("/book/:id", protected, h.Book.Delete)

	// Catalog families — public read, authenticated write
	api.Get("/author", h.Catalog.ListAuthors)
	api.Get("/author/:id", h.Catalog.GetAuthor)
	api.Post("/author", protected, h.Catalog.CreateAuthor)
	api.Put("/author/:id", protected, h.Catalog.UpdateAuthor)
	api.Delete("/author/:id", protected, h.Catalog.DeleteAuthor)

	api.Get("/publisher", h.Catalog.ListPublishers)
	api.Get("/publisher/:id", h.Catalog.GetPublisher)
	api.Post("/publisher", protected, h.Catalog.CreatePublisher)
	api.Put("/publisher/:id", protected, h.Catalog.UpdatePublisher)
	api.Delete("/publisher/:id", protected, h.Catalog.DeletePublisher)

	api.Get("/category", h.Catalog.ListCategories)
	api.Get("/category/:id", h.Catalog.GetCategory)
	api.Post("/category", protected, h.Catalog.CreateCategory)
	api.Put("/category/:id", protected, h.Catalog.UpdateCategory)
	api.Delete("/category/:id", protected, h.Catalog.DeleteCategory)

	// Reviews
	api.Get("/review/book/:bookId", h.Review.ListByBook)
	api.Post("/review", protected, h.Review.Create)
	api.Put("/review/:id", protected, h.Review.Update)
	api.Delete("/review/:id", protected, h.Review.Delete)

	// Blogs + likes
	api.Get("/blog", h.Blog.List)
	api.Get("/blog/:id", h.Blog.Get)
	api.Post("/blog", protected, h.Blog.Create)
	api.Put("/blog/:id", protected, h.Blog.Update)
	api.Delete("/blog/:id", protected, h.Blog.Delete)
	api.Post("/blog/:id/like", protected, h.Blog.Like)
	api.Delete("/blog/:id/like", protected, h.Blog.Unlike)

	// Feedback
	api.Post("/feedback", protected, h.Feedback.Create)
	api.Get("/feedback", protected, h.Feedback.ListMine)

	// Watchlist
	watchlist := api.Group("/watchlist", protected)
	watchlist.Get("/", h.Watchlist.ListMine)
	watchlist.Post("/", h.Watchlist.Add)
	watchlist.Delete("/:bookId", h.Watchlist.Remove)

	// Subscriptions
	subscription := api.Group("/subscription", protected)
	subscription.Get("/", h.Subscription.ListMine)
	subscription.Post("/", h.Subscription.Subscribe)
	subscription.Delete("/:authorId", h.Subscription.Unsubscribe)
}
