package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/example/skwermkt/internal/config"
	"github.com/example/skwermkt/internal/database"
	"github.com/example/skwermkt/internal/handlers"
	"github.com/example/skwermkt/internal/middleware"
	"github.com/example/skwermkt/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	store := database.NewGormUserStore(db)
	authService := services.NewAuthService(store, mailer, cfg.JWTSecret, cfg.TokenExpires)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(db)
	offerHandler := handlers.NewOfferHandler(db)
	needHandler := handlers.NewNeedHandler(db)
	commentHandler := handlers.NewCommentHandler(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	api := app.Group("/api")

	// Auth routes, rate limited per client IP.
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/login", authHandler.Login)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/reset-password", authHandler.ResetPassword)

	authRequired := middleware.AuthMiddleware(cfg)
	vendorOnly := middleware.RestrictTo("vendor")
	customerOnly := middleware.RestrictTo("customer")

	users := api.Group("/users", authRequired)
	users.Get("/title/:title", userHandler.GetByTitle)
	users.Get("/:id", userHandler.Get)
	users.Get("/", vendorOnly, userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Put("/", vendorOnly, userHandler.UpdateMany)
	users.Delete("/:id", userHandler.Delete)
	users.Delete("/", vendorOnly, userHandler.DeleteAll)

	offers := api.Group("/offers", authRequired)
	offers.Post("/", vendorOnly, offerHandler.Create)
	offers.Get("/:id", offerHandler.Get)
	offers.Get("/", offerHandler.List)
	offers.Put("/:id", vendorOnly, offerHandler.Update)
	offers.Post("/:id/approve", vendorOnly, offerHandler.Approve)
	offers.Delete("/:id", vendorOnly, offerHandler.Delete)

	needs := api.Group("/needs", authRequired)
	needs.Post("/", customerOnly, needHandler.Create)
	needs.Get("/:id", needHandler.Get)
	needs.Get("/", needHandler.List)
	needs.Put("/:id", customerOnly, needHandler.Update)
	needs.Delete("/:id", customerOnly, needHandler.Delete)

	comments := api.Group("/comments", authRequired)
	comments.Post("/:offerId", commentHandler.Create)
	comments.Get("/:offerId", commentHandler.ListByOffer)
	comments.Delete("/:offerId/:id", commentHandler.Delete)
}
