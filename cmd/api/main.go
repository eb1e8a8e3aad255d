package main

import (
	"net/http"

	"clientflow/cmd/internal/config"
	"clientflow/cmd/internal/domain/sqlite"
	"clientflow/cmd/internal/domain/sqlite/repository"
	cognitoclient "clientflow/cmd/internal/integration/aws/cognito"
	"clientflow/cmd/internal/metrics"
	"clientflow/cmd/internal/routes"
	"clientflow/cmd/internal/service"
	"clientflow/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf(".env file not loaded: %v", err)
	}
	cfg := config.Load()

	validate := validator.New()
	registerValidators(validate)

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		log.Fatal("failed to initialize cognito client", err)
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	advisorRepo := repository.NewAdvisorRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	collector := metrics.NewCollector()

	// Getting services
	userService := service.NewUserService(userRepo, validate, cogClient, collector)
	advisorService := service.NewAdvisorService(userRepo, advisorRepo)
	bookingService := service.NewBookingService(bookingRepo, userRepo, validate, collector)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	advisorRoutes := routes.NewAdvisorDefault(advisorService)
	bookingRoutes := routes.NewBookingDefault(bookingService)

	auth := routes.NewAuthMiddleware(cogClient, cfg.AuthCacheTTL).Require()

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(collector.Middleware())
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(cfg.RateLimitPerSec),
			Burst: cfg.RateLimitBurst,
		}),
	}))

	// Auth
	e.POST("/api/auth/signup", userRoutes.SignUp)
	e.POST("/api/auth/login", userRoutes.Login)
	e.POST("/api/auth/verify", userRoutes.VerifySignup)
	e.POST("/api/auth/logout", userRoutes.Logout, auth)

	// Profile
	e.GET("/api/users/@me", userRoutes.GetMe, auth)
	e.PATCH("/api/users/@me", userRoutes.UpdateMe, auth)
	e.PUT("/api/users/@me/theme", userRoutes.SetTheme, auth)

	// Advisors and their bookable slots
	e.GET("/api/advisors", advisorRoutes.GetAdvisors, auth)
	e.GET("/api/advisors/:id", advisorRoutes.GetAdvisor, auth)
	e.GET("/api/advisors/:id/slots", advisorRoutes.GetSlots, auth)

	// Bookings
	e.POST("/api/bookings", bookingRoutes.CreateBooking, auth)
	e.GET("/api/bookings", bookingRoutes.GetBookings, auth)

	// Operational endpoints
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := e.Start(":" + cfg.Port); err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("dateonly", validators.IsDateOnly)
}
