package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/scoreking-api/internal/application/auth"
	"github.com/jhoicas/scoreking-api/internal/application/payment"
	"github.com/jhoicas/scoreking-api/internal/application/scraping"
	"github.com/jhoicas/scoreking-api/internal/application/usecase"
	"github.com/jhoicas/scoreking-api/pkg/config"
	"github.com/jhoicas/scoreking-api/pkg/logger"
)

// RouterDeps dependencias para el router. Los casos de uso opcionales en nil no registran rutas.
type RouterDeps struct {
	AppName     string
	Production  bool
	BodyLimit   int
	SwaggerFile string // vacío: sin /docs

	AuthUC      *auth.AuthUseCase
	FederatedUC *auth.FederatedUseCase
	ResetUC     *auth.PasswordResetUseCase
	SettingsUC  *usecase.SettingsUseCase
	PaymentUC   *payment.PaymentUseCase
	ScrapingUC  *scraping.ScrapingUseCase

	Tokens    TokenParser
	Cookie    config.CookieConfig
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Log       *logger.Logger
}

// NewApp construye la aplicación Fiber con middlewares globales y rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	errs := NewErrorMapper(deps.Production, deps.Log.Component("http"))

	cfg := fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errs.FiberErrorHandler,
	}
	if deps.BodyLimit > 0 {
		cfg.BodyLimit = deps.BodyLimit
	}
	app := fiber.New(cfg)
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Log.Component("http")))
	if len(deps.CORS.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(deps.CORS.AllowedOrigins, ","),
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	if deps.SwaggerFile != "" {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    "ScoreKing API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	Router(app, deps, errs)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps, errs *ErrorMapper) {
	api := app.Group("/api")
	val := NewValidator()
	cookie := NewTokenCookie(deps.Cookie)
	limiter := NewIPRateLimiter(deps.RateLimit.RPS, deps.RateLimit.Burst).Handler()
	requireAuth := AuthMiddleware(deps.Tokens, cookie.Name())

	// Auth (público salvo /profile)
	authHandler := NewAuthHandler(deps.AuthUC, deps.FederatedUC, cookie, val, errs)
	api.Post("/register", authHandler.Register)
	api.Post("/login", limiter, authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/profile", requireAuth, authHandler.Profile)
	if deps.FederatedUC != nil {
		api.Post("/auth/google-login", authHandler.GoogleLogin)
		api.Post("/google-login", authHandler.GoogleLogin)
	}

	if deps.ResetUC != nil {
		resetHandler := NewPasswordResetHandler(deps.ResetUC, val, errs)
		api.Post("/forgot-password", limiter, resetHandler.ForgotPassword)
		api.Post("/verify-reset-token", resetHandler.VerifyResetToken)
		api.Post("/reset-password", limiter, resetHandler.ResetPassword)
	}

	// Settings (protegido)
	if deps.SettingsUC != nil {
		settings := api.Group("/settings", requireAuth)
		settingsHandler := NewSettingsHandler(deps.SettingsUC, val, errs)
		settings.Put("/username", settingsHandler.UpdateUsername)
		settings.Put("/password", settingsHandler.ChangePassword)
	}

	if deps.PaymentUC != nil {
		paymentHandler := NewPaymentHandler(deps.PaymentUC, val, errs)
		api.Post("/payments/create-payment-intent", paymentHandler.CreatePaymentIntent)
		api.Post("/payments/stripe/webhook", paymentHandler.StripeWebhook)
		api.Post("/paypal/create-order", paymentHandler.CreatePayPalOrder)
		api.Get("/paypal/capture-order", paymentHandler.CapturePayPalOrder)
	}

	if deps.ScrapingUC != nil {
		scrapingHandler := NewScrapingHandler(deps.ScrapingUC, errs)
		api.Post("/scraping/run", scrapingHandler.RunMatches)
		api.Post("/scraping/run-ligas", scrapingHandler.RunLeagues)
	}
}
