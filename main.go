package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	swag "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	_ "umkmotion-otp/docs" // required to register the swagger spec

	"umkmotion-otp/config"
	"umkmotion-otp/controller"
	"umkmotion-otp/middleware"
	"umkmotion-otp/repository"
	"umkmotion-otp/service"
	"umkmotion-otp/util"
)

// @title           UMKMotion OTP API
// @version         1.0
// @description     Email OTP issuance and verification service for UMKMotion accounts.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:4000
// @BasePath        /api/v1
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v (using system environment variables)", err)
	}

	cfg := config.Load()

	db := util.InitDB(cfg.DB)
	userRepo := repository.NewUserRepository(db)
	credentialRepo := repository.NewCredentialRepository(db)
	pgOtpRepo := repository.NewPgOtpRepo(db)

	emailService := service.NewEmailService(cfg.SMTP)

	var otpService *service.OtpService
	switch cfg.Persist {
	case config.PersistPostgres:
		// Postgres is authoritative: codes survive restarts and are shared
		// across instances.
		otpService = service.NewOtpService(pgOtpRepo, emailService, cfg.OTP)
		util.StartOtpSweeper(pgOtpRepo, 10*time.Minute)
	default:
		// Memory mode: process-local store with its own janitor, Postgres
		// attached as a best-effort audit sink.
		memRepo := repository.NewInMemoryOtpRepo(10 * time.Minute)
		otpService = service.NewOtpService(memRepo, emailService, cfg.OTP)
		otpService.AttachSink(pgOtpRepo)
	}

	authService := service.NewAuthService(userRepo, credentialRepo, otpService, cfg.JWTSecret)

	app := fiber.New(fiber.Config{AppName: cfg.AppName})
	setupRoutes(app, cfg, otpService, authService)

	log.Printf("%s OTP service listening on :%s (persist=%s, env=%s)",
		cfg.AppName, cfg.Port, cfg.Persist, cfg.Env)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func setupRoutes(app *fiber.App, cfg *config.Config, otpService *service.OtpService, authService *service.AuthService) {
	app.Use(middleware.TimerMetrics)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/swagger/*", swag.HandlerDefault)

	otpController := controller.NewOtpController(otpService, cfg)
	authController := controller.NewAuthController(authService, otpService)

	api := app.Group("/api/v1", middleware.APIRateLimiter())
	auth := api.Group("/auth")

	// The OTP endpoint: GET/POST issue, PUT verify. All three share the
	// tight per-IP limit.
	otpLimit := middleware.OtpRateLimiter()
	auth.Get("/send-otp", otpLimit, otpController.SendOtp)
	auth.Post("/send-otp", otpLimit, otpController.SendOtp)
	auth.Put("/send-otp", otpLimit, otpController.VerifyOtp)

	// account flow
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", authController.Me)
	auth.Post("/verify", otpLimit, authController.VerifyEmail)
	auth.Post("/resend", otpLimit, authController.ResendCode)
}
