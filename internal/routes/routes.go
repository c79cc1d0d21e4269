package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/roadhelper/internal/config"
	"github.com/example/roadhelper/internal/handlers"
	"github.com/example/roadhelper/internal/middleware"
	"github.com/example/roadhelper/internal/services"
	"github.com/example/roadhelper/internal/store"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	st := store.New(db)
	mailer := services.NewSMTPMailer(cfg)
	uploader := services.NewUploader(cfg)

	registrationService := services.NewRegistrationService(st, mailer, cfg.SupportEmail)
	accountService := services.NewAccountService(st)
	otpService := services.NewOTPService(st, services.NewMemoryOTPStore(), mailer, cfg.OTPLength, cfg.OTPTTL)
	passwordService := services.NewPasswordService(st, mailer, cfg.SupportEmail)

	authHandler := handlers.NewAuthHandler(registrationService, st, uploader, cfg)
	accountHandler := handlers.NewAccountHandler(accountService, uploader)
	otpHandler := handlers.NewOTPHandler(otpService)
	resetHandler := handlers.NewPasswordResetHandler(otpService, passwordService)
	licenseHandler := handlers.NewLicenseHandler(st, uploader)
	photoHandler := handlers.NewPhotoHandler(st, uploader)

	api := app.Group("/api")

	// User routes
	users := api.Group("/users")
	users.Get("/", middleware.AuthMiddleware(cfg), accountHandler.ListUsers)
	users.Post("/register", authHandler.Register)
	users.Post("/register-google", authHandler.RegisterGoogle)
	users.Post("/signup", authHandler.SignUp)
	users.Post("/login", authHandler.Login)
	users.Post("/google-signin", authHandler.GoogleSignIn)
	users.Put("/update", accountHandler.Update)
	users.Put("/update-google", accountHandler.UpdateGoogle)
	users.Post("/user-data", accountHandler.UserData)
	users.Post("/user-google", accountHandler.GoogleUser)

	// Password reset routes
	users.Post("/request-reset-password", resetHandler.RequestReset)
	users.Post("/verify-reset-password", resetHandler.VerifyResetCode)
	users.Post("/reset-password", resetHandler.ResetPassword)

	// OTP routes
	otp := app.Group("/otp")
	otp.Post("/send", otpHandler.Send)
	otp.Post("/send-without-verification", otpHandler.SendWithoutVerification)
	otp.Post("/verify", otpHandler.Verify)

	// License routes
	license := api.Group("/license")
	license.Get("/get-license", licenseHandler.Get)
	license.Post("/upload-license", licenseHandler.Upload)

	// Photo routes
	photos := api.Group("/photos")
	photos.Post("/upload/:user_id", photoHandler.Upload)
	photos.Get("/images/:user_id", photoHandler.List)
}
