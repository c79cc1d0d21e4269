package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/config"
	"github.com/example/roadhelper/internal/services"
	"github.com/example/roadhelper/internal/store"
	"github.com/example/roadhelper/internal/utils"
)

// AuthHandler bundles dependencies for registration and login endpoints.
type AuthHandler struct {
	reg      *services.RegistrationService
	store    store.Store
	uploader *services.Uploader
	cfg      *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(reg *services.RegistrationService, st store.Store, uploader *services.Uploader, cfg *config.Config) *AuthHandler {
	return &AuthHandler{reg: reg, store: st, uploader: uploader, cfg: cfg}
}

type registerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Letters     string `json:"letters"`
	PlateNumber string `json:"plate_number"`
	CarColor    string `json:"car_color"`
	CarModel    string `json:"car_model"`
}

// Register creates a local account together with its car settings.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, car, err := h.reg.Register(services.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Password:    req.Password,
		Letters:     req.Letters,
		PlateNumber: req.PlateNumber,
		CarColor:    req.CarColor,
		CarModel:    req.CarModel,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Email, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"email":     user.Email,
				"phone":     user.Phone,
				"token":     token,
			},
			"car": fiber.Map{
				"id":           car.ID,
				"letters":      car.Letters,
				"plate_number": car.PlateNumber,
				"car_color":    car.CarColor,
				"car_model":    car.CarModel,
			},
		},
		"message": "Registration successful. A welcome email has been sent to your email address.",
	})
}

// RegisterGoogle creates a federated account from a multipart form that must
// include a profile picture.
func (h *AuthHandler) RegisterGoogle(c *fiber.Ctx) error {
	in := services.GoogleRegisterInput{
		FirstName: formValue(c, "firstName", "firstname"),
		LastName:  formValue(c, "lastName", "lastname"),
		Email:     c.FormValue("email"),
		Phone:     c.FormValue("phone"),
		CarNumber: c.FormValue("car_number"),
		CarColor:  c.FormValue("car_color"),
		CarModel:  c.FormValue("car_model"),
	}

	if fh, err := c.FormFile("profile_picture"); err == nil {
		stored, err := h.uploader.SaveImage(fh)
		if err != nil {
			return respondError(c, err)
		}
		in.ProfilePicture = stored.URL
	}

	user, err := h.reg.RegisterGoogle(in)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":              user.ID,
				"firstName":       user.FirstName,
				"lastName":        user.LastName,
				"email":           user.Email,
				"phone":           user.Phone,
				"profile_picture": user.ProfilePicture,
				"car_number":      user.CarNumber,
				"car_color":       user.CarColor,
				"car_model":       user.CarModel,
			},
		},
		"message": "Registration successful. A welcome email has been sent to your email address.",
	})
}

type signUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

// SignUp creates a local account without vehicle data.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.reg.SignUp(services.SignUpInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Email, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"email":     user.Email,
				"phone":     user.Phone,
				"token":     token,
			},
		},
		"message": "Registration successful. A welcome email has been sent to your email address.",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a local account and issues a token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "Email and password are required",
		})
	}

	user, err := h.store.Users().ByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":   statusFail,
				"message":  "User not found. Please sign up first.",
				"redirect": "/signup",
			})
		}
		return respondError(c, err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  statusFail,
			"message": "Email or Password is incorrect. Please try again.",
		})
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Email, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"data":    fiber.Map{"token": token},
		"message": "Login successful",
	})
}

type googleSignInRequest struct {
	Email string `json:"email"`
}

// GoogleSignIn looks up an existing federated account and issues a token.
func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req googleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "Email is required",
		})
	}

	user, err := h.store.GoogleUsers().ByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":   statusFail,
				"message":  "User not found. Please sign up first.",
				"redirect": "/signup",
			})
		}
		return respondError(c, err)
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Email, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":              user.ID,
				"email":           user.Email,
				"firstName":       user.FirstName,
				"lastName":        user.LastName,
				"profile_picture": user.ProfilePicture,
			},
		},
	})
}

// formValue returns the first non-empty form value among the given keys.
func formValue(c *fiber.Ctx, keys ...string) string {
	for _, key := range keys {
		if v := c.FormValue(key); v != "" {
			return v
		}
	}
	return ""
}
