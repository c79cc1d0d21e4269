package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/services"
	"github.com/example/roadhelper/internal/utils"
)

// AccountHandler manages profile read/update endpoints for both account
// families.
type AccountHandler struct {
	svc      *services.AccountService
	uploader *services.Uploader
}

// NewAccountHandler constructs an AccountHandler.
func NewAccountHandler(svc *services.AccountService, uploader *services.Uploader) *AccountHandler {
	return &AccountHandler{svc: svc, uploader: uploader}
}

type updateRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Letters       string `json:"letters"`
	PlateNumber   string `json:"plate_number"`
	CarColor      string `json:"car_color"`
	CarModel      string `json:"car_model"`
	LicenseNumber string `json:"license_number"`
}

// Update applies a keep-old partial update to a local account and its car,
// returning the fully merged record.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var req updateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, car, err := h.svc.UpdateUserAndCar(req.Email, services.UpdateInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		Letters:       req.Letters,
		PlateNumber:   req.PlateNumber,
		CarColor:      req.CarColor,
		CarModel:      req.CarModel,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "User and car updated successfully",
		"data": fiber.Map{
			"user": fiber.Map{
				"email":     user.Email,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"phone":     user.Phone,
			},
			"car": fiber.Map{
				"letters":        car.Letters,
				"plate_number":   car.PlateNumber,
				"car_color":      car.CarColor,
				"car_model":      car.CarModel,
				"license_number": car.LicenseNumber,
			},
		},
	})
}

// UpdateGoogle upserts a federated account from a multipart form. Field
// presence in the form distinguishes "absent" (keep old) from an explicit
// empty value (clear); an uploaded picture always wins.
func (h *AccountHandler) UpdateGoogle(c *fiber.Ctx) error {
	email := c.FormValue("email")

	in := services.GoogleUpsertInput{
		FirstName: multipartField(c, "firstName"),
		LastName:  multipartField(c, "lastName"),
		Phone:     multipartField(c, "phone"),
		CarNumber: multipartField(c, "car_number"),
		CarColor:  multipartField(c, "car_color"),
		CarModel:  multipartField(c, "car_model"),
	}

	if fh, err := c.FormFile("profile_picture"); err == nil {
		stored, err := h.uploader.SaveImage(fh)
		if err != nil {
			return respondError(c, err)
		}
		in.ProfilePicture = &stored.URL
	} else if field := multipartField(c, "profile_picture"); field != nil && *field == "" {
		// Explicit empty value clears the stored picture.
		in.ProfilePicture = field
	}

	user, created, err := h.svc.UpsertGoogleUser(email, in)
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusOK
	message := "User and car updated successfully"
	if created {
		status = fiber.StatusCreated
		message = "New user created successfully"
	}

	return c.Status(status).JSON(fiber.Map{
		"status":  statusSuccess,
		"message": message,
		"data": fiber.Map{
			"user": fiber.Map{
				"email":           user.Email,
				"firstName":       user.FirstName,
				"lastName":        user.LastName,
				"phone":           user.Phone,
				"profile_picture": user.ProfilePicture,
				"car_number":      user.CarNumber,
				"car_color":       user.CarColor,
				"car_model":       user.CarModel,
				"created_at":      user.CreatedAt,
				"updated_at":      user.UpdatedAt,
			},
		},
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

// UserData returns a local account with its car settings.
func (h *AccountHandler) UserData(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, car, err := h.svc.GetUserData(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"firstName": user.FirstName,
				"lastName":  user.LastName,
				"email":     user.Email,
				"phone":     user.Phone,
			},
			"car": fiber.Map{
				"letters":     car.Letters,
				"plateNumber": car.PlateNumber,
				"carColor":    car.CarColor,
				"carModel":    car.CarModel,
			},
		},
	})
}

// GoogleUser returns a federated account by email.
func (h *AccountHandler) GoogleUser(c *fiber.Ctx) error {
	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.svc.GetGoogleUser(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
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
				"created_at":      user.CreatedAt,
				"updated_at":      user.UpdatedAt,
			},
		},
	})
}

// ListUsers returns a page of local accounts.
func (h *AccountHandler) ListUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	users, total, err := h.svc.ListUsers(pg.Limit, pg.Offset)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		items = append(items, fiber.Map{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
		})
	}

	return c.JSON(fiber.Map{
		"status": statusSuccess,
		"data":   fiber.Map{"users": items},
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// multipartField returns a pointer to the form value when the key was sent,
// nil when it was absent.
func multipartField(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
