package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/services"
	"github.com/example/roadhelper/internal/store"
)

// LicenseHandler manages driver-license image endpoints.
type LicenseHandler struct {
	store    store.Store
	uploader *services.Uploader
}

// NewLicenseHandler constructs a LicenseHandler.
func NewLicenseHandler(st store.Store, uploader *services.Uploader) *LicenseHandler {
	return &LicenseHandler{store: st, uploader: uploader}
}

// Get returns the stored license images for an email.
func (h *LicenseHandler) Get(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		var req emailRequest
		if err := c.BodyParser(&req); err == nil {
			email = req.Email
		}
	}

	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "Email is required",
		})
	}

	license, err := h.store.Licenses().ByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  statusFail,
				"message": "License data not found",
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": statusSuccess,
		"data": fiber.Map{
			"id":              license.ID,
			"email":           license.Email,
			"front_image_url": license.FrontImageURL,
			"back_image_url":  license.BackImageURL,
			"upload_date":     license.UpdatedAt,
		},
	})
}

// Upload stores front and back license images for an email, creating or
// replacing the existing record.
func (h *LicenseHandler) Upload(c *fiber.Ctx) error {
	email := c.FormValue("email")
	front, frontErr := c.FormFile("frontImage")
	back, backErr := c.FormFile("backImage")

	if email == "" || frontErr != nil || backErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "Email and both images are required",
		})
	}

	frontStored, err := h.uploader.SaveImage(front)
	if err != nil {
		return respondError(c, err)
	}
	backStored, err := h.uploader.SaveImage(back)
	if err != nil {
		return respondError(c, err)
	}

	_, lookupErr := h.store.Licenses().ByEmail(email)
	switch {
	case lookupErr == nil:
		if err := h.store.Licenses().Update(email, frontStored.URL, backStored.URL); err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"status":  statusSuccess,
			"message": "License updated successfully",
			"data": fiber.Map{
				"front_image_url": frontStored.URL,
				"back_image_url":  backStored.URL,
			},
		})
	case errors.Is(lookupErr, store.ErrNotFound):
		license := &models.DriverLicense{
			Email:         email,
			FrontImageURL: frontStored.URL,
			BackImageURL:  backStored.URL,
		}
		if err := h.store.Licenses().Create(license); err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":  statusSuccess,
			"message": "License uploaded successfully",
			"data": fiber.Map{
				"front_image_url": frontStored.URL,
				"back_image_url":  backStored.URL,
			},
		})
	default:
		return respondError(c, lookupErr)
	}
}
