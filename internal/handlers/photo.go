package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/services"
	"github.com/example/roadhelper/internal/store"
)

// PhotoHandler manages user photo uploads.
type PhotoHandler struct {
	store    store.Store
	uploader *services.Uploader
}

// NewPhotoHandler constructs a PhotoHandler.
func NewPhotoHandler(st store.Store, uploader *services.Uploader) *PhotoHandler {
	return &PhotoHandler{store: st, uploader: uploader}
}

// Upload stores one photo for a user.
func (h *PhotoHandler) Upload(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "User ID is required.",
		})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "No file uploaded.",
		})
	}

	stored, err := h.uploader.SaveImage(fh)
	if err != nil {
		return respondError(c, err)
	}

	image := &models.UserImage{
		UserID:   uint(userID),
		Filename: fh.Filename,
		Filepath: stored.Name,
		Mimetype: fh.Header.Get("Content-Type"),
	}
	if err := h.store.Images().Create(image); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Image uploaded successfully!",
	})
}

// List returns all photos stored for a user, with public URLs attached.
func (h *PhotoHandler) List(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  statusFail,
			"message": "User ID is required.",
		})
	}

	images, err := h.store.Images().ByUserID(uint(userID))
	if err != nil {
		return respondError(c, err)
	}

	for i := range images {
		images[i].URL = h.uploader.FileURL(images[i].Filepath)
	}

	if len(images) == 0 {
		return c.JSON(fiber.Map{
			"status":  statusSuccess,
			"message": "No images found for this user.",
			"images":  []models.UserImage{},
		})
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Images retrieved successfully!",
		"images":  images,
	})
}
