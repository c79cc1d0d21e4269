package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/services"
)

// OTPHandler exposes the one-time-code endpoints.
type OTPHandler struct {
	svc *services.OTPService
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(svc *services.OTPService) *OTPHandler {
	return &OTPHandler{svc: svc}
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

// Send issues a code for an email that must belong to an account.
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Send(req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "OTP sent to your email",
	})
}

// SendWithoutVerification issues a code without requiring an account.
func (h *OTPHandler) SendWithoutVerification(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.SendWithoutVerification(req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "OTP sent to your email",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// Verify checks a submitted code. A match consumes the entry.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.Verify(req.Email, req.OTP); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "OTP is valid",
	})
}
