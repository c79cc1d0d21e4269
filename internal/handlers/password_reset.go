package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/roadhelper/internal/services"
)

// PasswordResetHandler manages the OTP-gated forgot-password flow.
type PasswordResetHandler struct {
	otp       *services.OTPService
	passwords *services.PasswordService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(otp *services.OTPService, passwords *services.PasswordService) *PasswordResetHandler {
	return &PasswordResetHandler{otp: otp, passwords: passwords}
}

type requestResetRequest struct {
	Email string `json:"email"`
}

// RequestReset sends a reset code to a registered email.
func (h *PasswordResetHandler) RequestReset(c *fiber.Ctx) error {
	var req requestResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.otp.Send(req.Email); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "OTP sent to your email",
	})
}

type verifyResetRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyResetCode verifies the reset code submitted by the user.
func (h *PasswordResetHandler) VerifyResetCode(c *fiber.Ctx) error {
	var req verifyResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.otp.Verify(req.Email, req.OTP); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "OTP is valid",
	})
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ResetPassword updates the account's password.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.passwords.Reset(req.Email, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  statusSuccess,
		"message": "Password updated successfully. A confirmation email has been sent to your email address.",
	})
}
