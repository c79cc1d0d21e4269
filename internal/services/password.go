package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/store"
	"github.com/example/roadhelper/internal/utils"
)

const passwordSymbols = "@$!%*?&"

// PasswordService handles password resets for local accounts.
type PasswordService struct {
	store        store.Store
	mailer       Mailer
	supportEmail string
}

// NewPasswordService constructs a PasswordService.
func NewPasswordService(st store.Store, mailer Mailer, supportEmail string) *PasswordService {
	return &PasswordService{store: st, mailer: mailer, supportEmail: supportEmail}
}

// Reset validates the new password against the strength policy, rejects a
// password identical to the current one, and persists the new hash. The
// confirmation email is dispatched after the write and never fails the reset.
func (s *PasswordService) Reset(email, newPassword string) error {
	if email == "" || newPassword == "" {
		return apperr.Validationf("email and password are required")
	}

	if !ValidPassword(newPassword) {
		return apperr.Validationf("password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character")
	}

	user, err := s.store.Users().ByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFoundf("user not found")
		}
		return apperr.Internal(err)
	}

	if utils.CheckPassword(user.PasswordHash, newPassword) {
		return apperr.Validationf("new password must be different from old password")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}

	if err := s.store.Users().UpdatePassword(email, hash); err != nil {
		return apperr.Internal(err)
	}

	sendAsync(s.mailer, email, "Password Changed Successfully", fmt.Sprintf(
		"<h2>Password Update Confirmation</h2>"+
			"<p>Dear %s %s,</p>"+
			"<p>Your password has been successfully changed.</p>"+
			"<p>If you did not make this change, please contact our support team immediately at <a href=\"mailto:%s\">%s</a>.</p>"+
			"<p>Best regards,<br>Your Application Team</p>",
		user.FirstName, user.LastName, s.supportEmail, s.supportEmail))

	return nil
}

// ValidPassword reports whether a candidate satisfies the strength policy:
// at least 8 characters, one upper, one lower, one digit, one symbol from
// @$!%*?&, and nothing outside those classes.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}

	return upper && lower && digit && symbol
}
