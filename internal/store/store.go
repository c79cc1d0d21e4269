// Package store defines the repository interfaces the services are written
// against, plus their GORM-backed implementation. Keeping the interfaces
// narrow lets tests swap in in-memory fakes.
package store

import (
	"errors"

	"github.com/example/roadhelper/internal/models"
)

// ErrNotFound is returned by lookups when no matching record exists.
var ErrNotFound = errors.New("record not found")

// Store aggregates all repositories and provides transactional execution.
type Store interface {
	Users() UserRepo
	GoogleUsers() GoogleUserRepo
	Cars() CarRepo
	Licenses() LicenseRepo
	Images() ImageRepo

	// Transaction runs fn against a store bound to a single database
	// transaction. A non-nil error from fn rolls every write back.
	Transaction(fn func(Store) error) error
}

// UserRepo persists locally registered accounts.
type UserRepo interface {
	ByEmail(email string) (*models.User, error)
	ByID(id uint) (*models.User, error)
	EmailTaken(email string) (bool, error)
	Create(user *models.User) error
	UpdateProfile(id uint, firstName, lastName, phone string) error
	UpdatePassword(email, passwordHash string) error
	List(limit, offset int) ([]models.User, int64, error)
}

// GoogleUserRepo persists accounts sourced from Google profiles.
type GoogleUserRepo interface {
	ByEmail(email string) (*models.GoogleUser, error)
	EmailTaken(email string) (bool, error)
	CarNumberTaken(number string) (bool, error)
	Create(user *models.GoogleUser) error
	Update(email string, user *models.GoogleUser) error
}

// CarRepo persists vehicle settings linked to local accounts.
type CarRepo interface {
	ByUserID(userID uint) (*models.CarSettings, error)
	PlateTaken(plateNumber string) (bool, error)
	Create(car *models.CarSettings) error
	Update(userID uint, car *models.CarSettings) error
}

// LicenseRepo persists driver-license image references, keyed by email.
type LicenseRepo interface {
	ByEmail(email string) (*models.DriverLicense, error)
	Create(license *models.DriverLicense) error
	Update(email, frontURL, backURL string) error
}

// ImageRepo persists user photo uploads.
type ImageRepo interface {
	Create(image *models.UserImage) error
	ByUserID(userID uint) ([]models.UserImage, error)
}
