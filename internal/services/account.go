package services

import (
	"errors"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/store"
)

// AccountService reads and updates existing accounts. Two merge policies are
// in effect, one per account family:
//
//   - local accounts use keep-old: a supplied non-empty value wins, anything
//     else retains the stored value;
//   - federated accounts use explicit-overwrite: a supplied field (even an
//     empty one) always wins, only fields absent from the request keep the
//     stored value.
type AccountService struct {
	store store.Store
}

// NewAccountService constructs an AccountService.
func NewAccountService(st store.Store) *AccountService {
	return &AccountService{store: st}
}

// UpdateInput carries a partial update for a local account and its car.
// Empty fields mean "keep the stored value".
type UpdateInput struct {
	FirstName     string
	LastName      string
	Phone         string
	Letters       string
	PlateNumber   string
	CarColor      string
	CarModel      string
	LicenseNumber string
}

// keepOld applies the local merge rule: empty input never overwrites.
func keepOld(newValue, oldValue string) string {
	if newValue != "" {
		return newValue
	}
	return oldValue
}

// UpdateUserAndCar merges the partial input over the stored user and car
// records and writes both updates in one transaction. A missing car row is
// tolerated and treated as an empty record. Returns the fully merged state so
// callers can see which fields were defaulted.
func (s *AccountService) UpdateUserAndCar(email string, in UpdateInput) (*models.User, *models.CarSettings, error) {
	if email == "" {
		return nil, nil, apperr.Validationf("email is required")
	}

	user, err := s.store.Users().ByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.NotFoundf("user not found")
		}
		return nil, nil, apperr.Internal(err)
	}

	car, err := s.store.Cars().ByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.Internal(err)
		}
		car = &models.CarSettings{UserID: user.ID}
	}

	user.FirstName = keepOld(in.FirstName, user.FirstName)
	user.LastName = keepOld(in.LastName, user.LastName)
	user.Phone = keepOld(in.Phone, user.Phone)

	car.Letters = keepOld(in.Letters, car.Letters)
	car.PlateNumber = keepOld(in.PlateNumber, car.PlateNumber)
	car.CarColor = keepOld(in.CarColor, car.CarColor)
	car.CarModel = keepOld(in.CarModel, car.CarModel)
	car.LicenseNumber = keepOld(in.LicenseNumber, car.LicenseNumber)

	err = s.store.Transaction(func(tx store.Store) error {
		if err := tx.Users().UpdateProfile(user.ID, user.FirstName, user.LastName, user.Phone); err != nil {
			return err
		}
		return tx.Cars().Update(user.ID, car)
	})
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	return user, car, nil
}

// GoogleUpsertInput carries a partial update for a federated account. A nil
// pointer means the field was absent from the request; a pointer to the empty
// string is an explicit clear.
type GoogleUpsertInput struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	ProfilePicture *string
	CarNumber      *string
	CarColor       *string
	CarModel       *string
}

// overwrite applies the federated merge rule: any supplied value wins.
func overwrite(newValue *string, oldValue string) string {
	if newValue != nil {
		return *newValue
	}
	return oldValue
}

// orEmpty defaults an absent field to the empty string on the create path.
func orEmpty(value *string) string {
	if value != nil {
		return *value
	}
	return ""
}

// UpsertGoogleUser creates the federated row when none exists for the email
// (absent fields default to empty strings), or applies the explicit-overwrite
// merge when one does. The returned bool reports whether a row was created.
func (s *AccountService) UpsertGoogleUser(email string, in GoogleUpsertInput) (*models.GoogleUser, bool, error) {
	if email == "" {
		return nil, false, apperr.Validationf("email is required")
	}

	existing, err := s.store.GoogleUsers().ByEmail(email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, false, apperr.Internal(err)
		}

		user := &models.GoogleUser{
			Email:          email,
			FirstName:      orEmpty(in.FirstName),
			LastName:       orEmpty(in.LastName),
			Phone:          orEmpty(in.Phone),
			ProfilePicture: orEmpty(in.ProfilePicture),
			CarNumber:      orEmpty(in.CarNumber),
			CarColor:       orEmpty(in.CarColor),
			CarModel:       orEmpty(in.CarModel),
		}
		if err := s.store.GoogleUsers().Create(user); err != nil {
			return nil, false, apperr.Internal(err)
		}
		return user, true, nil
	}

	existing.FirstName = overwrite(in.FirstName, existing.FirstName)
	existing.LastName = overwrite(in.LastName, existing.LastName)
	existing.Phone = overwrite(in.Phone, existing.Phone)
	existing.ProfilePicture = overwrite(in.ProfilePicture, existing.ProfilePicture)
	existing.CarNumber = overwrite(in.CarNumber, existing.CarNumber)
	existing.CarColor = overwrite(in.CarColor, existing.CarColor)
	existing.CarModel = overwrite(in.CarModel, existing.CarModel)

	if err := s.store.GoogleUsers().Update(email, existing); err != nil {
		return nil, false, apperr.Internal(err)
	}

	return existing, false, nil
}

// GetUserData returns a local account with its car settings. A missing car
// row yields an empty record rather than an error.
func (s *AccountService) GetUserData(email string) (*models.User, *models.CarSettings, error) {
	if email == "" {
		return nil, nil, apperr.Validationf("email is required")
	}

	user, err := s.store.Users().ByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.NotFoundf("user not found")
		}
		return nil, nil, apperr.Internal(err)
	}

	car, err := s.store.Cars().ByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, apperr.Internal(err)
		}
		car = &models.CarSettings{UserID: user.ID}
	}

	return user, car, nil
}

// GetGoogleUser returns a federated account by email.
func (s *AccountService) GetGoogleUser(email string) (*models.GoogleUser, error) {
	if email == "" {
		return nil, apperr.Validationf("email is required")
	}

	user, err := s.store.GoogleUsers().ByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFoundf("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// ListUsers returns a page of local accounts with the total count.
func (s *AccountService) ListUsers(limit, offset int) ([]models.User, int64, error) {
	users, total, err := s.store.Users().List(limit, offset)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return users, total, nil
}
