package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/roadhelper/internal/models"
)

type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by the given gorm.DB.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Users() UserRepo             { return &gormUsers{db: s.db} }
func (s *gormStore) GoogleUsers() GoogleUserRepo { return &gormGoogleUsers{db: s.db} }
func (s *gormStore) Cars() CarRepo               { return &gormCars{db: s.db} }
func (s *gormStore) Licenses() LicenseRepo       { return &gormLicenses{db: s.db} }
func (s *gormStore) Images() ImageRepo           { return &gormImages{db: s.db} }

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) ByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUsers) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormUsers) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormUsers) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *gormUsers) UpdateProfile(id uint, firstName, lastName, phone string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"phone":      phone,
	}).Error
}

func (r *gormUsers) UpdatePassword(email, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).
		Update("password_hash", passwordHash).Error
}

func (r *gormUsers) List(limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := r.db.Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

type gormGoogleUsers struct {
	db *gorm.DB
}

func (r *gormGoogleUsers) ByEmail(email string) (*models.GoogleUser, error) {
	var user models.GoogleUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *gormGoogleUsers) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.GoogleUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormGoogleUsers) CarNumberTaken(number string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.GoogleUser{}).Where("car_number = ?", number).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormGoogleUsers) Create(user *models.GoogleUser) error {
	return r.db.Create(user).Error
}

func (r *gormGoogleUsers) Update(email string, user *models.GoogleUser) error {
	return r.db.Model(&models.GoogleUser{}).Where("email = ?", email).Updates(map[string]interface{}{
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"phone":           user.Phone,
		"profile_picture": user.ProfilePicture,
		"car_number":      user.CarNumber,
		"car_color":       user.CarColor,
		"car_model":       user.CarModel,
	}).Error
}

type gormCars struct {
	db *gorm.DB
}

func (r *gormCars) ByUserID(userID uint) (*models.CarSettings, error) {
	var car models.CarSettings
	if err := r.db.Where("user_id = ?", userID).First(&car).Error; err != nil {
		return nil, translate(err)
	}
	return &car, nil
}

func (r *gormCars) PlateTaken(plateNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.CarSettings{}).Where("plate_number = ?", plateNumber).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormCars) Create(car *models.CarSettings) error {
	return r.db.Create(car).Error
}

func (r *gormCars) Update(userID uint, car *models.CarSettings) error {
	return r.db.Model(&models.CarSettings{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"letters":        car.Letters,
		"plate_number":   car.PlateNumber,
		"car_color":      car.CarColor,
		"car_model":      car.CarModel,
		"license_number": car.LicenseNumber,
	}).Error
}

type gormLicenses struct {
	db *gorm.DB
}

func (r *gormLicenses) ByEmail(email string) (*models.DriverLicense, error) {
	var license models.DriverLicense
	if err := r.db.Where("email = ?", email).First(&license).Error; err != nil {
		return nil, translate(err)
	}
	return &license, nil
}

func (r *gormLicenses) Create(license *models.DriverLicense) error {
	return r.db.Create(license).Error
}

func (r *gormLicenses) Update(email, frontURL, backURL string) error {
	return r.db.Model(&models.DriverLicense{}).Where("email = ?", email).Updates(map[string]interface{}{
		"front_image_url": frontURL,
		"back_image_url":  backURL,
	}).Error
}

type gormImages struct {
	db *gorm.DB
}

func (r *gormImages) Create(image *models.UserImage) error {
	return r.db.Create(image).Error
}

func (r *gormImages) ByUserID(userID uint) ([]models.UserImage, error) {
	var images []models.UserImage
	if err := r.db.Where("user_id = ?", userID).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
