package models

// User represents a locally registered account with email/password credentials.
type User struct {
	BaseModel
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}

// GoogleUser is an account sourced from a Google profile. It lives in its own
// table with the vehicle fields embedded directly, separate from User.
type GoogleUser struct {
	BaseModel
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	Phone          string `json:"phone"`
	ProfilePicture string `json:"profile_picture"`
	CarNumber      string `gorm:"index" json:"car_number"`
	CarColor       string `json:"car_color"`
	CarModel       string `json:"car_model"`
}

// CarSettings holds vehicle data for a locally registered user. One row per
// user; plate numbers are unique system-wide (also checked against
// GoogleUser.CarNumber at registration time).
type CarSettings struct {
	BaseModel
	UserID        uint   `gorm:"uniqueIndex" json:"user_id"`
	Letters       string `json:"letters"`
	PlateNumber   string `gorm:"uniqueIndex" json:"plate_number"`
	CarColor      string `json:"car_color"`
	CarModel      string `json:"car_model"`
	LicenseNumber string `json:"license_number"`
}
