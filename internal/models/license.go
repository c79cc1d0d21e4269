package models

// DriverLicense stores front/back images of a user's driver license, keyed by
// email with upsert semantics.
type DriverLicense struct {
	BaseModel
	Email         string `gorm:"uniqueIndex" json:"email"`
	FrontImageURL string `json:"front_image_url"`
	BackImageURL  string `json:"back_image_url"`
}

// UserImage is a photo uploaded for a user.
type UserImage struct {
	BaseModel
	UserID   uint   `gorm:"index" json:"user_id"`
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Mimetype string `json:"mimetype"`
	URL      string `gorm:"-" json:"image_url"`
}
