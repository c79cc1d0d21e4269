package services

import (
	"fmt"
	"strings"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/store"
	"github.com/example/roadhelper/internal/utils"
)

// RegistrationService creates accounts. Local registration writes the user
// and its car settings atomically; Google registration writes a single row
// into the federated table.
type RegistrationService struct {
	store        store.Store
	mailer       Mailer
	supportEmail string
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(st store.Store, mailer Mailer, supportEmail string) *RegistrationService {
	return &RegistrationService{store: st, mailer: mailer, supportEmail: supportEmail}
}

// RegisterInput carries the fields of a local registration. All are required.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Password    string
	Letters     string
	PlateNumber string
	CarColor    string
	CarModel    string
}

// Register validates input, enforces email and plate uniqueness across both
// account families, and inserts the user plus its car settings in one
// transaction. The welcome email is dispatched after commit and can never
// fail the registration.
func (s *RegistrationService) Register(in RegisterInput) (*models.User, *models.CarSettings, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" ||
		in.Password == "" || in.PlateNumber == "" || in.CarColor == "" || in.CarModel == "" {
		return nil, nil, apperr.Validationf("all fields are required")
	}

	if err := s.checkEmailFree(in.Email); err != nil {
		return nil, nil, err
	}
	if err := s.checkPlateFree(in.PlateNumber); err != nil {
		return nil, nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}
	car := &models.CarSettings{
		Letters:     in.Letters,
		PlateNumber: in.PlateNumber,
		CarColor:    in.CarColor,
		CarModel:    in.CarModel,
	}

	err = s.store.Transaction(func(tx store.Store) error {
		if err := tx.Users().Create(user); err != nil {
			return err
		}
		car.UserID = user.ID
		return tx.Cars().Create(car)
	})
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	sendAsync(s.mailer, user.Email, "Welcome to Our Application", s.welcomeBody(
		user.FirstName, user.LastName, user.Email, user.Phone, []string{
			fmt.Sprintf("Car Details: %s %s", car.Letters, car.PlateNumber),
			"Car Color: " + car.CarColor,
			"Car Model: " + car.CarModel,
		}))

	return user, car, nil
}

// GoogleRegisterInput carries the fields of a federated registration.
// ProfilePicture is the stored URL of the uploaded image; the handler rejects
// the request before calling when no file was sent.
type GoogleRegisterInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	CarNumber      string
	CarColor       string
	CarModel       string
	ProfilePicture string
}

// RegisterGoogle validates input, runs the same uniqueness preconditions as
// local registration against the car_number field, and inserts one federated
// row. The single insert is still wrapped in a transaction for symmetry with
// the local flow.
func (s *RegistrationService) RegisterGoogle(in GoogleRegisterInput) (*models.GoogleUser, error) {
	var missing []string
	if in.FirstName == "" {
		missing = append(missing, "First Name")
	}
	if in.LastName == "" {
		missing = append(missing, "Last Name")
	}
	if in.Email == "" {
		missing = append(missing, "Email")
	}
	if in.Phone == "" {
		missing = append(missing, "Phone")
	}
	if in.CarNumber == "" {
		missing = append(missing, "Car Number")
	}
	if in.CarColor == "" {
		missing = append(missing, "Car Color")
	}
	if in.CarModel == "" {
		missing = append(missing, "Car Model")
	}
	if in.ProfilePicture == "" {
		missing = append(missing, "Profile Picture")
	}
	if len(missing) > 0 {
		return nil, apperr.Validationf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if err := s.checkEmailFree(in.Email); err != nil {
		return nil, err
	}
	if err := s.checkPlateFree(in.CarNumber); err != nil {
		return nil, err
	}

	user := &models.GoogleUser{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		ProfilePicture: in.ProfilePicture,
		CarNumber:      in.CarNumber,
		CarColor:       in.CarColor,
		CarModel:       in.CarModel,
	}

	err := s.store.Transaction(func(tx store.Store) error {
		return tx.GoogleUsers().Create(user)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	sendAsync(s.mailer, user.Email, "Welcome to Our Application", s.welcomeBody(
		user.FirstName, user.LastName, user.Email, user.Phone, []string{
			"Car Number: " + user.CarNumber,
			"Car Color: " + user.CarColor,
			"Car Model: " + user.CarModel,
		}))

	return user, nil
}

// SignUpInput carries the fields of a registration without vehicle data.
type SignUpInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// SignUp registers a local account without car settings.
func (s *RegistrationService) SignUp(in SignUpInput) (*models.User, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" || in.Password == "" {
		return nil, apperr.Validationf("all fields are required")
	}

	if err := s.checkEmailFree(in.Email); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	}

	err = s.store.Transaction(func(tx store.Store) error {
		return tx.Users().Create(user)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	sendAsync(s.mailer, user.Email, "Welcome to Our Application",
		s.welcomeBody(user.FirstName, user.LastName, user.Email, user.Phone, nil))

	return user, nil
}

// checkEmailFree blocks registration when the email exists in either account
// family. Order matters: the federated table is probed first.
func (s *RegistrationService) checkEmailFree(email string) error {
	taken, err := s.store.GoogleUsers().EmailTaken(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflictf("Email %s is already registered. Please use a different email or login.", email)
	}

	taken, err = s.store.Users().EmailTaken(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflictf("Email %s is already registered. Please use a different email or login.", email)
	}
	return nil
}

// checkPlateFree blocks registration when the plate number exists either as a
// car_settings plate or as a federated car_number.
func (s *RegistrationService) checkPlateFree(plate string) error {
	taken, err := s.store.Cars().PlateTaken(plate)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflictf("Plate number %s is already registered. Please use a different plate number.", plate)
	}

	taken, err = s.store.GoogleUsers().CarNumberTaken(plate)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return apperr.Conflictf("Car number %s is already registered. Please use a different car number.", plate)
	}
	return nil
}

func (s *RegistrationService) welcomeBody(firstName, lastName, email, phone string, extra []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Welcome %s %s!</h2>", firstName, lastName)
	b.WriteString("<p>Thank you for registering with us.</p>")
	b.WriteString("<p>Your account has been successfully created with the following details:</p><ul>")
	fmt.Fprintf(&b, "<li>Email: %s</li>", email)
	fmt.Fprintf(&b, "<li>Phone: %s</li>", phone)
	for _, line := range extra {
		fmt.Fprintf(&b, "<li>%s</li>", line)
	}
	b.WriteString("</ul><p>You can now login to your account using your email and password.</p>")
	fmt.Fprintf(&b, "<p>If you have any questions, please don't hesitate to contact our support team at <a href=\"mailto:%s\">%s</a>.</p>", s.supportEmail, s.supportEmail)
	b.WriteString("<p>Best regards,<br>Your Application Team</p>")
	return b.String()
}
