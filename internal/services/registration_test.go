package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/store"
	"github.com/example/roadhelper/internal/utils"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName:   "Amina",
		LastName:    "Hassan",
		Email:       "amina@example.com",
		Phone:       "01001234567",
		Password:    "Str0ng!Pass",
		Letters:     "ABC",
		PlateNumber: "1234",
		CarColor:    "red",
		CarModel:    "corolla",
	}
}

func TestRegister_CreatesUserAndCarWithSharedID(t *testing.T) {
	st := NewFakeStore()
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	user, car, err := svc.Register(validRegisterInput())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, user.ID, car.UserID)
	assert.NotEqual(t, "Str0ng!Pass", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "Str0ng!Pass"))

	stored, err := st.Users().ByEmail("amina@example.com")
	require.NoError(t, err)
	storedCar, err := st.Cars().ByUserID(stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "1234", storedCar.PlateNumber)
}

func TestRegister_MissingFieldIsValidationError(t *testing.T) {
	st := NewFakeStore()
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	in := validRegisterInput()
	in.CarModel = ""

	_, _, err := svc.Register(in)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Zero(t, st.Writes())
}

func TestRegister_EmailConflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*FakeStore)
	}{
		{
			name: "email already in local accounts",
			setup: func(st *FakeStore) {
				_ = st.Users().Create(&models.User{Email: "amina@example.com"})
			},
		},
		{
			name: "email already in federated accounts",
			setup: func(st *FakeStore) {
				_ = st.GoogleUsers().Create(&models.GoogleUser{Email: "amina@example.com"})
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			st := NewFakeStore()
			test.setup(st)
			before := st.Writes()

			svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")
			_, _, err := svc.Register(validRegisterInput())

			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindConflict))
			assert.Contains(t, err.Error(), "amina@example.com")
			assert.Equal(t, before, st.Writes(), "conflict must perform zero writes")
		})
	}
}

func TestRegister_PlateConflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*FakeStore)
	}{
		{
			name: "plate already in car settings",
			setup: func(st *FakeStore) {
				_ = st.Users().Create(&models.User{Email: "other@example.com"})
				_ = st.Cars().Create(&models.CarSettings{UserID: 1, PlateNumber: "1234"})
			},
		},
		{
			name: "plate already a federated car number",
			setup: func(st *FakeStore) {
				_ = st.GoogleUsers().Create(&models.GoogleUser{Email: "other@example.com", CarNumber: "1234"})
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			st := NewFakeStore()
			test.setup(st)
			before := st.Writes()

			svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")
			_, _, err := svc.Register(validRegisterInput())

			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, apperr.KindConflict))
			assert.Contains(t, err.Error(), "1234")
			assert.Equal(t, before, st.Writes())
		})
	}
}

func TestRegister_RollsBackUserWhenCarInsertFails(t *testing.T) {
	st := NewFakeStore()
	st.carCreateErr = errors.New("disk full")
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	_, _, err := svc.Register(validRegisterInput())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindInternal))

	_, lookupErr := st.Users().ByEmail("amina@example.com")
	assert.ErrorIs(t, lookupErr, store.ErrNotFound, "user row must not survive the rollback")
	assert.Zero(t, st.Writes())
}

func TestRegisterGoogle_RequiresProfilePicture(t *testing.T) {
	st := NewFakeStore()
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	_, err := svc.RegisterGoogle(GoogleRegisterInput{
		FirstName: "Amina",
		LastName:  "Hassan",
		Email:     "amina@example.com",
		Phone:     "01001234567",
		CarNumber: "1234",
		CarColor:  "red",
		CarModel:  "corolla",
	})

	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "Profile Picture")
	assert.Zero(t, st.Writes())
}

func TestRegisterGoogle_CreatesSingleFederatedRow(t *testing.T) {
	st := NewFakeStore()
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	user, err := svc.RegisterGoogle(GoogleRegisterInput{
		FirstName:      "Amina",
		LastName:       "Hassan",
		Email:          "amina@example.com",
		Phone:          "01001234567",
		CarNumber:      "1234",
		CarColor:       "red",
		CarModel:       "corolla",
		ProfilePicture: "http://localhost:3001/uploads/p.png",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored, err := st.GoogleUsers().ByEmail("amina@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1234", stored.CarNumber)
	assert.Equal(t, "http://localhost:3001/uploads/p.png", stored.ProfilePicture)
	assert.Equal(t, 1, st.Writes())
}

func TestRegisterGoogle_BlocksCrossFamilyEmail(t *testing.T) {
	st := NewFakeStore()
	require.NoError(t, st.Users().Create(&models.User{Email: "amina@example.com"}))
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	_, err := svc.RegisterGoogle(GoogleRegisterInput{
		FirstName:      "Amina",
		LastName:       "Hassan",
		Email:          "amina@example.com",
		Phone:          "01001234567",
		CarNumber:      "9999",
		CarColor:       "red",
		CarModel:       "corolla",
		ProfilePicture: "http://localhost:3001/uploads/p.png",
	})

	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestSignUp_CreatesUserWithoutCar(t *testing.T) {
	st := NewFakeStore()
	svc := NewRegistrationService(st, &FakeMailer{}, "support@example.com")

	user, err := svc.SignUp(SignUpInput{
		FirstName: "Amina",
		LastName:  "Hassan",
		Email:     "amina@example.com",
		Phone:     "01001234567",
		Password:  "Str0ng!Pass",
	})
	require.NoError(t, err)

	_, carErr := st.Cars().ByUserID(user.ID)
	assert.Error(t, carErr)
}
