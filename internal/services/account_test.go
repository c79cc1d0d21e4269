package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
)

func seedLocalAccount(t *testing.T, st *FakeStore) *models.User {
	t.Helper()
	user := &models.User{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@x.com",
		Phone:     "1",
	}
	require.NoError(t, st.Users().Create(user))
	require.NoError(t, st.Cars().Create(&models.CarSettings{
		UserID:      user.ID,
		Letters:     "ABC",
		PlateNumber: "1234",
		CarColor:    "red",
		CarModel:    "corolla",
	}))
	return user
}

func TestUpdateUserAndCar_EmptyStringDoesNotOverwrite(t *testing.T) {
	st := NewFakeStore()
	seedLocalAccount(t, st)
	svc := NewAccountService(st)

	user, car, err := svc.UpdateUserAndCar("a@x.com", UpdateInput{
		FirstName: "",
		Phone:     "2",
	})
	require.NoError(t, err)

	assert.Equal(t, "A", user.FirstName, "empty input keeps stored value")
	assert.Equal(t, "2", user.Phone)
	assert.Equal(t, "1234", car.PlateNumber)

	stored, err := st.Users().ByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", stored.FirstName)
	assert.Equal(t, "2", stored.Phone)
}

func TestUpdateUserAndCar_ReturnsFullyMergedRecord(t *testing.T) {
	st := NewFakeStore()
	seedLocalAccount(t, st)
	svc := NewAccountService(st)

	user, car, err := svc.UpdateUserAndCar("a@x.com", UpdateInput{
		CarColor:      "blue",
		LicenseNumber: "L-99",
	})
	require.NoError(t, err)

	// Untouched fields come back populated so callers can diff input vs output.
	assert.Equal(t, "A", user.FirstName)
	assert.Equal(t, "B", user.LastName)
	assert.Equal(t, "ABC", car.Letters)
	assert.Equal(t, "blue", car.CarColor)
	assert.Equal(t, "L-99", car.LicenseNumber)
}

func TestUpdateUserAndCar_UnknownEmailIsNotFound(t *testing.T) {
	svc := NewAccountService(NewFakeStore())

	_, _, err := svc.UpdateUserAndCar("nobody@x.com", UpdateInput{Phone: "2"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateUserAndCar_MissingCarRowTolerated(t *testing.T) {
	st := NewFakeStore()
	user := &models.User{FirstName: "A", Email: "a@x.com", Phone: "1"}
	require.NoError(t, st.Users().Create(user))
	svc := NewAccountService(st)

	_, car, err := svc.UpdateUserAndCar("a@x.com", UpdateInput{CarColor: "blue"})
	require.NoError(t, err)
	assert.Equal(t, "blue", car.CarColor)
	assert.Empty(t, car.PlateNumber)
}

func strPtr(s string) *string { return &s }

func TestUpsertGoogleUser_CreateDefaultsAbsentFieldsToEmpty(t *testing.T) {
	st := NewFakeStore()
	svc := NewAccountService(st)

	user, created, err := svc.UpsertGoogleUser("g@x.com", GoogleUpsertInput{
		FirstName: strPtr("G"),
		// Phone deliberately absent.
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "", user.Phone, "absent field defaults to empty string on create")

	stored, err := st.GoogleUsers().ByEmail("g@x.com")
	require.NoError(t, err)
	assert.Equal(t, "G", stored.FirstName)
	assert.Equal(t, "", stored.Phone)
}

func TestUpsertGoogleUser_ExplicitEmptyOverwritesAbsentKeeps(t *testing.T) {
	st := NewFakeStore()
	require.NoError(t, st.GoogleUsers().Create(&models.GoogleUser{
		Email:     "g@x.com",
		FirstName: "G",
		Phone:     "555",
		CarColor:  "red",
	}))
	svc := NewAccountService(st)

	user, created, err := svc.UpsertGoogleUser("g@x.com", GoogleUpsertInput{
		Phone: strPtr(""), // explicit clear
		// CarColor absent: keeps old.
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "", user.Phone, "explicitly supplied empty value overwrites")
	assert.Equal(t, "red", user.CarColor, "absent field keeps the stored value")
	assert.Equal(t, "G", user.FirstName)
}

func TestUpsertGoogleUser_UploadedPictureWins(t *testing.T) {
	st := NewFakeStore()
	require.NoError(t, st.GoogleUsers().Create(&models.GoogleUser{
		Email:          "g@x.com",
		ProfilePicture: "http://old/pic.png",
	}))
	svc := NewAccountService(st)

	user, _, err := svc.UpsertGoogleUser("g@x.com", GoogleUpsertInput{
		ProfilePicture: strPtr("http://new/pic.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "http://new/pic.png", user.ProfilePicture)

	// Explicit empty clears the picture.
	user, _, err = svc.UpsertGoogleUser("g@x.com", GoogleUpsertInput{
		ProfilePicture: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "", user.ProfilePicture)

	// Absent keeps whatever is stored.
	user, _, err = svc.UpsertGoogleUser("g@x.com", GoogleUpsertInput{})
	require.NoError(t, err)
	assert.Equal(t, "", user.ProfilePicture)
}

func TestGetUserData_MissingCarYieldsEmptyRecord(t *testing.T) {
	st := NewFakeStore()
	user := &models.User{FirstName: "A", Email: "a@x.com"}
	require.NoError(t, st.Users().Create(user))
	svc := NewAccountService(st)

	got, car, err := svc.GetUserData("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Empty(t, car.PlateNumber)
}

func TestListUsers_Paginates(t *testing.T) {
	st := NewFakeStore()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		require.NoError(t, st.Users().Create(&models.User{Email: email}))
	}
	svc := NewAccountService(st)

	users, total, err := svc.ListUsers(2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, users, 1)
}
