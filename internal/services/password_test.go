package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/utils"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Str0ng!Pass", true},
		{"Aa1@aaaa", true},
		{"short1A!", true},
		{"Aa1@aaa", false},        // too short
		{"alllower1!", false},     // no upper
		{"ALLUPPER1!", false},     // no lower
		{"NoDigits!!", false},     // no digit
		{"NoSymbol11", false},     // no symbol
		{"Has Space1!", false},    // space is outside the allowed classes
		{"Bad#Symbol1", false},    // # is not an allowed symbol
		{"", false},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, ValidPassword(test.password), "password %q", test.password)
	}
}

func TestReset_UpdatesHash(t *testing.T) {
	st := NewFakeStore()
	oldHash, err := utils.HashPassword("Old!Pass1")
	require.NoError(t, err)
	require.NoError(t, st.Users().Create(&models.User{
		Email:        "a@x.com",
		FirstName:    "A",
		PasswordHash: oldHash,
	}))

	mailer := &FakeMailer{}
	svc := NewPasswordService(st, mailer, "support@example.com")

	require.NoError(t, svc.Reset("a@x.com", "New!Pass1"))

	user, err := st.Users().ByEmail("a@x.com")
	require.NoError(t, err)
	assert.False(t, utils.CheckPassword(user.PasswordHash, "Old!Pass1"))
	assert.True(t, utils.CheckPassword(user.PasswordHash, "New!Pass1"))
}

func TestReset_RejectsWeakPassword(t *testing.T) {
	st := NewFakeStore()
	require.NoError(t, st.Users().Create(&models.User{Email: "a@x.com"}))
	svc := NewPasswordService(st, &FakeMailer{}, "support@example.com")

	err := svc.Reset("a@x.com", "weak")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestReset_RejectsSamePassword(t *testing.T) {
	st := NewFakeStore()
	hash, err := utils.HashPassword("Same!Pass1")
	require.NoError(t, err)
	require.NoError(t, st.Users().Create(&models.User{
		Email:        "a@x.com",
		PasswordHash: hash,
	}))
	svc := NewPasswordService(st, &FakeMailer{}, "support@example.com")

	resetErr := svc.Reset("a@x.com", "Same!Pass1")
	require.Error(t, resetErr)
	assert.True(t, apperr.IsKind(resetErr, apperr.KindValidation))

	user, err := st.Users().ByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, hash, user.PasswordHash, "hash must be untouched")
}

func TestReset_UnknownEmailIsNotFound(t *testing.T) {
	svc := NewPasswordService(NewFakeStore(), &FakeMailer{}, "support@example.com")

	err := svc.Reset("nobody@x.com", "New!Pass1")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
