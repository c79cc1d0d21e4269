package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/models"
)

func newOTPFixture(t *testing.T) (*OTPService, *MemoryOTPStore, *FakeStore) {
	t.Helper()
	st := NewFakeStore()
	codes := NewMemoryOTPStore()
	svc := NewOTPService(st, codes, &FakeMailer{}, 6, time.Minute)
	return svc, codes, st
}

func issuedCode(t *testing.T, codes *MemoryOTPStore, email string) string {
	t.Helper()
	entry, ok := codes.Get(email)
	require.True(t, ok, "no code issued for %s", email)
	return entry.Code
}

func TestOTP_SendRequiresExistingAccount(t *testing.T) {
	svc, codes, _ := newOTPFixture(t)

	err := svc.Send("nobody@x.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, ok := codes.Get("nobody@x.com")
	assert.False(t, ok, "no code must be stored for unknown accounts")
}

func TestOTP_SendWithoutVerificationSkipsAccountCheck(t *testing.T) {
	svc, codes, _ := newOTPFixture(t)

	require.NoError(t, svc.SendWithoutVerification("nobody@x.com"))
	assert.Len(t, issuedCode(t, codes, "nobody@x.com"), 6)
}

func TestOTP_VerifyConsumesCode(t *testing.T) {
	svc, codes, st := newOTPFixture(t)
	require.NoError(t, st.Users().Create(&models.User{Email: "a@x.com"}))

	require.NoError(t, svc.Send("a@x.com"))
	code := issuedCode(t, codes, "a@x.com")

	require.NoError(t, svc.Verify("a@x.com", code))

	// Single-use: a second verify with the same code finds nothing.
	err := svc.Verify("a@x.com", code)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOTP_VerifyWrongCodeKeepsEntryLive(t *testing.T) {
	svc, codes, _ := newOTPFixture(t)

	require.NoError(t, svc.SendWithoutVerification("a@x.com"))
	code := issuedCode(t, codes, "a@x.com")

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	err := svc.Verify("a@x.com", wrong)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	// Entry survives the mismatch; the right code still works.
	require.NoError(t, svc.Verify("a@x.com", code))
}

func TestOTP_VerifyExpiredCodeDeletesEntry(t *testing.T) {
	svc, codes, _ := newOTPFixture(t)

	require.NoError(t, svc.SendWithoutVerification("a@x.com"))
	code := issuedCode(t, codes, "a@x.com")

	svc.now = func() time.Time { return time.Now().Add(61 * time.Second) }

	err := svc.Verify("a@x.com", code)
	assert.True(t, apperr.IsKind(err, apperr.KindExpired))

	_, ok := codes.Get("a@x.com")
	assert.False(t, ok, "expired entry must be removed")
}

func TestOTP_ReissueReplacesPriorCode(t *testing.T) {
	svc, codes, _ := newOTPFixture(t)

	require.NoError(t, svc.SendWithoutVerification("a@x.com"))
	first := issuedCode(t, codes, "a@x.com")

	// Force a distinct second code so the replacement is observable.
	for i := 0; i < 50; i++ {
		require.NoError(t, svc.SendWithoutVerification("a@x.com"))
		if issuedCode(t, codes, "a@x.com") != first {
			break
		}
	}
	second := issuedCode(t, codes, "a@x.com")
	if first == second {
		t.Skip("could not draw a distinct code")
	}

	err := svc.Verify("a@x.com", first)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "stale code must no longer verify")
	require.NoError(t, svc.Verify("a@x.com", second))
}

func TestOTP_VerifyMissingFields(t *testing.T) {
	svc, _, _ := newOTPFixture(t)

	assert.True(t, apperr.IsKind(svc.Verify("", "123456"), apperr.KindValidation))
	assert.True(t, apperr.IsKind(svc.Verify("a@x.com", ""), apperr.KindValidation))
}
