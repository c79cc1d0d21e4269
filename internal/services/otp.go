package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/example/roadhelper/internal/apperr"
	"github.com/example/roadhelper/internal/store"
	"github.com/example/roadhelper/internal/utils"
)

// OTPEntry is a live one-time code for an email.
type OTPEntry struct {
	Code      string
	ExpiresAt time.Time
}

// OTPStore holds at most one live entry per email. Implementations must be
// safe for concurrent use.
type OTPStore interface {
	Put(email string, entry OTPEntry)
	Get(email string) (OTPEntry, bool)
	Delete(email string)
}

// MemoryOTPStore is the process-local OTPStore. State does not survive a
// restart and is not shared across instances.
type MemoryOTPStore struct {
	mu      sync.Mutex
	entries map[string]OTPEntry
}

// NewMemoryOTPStore constructs an empty in-memory store.
func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{entries: make(map[string]OTPEntry)}
}

func (s *MemoryOTPStore) Put(email string, entry OTPEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = entry
}

func (s *MemoryOTPStore) Get(email string) (OTPEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	return entry, ok
}

func (s *MemoryOTPStore) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// OTPService issues and verifies short-lived numeric codes per email.
// Codes are single-use: a successful verify consumes the entry.
type OTPService struct {
	store  store.Store
	codes  OTPStore
	mailer Mailer
	length int
	ttl    time.Duration
	now    func() time.Time
}

// NewOTPService constructs an OTPService over the given code store.
func NewOTPService(st store.Store, codes OTPStore, mailer Mailer, length int, ttl time.Duration) *OTPService {
	return &OTPService{
		store:  st,
		codes:  codes,
		mailer: mailer,
		length: length,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Send issues a code for an email that must already belong to a local
// account.
func (s *OTPService) Send(email string) error {
	if email == "" {
		return apperr.Validationf("email is required")
	}

	taken, err := s.store.Users().EmailTaken(email)
	if err != nil {
		return apperr.Internal(err)
	}
	if !taken {
		return apperr.NotFoundf("email not found in our database")
	}

	return s.issue(email)
}

// SendWithoutVerification issues a code without requiring an account.
func (s *OTPService) SendWithoutVerification(email string) error {
	if email == "" {
		return apperr.Validationf("email is required")
	}
	return s.issue(email)
}

func (s *OTPService) issue(email string) error {
	code, err := utils.GenerateOTP(s.length)
	if err != nil {
		return apperr.Internal(err)
	}

	// Re-issue always replaces any prior entry for the email.
	s.codes.Put(email, OTPEntry{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	})

	sendAsync(s.mailer, email, "Your OTP Code",
		fmt.Sprintf("<p>Your OTP is %s Thank You For Register</p>", code))

	return nil
}

// Verify checks a submitted code. An expired entry is deleted and reported as
// expired; a matching code is consumed; a mismatch keeps the entry live.
func (s *OTPService) Verify(email, code string) error {
	if email == "" || code == "" {
		return apperr.Validationf("email and otp are required")
	}

	entry, ok := s.codes.Get(email)
	if !ok {
		return apperr.NotFoundf("otp not found for this email")
	}

	if s.now().After(entry.ExpiresAt) {
		s.codes.Delete(email)
		return apperr.Expiredf("otp expired")
	}

	if entry.Code != code {
		return apperr.Validationf("otp is invalid")
	}

	s.codes.Delete(email)
	return nil
}
