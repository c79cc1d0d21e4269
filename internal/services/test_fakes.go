package services

import (
	"sort"
	"sync"

	"github.com/example/roadhelper/internal/models"
	"github.com/example/roadhelper/internal/store"
)

// FakeStore is a test-only in-memory store.Store. It counts writes and
// exposes error fields for behavior injection; Transaction snapshots state so
// rollback semantics can be asserted.
type FakeStore struct {
	users       map[string]*models.User
	googleUsers map[string]*models.GoogleUser
	cars        map[uint]*models.CarSettings
	licenses    map[string]*models.DriverLicense
	images      map[uint][]models.UserImage
	nextID      uint
	writes      int

	userCreateErr error
	carCreateErr  error
}

// NewFakeStore constructs an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		users:       make(map[string]*models.User),
		googleUsers: make(map[string]*models.GoogleUser),
		cars:        make(map[uint]*models.CarSettings),
		licenses:    make(map[string]*models.DriverLicense),
		images:      make(map[uint][]models.UserImage),
	}
}

func (f *FakeStore) Users() store.UserRepo             { return fakeUsers{f} }
func (f *FakeStore) GoogleUsers() store.GoogleUserRepo { return fakeGoogleUsers{f} }
func (f *FakeStore) Cars() store.CarRepo               { return fakeCars{f} }
func (f *FakeStore) Licenses() store.LicenseRepo       { return fakeLicenses{f} }
func (f *FakeStore) Images() store.ImageRepo           { return fakeImages{f} }

// Transaction snapshots all tables, runs fn, and restores the snapshot when
// fn fails.
func (f *FakeStore) Transaction(fn func(store.Store) error) error {
	users := cloneMap(f.users)
	googleUsers := cloneMap(f.googleUsers)
	cars := cloneMap(f.cars)
	licenses := cloneMap(f.licenses)
	nextID := f.nextID
	writes := f.writes

	if err := fn(f); err != nil {
		f.users = users
		f.googleUsers = googleUsers
		f.cars = cars
		f.licenses = licenses
		f.nextID = nextID
		f.writes = writes
		return err
	}
	return nil
}

// Writes reports how many row mutations have been committed.
func (f *FakeStore) Writes() int {
	return f.writes
}

func cloneMap[K comparable, V any](src map[K]*V) map[K]*V {
	dst := make(map[K]*V, len(src))
	for k, v := range src {
		cp := *v
		dst[k] = &cp
	}
	return dst
}

type fakeUsers struct {
	s *FakeStore
}

func (r fakeUsers) ByEmail(email string) (*models.User, error) {
	user, ok := r.s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r fakeUsers) ByID(id uint) (*models.User, error) {
	for _, user := range r.s.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r fakeUsers) EmailTaken(email string) (bool, error) {
	_, ok := r.s.users[email]
	return ok, nil
}

func (r fakeUsers) Create(user *models.User) error {
	if r.s.userCreateErr != nil {
		return r.s.userCreateErr
	}
	r.s.nextID++
	user.ID = r.s.nextID
	cp := *user
	r.s.users[user.Email] = &cp
	r.s.writes++
	return nil
}

func (r fakeUsers) UpdateProfile(id uint, firstName, lastName, phone string) error {
	for _, user := range r.s.users {
		if user.ID == id {
			user.FirstName = firstName
			user.LastName = lastName
			user.Phone = phone
			r.s.writes++
			return nil
		}
	}
	return nil
}

func (r fakeUsers) UpdatePassword(email, passwordHash string) error {
	if user, ok := r.s.users[email]; ok {
		user.PasswordHash = passwordHash
		r.s.writes++
	}
	return nil
}

func (r fakeUsers) List(limit, offset int) ([]models.User, int64, error) {
	all := make([]models.User, 0, len(r.s.users))
	for _, user := range r.s.users {
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type fakeGoogleUsers struct {
	s *FakeStore
}

func (r fakeGoogleUsers) ByEmail(email string) (*models.GoogleUser, error) {
	user, ok := r.s.googleUsers[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r fakeGoogleUsers) EmailTaken(email string) (bool, error) {
	_, ok := r.s.googleUsers[email]
	return ok, nil
}

func (r fakeGoogleUsers) CarNumberTaken(number string) (bool, error) {
	for _, user := range r.s.googleUsers {
		if user.CarNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeGoogleUsers) Create(user *models.GoogleUser) error {
	r.s.nextID++
	user.ID = r.s.nextID
	cp := *user
	r.s.googleUsers[user.Email] = &cp
	r.s.writes++
	return nil
}

func (r fakeGoogleUsers) Update(email string, user *models.GoogleUser) error {
	existing, ok := r.s.googleUsers[email]
	if !ok {
		return nil
	}
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Phone = user.Phone
	existing.ProfilePicture = user.ProfilePicture
	existing.CarNumber = user.CarNumber
	existing.CarColor = user.CarColor
	existing.CarModel = user.CarModel
	r.s.writes++
	return nil
}

type fakeCars struct {
	s *FakeStore
}

func (r fakeCars) ByUserID(userID uint) (*models.CarSettings, error) {
	car, ok := r.s.cars[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *car
	return &cp, nil
}

func (r fakeCars) PlateTaken(plateNumber string) (bool, error) {
	for _, car := range r.s.cars {
		if car.PlateNumber == plateNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeCars) Create(car *models.CarSettings) error {
	if r.s.carCreateErr != nil {
		return r.s.carCreateErr
	}
	r.s.nextID++
	car.ID = r.s.nextID
	cp := *car
	r.s.cars[car.UserID] = &cp
	r.s.writes++
	return nil
}

func (r fakeCars) Update(userID uint, car *models.CarSettings) error {
	existing, ok := r.s.cars[userID]
	if !ok {
		return nil
	}
	existing.Letters = car.Letters
	existing.PlateNumber = car.PlateNumber
	existing.CarColor = car.CarColor
	existing.CarModel = car.CarModel
	existing.LicenseNumber = car.LicenseNumber
	r.s.writes++
	return nil
}

type fakeLicenses struct {
	s *FakeStore
}

func (r fakeLicenses) ByEmail(email string) (*models.DriverLicense, error) {
	license, ok := r.s.licenses[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *license
	return &cp, nil
}

func (r fakeLicenses) Create(license *models.DriverLicense) error {
	r.s.nextID++
	license.ID = r.s.nextID
	cp := *license
	r.s.licenses[license.Email] = &cp
	r.s.writes++
	return nil
}

func (r fakeLicenses) Update(email, frontURL, backURL string) error {
	if license, ok := r.s.licenses[email]; ok {
		license.FrontImageURL = frontURL
		license.BackImageURL = backURL
		r.s.writes++
	}
	return nil
}

type fakeImages struct {
	s *FakeStore
}

func (r fakeImages) Create(image *models.UserImage) error {
	r.s.nextID++
	image.ID = r.s.nextID
	r.s.images[image.UserID] = append(r.s.images[image.UserID], *image)
	r.s.writes++
	return nil
}

func (r fakeImages) ByUserID(userID uint) ([]models.UserImage, error) {
	return r.s.images[userID], nil
}

// FakeMailer records sent mail. Safe for the async dispatch path.
type FakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *FakeMailer) Send(to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+": "+subject)
	return nil
}
