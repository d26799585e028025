package store

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

const usersCollection = "users"

// UserStore owns the users document: a map from stringified account id to
// user record. One mutex serializes the whole load-mutate-save cycle, so a
// read always reflects the last completed write.
type UserStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewUserStore(dataDir string, log *zap.Logger) *UserStore {
	return &UserStore{path: filepath.Join(dataDir, "users.json"), log: log}
}

func userKey(id int64) string { return strconv.FormatInt(id, 10) }

// load assumes s.mu is held. Read failures fall back to an empty collection
// (logged); writes never fall back.
func (s *UserStore) load() map[string]*models.User {
	users := make(map[string]*models.User)
	err := readDocument(s.path, &users)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error("users document unreadable",
			zap.String("path", s.path), zap.Error(err))
		return make(map[string]*models.User)
	}
	return users
}

func (s *UserStore) save(op string, users map[string]*models.User) error {
	if err := writeDocument(s.path, users); err != nil {
		return &models.PersistenceError{Collection: usersCollection, Op: op, Err: err}
	}
	return nil
}

// GetAll returns every user record. Records are fresh unmarshals, safe for
// the caller to mutate.
func (s *UserStore) GetAll() ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.load()
	out := make([]*models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u)
	}
	return out, nil
}

func (s *UserStore) GetByID(id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.load()[userKey(id)]
	if !ok {
		return nil, models.ErrNotFound
	}
	return u, nil
}

func (s *UserStore) Upsert(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.load()
	users[userKey(u.UserID)] = u
	return s.save("upsert", users)
}

func (s *UserStore) ByRole(role models.UserRole) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.User
	for _, u := range s.load() {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

// Update applies mutate to one record inside the collection's critical
// section and persists the result. Returns the updated record.
func (s *UserStore) Update(id int64, mutate func(*models.User) error) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.load()
	u, ok := users[userKey(id)]
	if !ok {
		return nil, models.ErrNotFound
	}
	if err := mutate(u); err != nil {
		return nil, err
	}
	if err := s.save("update", users); err != nil {
		return nil, err
	}
	return u, nil
}
