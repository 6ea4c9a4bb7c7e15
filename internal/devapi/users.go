package devapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userRecord struct {
	User
	hash []byte
}

type UserStore struct {
	mu      sync.RWMutex
	byEmail map[string]userRecord
	byID    map[string]userRecord
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]userRecord),
		byID:    make(map[string]userRecord),
	}
}

func (s *UserStore) Create(name, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return User{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	rec := userRecord{
		User: User{
			ID:    "u_" + uuid.NewString(),
			Name:  strings.TrimSpace(name),
			Email: email,
		},
		hash: hash,
	}
	s.byEmail[email] = rec
	s.byID[rec.ID] = rec
	return rec.User, nil
}

func (s *UserStore) Verify(email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	s.mu.RLock()
	rec, ok := s.byEmail[email]
	s.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return rec.User, nil
}

func (s *UserStore) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	return rec.User, ok
}
