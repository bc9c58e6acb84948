package storage

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	"placar-backend/models"
)

// User accounts live in their own blob under a separate key, so wiping
// league data never touches accounts. The list is small and follows the
// same load-mutate-save shape as everything else.

func (s *Service) Users() []models.StoredUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers()
}

func (s *Service) loadUsers() []models.StoredUser {
	raw, ok, err := s.store.Get(usersKey)
	if err != nil {
		logrus.WithError(err).Warn("failed to read users, using empty list")
		return []models.StoredUser{}
	}
	if !ok {
		return []models.StoredUser{}
	}

	var users []models.StoredUser
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		logrus.WithError(err).Warn("user blob is corrupt, using empty list")
		return []models.StoredUser{}
	}
	return users
}

// FindUserByEmail matches case-insensitively.
func (s *Service) FindUserByEmail(email string) (models.StoredUser, bool) {
	for _, u := range s.Users() {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.StoredUser{}, false
}

func (s *Service) FindUserByID(id string) (models.StoredUser, bool) {
	for _, u := range s.Users() {
		if u.ID == id {
			return u, true
		}
	}
	return models.StoredUser{}, false
}

// AddUser appends a new account. It fails when the email is already
// registered or the blob cannot be written.
func (s *Service) AddUser(user models.StoredUser) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadUsers()
	for _, u := range users {
		if strings.EqualFold(u.Email, user.Email) {
			return false
		}
	}
	users = append(users, user)

	raw, err := json.Marshal(users)
	if err != nil {
		logrus.WithError(err).Error("failed to serialize users")
		return false
	}
	if err := s.store.Set(usersKey, string(raw)); err != nil {
		logrus.WithError(err).Error("failed to write users")
		return false
	}
	return true
}
