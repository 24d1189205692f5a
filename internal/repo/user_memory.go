package repo

import (
	"strings"
	"sync"
	"time"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

// InMemoryUserRepository is a non-persistent UserRepository used by tests.
type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{nextID: 1}
}

func (r *InMemoryUserRepository) Create(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return models.User{}, ErrEmailTaken
		}
	}

	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// Delete removes a user; tests use it to simulate a deleted account behind a
// still-valid token.
func (r *InMemoryUserRepository) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return
		}
	}
}
