package repo

import (
	"errors"

	"github.com/fakturan-app/pricelist-api/internal/models"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert hits the unique email index.
	ErrEmailTaken = errors.New("email already registered")
)

type UserRepository interface {
	Create(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetByID(id int) (models.User, error)
}
