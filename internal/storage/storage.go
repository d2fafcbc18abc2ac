package storage

import (
	"github.com/cockroachdb/errors"

	"github.com/biqgook/raffletool/internal/models"
)

// ErrUserExists is returned when adding a username already in the directory.
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when a username is not in the directory.
var ErrUserNotFound = errors.New("user not found")

// Storage defines the contact directory: Reddit username to payment and
// Discord contact names.
type Storage interface {
	// GetUser looks a user up by Reddit username.
	GetUser(username string) (*models.User, error)

	// ListUsers returns all users ordered by Reddit username.
	ListUsers() ([]*models.User, error)

	// AddUser inserts a new user; ErrUserExists on duplicate username.
	AddUser(user *models.User) error

	// UpdateUser rewrites a user's contact names; ErrUserNotFound if absent.
	UpdateUser(user *models.User) error

	// DeleteUser removes a user; ErrUserNotFound if absent.
	DeleteUser(username string) error

	// Close closes the storage connection.
	Close() error
}
