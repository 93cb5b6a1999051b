package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their login email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves every user.
	FindUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate if the email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserProfile updates first and last name.
	UpdateUserProfile(ctx context.Context, userID, firstName, lastName string, now time.Time) (*domain.User, error)

	// UpdateUserType changes the user's type.
	UpdateUserType(ctx context.Context, userID string, userType domain.UserType, now time.Time) (*domain.User, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
