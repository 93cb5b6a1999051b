package services

import (
	"context"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
	UpdateUserType(ctx context.Context, userID string, userType domain.UserType) (*domain.User, error)
}

// AuthSvc handles registration and credential checks.
type AuthSvc interface {
	// Register creates a CUSTOMER user with a hashed password.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Login verifies credentials and returns the user together with a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}
