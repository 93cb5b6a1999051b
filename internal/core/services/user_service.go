package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
	"github.com/SscSPs/litally_fintech_api/internal/dto"
	"github.com/SscSPs/litally_fintech_api/internal/utils"
	"github.com/google/uuid"
)

// TokenConfig configures the access tokens issued on login.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokens   TokenConfig
}

// NewUserService creates the user and authentication service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, tokens TokenConfig) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, tokens: tokens}
}

// Register creates a CUSTOMER. Admins can only be promoted by another admin.
func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, err
	}

	now := s.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		UserType:     domain.UserTypeCustomer,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: user with this email already exists", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

// Login checks credentials and issues a signed access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, "", err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login with wrong password", slog.String("user_id", user.UserID))
		return nil, "", fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}

	token, err := utils.GenerateJWT(user.UserID, s.tokens.Secret, s.tokens.Expiry, s.tokens.Issuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue access token", slog.String("user_id", user.UserID))
		return nil, "", err
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return user, token, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}

// UpdateProfile changes the fields present in req and keeps the rest.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	firstName, lastName := current.FirstName, current.LastName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}

	updated, err := s.userRepo.UpdateUserProfile(ctx, userID, firstName, lastName, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		}
		return nil, err
	}
	return updated, nil
}

func (s *userService) UpdateUserType(ctx context.Context, userID string, userType domain.UserType) (*domain.User, error) {
	if !userType.IsValid() {
		return nil, apperrors.NewValidationError([]apperrors.FieldError{{
			Field:   "userType",
			Message: "must be one of: CUSTOMER ADMIN",
		}})
	}

	updated, err := s.userRepo.UpdateUserType(ctx, userID, userType, s.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user type", slog.String("user_id", userID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "User type updated",
		slog.String("user_id", userID),
		slog.String("user_type", string(userType)))
	return updated, nil
}
