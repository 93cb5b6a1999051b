package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a user.
// Only customers may self-register; admins are promoted by another admin.
type RegisterUserRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=6"`
	FirstName string          `json:"firstName" validate:"required,max=100"`
	LastName  string          `json:"lastName" validate:"required,max=100"`
	UserType  domain.UserType `json:"userType,omitempty" validate:"omitempty,oneof=CUSTOMER"`
}

// Validate checks the request and normalises the email.
func (r *RegisterUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return runChecks(structTags(r))
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Validate checks the request and normalises the email.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return runChecks(structTags(r))
}

// UpdateProfileRequest defines the profile fields a user may change.
// Pointers distinguish omitted fields from empty ones.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1,max=100"`
}

// Validate checks the request.
func (r *UpdateProfileRequest) Validate() error {
	return runChecks(structTags(r))
}

// UpdateUserTypeRequest carries the new user type for an admin update.
type UpdateUserTypeRequest struct {
	UserType domain.UserType `json:"userType" validate:"required,oneof=CUSTOMER ADMIN"`
}

// Validate checks the request.
func (r *UpdateUserTypeRequest) Validate() error {
	return runChecks(structTags(r))
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string          `json:"userID"`
	Email     string          `json:"email"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	UserType  domain.UserType `json:"userType"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.LastUpdatedAt,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = ToUserResponse(&user)
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
