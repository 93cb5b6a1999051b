package services

import (
	"context"

	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
)

// AccessPolicySvc decides whether a caller may view or mutate account-scoped resources.
type AccessPolicySvc interface {
	// IsAdmin reports whether the user is an admin. Lookup failures yield false.
	IsAdmin(ctx context.Context, userID string) bool

	// IsOwnerOrAdmin reports whether userID owns the account or is an admin.
	IsOwnerOrAdmin(ctx context.Context, account domain.Account, userID string) bool

	// AuthorizeAccountAccess returns apperrors.ErrForbidden unless IsOwnerOrAdmin holds.
	AuthorizeAccountAccess(ctx context.Context, account domain.Account, userID string) error
}
