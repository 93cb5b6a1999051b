package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/litally_fintech_api/internal/apperrors"
	"github.com/SscSPs/litally_fintech_api/internal/core/domain"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
)

// accessPolicy grants access to the owner of an account or to any admin.
type accessPolicy struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewAccessPolicy creates the owner-or-admin access policy.
func NewAccessPolicy(userRepo portsrepo.UserReader) portssvc.AccessPolicySvc {
	return &accessPolicy{userRepo: userRepo}
}

// IsAdmin fails closed: any lookup error or missing user means not an admin.
func (p *accessPolicy) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	user, err := p.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		p.LogWarn(ctx, "Admin lookup failed, treating user as non-admin",
			slog.String("user_id", userID),
			slog.String("error", err.Error()))
		return false
	}
	return user.IsAdmin()
}

func (p *accessPolicy) IsOwnerOrAdmin(ctx context.Context, account domain.Account, userID string) bool {
	if account.IsOwnedBy(userID) {
		return true
	}
	return p.IsAdmin(ctx, userID)
}

func (p *accessPolicy) AuthorizeAccountAccess(ctx context.Context, account domain.Account, userID string) error {
	if p.IsOwnerOrAdmin(ctx, account, userID) {
		return nil
	}
	p.LogWarn(ctx, "Account access denied",
		slog.String("account_id", account.AccountID),
		slog.String("user_id", userID))
	return apperrors.ErrForbidden
}
