package services

import (
	"github.com/SscSPs/litally_fintech_api/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/litally_fintech_api/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/litally_fintech_api/internal/core/ports/services"
	"github.com/SscSPs/litally_fintech_api/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	gateway gateways.PaymentGateway,
	publisher gateways.EventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The access policy is shared by every service that guards account data.
	container.Access = NewAccessPolicy(repos.UserRepo)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAccessPolicy(container.Access),
	)

	container.Transaction = NewTransactionService(
		repos.AccountRepo,
		repos.TransactionRepo,
		gateway,
		WithTransactionAccessPolicy(container.Access),
		WithEventPublisher(publisher),
		WithGatewayTimeout(cfg.GatewayTimeout),
	)

	container.User = NewUserService(repos.UserRepo, TokenConfig{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiryDuration,
		Issuer: cfg.JWTIssuer,
	})

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.UserSvcFacade        = (*userService)(nil)
	_ portssvc.AccessPolicySvc      = (*accessPolicy)(nil)
)
