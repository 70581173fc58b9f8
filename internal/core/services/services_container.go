package services

import (
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The publisher may be nil, which disables ledger event publishing.
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	source portssvc.RateSource,
	publisher portssvc.LedgerEventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Rate = NewRateService(repos.RateRepo, source)
	container.User = NewUserService(repos.UserRepo, repos.RateRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, container.User, container.Rate, publisher)
	container.Goal = NewGoalService(repos.GoalRepo)

	return container
}
