package pgsql

import (
	portsrepo "github.com/fintrackhq/fintrack_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories for injection into
// the service container.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RateRepo:        NewPgxRateRepository(pool),
		TransactionRepo: NewPgxTransactionRepository(pool),
		UserRepo:        NewPgxUserRepository(pool),
		GoalRepo:        NewPgxGoalRepository(pool),
	}
}
