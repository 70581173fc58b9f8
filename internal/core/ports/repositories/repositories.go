package repositories

// RepositoryProvider bundles all repository implementations for injection into
// the service container.
type RepositoryProvider struct {
	RateRepo        RateRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	UserRepo        UserRepositoryFacade
	GoalRepo        GoalRepositoryFacade
}
