package repositories

// RepositoryProvider holds instances of all persistence repositories and is
// handed to the service container during wiring.
type RepositoryProvider struct {
	UserRepo UserRepositoryFacade
}
