package unitofwork

import "context"

// RepositoryFactory creates a short-lived UnitOfWork per request.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
