package unitofwork

import (
	"context"

	"github.com/Fordjour12/monthly-zen-sub002/internal/repository/contract"
)

// UnitOfWork groups the planning repositories over one connection, with
// optional transaction control. The rollover sequence runs its archive and
// create steps inside one Begin/Commit pair so a failure cannot leave a
// user without a current period.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	QuotaRepository() contract.QuotaRepository
	PlanDraftRepository() contract.PlanDraftRepository
	GenerationJobRepository() contract.GenerationJobRepository
}
