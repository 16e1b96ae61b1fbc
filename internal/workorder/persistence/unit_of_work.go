package persistence

import (
	"context"

	"dcops-server/internal/infra/sql"
	"dcops-server/internal/workorder/usecases"
)

func NewUnitOfWork(orm sql.ORM) *SimpleUnitOfWork {
	return &SimpleUnitOfWork{orm: orm}
}

var _ usecases.UnitOfWork = (*SimpleUnitOfWork)(nil)

// SimpleUnitOfWork opens one database transaction and hands the callback
// repositories bound to it. A callback error rolls the transaction back.
type SimpleUnitOfWork struct {
	orm sql.ORM
}

func (u *SimpleUnitOfWork) Do(ctx context.Context, fn func(usecases.TxRepos) error) error {
	return u.orm.Transaction(func(tx sql.ORM) error {
		repos := usecases.TxRepos{
			WorkOrders:    &SimpleWorkOrderRepository{orm: tx},
			Assets:        &SimpleAssetRepository{orm: tx},
			Relationships: &SimpleRelationshipRepository{orm: tx},
			ChangeLogs:    &SimpleChangeLogRepository{orm: tx},
		}
		return fn(repos)
	})
}
