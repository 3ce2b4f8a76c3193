package uow

import (
	"context"

	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderitemrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/iorderrepo"
	"github.com/ceibacafe/ordering/internal/dal/interfaces/ioutboxrepo"
	"github.com/ceibacafe/ordering/internal/dal/postgres"
	orderrepo "github.com/ceibacafe/ordering/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/ceibacafe/ordering/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/ceibacafe/ordering/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork hands the same transaction to every repository so that the
// order, its items and the outbox event commit or roll back together.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	pool := client.Pool()
	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}
