// Package postgres provides the GORM-based Unit of Work over the job, quote,
// contractor and chat tables, plus the goose migration runner.
//
// A unit of work wraps one database transaction. Repositories obtained after Begin
// share it, so a claim's conditional write, its assignments and its chat channel
// commit or roll back together:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	rows, err := uow.JobRepository().ConditionalUpdate(ctx, tr)
//	// ... replace assignments, provision chat
//
//	return uow.Commit(ctx)
//
// Each goroutine must use its own UnitOfWork.
package postgres

import (
	"context"
	"time"

	"jobmatch/internal/adapters/out/postgres/chatrepo"
	"jobmatch/internal/adapters/out/postgres/contractorrepo"
	"jobmatch/internal/adapters/out/postgres/jobrepo"
	"jobmatch/internal/adapters/out/postgres/quoterepo"
	"jobmatch/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// now stamps rows the repositories create on their own, such as chat channels.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, time.Now)
func NewGormUnitOfWorkFactory(db *gorm.DB, now func() time.Time) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, now: now}
}

// Create produces a new UnitOfWork with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, now: f.now}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db  *gorm.DB
	tx  *gorm.DB
	now func() time.Time
}

// Begin opens the transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction when none
// is open, which makes the deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// JobRepository returns the job store bound to the open transaction, or to the pool
// when none is open.
func (uow *GormUnitOfWork) JobRepository() ports.JobRepository {
	return jobrepo.NewGormJobRepository(uow.conn())
}

// QuoteRepository returns the quote store bound to the current transaction.
func (uow *GormUnitOfWork) QuoteRepository() ports.QuoteRepository {
	return quoterepo.NewGormQuoteRepository(uow.conn())
}

// ContractorDirectory returns the contractor directory bound to the current transaction.
func (uow *GormUnitOfWork) ContractorDirectory() ports.ContractorDirectory {
	return contractorrepo.NewGormContractorDirectory(uow.conn())
}

// ChatChannels returns the chat channel store bound to the current transaction.
func (uow *GormUnitOfWork) ChatChannels() ports.ChatChannels {
	return chatrepo.NewGormChatChannels(uow.conn(), uow.now)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
