package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it after
// Begin share its transaction; repositories obtained after Commit or Rollback use the
// connection pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	JobRepository() JobRepository
	QuoteRepository() QuoteRepository
	ContractorDirectory() ContractorDirectory
	ChatChannels() ChatChannels
}
