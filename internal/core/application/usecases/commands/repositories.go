// Package commands contains the operations that change job state: creation, quoting,
// claim and offer arbitration, execution, cancellation and the delayed expiry checks.
// Every handler follows the same pattern: validate the command, open a unit of work,
// plan the change with the lifecycle state machine, commit it with one conditional
// write, and only then notify users in a separate best-effort step.
package commands

import (
	"context"

	"jobmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// DirectoryFactory provides access to the contractor directory. Obtained after
	// Commit, it reads outside the finished transaction.
	DirectoryFactory interface {
		ContractorDirectory() ports.ContractorDirectory
	}

	// ChatFactory provides access to chat channel provisioning within a transaction.
	ChatFactory interface {
		ChatChannels() ports.ChatChannels
	}

	// JobUoW manages transactions for operations that only change the job row.
	// The directory is included to resolve the contractor's user for notifications.
	JobUoW interface {
		TxManager
		JobRepoFactory
		DirectoryFactory
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}

	// UoW manages transactions that span jobs, quotes, assignments and chat channels.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   rows, err := uow.JobRepository().ConditionalUpdate(ctx, tr)
	//   // ... replace assignments, provision chat
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		JobRepoFactory
		QuoteRepoFactory
		DirectoryFactory
		ChatFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
