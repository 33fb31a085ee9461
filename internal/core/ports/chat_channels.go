package ports

import (
	"context"

	"jobmatch/internal/core/domain/model/kernel"
)

// ChatChannels provisions the conversation between a customer and the contractor
// that won a job. Transcript storage is out of scope; only the channel record is
// created, inside the claim's transaction.
type ChatChannels interface {
	Provision(ctx context.Context, jobID, customerUserID, contractorUserID kernel.UUID) error
}
