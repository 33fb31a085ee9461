package commands

import (
	"context"
	"log/slog"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/ports"
)

// notificationStep delivers notifications after a lifecycle operation committed.
// Failures are logged and swallowed so they never reach the operation's caller.
type notificationStep struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

func newNotificationStep(notifier ports.Notifier, logger *slog.Logger, command string) notificationStep {
	if logger == nil {
		logger = slog.Default()
	}
	return notificationStep{
		notifier: notifier,
		logger:   logger.With("component", "commands", "command", command),
	}
}

func (s notificationStep) send(ctx context.Context, n ports.Notification) {
	if s.notifier == nil || len(n.TargetUserIDs) == 0 {
		return
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "notification failed",
			"event", n.Type,
			"targets", len(n.TargetUserIDs),
			"error", err,
		)
	}
}

// contractorUser resolves the account of a contractor for a notification. Call it after
// Commit so the lookup runs on the pool and cannot abort the transaction. A failed
// lookup only costs the notification, so it is logged instead of returned.
func (s notificationStep) contractorUser(ctx context.Context, dir ports.ContractorDirectory, contractorID *kernel.UUID) []kernel.UUID {
	if contractorID == nil {
		return nil
	}

	c, err := dir.Get(ctx, *contractorID)
	if err != nil {
		s.logger.WarnContext(ctx, "cannot resolve contractor for notification",
			"contractor_id", contractorID.String(),
			"error", err,
		)
		return nil
	}
	return []kernel.UUID{c.UserID()}
}

func jobPayload(jobID kernel.UUID, extra ...string) map[string]string {
	payload := map[string]string{"jobId": jobID.String()}
	for i := 0; i+1 < len(extra); i += 2 {
		payload[extra[i]] = extra[i+1]
	}
	return payload
}
