package http

import (
	"slices"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the gateway after authentication.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-Id"
)

// actorFrom reads the caller from the identity headers and requires one of the
// allowed roles. The system role is never accepted from outside.
func actorFrom(ctx echo.Context, operation string, allowed ...job.Role) (job.Actor, error) {
	role, err := job.ParseRole(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return job.Actor{}, err
	}

	rawID := ctx.Request().Header.Get(HeaderActorID)
	if rawID == "" {
		return job.Actor{}, errs.NewValueIsRequiredError(HeaderActorID)
	}
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return job.Actor{}, err
	}

	if role == job.RoleSystem || !slices.Contains(allowed, role) {
		return job.Actor{}, errs.NewForbiddenError(string(role), "operation", operation)
	}
	return job.Actor{Role: role, ID: id}, nil
}
