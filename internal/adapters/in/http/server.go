package http

import (
	"log/slog"
	"net/http"

	"jobmatch/internal/core/application/usecases/commands"
	"jobmatch/internal/core/application/usecases/queries"
	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// CreateJob handles POST /api/v1/jobs - a customer posts a new job.
func (s *Server) CreateJob(ctx echo.Context) error {
	actor, err := actorFrom(ctx, "create_job", job.RoleCustomer)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var body servers.CreateJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	draft, err := draftFrom(body)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	cmd, err := commands.NewCreateJobCommand(actor.ID, draft)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	created, err := s.handlers.CreateJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusCreated, presentJob(created))
}

// GetJob handles GET /api/v1/jobs/{jobId}.
func (s *Server) GetJob(ctx echo.Context, jobId openapi_types.UUID) error {
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	query, err := queries.NewGetJobQuery(jobID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	details, err := s.handlers.GetJob.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJobDetails(details))
}

// FindCandidates handles GET /api/v1/jobs/{jobId}/candidates.
func (s *Server) FindCandidates(ctx echo.Context, jobId openapi_types.UUID) error {
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	query, err := queries.NewFindCandidatesQuery(jobID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	candidates, err := s.handlers.Match.FindCandidates(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentCandidates(candidates))
}

// ClaimJob handles POST /api/v1/jobs/{jobId}/claim - a contractor takes an
// IMMEDIATE or SCHEDULED job with the given workers.
func (s *Server) ClaimJob(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "claim_job", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var body servers.ClaimJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	workerIDs := make([]kernel.UUID, len(body.WorkerIds))
	for i, raw := range body.WorkerIds {
		if workerIDs[i], err = kernel.UUIDFromGoogle(raw); err != nil {
			return respondError(ctx, s.logger, err)
		}
	}

	cmd, err := commands.NewClaimJobCommand(jobID, actor.ID, workerIDs)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	claimed, err := s.handlers.ClaimJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(claimed))
}

// SubmitQuote handles POST /api/v1/jobs/{jobId}/quotes. Submitting again revises
// the contractor's existing quote.
func (s *Server) SubmitQuote(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "submit_quote", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var body servers.SubmitQuoteJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	terms := quote.Terms{Amount: body.Amount, TotalAmount: body.TotalAmount}
	if body.AdvanceRequested != nil {
		terms.AdvanceRequested = *body.AdvanceRequested
	}
	if body.AdvanceAmount != nil {
		terms.AdvanceAmount = *body.AdvanceAmount
	}
	if body.Note != nil {
		terms.Note = *body.Note
	}

	cmd, err := commands.NewSubmitQuoteCommand(jobID, actor.ID, terms)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	stored, err := s.handlers.SubmitQuote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentQuote(stored))
}

// AcceptQuote handles POST /api/v1/jobs/{jobId}/quotes/{quoteId}/accept.
func (s *Server) AcceptQuote(ctx echo.Context, jobId openapi_types.UUID, quoteId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "accept_quote", job.RoleCustomer)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	quoteID, err := kernel.UUIDFromGoogle(quoteId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewAcceptQuoteCommand(jobID, quoteID, actor.ID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	offered, err := s.handlers.AcceptQuote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(offered))
}

// ConfirmOffer handles POST /api/v1/jobs/{jobId}/offer/confirm.
func (s *Server) ConfirmOffer(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "confirm_offer", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewConfirmOfferCommand(jobID, actor.ID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	accepted, err := s.handlers.ConfirmOffer.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(accepted))
}

// StartJob handles POST /api/v1/jobs/{jobId}/start.
func (s *Server) StartJob(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "start_job", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewStartJobCommand(jobID, actor.ID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	started, err := s.handlers.Execution.Start(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(started))
}

// CompleteJob handles POST /api/v1/jobs/{jobId}/complete.
func (s *Server) CompleteJob(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "complete_job", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCompleteJobCommand(jobID, actor.ID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	completed, err := s.handlers.Execution.Complete(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(completed))
}

// CancelJob handles POST /api/v1/jobs/{jobId}/cancel - by the owning customer or
// the assigned contractor.
func (s *Server) CancelJob(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "cancel_job", job.RoleCustomer, job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var body servers.CancelJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCancelJobCommand(jobID, actor, body.Reason)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	cancelled, err := s.handlers.CancelJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(cancelled))
}

// DisputeJob handles POST /api/v1/jobs/{jobId}/dispute - admin only.
func (s *Server) DisputeJob(ctx echo.Context, jobId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "dispute_job", job.RoleAdmin)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	var body servers.DisputeJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	jobID, err := kernel.UUIDFromGoogle(jobId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewDisputeJobCommand(jobID, actor.ID, body.Reason)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	disputed, err := s.handlers.DisputeJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentJob(disputed))
}

// CancelQuote handles DELETE /api/v1/quotes/{quoteId} - a contractor withdraws an
// unaccepted quote.
func (s *Server) CancelQuote(ctx echo.Context, quoteId openapi_types.UUID) error {
	actor, err := actorFrom(ctx, "cancel_quote", job.RoleContractor)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	quoteID, err := kernel.UUIDFromGoogle(quoteId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}

	cmd, err := commands.NewCancelQuoteCommand(quoteID, actor.ID)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	if err := s.handlers.CancelQuote.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// FindNearbyJobs handles GET /api/v1/contractors/{contractorId}/nearby-jobs.
func (s *Server) FindNearbyJobs(
	ctx echo.Context,
	contractorId openapi_types.UUID,
	params servers.FindNearbyJobsParams,
) error {
	contractorID, err := kernel.UUIDFromGoogle(contractorId)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	var radiusKm float64
	if params.RadiusKm != nil {
		radiusKm = *params.RadiusKm
	}

	query, err := queries.NewFindNearbyJobsQuery(contractorID, radiusKm)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	nearby, err := s.handlers.Match.FindNearbyJobs(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, s.logger, err)
	}
	return ctx.JSON(http.StatusOK, presentNearbyJobs(nearby))
}

func draftFrom(body servers.NewJob) (job.Draft, error) {
	jobType, err := job.ParseType(string(body.Type))
	if err != nil {
		return job.Draft{}, err
	}
	location, err := kernel.NewLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return job.Draft{}, err
	}

	draft := job.Draft{
		Title:              body.Title,
		Type:               jobType,
		Location:           location,
		WorkersNeeded:      body.WorkersNeeded,
		ScheduledStartDate: body.ScheduledStartDate,
	}
	if body.Description != nil {
		draft.Description = *body.Description
	}
	if body.RequiredSkills != nil {
		draft.RequiredSkills = *body.RequiredSkills
	}
	return draft, nil
}
