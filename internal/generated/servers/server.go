package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// CreateJob (POST /api/v1/jobs)
	CreateJob(ctx echo.Context) error
	// GetJob (GET /api/v1/jobs/{jobId})
	GetJob(ctx echo.Context, jobId openapi_types.UUID) error
	// FindCandidates (GET /api/v1/jobs/{jobId}/candidates)
	FindCandidates(ctx echo.Context, jobId openapi_types.UUID) error
	// ClaimJob (POST /api/v1/jobs/{jobId}/claim)
	ClaimJob(ctx echo.Context, jobId openapi_types.UUID) error
	// SubmitQuote (POST /api/v1/jobs/{jobId}/quotes)
	SubmitQuote(ctx echo.Context, jobId openapi_types.UUID) error
	// AcceptQuote (POST /api/v1/jobs/{jobId}/quotes/{quoteId}/accept)
	AcceptQuote(ctx echo.Context, jobId openapi_types.UUID, quoteId openapi_types.UUID) error
	// ConfirmOffer (POST /api/v1/jobs/{jobId}/offer/confirm)
	ConfirmOffer(ctx echo.Context, jobId openapi_types.UUID) error
	// StartJob (POST /api/v1/jobs/{jobId}/start)
	StartJob(ctx echo.Context, jobId openapi_types.UUID) error
	// CompleteJob (POST /api/v1/jobs/{jobId}/complete)
	CompleteJob(ctx echo.Context, jobId openapi_types.UUID) error
	// CancelJob (POST /api/v1/jobs/{jobId}/cancel)
	CancelJob(ctx echo.Context, jobId openapi_types.UUID) error
	// DisputeJob (POST /api/v1/jobs/{jobId}/dispute)
	DisputeJob(ctx echo.Context, jobId openapi_types.UUID) error
	// CancelQuote (DELETE /api/v1/quotes/{quoteId})
	CancelQuote(ctx echo.Context, quoteId openapi_types.UUID) error
	// FindNearbyJobs (GET /api/v1/contractors/{contractorId}/nearby-jobs)
	FindNearbyJobs(ctx echo.Context, contractorId openapi_types.UUID, params FindNearbyJobsParams) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// CreateJob converts echo context to params.
func (w *ServerInterfaceWrapper) CreateJob(ctx echo.Context) error {
	return w.Handler.CreateJob(ctx)
}

// GetJob converts echo context to params.
func (w *ServerInterfaceWrapper) GetJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.GetJob(ctx, jobId)
}

// FindCandidates converts echo context to params.
func (w *ServerInterfaceWrapper) FindCandidates(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.FindCandidates(ctx, jobId)
}

// ClaimJob converts echo context to params.
func (w *ServerInterfaceWrapper) ClaimJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.ClaimJob(ctx, jobId)
}

// SubmitQuote converts echo context to params.
func (w *ServerInterfaceWrapper) SubmitQuote(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.SubmitQuote(ctx, jobId)
}

// AcceptQuote converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptQuote(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	quoteId, err := bindUUID(ctx, "quoteId")
	if err != nil {
		return err
	}
	return w.Handler.AcceptQuote(ctx, jobId, quoteId)
}

// ConfirmOffer converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOffer(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.ConfirmOffer(ctx, jobId)
}

// StartJob converts echo context to params.
func (w *ServerInterfaceWrapper) StartJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.StartJob(ctx, jobId)
}

// CompleteJob converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.CompleteJob(ctx, jobId)
}

// CancelJob converts echo context to params.
func (w *ServerInterfaceWrapper) CancelJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.CancelJob(ctx, jobId)
}

// DisputeJob converts echo context to params.
func (w *ServerInterfaceWrapper) DisputeJob(ctx echo.Context) error {
	jobId, err := bindUUID(ctx, "jobId")
	if err != nil {
		return err
	}
	return w.Handler.DisputeJob(ctx, jobId)
}

// CancelQuote converts echo context to params.
func (w *ServerInterfaceWrapper) CancelQuote(ctx echo.Context) error {
	quoteId, err := bindUUID(ctx, "quoteId")
	if err != nil {
		return err
	}
	return w.Handler.CancelQuote(ctx, quoteId)
}

// FindNearbyJobs converts echo context to params.
func (w *ServerInterfaceWrapper) FindNearbyJobs(ctx echo.Context) error {
	contractorId, err := bindUUID(ctx, "contractorId")
	if err != nil {
		return err
	}

	var params FindNearbyJobsParams
	err = runtime.BindQueryParameter("form", true, false, "radiusKm", ctx.QueryParams(), &params.RadiusKm)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter radiusKm: %s", err))
	}

	return w.Handler.FindNearbyJobs(ctx, contractorId, params)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for route registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes with baseURL prepended to every path.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/jobs", wrapper.CreateJob)
	router.GET(baseURL+"/api/v1/jobs/:jobId", wrapper.GetJob)
	router.GET(baseURL+"/api/v1/jobs/:jobId/candidates", wrapper.FindCandidates)
	router.POST(baseURL+"/api/v1/jobs/:jobId/claim", wrapper.ClaimJob)
	router.POST(baseURL+"/api/v1/jobs/:jobId/quotes", wrapper.SubmitQuote)
	router.POST(baseURL+"/api/v1/jobs/:jobId/quotes/:quoteId/accept", wrapper.AcceptQuote)
	router.POST(baseURL+"/api/v1/jobs/:jobId/offer/confirm", wrapper.ConfirmOffer)
	router.POST(baseURL+"/api/v1/jobs/:jobId/start", wrapper.StartJob)
	router.POST(baseURL+"/api/v1/jobs/:jobId/complete", wrapper.CompleteJob)
	router.POST(baseURL+"/api/v1/jobs/:jobId/cancel", wrapper.CancelJob)
	router.POST(baseURL+"/api/v1/jobs/:jobId/dispute", wrapper.DisputeJob)
	router.DELETE(baseURL+"/api/v1/quotes/:quoteId", wrapper.CancelQuote)
	router.GET(baseURL+"/api/v1/contractors/:contractorId/nearby-jobs", wrapper.FindNearbyJobs)
}
