// Package servers holds the HTTP contract of the coordinator: the OpenAPI document,
// its wire models, the ServerInterface and the echo route registration.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for JobType.
const (
	BIDDING   JobType = "BIDDING"
	IMMEDIATE JobType = "IMMEDIATE"
	SCHEDULED JobType = "SCHEDULED"
)

// Assignment defines model for Assignment.
type Assignment struct {
	CompletedAt *time.Time         `json:"completedAt,omitempty"`
	StartedAt   *time.Time         `json:"startedAt,omitempty"`
	Status      string             `json:"status"`
	WorkerId    openapi_types.UUID `json:"workerId"`
}

// Candidate defines model for Candidate.
type Candidate struct {
	ContractorId     openapi_types.UUID `json:"contractorId"`
	CoverageRadiusKm float64            `json:"coverageRadiusKm"`
	DistanceKm       float64            `json:"distanceKm"`
	Name             string             `json:"name"`
	UserId           openapi_types.UUID `json:"userId"`
}

// ClaimRequest defines model for ClaimRequest.
type ClaimRequest struct {
	WorkerIds []openapi_types.UUID `json:"workerIds"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Job defines model for Job.
type Job struct {
	AcceptedQuoteAmount *int64              `json:"acceptedQuoteAmount,omitempty"`
	AcceptedQuoteId     *openapi_types.UUID `json:"acceptedQuoteId,omitempty"`
	CancellationReason  *string             `json:"cancellationReason,omitempty"`
	CancelledBy         *string             `json:"cancelledBy,omitempty"`
	CompletedAt         *time.Time          `json:"completedAt,omitempty"`
	ContractorId        *openapi_types.UUID `json:"contractorId,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	CustomerId          openapi_types.UUID  `json:"customerId"`
	Description         *string             `json:"description,omitempty"`
	DisputeReason       *string             `json:"disputeReason,omitempty"`
	ExpiresAt           *time.Time          `json:"expiresAt,omitempty"`
	Id                  openapi_types.UUID  `json:"id"`
	Location            Location            `json:"location"`
	RequiredSkills      []string            `json:"requiredSkills"`
	ScheduledStartDate  *time.Time          `json:"scheduledStartDate,omitempty"`
	StartedAt           *time.Time          `json:"startedAt,omitempty"`
	Status              string              `json:"status"`
	Title               string              `json:"title"`
	Type                JobType             `json:"type"`
	UpdatedAt           time.Time           `json:"updatedAt"`
	WorkersNeeded       int                 `json:"workersNeeded"`
}

// JobDetails defines model for JobDetails.
type JobDetails struct {
	Job
	Assignments     []Assignment `json:"assignments"`
	ChatChannelOpen bool         `json:"chatChannelOpen"`
	Quotes          []Quote      `json:"quotes"`
}

// JobType defines model for JobType.
type JobType string

// Location defines model for Location.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NearbyJob defines model for NearbyJob.
type NearbyJob struct {
	DistanceKm     float64            `json:"distanceKm"`
	ExpiresAt      *time.Time         `json:"expiresAt,omitempty"`
	JobId          openapi_types.UUID `json:"jobId"`
	Location       Location           `json:"location"`
	RequiredSkills []string           `json:"requiredSkills"`
	Status         string             `json:"status"`
	Title          string             `json:"title"`
	Type           JobType            `json:"type"`
	WorkersNeeded  int                `json:"workersNeeded"`
}

// NewJob defines model for NewJob.
type NewJob struct {
	Description        *string    `json:"description,omitempty"`
	Location           Location   `json:"location"`
	RequiredSkills     *[]string  `json:"requiredSkills,omitempty"`
	ScheduledStartDate *time.Time `json:"scheduledStartDate,omitempty"`
	Title              string     `json:"title"`
	Type               JobType    `json:"type"`
	WorkersNeeded      int        `json:"workersNeeded"`
}

// NewQuote defines model for NewQuote.
type NewQuote struct {
	AdvanceAmount    *int64  `json:"advanceAmount,omitempty"`
	AdvanceRequested *bool   `json:"advanceRequested,omitempty"`
	Amount           int64   `json:"amount"`
	Note             *string `json:"note,omitempty"`
	TotalAmount      int64   `json:"totalAmount"`
}

// Quote defines model for Quote.
type Quote struct {
	AdvanceAmount    int64              `json:"advanceAmount"`
	AdvanceRequested bool               `json:"advanceRequested"`
	Amount           int64              `json:"amount"`
	ContractorId     openapi_types.UUID `json:"contractorId"`
	CreatedAt        time.Time          `json:"createdAt"`
	Id               openapi_types.UUID `json:"id"`
	IsAccepted       bool               `json:"isAccepted"`
	JobId            openapi_types.UUID `json:"jobId"`
	Note             *string            `json:"note,omitempty"`
	TotalAmount      int64              `json:"totalAmount"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// ReasonRequest defines model for ReasonRequest.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// FindNearbyJobsParams defines parameters for FindNearbyJobs.
type FindNearbyJobsParams struct {
	// RadiusKm Search radius in km. Omitted, zero or negative means the contractor's coverage radius.
	RadiusKm *float64 `form:"radiusKm,omitempty" json:"radiusKm,omitempty"`
}

// CreateJobJSONRequestBody defines body for CreateJob for application/json ContentType.
type CreateJobJSONRequestBody = NewJob

// ClaimJobJSONRequestBody defines body for ClaimJob for application/json ContentType.
type ClaimJobJSONRequestBody = ClaimRequest

// SubmitQuoteJSONRequestBody defines body for SubmitQuote for application/json ContentType.
type SubmitQuoteJSONRequestBody = NewQuote

// CancelJobJSONRequestBody defines body for CancelJob for application/json ContentType.
type CancelJobJSONRequestBody = ReasonRequest

// DisputeJobJSONRequestBody defines body for DisputeJob for application/json ContentType.
type DisputeJobJSONRequestBody = ReasonRequest
