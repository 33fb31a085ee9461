// Package jobrepo persists the job aggregate and its worker assignments with GORM.
// Every status change goes through ConditionalUpdate, a single UPDATE whose WHERE
// clause carries the transition's condition.
package jobrepo

import (
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// JobDTO is the row of the jobs table.
type JobDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID          uuid.UUID `gorm:"type:uuid"`
	Title               string
	Description         string
	Status              string
	JobType             string
	Latitude            float64
	Longitude           float64
	RequiredSkills      pq.StringArray `gorm:"type:text[]"`
	WorkersNeeded       int
	ContractorID        *uuid.UUID `gorm:"type:uuid"`
	AcceptedQuoteID     *uuid.UUID `gorm:"type:uuid"`
	AcceptedQuoteAmount *int64
	ExpiresAt           *time.Time
	ScheduledStartDate  *time.Time
	CancellationReason  string
	CancelledBy         string
	DisputeReason       string
	StartedAt           *time.Time
	CompletedAt         *time.Time
	CreatedAt           time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
}

func (JobDTO) TableName() string {
	return "jobs"
}

// AssignmentDTO is the row of the job_assignments table.
type AssignmentDTO struct {
	JobID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	WorkerID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status      string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

func (AssignmentDTO) TableName() string {
	return "job_assignments"
}

func fromDomain(j *job.Job) JobDTO {
	s := j.Snapshot()
	dto := JobDTO{
		ID:                 s.ID.Bytes(),
		CustomerID:         s.CustomerID.Bytes(),
		Title:              s.Title,
		Description:        s.Description,
		Status:             s.Status.String(),
		JobType:            s.Type.String(),
		Latitude:           s.Location.Latitude(),
		Longitude:          s.Location.Longitude(),
		RequiredSkills:     pq.StringArray(s.RequiredSkills),
		WorkersNeeded:      s.WorkersNeeded,
		ContractorID:       optionalID(s.ContractorID),
		ExpiresAt:          s.ExpiresAt,
		ScheduledStartDate: s.ScheduledStartDate,
		CancellationReason: s.CancellationReason,
		CancelledBy:        string(s.CancelledBy),
		DisputeReason:      s.DisputeReason,
		StartedAt:          s.StartedAt,
		CompletedAt:        s.CompletedAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if aq := s.AcceptedQuote; aq != nil {
		id := aq.QuoteID.Bytes()
		amount := aq.Amount
		dto.AcceptedQuoteID = &id
		dto.AcceptedQuoteAmount = &amount
	}
	return dto
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	status, err := job.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	jobType, err := job.ParseType(dto.JobType)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	contractorID, err := restoreOptionalID(dto.ContractorID)
	if err != nil {
		return nil, err
	}

	var acceptedQuote *job.AcceptedQuote
	if dto.AcceptedQuoteID != nil {
		quoteID, quoteErr := kernel.UUIDFromGoogle(*dto.AcceptedQuoteID)
		if quoteErr != nil {
			return nil, quoteErr
		}
		acceptedQuote = &job.AcceptedQuote{QuoteID: quoteID}
		if dto.AcceptedQuoteAmount != nil {
			acceptedQuote.Amount = *dto.AcceptedQuoteAmount
		}
	}

	return job.RestoreJob(job.Snapshot{
		ID:                 id,
		CustomerID:         customerID,
		Title:              dto.Title,
		Description:        dto.Description,
		Status:             status,
		Type:               jobType,
		Location:           location,
		RequiredSkills:     dto.RequiredSkills,
		WorkersNeeded:      dto.WorkersNeeded,
		ContractorID:       contractorID,
		AcceptedQuote:      acceptedQuote,
		ExpiresAt:          utc(dto.ExpiresAt),
		ScheduledStartDate: utc(dto.ScheduledStartDate),
		CancellationReason: dto.CancellationReason,
		CancelledBy:        job.Role(dto.CancelledBy),
		DisputeReason:      dto.DisputeReason,
		StartedAt:          utc(dto.StartedAt),
		CompletedAt:        utc(dto.CompletedAt),
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}

func assignmentsFromDomain(assignments []job.Assignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, AssignmentDTO{
			JobID:       a.JobID.Bytes(),
			WorkerID:    a.WorkerID.Bytes(),
			Status:      string(a.Status),
			StartedAt:   a.StartedAt,
			CompletedAt: a.CompletedAt,
		})
	}
	return dtos
}

func assignmentToDomain(dto AssignmentDTO) (job.Assignment, error) {
	jobID, err := kernel.UUIDFromGoogle(dto.JobID)
	if err != nil {
		return job.Assignment{}, err
	}
	workerID, err := kernel.UUIDFromGoogle(dto.WorkerID)
	if err != nil {
		return job.Assignment{}, err
	}
	status, err := job.ParseAssignmentStatus(dto.Status)
	if err != nil {
		return job.Assignment{}, err
	}
	return job.Assignment{
		JobID:       jobID,
		WorkerID:    workerID,
		Status:      status,
		StartedAt:   utc(dto.StartedAt),
		CompletedAt: utc(dto.CompletedAt),
	}, nil
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreOptionalID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	restored, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &restored, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
