package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetJobQueryHandler reads a job straight from the database, bypassing the aggregate.
//
// Example:
//
//	handler := NewGetJobQueryHandler(db)
//	query, err := NewGetJobQuery(jobID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetJobQueryHandler struct {
	db *gorm.DB
}

// NewGetJobQueryHandler creates a handler reading through db.
func NewGetJobQueryHandler(db *gorm.DB) GetJobQueryHandler {
	return GetJobQueryHandler{db: db}
}

// Handle returns the job, or errs.ErrObjectNotFound.
func (h GetJobQueryHandler) Handle(ctx context.Context, query GetJobQuery) (*GetJobQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.job(db, query.JobID())
	if err != nil {
		return nil, err
	}
	if resp.Assignments, err = h.assignments(db, query.JobID()); err != nil {
		return nil, err
	}
	if resp.Quotes, err = h.quotes(db, query.JobID()); err != nil {
		return nil, err
	}
	return resp, nil
}

func (h GetJobQueryHandler) job(db *gorm.DB, jobID kernel.UUID) (*GetJobQueryResponse, error) {
	var (
		resp                  GetJobQueryResponse
		id, customerID        uuid.UUID
		contractorID, quoteID *uuid.UUID
		latitude, longitude   float64
		skills                pq.StringArray
		createdAt, updatedAt  time.Time
	)

	row := db.Raw(`
		SELECT
			j.id, j.customer_id, j.title, j.description, j.status, j.job_type,
			j.latitude, j.longitude, j.required_skills, j.workers_needed,
			j.contractor_id, j.accepted_quote_id, j.accepted_quote_amount,
			j.expires_at, j.scheduled_start_date,
			j.cancellation_reason, j.cancelled_by, j.dispute_reason,
			j.started_at, j.completed_at, j.created_at, j.updated_at,
			EXISTS (SELECT 1 FROM chat_channels c WHERE c.job_id = j.id)
		FROM jobs j
		WHERE j.id = ?
	`, jobID.Bytes()).Row()

	err := row.Scan(
		&id, &customerID, &resp.Title, &resp.Description, &resp.Status, &resp.Type,
		&latitude, &longitude, &skills, &resp.WorkersNeeded,
		&contractorID, &quoteID, &resp.AcceptedQuoteAmount,
		&resp.ExpiresAt, &resp.ScheduledStartDate,
		&resp.CancellationReason, &resp.CancelledBy, &resp.DisputeReason,
		&resp.StartedAt, &resp.CompletedAt, &createdAt, &updatedAt,
		&resp.ChatChannelOpen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("job", jobID.String())
		}
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return nil, err
	}
	if resp.CustomerID, err = kernel.UUIDFromGoogle(customerID); err != nil {
		return nil, err
	}
	if resp.Location, err = kernel.NewLocation(latitude, longitude); err != nil {
		return nil, err
	}
	if resp.ContractorID, err = optionalUUID(contractorID); err != nil {
		return nil, err
	}
	if resp.AcceptedQuoteID, err = optionalUUID(quoteID); err != nil {
		return nil, err
	}
	resp.RequiredSkills = []string(skills)
	resp.CreatedAt = createdAt.UTC()
	resp.UpdatedAt = updatedAt.UTC()
	return &resp, nil
}

func (h GetJobQueryHandler) assignments(db *gorm.DB, jobID kernel.UUID) ([]AssignmentView, error) {
	rows, err := db.Raw(`
		SELECT worker_id, status, started_at, completed_at
		FROM job_assignments
		WHERE job_id = ?
		ORDER BY worker_id
	`, jobID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]AssignmentView, 0)
	for rows.Next() {
		var (
			view     AssignmentView
			workerID uuid.UUID
		)
		if err = rows.Scan(&workerID, &view.Status, &view.StartedAt, &view.CompletedAt); err != nil {
			return nil, err
		}
		if view.WorkerID, err = kernel.UUIDFromGoogle(workerID); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (h GetJobQueryHandler) quotes(db *gorm.DB, jobID kernel.UUID) ([]QuoteView, error) {
	rows, err := db.Raw(`
		SELECT id, contractor_id, amount, total_amount, advance_requested, advance_amount,
		       note, is_accepted, created_at, updated_at
		FROM quotes
		WHERE job_id = ?
		ORDER BY created_at, id
	`, jobID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]QuoteView, 0)
	for rows.Next() {
		var (
			view             QuoteView
			id, contractorID uuid.UUID
		)
		if err = rows.Scan(
			&id, &contractorID, &view.Amount, &view.TotalAmount, &view.AdvanceRequested, &view.AdvanceAmount,
			&view.Note, &view.IsAccepted, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.ContractorID, err = kernel.UUIDFromGoogle(contractorID); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		view.UpdatedAt = view.UpdatedAt.UTC()
		views = append(views, view)
	}
	return views, rows.Err()
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	u, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
