package jobrepo

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/job"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new job to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves a job by ID.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ConditionalUpdate runs a single UPDATE ... WHERE id = ? AND <condition>. Concurrent
// callers racing on the same row are serialized by postgres; the loser re-evaluates
// the WHERE clause against the committed row and affects nothing.
func (r *GormJobRepository) ConditionalUpdate(ctx context.Context, tr job.Transition) (int64, error) {
	if err := tr.JobID.Validate(); err != nil {
		return 0, err
	}
	if len(tr.Condition.Statuses) == 0 {
		return 0, errs.NewValueIsRequiredError("condition.statuses")
	}

	query := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ?", tr.JobID.Bytes()).
		Where("status IN ?", statusNames(tr.Condition.Statuses))
	if tr.Condition.ContractorUnset {
		query = query.Where("contractor_id IS NULL")
	}
	if id := tr.Condition.ContractorID; id != nil {
		query = query.Where("contractor_id = ?", id.Bytes())
	}
	if id := tr.Condition.AcceptedQuoteID; id != nil {
		query = query.Where("accepted_quote_id = ?", id.Bytes())
	}

	result := query.Updates(changeColumns(tr.Change))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListAssignments returns the workers assigned to a job.
func (r *GormJobRepository) ListAssignments(ctx context.Context, jobID kernel.UUID) ([]job.Assignment, error) {
	var dtos []AssignmentDTO
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("worker_id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	assignments := make([]job.Assignment, 0, len(dtos))
	for _, dto := range dtos {
		a, err := assignmentToDomain(dto)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

// ReplaceAssignments deletes the current assignment set of a job and inserts the new one.
func (r *GormJobRepository) ReplaceAssignments(ctx context.Context, jobID kernel.UUID, assignments []job.Assignment) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("job_id = ?", jobID.Bytes()).Delete(&AssignmentDTO{}).Error; err != nil {
		return err
	}
	if len(assignments) == 0 {
		return nil
	}
	dtos := assignmentsFromDomain(assignments)
	return db.Create(&dtos).Error
}

// UpdateAssignments moves every assignment of a job to status.
func (r *GormJobRepository) UpdateAssignments(
	ctx context.Context,
	jobID kernel.UUID,
	status job.AssignmentStatus,
	at time.Time,
) error {
	columns := map[string]any{"status": string(status)}
	switch status {
	case job.AssignmentWorking:
		columns["started_at"] = at
	case job.AssignmentDone:
		columns["completed_at"] = at
	}

	return r.db.WithContext(ctx).Model(&AssignmentDTO{}).
		Where("job_id = ?", jobID.Bytes()).
		Updates(columns).Error
}

// ListOpen returns claimable or quotable jobs without a contractor, newest first.
func (r *GormJobRepository) ListOpen(ctx context.Context, now time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statusNames(job.OpenStatuses())).
		Where("contractor_id IS NULL").
		Where("(expires_at IS NULL OR expires_at > ?)", now).
		Order("created_at DESC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

// ListExpiredPending returns PENDING jobs whose claim deadline has passed, oldest deadline first.
func (r *GormJobRepository) ListExpiredPending(ctx context.Context, now time.Time, limit int) ([]*job.Job, error) {
	var dtos []JobDTO
	if err := r.db.WithContext(ctx).
		Where("status = ?", job.Pending.String()).
		Where("expires_at <= ?", now).
		Order("expires_at").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}
	return toDomainList(dtos)
}

func toDomainList(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		j, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

func statusNames(statuses []job.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}

// changeColumns maps a Change to the column set of the UPDATE. A nil value in the
// map writes NULL.
func changeColumns(c job.Change) map[string]any {
	columns := map[string]any{
		"status":     c.Status.String(),
		"updated_at": c.UpdatedAt,
	}
	switch {
	case c.ClearContractor:
		columns["contractor_id"] = nil
	case c.ContractorID != nil:
		columns["contractor_id"] = c.ContractorID.Bytes()
	}
	switch {
	case c.ClearAcceptedQuote:
		columns["accepted_quote_id"] = nil
		columns["accepted_quote_amount"] = nil
	case c.AcceptedQuote != nil:
		columns["accepted_quote_id"] = c.AcceptedQuote.QuoteID.Bytes()
		columns["accepted_quote_amount"] = c.AcceptedQuote.Amount
	}
	if c.Cancellation != nil {
		columns["cancellation_reason"] = c.Cancellation.Reason
		columns["cancelled_by"] = string(c.Cancellation.By)
	}
	if c.DisputeReason != "" {
		columns["dispute_reason"] = c.DisputeReason
	}
	if c.StartedAt != nil {
		columns["started_at"] = *c.StartedAt
	}
	if c.CompletedAt != nil {
		columns["completed_at"] = *c.CompletedAt
	}
	return columns
}
