// Package quoterepo persists contractor quotes with GORM. The (job_id, contractor_id)
// unique key keeps one quote per contractor and job.
package quoterepo

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"
	"jobmatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements ports.QuoteRepository using GORM.
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GORM quote repository.
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// Upsert inserts the quote or revises the terms of the contractor's existing quote.
// The update branch only fires while the stored quote is not accepted, so a revision
// racing an acceptance affects no rows.
func (r *GormQuoteRepository) Upsert(ctx context.Context, q *quote.Quote) (int64, error) {
	if err := q.Validate(); err != nil {
		return 0, err
	}

	dto := fromDomain(q)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}, {Name: "contractor_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"amount", "total_amount", "advance_requested", "advance_amount", "note", "updated_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "quotes.is_accepted = ?", Vars: []any{false}},
		}},
	}).Create(&dto)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Get retrieves a quote by ID.
func (r *GormQuoteRepository) Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

// GetByJobAndContractor retrieves the contractor's quote for a job.
func (r *GormQuoteRepository) GetByJobAndContractor(ctx context.Context, jobID, contractorID kernel.UUID) (*quote.Quote, error) {
	return r.first(ctx, jobID.String()+"/"+contractorID.String(),
		"job_id = ? AND contractor_id = ?", jobID.Bytes(), contractorID.Bytes())
}

// ListByJob returns every quote of a job, oldest first.
func (r *GormQuoteRepository) ListByJob(ctx context.Context, jobID kernel.UUID) ([]*quote.Quote, error) {
	var dtos []QuoteDTO
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	quotes := make([]*quote.Quote, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// SetAccepted flips is_accepted only from the opposite value.
func (r *GormQuoteRepository) SetAccepted(ctx context.Context, id kernel.UUID, accepted bool, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&QuoteDTO{}).
		Where("id = ? AND is_accepted = ?", id.Bytes(), !accepted).
		Updates(map[string]any{"is_accepted": accepted, "updated_at": at})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteUnaccepted removes the contractor's own quote unless it was accepted.
func (r *GormQuoteRepository) DeleteUnaccepted(ctx context.Context, id, contractorID kernel.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND contractor_id = ? AND is_accepted = ?", id.Bytes(), contractorID.Bytes(), false).
		Delete(&QuoteDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *GormQuoteRepository) first(ctx context.Context, label string, query string, args ...any) (*quote.Quote, error) {
	var dto QuoteDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quote", label)
		}
		return nil, err
	}
	return toDomain(dto)
}
