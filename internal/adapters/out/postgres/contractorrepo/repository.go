// Package contractorrepo reads contractors, their workers and worker availability.
// The tables are owned by the profile service; the matching core never writes them.
package contractorrepo

import (
	"context"
	"errors"
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dayLayout = "2006-01-02"

// GormContractorDirectory implements ports.ContractorDirectory using GORM.
type GormContractorDirectory struct {
	db *gorm.DB
}

// NewGormContractorDirectory creates a new GORM contractor directory.
func NewGormContractorDirectory(db *gorm.DB) *GormContractorDirectory {
	return &GormContractorDirectory{db: db}
}

// Get retrieves a contractor with its workers.
func (r *GormContractorDirectory) Get(ctx context.Context, id kernel.UUID) (*contractor.Contractor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ContractorDTO
	err := r.db.WithContext(ctx).
		Preload("Workers", orderWorkers).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("contractor", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListMatchable returns active, verified contractors.
func (r *GormContractorDirectory) ListMatchable(ctx context.Context) ([]*contractor.Contractor, error) {
	var dtos []ContractorDTO
	if err := r.db.WithContext(ctx).
		Preload("Workers", orderWorkers).
		Where("active AND verification = ?", string(contractor.VerificationVerified)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	contractors := make([]*contractor.Contractor, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, c)
	}
	return contractors, nil
}

// UnavailableWorkers returns the workers among workerIDs blocked on the UTC calendar day of date.
func (r *GormContractorDirectory) UnavailableWorkers(
	ctx context.Context,
	workerIDs []kernel.UUID,
	date time.Time,
) ([]kernel.UUID, error) {
	if len(workerIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(workerIDs))
	for _, id := range workerIDs {
		ids = append(ids, id.Bytes())
	}

	var blocked []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&UnavailabilityDTO{}).
		Where("worker_id IN ? AND day = ?::date", ids, date.UTC().Format(dayLayout)).
		Order("worker_id").
		Pluck("worker_id", &blocked).Error; err != nil {
		return nil, err
	}

	out := make([]kernel.UUID, 0, len(blocked))
	for _, raw := range blocked {
		id, err := kernel.UUIDFromGoogle(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func orderWorkers(db *gorm.DB) *gorm.DB {
	return db.Order("workers.id")
}
