package contractorrepo

import (
	"time"

	"jobmatch/internal/core/domain/model/contractor"
	"jobmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ContractorDTO is the row of the contractors table with its workers.
type ContractorDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid"`
	Name             string
	Latitude         float64
	Longitude        float64
	CoverageRadiusKm float64
	Active           bool
	Verification     string
	Workers          []WorkerDTO `gorm:"foreignKey:ContractorID;constraint:OnDelete:CASCADE;"`
}

func (ContractorDTO) TableName() string {
	return "contractors"
}

// WorkerDTO is the row of the workers table.
type WorkerDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid"`
	Name         string
	Skills       pq.StringArray `gorm:"type:text[]"`
}

func (WorkerDTO) TableName() string {
	return "workers"
}

// UnavailabilityDTO marks a worker as unavailable for one calendar day.
type UnavailabilityDTO struct {
	WorkerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day      time.Time `gorm:"type:date;primaryKey"`
}

func (UnavailabilityDTO) TableName() string {
	return "worker_unavailability"
}

func toDomain(dto ContractorDTO) (*contractor.Contractor, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}
	verification, err := contractor.ParseVerification(dto.Verification)
	if err != nil {
		return nil, err
	}

	workers := make([]contractor.Worker, 0, len(dto.Workers))
	for _, w := range dto.Workers {
		workerID, workerErr := kernel.UUIDFromGoogle(w.ID)
		if workerErr != nil {
			return nil, workerErr
		}
		workers = append(workers, contractor.Worker{
			ID:           workerID,
			ContractorID: id,
			Name:         w.Name,
			Skills:       w.Skills,
		})
	}

	return contractor.RestoreContractor(
		id, userID, dto.Name, location, dto.CoverageRadiusKm, dto.Active, verification, workers,
	)
}
