package quoterepo

import (
	"time"

	"jobmatch/internal/core/domain/model/kernel"
	"jobmatch/internal/core/domain/model/quote"

	"github.com/google/uuid"
)

// QuoteDTO is the row of the quotes table.
type QuoteDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID            uuid.UUID `gorm:"type:uuid"`
	ContractorID     uuid.UUID `gorm:"type:uuid"`
	Amount           int64
	TotalAmount      int64
	AdvanceRequested bool
	AdvanceAmount    int64
	Note             string
	IsAccepted       bool
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (QuoteDTO) TableName() string {
	return "quotes"
}

func fromDomain(q *quote.Quote) QuoteDTO {
	t := q.Terms()
	return QuoteDTO{
		ID:               q.ID().Bytes(),
		JobID:            q.JobID().Bytes(),
		ContractorID:     q.ContractorID().Bytes(),
		Amount:           t.Amount,
		TotalAmount:      t.TotalAmount,
		AdvanceRequested: t.AdvanceRequested,
		AdvanceAmount:    t.AdvanceAmount,
		Note:             t.Note,
		IsAccepted:       q.IsAccepted(),
		CreatedAt:        q.CreatedAt(),
		UpdatedAt:        q.UpdatedAt(),
	}
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromGoogle(dto.JobID)
	if err != nil {
		return nil, err
	}
	contractorID, err := kernel.UUIDFromGoogle(dto.ContractorID)
	if err != nil {
		return nil, err
	}

	return quote.RestoreQuote(id, jobID, contractorID, quote.Terms{
		Amount:           dto.Amount,
		TotalAmount:      dto.TotalAmount,
		AdvanceRequested: dto.AdvanceRequested,
		AdvanceAmount:    dto.AdvanceAmount,
		Note:             dto.Note,
	}, dto.IsAccepted, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
