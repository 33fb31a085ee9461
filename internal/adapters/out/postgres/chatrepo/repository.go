// Package chatrepo records the chat channel opened between a customer and the
// contractor that won a job.
package chatrepo

import (
	"context"
	"time"

	"jobmatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChannelDTO is the row of the chat_channels table.
type ChannelDTO struct {
	JobID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerUserID   uuid.UUID `gorm:"type:uuid"`
	ContractorUserID uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
}

func (ChannelDTO) TableName() string {
	return "chat_channels"
}

// GormChatChannels implements ports.ChatChannels using GORM.
type GormChatChannels struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormChatChannels creates a chat channel store. now stamps created_at.
func NewGormChatChannels(db *gorm.DB, now func() time.Time) *GormChatChannels {
	return &GormChatChannels{db: db, now: now}
}

// Provision creates the channel for a job. A channel that already exists is kept.
func (r *GormChatChannels) Provision(ctx context.Context, jobID, customerUserID, contractorUserID kernel.UUID) error {
	dto := ChannelDTO{
		JobID:            jobID.Bytes(),
		CustomerUserID:   customerUserID.Bytes(),
		ContractorUserID: contractorUserID.Bytes(),
		CreatedAt:        r.now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "job_id"}}, DoNothing: true}).
		Create(&dto).Error
}

// Get returns the channel of a job, or gorm.ErrRecordNotFound.
func (r *GormChatChannels) Get(ctx context.Context, jobID kernel.UUID) (ChannelDTO, error) {
	var dto ChannelDTO
	err := r.db.WithContext(ctx).First(&dto, "job_id = ?", jobID.Bytes()).Error
	return dto, err
}
