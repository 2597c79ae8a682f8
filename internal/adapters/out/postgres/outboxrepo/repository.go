// Package outboxrepo is the PostgreSQL transactional outbox. Events are written in the
// same transaction as the state change that produced them and relayed later.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageDTO is one outbox row. Seq fixes relay order across transactions.
type MessageDTO struct {
	Seq         int64      `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Kind        string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	SentAt      *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e.Payload())
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", e.Kind(), err)
		}
		dtos = append(dtos, MessageDTO{
			ID:          e.ID().Bytes(),
			Kind:        string(e.Kind()),
			AggregateID: e.AggregateID().Bytes(),
			Payload:     payload,
			OccurredAt:  e.OccurredAt(),
		})
	}

	return pgerr.Storage("add outbox events", r.db.WithContext(ctx).Create(&dtos).Error)
}

// GetPending returns unsent events in insertion order. Payloads come back as
// json.RawMessage. Rows are locked with SKIP LOCKED so concurrent relays inside
// transactions pick disjoint batches.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]event.Event, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("sent_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Storage("get pending outbox events", err)
	}

	events := make([]event.Event, 0, len(dtos))
	for _, dto := range dtos {
		id, idErr := kernel.UUIDFromBytes(dto.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		aggregateID, idErr := kernel.UUIDFromBytes(dto.AggregateID[:])
		if idErr != nil {
			return nil, idErr
		}
		events = append(events, event.Restore(
			id, event.Kind(dto.Kind), aggregateID, dto.OccurredAt.UTC(), json.RawMessage(dto.Payload),
		))
	}

	return events, nil
}

func (r *GormOutboxRepository) MarkSent(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	err := r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("id IN ? AND sent_at IS NULL", raw).
		Update("sent_at", at).Error
	return pgerr.Storage("mark outbox events sent", err)
}
