package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox/payloads"
)

// OutboxClearedSink queues a cart.cleared event for analytics consumers.
type OutboxClearedSink struct {
	db     *db.Client
	outbox *outbox.Service
}

// NewOutboxClearedSink builds the sink.
func NewOutboxClearedSink(dbClient *db.Client, outboxService *outbox.Service) *OutboxClearedSink {
	return &OutboxClearedSink{db: dbClient, outbox: outboxService}
}

func (s *OutboxClearedSink) CartCleared(ctx context.Context, cartID, ownerID uuid.UUID, removedItems int) error {
	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventCartCleared,
			AggregateType: enums.AggregateCart,
			AggregateID:   cartID,
			Actor:         &outbox.ActorRef{UserID: ownerID},
			Data: payloads.CartClearedEvent{
				CartID:       cartID,
				OwnerID:      ownerID,
				RemovedItems: removedItems,
			},
		})
	})
}
