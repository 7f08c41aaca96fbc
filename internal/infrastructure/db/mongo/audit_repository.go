package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storekit/storefront-api/internal/core/domain"
)

const auditCollection = "auth_audit"

// AuditRepository appends auth audit events. Records are write-only from the
// application's point of view.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Kind       string `bson:"kind"`
	Email      string `bson:"email"`
	AccountID  string `bson:"account_id,omitempty"`
	Reason     string `bson:"reason,omitempty"`
	OccurredAt int64  `bson:"occurred_at"`
}

func (r *AuditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	doc := auditDoc{
		Kind:       event.Kind,
		Email:      event.Email,
		AccountID:  event.AccountID,
		Reason:     event.Reason,
		OccurredAt: event.OccurredAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
