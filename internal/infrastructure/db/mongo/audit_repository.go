package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gazette-dev/gazette/internal/core/domain"
)

const auditCollection = "auth_events"

// AuditRepository writes identity audit events to MongoDB.
type AuditRepository struct {
	coll      *mongo.Collection
	retention time.Duration
}

// NewAuditRepository creates an AuditRepository on db. Events older than
// retention are expired by the server; zero keeps them forever.
func NewAuditRepository(db *mongo.Database, retention time.Duration) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection), retention: retention}
}

// EnsureIndexes creates the lookup index by username and time, and the
// retention index when a retention is configured.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "username", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("username_timestamp"),
	}}
	if r.retention > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "recorded_at", Value: 1}},
			Options: options.Index().SetName("recorded_at_ttl").SetExpireAfterSeconds(int32(r.retention.Seconds())),
		})
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

// InsertEvent persists a single audit event.
func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuditEvent) error {
	doc := bson.M{
		"action":      string(event.Action),
		"success":     event.Success,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if event.Username != "" {
		doc["username"] = event.Username
	}
	if event.Message != "" {
		doc["message"] = event.Message
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
