package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ingestLogCollection = "ingest_logs"

type IngestLogRepo interface {
	Insert(ctx context.Context, entry *IngestLog) error
	ListByProject(ctx context.Context, projectID string, limit int64) ([]*IngestLog, error)
}

type ingestLogRepoImpl struct {
	coll *mongo.Collection
}

func NewIngestLogRepo(db *mongo.Database) IngestLogRepo {
	return &ingestLogRepoImpl{coll: db.Collection(ingestLogCollection)}
}

func (r *ingestLogRepoImpl) Insert(ctx context.Context, entry *IngestLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *ingestLogRepoImpl) ListByProject(ctx context.Context, projectID string, limit int64) ([]*IngestLog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := make([]*IngestLog, 0)
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
