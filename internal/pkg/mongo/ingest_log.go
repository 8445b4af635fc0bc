package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 摄入判定结果，与 service 层三种出口一一对应
const (
	OutcomeInserted          = "inserted"
	OutcomeSkipped           = "skipped"
	OutcomeInsertedUnchecked = "inserted_unchecked"
	OutcomeFailed            = "failed"
)

// IngestLog 摄入审计明细，每次快照摄入判定写一条
type IngestLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID string             `bson:"project_id" json:"projectId"`
	Platform  string             `bson:"platform" json:"platform"`
	Outcome   string             `bson:"outcome" json:"outcome"`
	FetchedAt time.Time          `bson:"fetched_at" json:"fetchedAt"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
