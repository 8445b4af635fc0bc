package kafka

import (
	"Credify/internal/repository"
	"Credify/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// snapshotMessage 外部抓取器写入快照主题的消息体
type snapshotMessage struct {
	ProjectID    string     `json:"project_id"`
	Platform     string     `json:"platform"`
	FetchedAt    *time.Time `json:"fetched_at"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	ShareCount   int64      `json:"share_count"`
}

type SnapshotHandler struct {
	ingestSvc  service.IngestService
	creditRepo repository.ProjectCreditRepo
}

func NewSnapshotHandler(ingestSvc service.IngestService, creditRepo repository.ProjectCreditRepo) *SnapshotHandler {
	return &SnapshotHandler{
		ingestSvc:  ingestSvc,
		creditRepo: creditRepo,
	}
}

func (s *SnapshotHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("snapshot consumer setup")
	return nil
}

func (s *SnapshotHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("snapshot consumer cleanup")
	return nil
}

func (s *SnapshotHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-snapshot consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("process batch error", "err", err)
		return err
	}
	log.Info("topic-snapshot consume claim end")
	return nil
}

func (s *SnapshotHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var payload snapshotMessage
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		// 坏消息无法通过重试修复，记录后跳过
		log.Error("unmarshal snapshot message error", "err", err)
		return nil
	}
	if payload.ProjectID == "" {
		log.Error("snapshot message missing project_id", "offset", msg.Offset)
		return nil
	}

	input := &service.SnapshotInput{
		ProjectID:    payload.ProjectID,
		Platform:     payload.Platform,
		ViewCount:    payload.ViewCount,
		LikeCount:    payload.LikeCount,
		CommentCount: payload.CommentCount,
		ShareCount:   payload.ShareCount,
	}
	if payload.FetchedAt != nil {
		input.FetchedAt = *payload.FetchedAt
	}

	outcome, err := s.ingestSvc.IngestSnapshot(ctx, input)
	if err != nil {
		return err
	}

	if outcome != service.IngestSkipped {
		service.MarkCreatorsDirty(ctx, s.creditRepo, payload.ProjectID)
	}
	return nil
}
