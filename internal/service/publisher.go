package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	commonredis "github.com/arjunishere-e/medisync/common/redis"
	"github.com/arjunishere-e/medisync/internal/models"
)

// StreamPublisher 将告警写入 Redis Stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher 创建告警流发布器
func NewStreamPublisher(client *redis.Client, stream string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

// PublishAlerts 每条告警一个流消息
func (p *StreamPublisher) PublishAlerts(ctx context.Context, alerts []models.Alert) error {
	for _, alert := range alerts {
		if _, err := commonredis.PublishJSONToStream(ctx, p.client, p.stream, p.maxLen, alert); err != nil {
			return fmt.Errorf("failed to publish alert %s: %w", alert.AlertID, err)
		}
	}
	return nil
}
