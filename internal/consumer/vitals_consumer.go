package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arjunishere-e/medisync/common/mqtt"
	"github.com/arjunishere-e/medisync/internal/config"
	"github.com/arjunishere-e/medisync/internal/models"
)

// Subscriber MQTT 订阅接口（common/mqtt.Client 实现）
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topics ...string) error
}

// ReadingProcessor 读数处理接口
type ReadingProcessor interface {
	// ProcessReading 存储、评估并物化告警
	ProcessReading(ctx context.Context, reading models.VitalReading) (*models.VitalsAssessment, error)
}

// VitalsConsumer 监护仪读数消费者（订阅 ward/+/vitals）
type VitalsConsumer struct {
	config     *config.Config
	subscriber Subscriber
	processor  ReadingProcessor
	logger     *zap.Logger
	timeout    time.Duration
	now        func() time.Time
}

// NewVitalsConsumer 创建读数消费者
func NewVitalsConsumer(
	cfg *config.Config,
	subscriber Subscriber,
	processor ReadingProcessor,
	logger *zap.Logger,
) *VitalsConsumer {
	return &VitalsConsumer{
		config:     cfg,
		subscriber: subscriber,
		processor:  processor,
		logger:     logger,
		timeout:    30 * time.Second,
		now:        time.Now,
	}
}

// Start 订阅读数主题，直到 ctx 取消
func (c *VitalsConsumer) Start(ctx context.Context) error {
	topic := c.config.Ward.VitalsTopic
	err := c.subscriber.Subscribe(topic, c.config.MQTT.QoS, func(topic string, payload []byte) error {
		msgCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.HandleMessage(msgCtx, topic, payload)
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe %s: %w", topic, err)
	}

	c.logger.Info("Vitals consumer started",
		zap.String("topic", topic),
	)

	<-ctx.Done()

	if err := c.subscriber.Unsubscribe(topic); err != nil {
		c.logger.Warn("Failed to unsubscribe",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
	c.logger.Info("Vitals consumer stopped")
	return nil
}

// HandleMessage 解析并处理一条读数消息
// 缺少 patient_id 的消息被丢弃；缺少时间戳时使用接收时间。
func (c *VitalsConsumer) HandleMessage(ctx context.Context, topic string, payload []byte) error {
	var reading models.VitalReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("failed to decode reading from %s: %w", topic, err)
	}
	if reading.PatientID == "" {
		return fmt.Errorf("reading from %s has no patient_id", topic)
	}
	if reading.Timestamp.IsZero() {
		reading.Timestamp = c.now().UTC()
	}

	assessment, err := c.processor.ProcessReading(ctx, reading)
	if err != nil {
		return fmt.Errorf("failed to process reading: %w", err)
	}

	if len(assessment.Findings) > 0 {
		c.logger.Info("Anomalies detected",
			zap.String("topic", topic),
			zap.String("patient_id", reading.PatientID),
			zap.Int("finding_count", len(assessment.Findings)),
			zap.String("highest_severity", string(assessment.HighestSeverity)),
		)
	}
	return nil
}
