/*
 * @module service/activity/publisher
 * @description Kafka活动事件发布器
 * @architecture 消息队列生产者 - 以事件类型为key写入JSON消息
 * @rules 只等待一个副本确认；发布失败由调用方记录日志，不影响活动入库
 * @dependencies github.com/segmentio/kafka-go
 * @refs service.go
 */

package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"predictions-hub/service/models"
)

// KafkaPublisher 将活动事件写入 Kafka 主题
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher 创建 Kafka 发布器
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
			WriteTimeout: 5 * time.Second,
		},
	}
}

// Publish 发布事件，消息键为事件类型
func (p *KafkaPublisher) Publish(ctx context.Context, event *models.ActivityEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化活动事件失败: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("写入Kafka失败: %w", err)
	}
	return nil
}

// Close 关闭写入器
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
