/*
 * @module service/activity/service
 * @description 活动记录服务，持久化最近的用户可见事件并可选地推送到消息队列
 * @architecture 服务层 - gorm 存储 + 可选发布器
 * @stateFlow 记录事件 -> 入库 -> 清理超出上限的旧记录 -> 发布
 * @rules 只保留最近 limit 条；发布失败不影响记录
 * @dependencies gorm.io/gorm, service/models
 * @refs publisher.go
 */

package activity

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"predictions-hub/service/models"
)

// DefaultLimit 默认保留的活动条数
const DefaultLimit = 50

// Publisher 活动事件发布器
type Publisher interface {
	Publish(ctx context.Context, event *models.ActivityEvent) error
	Close() error
}

// Service 活动记录服务
type Service struct {
	db        *gorm.DB
	publisher Publisher
	limit     int
}

// NewService 创建活动记录服务，publisher 可为 nil
func NewService(db *gorm.DB, publisher Publisher, limit int) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{db: db, publisher: publisher, limit: limit}
}

// Limit 返回保留上限
func (s *Service) Limit() int {
	return s.limit
}

// Log 记录一条活动
func (s *Service) Log(ctx context.Context, eventType, description string, metadata models.JSONB) (*models.ActivityEvent, error) {
	event := &models.ActivityEvent{
		Type:        eventType,
		Description: description,
		Metadata:    metadata,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("保存活动记录失败: %w", err)
		}
		return s.prune(tx)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			slog.Warn("发布活动事件失败", "event_id", event.EventID, "type", eventType, "error", err)
		}
	}
	return event, nil
}

// prune 删除超出上限的旧记录
func (s *Service) prune(tx *gorm.DB) error {
	var ids []uint
	if err := tx.Model(&models.ActivityEvent{}).Order("id DESC").Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("查询活动记录失败: %w", err)
	}
	if len(ids) <= s.limit {
		return nil
	}
	if err := tx.Where("id IN ?", ids[s.limit:]).Delete(&models.ActivityEvent{}).Error; err != nil {
		return fmt.Errorf("清理活动记录失败: %w", err)
	}
	return nil
}

// List 按时间倒序返回最近的活动，limit<=0 或超过上限时返回全部保留记录
func (s *Service) List(ctx context.Context, limit int) ([]models.ActivityEvent, error) {
	if limit <= 0 || limit > s.limit {
		limit = s.limit
	}

	var events []models.ActivityEvent
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("查询活动记录失败: %w", err)
	}
	return events, nil
}

// RecordLoad 记录一次数据加载结果，trigger 表示触发来源(api/cron/startup)
func (s *Service) RecordLoad(ctx context.Context, trigger, source string, rows int, loadErr error) {
	metadata := models.JSONB{"trigger": trigger, "source": source}
	eventType := models.ActivityLoad
	description := fmt.Sprintf("加载预测数据 %d 行", rows)
	if loadErr != nil {
		eventType = models.ActivityLoadFailed
		description = "加载预测数据失败"
		metadata["error"] = loadErr.Error()
	} else {
		metadata["rows"] = rows
	}

	if _, err := s.Log(ctx, eventType, description, metadata); err != nil {
		slog.Error("记录加载活动失败", "trigger", trigger, "error", err)
	}
}

// Close 关闭发布器
func (s *Service) Close() error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}
