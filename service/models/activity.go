/*
 * @module service/models/activity
 * @description 活动记录模型，记录数据加载、导出、查看等用户可见事件
 * @architecture 数据模型层
 * @stateFlow 事件产生 -> 入库 -> 超出上限的旧记录被清理
 * @rules EventID 在创建时生成；At 为空时取当前时间
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/activity
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 活动类型
const (
	ActivityLoad       = "load"
	ActivityLoadFailed = "load_failed"
	ActivityExport     = "export"
	ActivityView       = "view"
)

// ActivityEvent 活动记录
type ActivityEvent struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	EventID     string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"id"`
	Type        string    `gorm:"type:varchar(32);not null;index" json:"type"`
	Description string    `gorm:"not null" json:"description"`
	Metadata    JSONB     `gorm:"type:jsonb" json:"metadata,omitempty"`
	At          time.Time `gorm:"not null;index" json:"at"`
}

// TableName 表名
func (ActivityEvent) TableName() string {
	return "activity_events"
}

// BeforeCreate 创建前钩子
func (a *ActivityEvent) BeforeCreate(tx *gorm.DB) error {
	if a.EventID == "" {
		a.EventID = uuid.New().String()
	}
	if a.At.IsZero() {
		a.At = time.Now()
	}
	return nil
}
