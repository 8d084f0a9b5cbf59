/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、分布式锁、数据会话和调度器的初始化
 * @architecture 分层架构 - 服务层
 * @stateFlow 应用启动时执行初始化流程 -> 可选的首次加载 -> 定时刷新
 * @rules 活动库初始化失败时不启动服务；Redis/Kafka 不可用时降级为进程内实现
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres, gorm.io/driver/sqlite
 * @refs service/config, service/loader
 */

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"predictions-hub/service/activity"
	"predictions-hub/service/config"
	"predictions-hub/service/distributed_lock"
	"predictions-hub/service/gallery"
	"predictions-hub/service/loader"
	"predictions-hub/service/models"
	"predictions-hub/service/scheduler"
)

var (
	DB                     *gorm.DB
	GlobalConfig           *config.Config
	GlobalSession          *loader.Session
	GlobalActivityService  *activity.Service
	GlobalGalleryProber    *gallery.Prober
	GlobalRefreshScheduler *scheduler.RefreshScheduler

	redisLock *distributed_lock.RedisLock
)

// Init 按配置初始化所有服务
func Init(cfg *config.Config) error {
	GlobalConfig = cfg

	if err := initDatabase(cfg); err != nil {
		return err
	}
	if err := runMigrations(); err != nil {
		return err
	}
	if err := initServices(cfg); err != nil {
		return err
	}

	if cfg.Data.LoadOnStart {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Data.FetchTimeout+10*time.Second)
			defer cancel()
			Reload(ctx, "startup")
		}()
	}

	slog.Info("服务初始化完成", "source", GlobalSession.Source())
	return nil
}

// initDatabase 初始化活动库连接，配置了DATABASE_URL时使用PostgreSQL，否则使用SQLite
func initDatabase(cfg *config.Config) error {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var err error
	if cfg.Activity.DatabaseURL != "" {
		DB, err = gorm.Open(postgres.Open(cfg.Activity.DatabaseURL), gormConfig)
	} else {
		path := cfg.Activity.DBPath
		if path == "" {
			path = "file::memory:?cache=shared"
		}
		DB, err = gorm.Open(sqlite.Open(path), gormConfig)
	}
	if err != nil {
		return fmt.Errorf("数据库连接失败: %w", err)
	}

	slog.Info("数据库连接成功", "dialect", DB.Dialector.Name())
	return nil
}

// runMigrations 运行数据库迁移
func runMigrations() error {
	if err := DB.AutoMigrate(&models.ActivityEvent{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	slog.Info("数据库表结构迁移完成")
	return nil
}

// initServices 初始化服务
func initServices(cfg *config.Config) error {
	var lock distributed_lock.DistributedLock
	if cfg.RedisEnabled() {
		l, err := distributed_lock.NewRedisLock(distributed_lock.RedisOptions{
			Host:     cfg.Redis.Host,
			Port:     strconv.Itoa(cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("Redis不可用，使用进程内锁", "host", cfg.Redis.Host, "error", err)
		} else {
			redisLock = l
			lock = l
		}
	}

	fetcher := loader.NewHTTPFetcher(cfg.CSVURL(), cfg.Data.FetchTimeout)
	GlobalSession = loader.NewSession(fetcher, lock)

	var publisher activity.Publisher
	if cfg.KafkaEnabled() {
		publisher = activity.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		slog.Info("启用Kafka活动发布", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}
	GlobalActivityService = activity.NewService(DB, publisher, cfg.Activity.Limit)

	images := make([]gallery.Image, 0, len(cfg.Data.Images))
	for _, name := range cfg.Data.Images {
		images = append(images, gallery.Image{Name: name, URL: cfg.ImageURL(name)})
	}
	GlobalGalleryProber = gallery.NewProber(images, cfg.Data.FetchTimeout)

	if cfg.Data.RefreshCron != "" {
		s, err := scheduler.NewRefreshScheduler(cfg.Data.RefreshCron, func(ctx context.Context) error {
			_, err := Reload(ctx, "cron")
			return err
		})
		if err != nil {
			return err
		}
		GlobalRefreshScheduler = s
		GlobalRefreshScheduler.Start()
	}
	return nil
}

// Reload 加载数据集并记录活动
func Reload(ctx context.Context, trigger string) (*loader.Snapshot, error) {
	snapshot, err := GlobalSession.Load(ctx)
	rows := 0
	if snapshot != nil {
		rows = snapshot.Dataset.Len()
	}
	GlobalActivityService.RecordLoad(ctx, trigger, GlobalSession.Source(), rows, err)
	return snapshot, err
}

// Shutdown 释放资源
func Shutdown() {
	if GlobalRefreshScheduler != nil {
		GlobalRefreshScheduler.Stop()
	}
	if GlobalActivityService != nil {
		if err := GlobalActivityService.Close(); err != nil {
			slog.Warn("关闭活动发布器失败", "error", err)
		}
	}
	if redisLock != nil {
		if err := redisLock.Close(); err != nil {
			slog.Warn("关闭Redis连接失败", "error", err)
		}
	}
	if DB != nil {
		if sqlDB, err := DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
