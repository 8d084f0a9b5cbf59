package activity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"predictions-hub/service/models"
)

type recordingPublisher struct {
	events []*models.ActivityEvent
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(ctx context.Context, event *models.ActivityEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

type ActivityServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	publisher *recordingPublisher
	service   *Service
}

func (s *ActivityServiceTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.AutoMigrate(&models.ActivityEvent{}))

	s.db = db
	s.publisher = &recordingPublisher{}
	s.service = NewService(db, s.publisher, 3)
}

func (s *ActivityServiceTestSuite) TestLogAndList() {
	ctx := context.Background()
	_, err := s.service.Log(ctx, models.ActivityLoad, "加载 3 行", models.JSONB{"rows": 3})
	s.Require().NoError(err)
	_, err = s.service.Log(ctx, models.ActivityExport, "导出全部", nil)
	s.Require().NoError(err)

	events, err := s.service.List(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Equal(models.ActivityExport, events[0].Type, "最新的记录排在最前")
	s.Equal(models.ActivityLoad, events[1].Type)
	s.EqualValues(3, events[1].Metadata["rows"])

	s.Len(s.publisher.events, 2)
}

func (s *ActivityServiceTestSuite) TestPrunesBeyondLimit() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := s.service.Log(ctx, models.ActivityView, fmt.Sprintf("查看 %d", i), nil)
		s.Require().NoError(err)
	}

	var count int64
	s.Require().NoError(s.db.Model(&models.ActivityEvent{}).Count(&count).Error)
	s.EqualValues(3, count)

	events, err := s.service.List(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	s.Equal("查看 4", events[0].Description)
	s.Equal("查看 2", events[2].Description)
}

func (s *ActivityServiceTestSuite) TestListWithLimit() {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.service.Log(ctx, models.ActivityView, fmt.Sprintf("查看 %d", i), nil)
		s.Require().NoError(err)
	}

	events, err := s.service.List(ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("查看 2", events[0].Description)
}

func (s *ActivityServiceTestSuite) TestPublishFailureDoesNotFailLog() {
	s.publisher.err = errors.New("broker unavailable")

	event, err := s.service.Log(context.Background(), models.ActivityLoadFailed, "加载失败", nil)
	s.Require().NoError(err)
	s.NotEmpty(event.EventID)
}

func (s *ActivityServiceTestSuite) TestRecordLoad() {
	ctx := context.Background()
	s.service.RecordLoad(ctx, "api", "http://data/p.csv", 12, nil)
	s.service.RecordLoad(ctx, "cron", "http://data/p.csv", 0, errors.New("status 502"))

	events, err := s.service.List(ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(events, 2)

	s.Equal(models.ActivityLoadFailed, events[0].Type)
	s.Equal("status 502", events[0].Metadata["error"])
	s.Equal("cron", events[0].Metadata["trigger"])

	s.Equal(models.ActivityLoad, events[1].Type)
	s.Equal("加载预测数据 12 行", events[1].Description)
	s.EqualValues(12, events[1].Metadata["rows"])
}

func (s *ActivityServiceTestSuite) TestClose() {
	s.Require().NoError(s.service.Close())
	s.True(s.publisher.closed)
}

func TestActivityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityServiceTestSuite))
}

func TestNewService_Defaults(t *testing.T) {
	service := NewService(nil, nil, 0)
	assert.Equal(t, DefaultLimit, service.Limit())
	require.NoError(t, service.Close())
}
