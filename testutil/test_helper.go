/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, testify, net/http/httptest
 * @refs service/models
 */

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"predictions-hub/service/models"
)

// SampleCSV 测试用预测数据，平均置信度 65%，高置信 1 条，低置信 1 条
const SampleCSV = "conf,name\n90%,a\n40,b\n,c\n"

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 内存库每个连接独立，限制为单连接
	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("failed to get sql.DB: %v", err))
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.ActivityEvent{}); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if sqlDB, err := tdb.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	db *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{db: db}
}

// ActivityEventOption 活动记录选项
type ActivityEventOption func(*models.ActivityEvent)

// WithActivityType 设置活动类型
func WithActivityType(eventType string) ActivityEventOption {
	return func(e *models.ActivityEvent) { e.Type = eventType }
}

// WithActivityAt 设置活动时间
func WithActivityAt(at time.Time) ActivityEventOption {
	return func(e *models.ActivityEvent) { e.At = at }
}

// CreateActivityEvent 创建活动记录
func (f *TestDataFactory) CreateActivityEvent(opts ...ActivityEventOption) *models.ActivityEvent {
	event := &models.ActivityEvent{
		Type:        models.ActivityView,
		Description: "测试活动",
		Metadata:    models.JSONB{"test": true},
	}
	for _, opt := range opts {
		opt(event)
	}

	if err := f.db.Create(event).Error; err != nil {
		panic(fmt.Sprintf("failed to create activity event: %v", err))
	}
	return event
}

// CSVServer 可控的远程CSV服务
type CSVServer struct {
	*httptest.Server

	mu     sync.Mutex
	body   string
	status int
	hits   int32
}

// NewCSVServer 启动返回给定内容的CSV服务，测试结束时自动关闭
func NewCSVServer(t *testing.T, body string) *CSVServer {
	t.Helper()
	s := &CSVServer{body: body, status: http.StatusOK}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

func (s *CSVServer) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.hits, 1)

	s.mu.Lock()
	body, status := s.body, s.status
	s.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Write([]byte(body))
}

// Set 修改返回内容与状态码
func (s *CSVServer) Set(body string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body, s.status = body, status
}

// Hits 已收到的请求数
func (s *CSVServer) Hits() int {
	return int(atomic.LoadInt32(&s.hits))
}

// HTTPTestHelper HTTP测试辅助工具
type HTTPTestHelper struct{}

// NewHTTPTestHelper 创建HTTP测试辅助工具
func NewHTTPTestHelper() *HTTPTestHelper {
	return &HTTPTestHelper{}
}

// DecodeJSON 断言状态码并解码JSON响应
func (h *HTTPTestHelper) DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, v interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

// AssertJSONResponse 断言JSON响应
func (h *HTTPTestHelper) AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedBody interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code)

	if expectedBody != nil {
		var actualBody interface{}
		err := json.Unmarshal(w.Body.Bytes(), &actualBody)
		assert.NoError(t, err)

		expectedJSON, _ := json.Marshal(expectedBody)
		actualJSON, _ := json.Marshal(actualBody)

		assert.JSONEq(t, string(expectedJSON), string(actualJSON))
	}
}
