/*
 * @module api/controllers/predictions_controller_test
 * @description 预测数据、图库、活动记录控制器测试
 * @architecture 测试层
 * @stateFlow 测试准备 -> 请求构建 -> 响应验证
 * @rules 覆盖错误码映射、查询参数校验、导出格式与活动记录
 * @dependencies testing, net/http/httptest, stretchr/testify
 */

package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"predictions-hub/service/activity"
	"predictions-hub/service/distributed_lock"
	"predictions-hub/service/gallery"
	"predictions-hub/service/loader"
	"predictions-hub/service/models"
	"predictions-hub/testutil"
)

type PredictionsControllerTestSuite struct {
	suite.Suite
	testDB   *testutil.TestDB
	csv      *testutil.CSVServer
	lock     *distributed_lock.MemoryLock
	session  *loader.Session
	activity *activity.Service
	router   *chi.Mux
	helper   *testutil.HTTPTestHelper
}

func (s *PredictionsControllerTestSuite) SetupTest() {
	s.testDB = testutil.NewTestDB()
	s.csv = testutil.NewCSVServer(s.T(), testutil.SampleCSV)
	s.lock = distributed_lock.NewMemoryLock()
	s.session = loader.NewSession(loader.NewHTTPFetcher(s.csv.URL, time.Second), s.lock)
	s.activity = activity.NewService(s.testDB.DB, nil, 50)
	s.helper = testutil.NewHTTPTestHelper()

	predictions := NewPredictionsController(s.session, s.activity, 2)
	health := NewHealthController(s.session)
	activities := NewActivityController(s.activity)

	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/ready", health.Ready)
	r.Get("/health", health.Health)
	r.Route("/predictions", func(r chi.Router) {
		r.Get("/", predictions.List)
		r.Post("/reload", predictions.Reload)
		r.Get("/columns", predictions.Columns)
		r.Get("/statistics", predictions.Statistics)
		r.Get("/export", predictions.Export)
	})
	r.Get("/activities", activities.List)
	s.router = r
}

func (s *PredictionsControllerTestSuite) TearDownTest() {
	s.testDB.Close()
}

func (s *PredictionsControllerTestSuite) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PredictionsControllerTestSuite) reload() {
	w := s.do(http.MethodPost, "/predictions/reload")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
}

func (s *PredictionsControllerTestSuite) TestNotLoaded() {
	for _, target := range []string{"/predictions", "/predictions/columns", "/predictions/statistics", "/predictions/export"} {
		var response APIResponse
		s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, target), http.StatusNotFound, &response)
		s.Equal(-1, response.Status, target)
	}

	s.Equal(http.StatusServiceUnavailable, s.do(http.MethodGet, "/ready").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health").Code)
}

func (s *PredictionsControllerTestSuite) TestReloadSuccess() {
	var response struct {
		Status int
		Data   struct {
			Status     loader.Status `json:"status"`
			Columns    []string      `json:"columns"`
			Statistics struct {
				TotalSamples    int    `json:"total_samples"`
				AvgConfidence   string `json:"avg_confidence"`
				HighConfSamples int    `json:"high_conf_samples"`
				LowConfSamples  int    `json:"low_conf_samples"`
			} `json:"statistics"`
			Summary string `json:"summary"`
		}
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodPost, "/predictions/reload"), http.StatusOK, &response)

	s.Equal(0, response.Status)
	s.True(response.Data.Status.Loaded)
	s.Equal([]string{"conf", "name"}, response.Data.Columns)
	s.Equal(3, response.Data.Statistics.TotalSamples)
	s.Equal("65%", response.Data.Statistics.AvgConfidence)
	s.Equal(1, response.Data.Statistics.HighConfSamples)
	s.Equal(1, response.Data.Statistics.LowConfSamples)
	s.Equal("Showing 2 of 3 rows (total 3 samples)", response.Data.Summary)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/ready").Code)

	events, err := s.activity.List(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(models.ActivityLoad, events[0].Type)
}

func (s *PredictionsControllerTestSuite) TestReloadErrors() {
	s.csv.Set("", http.StatusInternalServerError)
	s.Equal(http.StatusBadGateway, s.do(http.MethodPost, "/predictions/reload").Code)

	s.csv.Set("conf,name\n", http.StatusOK)
	s.Equal(http.StatusUnprocessableEntity, s.do(http.MethodPost, "/predictions/reload").Code)

	_, err := s.lock.TryLock(context.Background(), "csv:"+s.session.Source(), time.Minute)
	s.Require().NoError(err)
	hits := s.csv.Hits()
	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/predictions/reload").Code)
	s.Equal(hits, s.csv.Hits(), "持有锁时不应请求远程CSV")

	events, err := s.activity.List(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Len(events, 3)
	for _, event := range events {
		s.Equal(models.ActivityLoadFailed, event.Type)
	}
}

func (s *PredictionsControllerTestSuite) TestReloadFailureKeepsData() {
	s.reload()
	s.Equal(1, s.csv.Hits())
	s.csv.Set("", http.StatusNotFound)
	s.Equal(http.StatusBadGateway, s.do(http.MethodPost, "/predictions/reload").Code)

	var response struct {
		Data ListResponse
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?limit=10"), http.StatusOK, &response)
	s.Equal(3, response.Data.Total)
}

func (s *PredictionsControllerTestSuite) TestList() {
	s.reload()

	var response struct {
		Status int
		Data   struct {
			Columns []string            `json:"columns"`
			Rows    []map[string]string `json:"rows"`
			Shown   int                 `json:"shown"`
			Matched int                 `json:"matched"`
			Total   int                 `json:"total"`
			Summary string              `json:"summary"`
		}
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?sort=conf&dir=desc"), http.StatusOK, &response)

	s.Equal(2, response.Data.Shown, "默认页大小来自控制器配置")
	s.Equal(3, response.Data.Matched)
	s.Require().Len(response.Data.Rows, 2)
	s.Equal("a", response.Data.Rows[0]["name"])
	s.Equal("b", response.Data.Rows[1]["name"])

	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?filter=LOW"), http.StatusOK, &response)
	s.Equal(1, response.Data.Matched)
	s.Equal("b", response.Data.Rows[0]["name"])
	s.Equal("Showing 1 of 1 rows (total 3 samples)", response.Data.Summary)

	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?offset=2&limit=5"), http.StatusOK, &response)
	s.Equal(1, response.Data.Shown)
	s.Equal("c", response.Data.Rows[0]["name"])

	var paged struct {
		Data struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
		}
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?offset=01&limit=010"), http.StatusOK, &paged)
	s.Equal(1, paged.Data.Offset)
	s.Equal(10, paged.Data.Limit, "前导零按十进制解析")
}

func (s *PredictionsControllerTestSuite) TestListInvalidParams() {
	s.reload()

	tests := []struct {
		name  string
		query string
	}{
		{"未知分档", "filter=extreme"},
		{"排序方向无效", "dir=sideways"},
		{"排序列不存在", "sort=missing"},
		{"offset非数字", "offset=abc"},
		{"offset为负", "offset=-1"},
		{"limit为零", "limit=0"},
		{"offset十六进制", "offset=0x1"},
		{"limit十六进制", "limit=0x10"},
		{"limit二进制", "limit=0b11"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			var response APIResponse
			s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions?"+tt.query), http.StatusBadRequest, &response)
			s.Equal(-1, response.Status)
		})
	}
}

func (s *PredictionsControllerTestSuite) TestColumnsAndStatistics() {
	s.reload()

	var columns struct {
		Data ColumnsResponse
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions/columns"), http.StatusOK, &columns)
	s.Equal([]string{"conf", "name"}, columns.Data.Columns)
	s.Equal("conf", columns.Data.ConfidenceColumn)
	s.True(columns.Data.HasConfidence)

	var stats struct {
		Data map[string]interface{}
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/predictions/statistics?filter=high"), http.StatusOK, &stats)
	s.EqualValues(3, stats.Data["total_samples"], "统计不受查询参数影响")
}

func (s *PredictionsControllerTestSuite) TestExport() {
	s.csv.Set("id,label,conf\n1,\"a,b\",0.9\n2,\"say \"\"hi\"\" now\",0.3\n", http.StatusOK)
	s.reload()

	w := s.do(http.MethodGet, "/predictions/export")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	s.Contains(w.Header().Get("Content-Disposition"), ExportFilename)
	s.Equal("id,label,conf\n1,\"a,b\",0.9\n2,\"say \"\"hi\"\" now\",0.3", w.Body.String())

	w = s.do(http.MethodGet, "/predictions/export?scope=view&filter=low")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("id,label,conf\n2,\"say \"\"hi\"\" now\",0.3", w.Body.String())

	w = s.do(http.MethodGet, "/predictions/export?scope=view&filter=medium")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("id,label,conf", w.Body.String(), "空视图只导出表头")

	w = s.do(http.MethodGet, "/predictions/export?scope=view&sort=id&dir=desc")
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("id,label,conf\n2,\"say \"\"hi\"\" now\",0.3\n1,\"a,b\",0.9", w.Body.String())

	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/predictions/export?scope=page").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/predictions/export?scope=view&sort=missing").Code)

	events, err := s.activity.List(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Len(events, 5)
	s.Equal(models.ActivityExport, events[0].Type)
	s.Equal("view", events[0].Metadata["scope"])
}

func (s *PredictionsControllerTestSuite) TestActivities() {
	at := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)
	factory := testutil.NewTestDataFactory(s.testDB.DB)
	factory.CreateActivityEvent(testutil.WithActivityType(models.ActivityView))
	factory.CreateActivityEvent(testutil.WithActivityType(models.ActivityExport), testutil.WithActivityAt(at))

	var response struct {
		Status int
		Data   []models.ActivityEvent
	}
	s.helper.DecodeJSON(s.T(), s.do(http.MethodGet, "/activities?limit=1"), http.StatusOK, &response)
	s.Require().Len(response.Data, 1)
	s.Equal(models.ActivityExport, response.Data[0].Type)
	s.True(at.Equal(response.Data[0].At))

	s.helper.AssertJSONResponse(s.T(), s.do(http.MethodGet, "/activities?limit=x"), http.StatusBadRequest,
		APIResponse{Status: -1, Msg: "limit 参数无效: 不是十进制整数: x"})
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/activities?limit=0x2").Code)
}

func TestPredictionsControllerTestSuite(t *testing.T) {
	suite.Run(t, new(PredictionsControllerTestSuite))
}

func TestGalleryController_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "confidence_histogram.png") {
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png"))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	prober := gallery.NewProber([]gallery.Image{
		{Name: "confidence_histogram.png", URL: server.URL + "/confidence_histogram.png"},
		{Name: "sample_predictions.png", URL: server.URL + "/sample_predictions.png"},
	}, time.Second)
	controller := NewGalleryController(prober, nil)

	req := httptest.NewRequest(http.MethodGet, "/gallery", nil)
	w := httptest.NewRecorder()
	controller.List(w, req)

	var response struct {
		Status int
		Data   GalleryResponse
	}
	testutil.NewHTTPTestHelper().DecodeJSON(t, w, http.StatusOK, &response)
	assert.Equal(t, 0, response.Status)
	assert.Equal(t, 1, response.Data.Available)
	require.Len(t, response.Data.Images, 2)
	assert.True(t, response.Data.Images[0].Available)
	assert.Equal(t, http.StatusNotFound, response.Data.Images[1].StatusCode)
}

func TestErrorResponse(t *testing.T) {
	assert.Equal(t, APIResponse{Status: -1, Msg: "失败"}, ErrorResponse("失败", nil))
	assert.Equal(t, "失败: boom", BadRequestResponse("失败", errors.New("boom")).Msg)
}
