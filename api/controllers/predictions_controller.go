/*
 * @module api/controllers/predictions_controller
 * @description 预测数据控制器，提供数据加载、查询、统计与导出接口
 * @architecture MVC架构 - 控制器层
 * @stateFlow HTTP请求 -> 参数解析 -> 会话快照 -> 查询/统计/序列化 -> 响应
 * @rules 加载错误按类型映射HTTP状态码(502/422/409)；未加载数据时返回404；
 *        加载与导出动作记录到活动日志
 * @dependencies github.com/go-chi/render
 * @refs service/loader, service/query, service/csvcodec
 */

package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"predictions-hub/service/activity"
	"predictions-hub/service/confidence"
	"predictions-hub/service/csvcodec"
	"predictions-hub/service/loader"
	"predictions-hub/service/models"
	"predictions-hub/service/query"
	"predictions-hub/service/statistics"
)

// ExportFilename 导出文件名
const ExportFilename = "predictions_export.csv"

// 导出范围
const (
	ExportScopeAll  = "all"
	ExportScopeView = "view"
)

// PredictionsController 预测数据控制器
type PredictionsController struct {
	session  *loader.Session
	activity *activity.Service
	pageSize int
}

// NewPredictionsController 创建预测数据控制器，activitySvc 可为 nil
func NewPredictionsController(session *loader.Session, activitySvc *activity.Service, pageSize int) *PredictionsController {
	if pageSize <= 0 {
		pageSize = query.DefaultLimit
	}
	return &PredictionsController{
		session:  session,
		activity: activitySvc,
		pageSize: pageSize,
	}
}

// ReloadResponse 加载结果
type ReloadResponse struct {
	Status     loader.Status         `json:"status"`
	Columns    []string              `json:"columns"`
	Statistics statistics.Statistics `json:"statistics"`
	Summary    string                `json:"summary"`
}

// ListResponse 查询结果
type ListResponse struct {
	query.View
	Query   query.State `json:"query"`
	Summary string      `json:"summary"`
}

// ColumnsResponse 列信息
type ColumnsResponse struct {
	Columns          []string `json:"columns"`
	ConfidenceColumn string   `json:"confidence_column,omitempty"`
	HasConfidence    bool     `json:"has_confidence"`
}

// Reload 重新获取并解析预测CSV
// @Summary 加载预测数据
// @Description 从远程地址获取预测CSV并替换当前数据集，失败时保留已加载的数据
// @Tags 预测数据
// @Produce json
// @Success 200 {object} APIResponse{data=ReloadResponse}
// @Failure 409 {object} APIResponse "已有加载在进行中"
// @Failure 422 {object} APIResponse "CSV没有数据行"
// @Failure 500 {object} APIResponse
// @Failure 502 {object} APIResponse "获取远程CSV失败"
// @Router /predictions/reload [post]
func (c *PredictionsController) Reload(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.session.Load(r.Context())

	rows := 0
	if snapshot != nil {
		rows = snapshot.Dataset.Len()
	}
	if c.activity != nil {
		c.activity.RecordLoad(r.Context(), "api", c.session.Source(), rows, err)
	}

	if err != nil {
		switch {
		case errors.Is(err, loader.ErrLoadInProgress):
			renderError(w, r, http.StatusConflict, ErrorResponse("数据正在加载中", err))
		case errors.Is(err, loader.ErrNetwork):
			renderError(w, r, http.StatusBadGateway, ErrorResponse("获取预测数据失败", err))
		case errors.Is(err, loader.ErrEmptyDataset):
			renderError(w, r, http.StatusUnprocessableEntity, ErrorResponse("预测数据为空", err))
		default:
			renderError(w, r, http.StatusInternalServerError, InternalErrorResponse("加载预测数据失败", err))
		}
		return
	}

	view := query.Run(snapshot.Dataset, c.defaultState())
	render.JSON(w, r, SuccessResponse("加载预测数据成功", ReloadResponse{
		Status:     c.session.Status(r.Context()),
		Columns:    snapshot.Dataset.Columns,
		Statistics: snapshot.Statistics,
		Summary:    view.Summary(),
	}))
}

// List 过滤、排序并分页返回预测数据
// @Summary 查询预测数据
// @Description 按置信度分档过滤、按列排序并分页返回预测数据
// @Tags 预测数据
// @Produce json
// @Param filter query string false "置信度分档" Enums(all,high,medium,low) default(all)
// @Param sort query string false "排序列"
// @Param dir query string false "排序方向" Enums(asc,desc) default(asc)
// @Param offset query int false "跳过的行数" default(0)
// @Param limit query int false "每页行数"
// @Success 200 {object} APIResponse{data=ListResponse}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse "尚未加载预测数据"
// @Router /predictions [get]
func (c *PredictionsController) List(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := c.snapshot(w, r)
	if !ok {
		return
	}

	st, err := c.parseState(r, true)
	if err != nil {
		renderError(w, r, http.StatusBadRequest, BadRequestResponse("查询参数错误", err))
		return
	}
	if st.SortKey != "" && !hasColumn(snapshot.Dataset.Columns, st.SortKey) {
		renderError(w, r, http.StatusBadRequest, BadRequestResponse("排序列不存在", fmt.Errorf("%s", st.SortKey)))
		return
	}

	view := query.Run(snapshot.Dataset, st)
	render.JSON(w, r, SuccessResponse("查询成功", ListResponse{
		View:    view,
		Query:   st,
		Summary: view.Summary(),
	}))
}

// Columns 返回列信息与识别出的置信度列
// @Summary 获取列信息
// @Description 返回数据集列名以及识别出的置信度列
// @Tags 预测数据
// @Produce json
// @Success 200 {object} APIResponse{data=ColumnsResponse}
// @Failure 404 {object} APIResponse "尚未加载预测数据"
// @Router /predictions/columns [get]
func (c *PredictionsController) Columns(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := c.snapshot(w, r)
	if !ok {
		return
	}

	column, found := confidence.FindColumn(snapshot.Dataset.Columns)
	render.JSON(w, r, SuccessResponse("获取列信息成功", ColumnsResponse{
		Columns:          snapshot.Dataset.Columns,
		ConfidenceColumn: column,
		HasConfidence:    found,
	}))
}

// Statistics 返回整个数据集的统计信息，不受查询条件影响
// @Summary 获取统计信息
// @Description 返回整个数据集的样本数、平均置信度及高低置信度样本数
// @Tags 预测数据
// @Produce json
// @Success 200 {object} APIResponse{data=statistics.Statistics}
// @Failure 404 {object} APIResponse "尚未加载预测数据"
// @Router /predictions/statistics [get]
func (c *PredictionsController) Statistics(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := c.snapshot(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, SuccessResponse("获取统计信息成功", snapshot.Statistics))
}

// Export 导出CSV文件；scope=view 时导出过滤排序后的全部行(不分页)
// @Summary 导出预测数据
// @Description 以CSV附件导出全部数据或过滤排序后的视图，视图为空时只包含表头
// @Tags 预测数据
// @Produce text/csv
// @Param scope query string false "导出范围" Enums(all,view) default(all)
// @Param filter query string false "置信度分档(scope=view)" Enums(all,high,medium,low)
// @Param sort query string false "排序列(scope=view)"
// @Param dir query string false "排序方向(scope=view)" Enums(asc,desc)
// @Success 200 {file} file "predictions_export.csv"
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse "尚未加载预测数据"
// @Router /predictions/export [get]
func (c *PredictionsController) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := c.snapshot(w, r)
	if !ok {
		return
	}

	scope := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scope")))
	if scope == "" {
		scope = ExportScopeAll
	}

	var rows []csvcodec.Record
	switch scope {
	case ExportScopeAll:
		rows = snapshot.Dataset.Records
	case ExportScopeView:
		st, err := c.parseState(r, false)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, BadRequestResponse("查询参数错误", err))
			return
		}
		if st.SortKey != "" && !hasColumn(snapshot.Dataset.Columns, st.SortKey) {
			renderError(w, r, http.StatusBadRequest, BadRequestResponse("排序列不存在", fmt.Errorf("%s", st.SortKey)))
			return
		}
		rows = query.Apply(snapshot.Dataset, st)
	default:
		renderError(w, r, http.StatusBadRequest, BadRequestResponse("不支持的导出范围", fmt.Errorf("%s", scope)))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, ExportFilename))
	w.WriteHeader(http.StatusOK)
	if err := csvcodec.WriteTable(w, snapshot.Dataset.Columns, rows); err != nil {
		slog.Error("写出导出文件失败", "scope", scope, "error", err)
		return
	}

	loader.RecordExport(scope)
	if c.activity != nil {
		if _, err := c.activity.Log(r.Context(), models.ActivityExport, "导出 "+ExportFilename, models.JSONB{
			"scope": scope,
			"rows":  len(rows),
		}); err != nil {
			slog.Warn("记录导出活动失败", "error", err)
		}
	}
}

// snapshot 获取当前快照，未加载时输出404
func (c *PredictionsController) snapshot(w http.ResponseWriter, r *http.Request) (*loader.Snapshot, bool) {
	snapshot, err := c.session.Snapshot()
	if err != nil {
		renderError(w, r, http.StatusNotFound, NotFoundResponse("尚未加载预测数据", err))
		return nil, false
	}
	return snapshot, true
}

func (c *PredictionsController) defaultState() query.State {
	st := query.DefaultState()
	st.Limit = c.pageSize
	return st
}

// parseState 从查询参数解析查询状态，paged 为 false 时忽略分页参数
func (c *PredictionsController) parseState(r *http.Request, paged bool) (query.State, error) {
	params := r.URL.Query()
	st := c.defaultState()

	bucket, err := confidence.ParseBucket(params.Get("filter"))
	if err != nil {
		return st, err
	}
	st.Filter = bucket
	st.SortKey = params.Get("sort")

	if dir := strings.ToLower(strings.TrimSpace(params.Get("dir"))); dir != "" {
		st.SortDir = query.SortDir(dir)
	}

	if paged {
		if v := params.Get("offset"); v != "" {
			offset, err := parseQueryInt(v)
			if err != nil || offset < 0 {
				return st, fmt.Errorf("offset 无效: %s", v)
			}
			st.Offset = offset
		}
		if v := params.Get("limit"); v != "" {
			limit, err := parseQueryInt(v)
			if err != nil || limit <= 0 {
				return st, fmt.Errorf("limit 无效: %s", v)
			}
			st.Limit = limit
		}
	}

	if err := st.Validate(); err != nil {
		return st, err
	}
	return st, nil
}

// parseQueryInt 按十进制解析查询参数中的整数，不接受 0x 前缀等其他进制写法
func parseQueryInt(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("不是十进制整数: %s", v)
	}
	return n, nil
}

func hasColumn(columns []string, name string) bool {
	for _, col := range columns {
		if col == name {
			return true
		}
	}
	return false
}
