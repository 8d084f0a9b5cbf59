/*
 * @module api/controllers/health_controller
 * @description 健康检查控制器，提供服务健康状态与数据就绪检查
 * @architecture MVC架构 - 控制器层
 * @stateFlow HTTP请求处理流程
 * @rules 存活检查始终返回ok；就绪检查要求已有成功加载的数据集
 * @dependencies net/http
 * @refs service/loader
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"predictions-hub/service/loader"
)

const (
	serviceName    = "predictions-hub"
	serviceVersion = "1.0.0"
)

// HealthController 健康检查控制器
type HealthController struct {
	session *loader.Session
}

// NewHealthController 创建健康检查控制器实例
func NewHealthController(session *loader.Session) *HealthController {
	return &HealthController{session: session}
}

// HealthResponse 健康检查响应结构
type HealthResponse struct {
	Status    string         `json:"status" example:"ok"`
	Timestamp time.Time      `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string         `json:"version" example:"1.0.0"`
	Service   string         `json:"service" example:"predictions-hub"`
	Dataset   *loader.Status `json:"dataset,omitempty"`
}

// Health 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
	}

	render.JSON(w, r, response)
}

// Ready 就绪检查，数据集未加载时返回503
// @Summary 就绪检查
// @Description 检查预测数据集是否已加载，未加载时返回503
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	status := c.session.Status(r.Context())
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Service:   serviceName,
		Dataset:   &status,
	}

	if !status.Loaded {
		response.Status = "not_ready"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, response)
}
