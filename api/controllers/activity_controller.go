/*
 * @module api/controllers/activity_controller
 * @description 活动记录控制器，返回最近的加载、导出与查看记录
 * @architecture MVC架构 - 控制器层
 * @rules limit 按十进制解析，超过保留上限时返回全部保留记录
 * @dependencies github.com/go-chi/render
 * @refs service/activity
 */

package controllers

import (
	"net/http"

	"github.com/go-chi/render"

	"predictions-hub/service/activity"
)

// ActivityController 活动记录控制器
type ActivityController struct {
	service *activity.Service
}

// NewActivityController 创建活动记录控制器
func NewActivityController(service *activity.Service) *ActivityController {
	return &ActivityController{service: service}
}

// List 返回最近的活动记录，按时间倒序
// @Summary 获取活动记录
// @Description 返回最近的加载、导出与查看记录，按时间倒序
// @Tags 活动记录
// @Produce json
// @Param limit query int false "返回条数，0 表示全部保留记录" default(0)
// @Success 200 {object} APIResponse{data=[]models.ActivityEvent}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /activities [get]
func (c *ActivityController) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := parseQueryInt(v)
		if err != nil || n < 0 {
			renderError(w, r, http.StatusBadRequest, BadRequestResponse("limit 参数无效", err))
			return
		}
		limit = n
	}

	events, err := c.service.List(r.Context(), limit)
	if err != nil {
		renderError(w, r, http.StatusInternalServerError, InternalErrorResponse("查询活动记录失败", err))
		return
	}
	render.JSON(w, r, SuccessResponse("查询活动记录成功", events))
}
