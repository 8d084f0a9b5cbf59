/*
 * @module api/controllers/gallery_controller
 * @description 结果图库控制器，返回结果图片地址及可访问状态
 * @architecture MVC架构 - 控制器层
 * @rules 单张图片失败不影响整体响应；每次查看记录一条活动
 * @dependencies github.com/go-chi/render
 * @refs service/gallery, service/activity
 */

package controllers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"predictions-hub/service/activity"
	"predictions-hub/service/gallery"
	"predictions-hub/service/models"
)

// GalleryController 结果图库控制器
type GalleryController struct {
	prober   *gallery.Prober
	activity *activity.Service
}

// NewGalleryController 创建结果图库控制器
func NewGalleryController(prober *gallery.Prober, activitySvc *activity.Service) *GalleryController {
	return &GalleryController{prober: prober, activity: activitySvc}
}

// GalleryResponse 图库探测结果
type GalleryResponse struct {
	Images    []gallery.ImageStatus `json:"images"`
	Available int                   `json:"available"`
}

// List 探测所有结果图片，每张图片只请求一次
// @Summary 获取结果图库
// @Description 探测置信度直方图、样本预测、误分类样本等结果图片是否可访问
// @Tags 结果图库
// @Produce json
// @Success 200 {object} APIResponse{data=GalleryResponse}
// @Router /gallery [get]
func (c *GalleryController) List(w http.ResponseWriter, r *http.Request) {
	results := c.prober.ProbeAll(r.Context())

	available := 0
	for _, result := range results {
		if result.Available {
			available++
		}
	}

	if c.activity != nil {
		if _, err := c.activity.Log(r.Context(), models.ActivityView, "查看结果图库", models.JSONB{
			"images":    len(results),
			"available": available,
		}); err != nil {
			slog.Warn("记录查看活动失败", "error", err)
		}
	}

	render.JSON(w, r, SuccessResponse("获取结果图库成功", GalleryResponse{
		Images:    results,
		Available: available,
	}))
}
