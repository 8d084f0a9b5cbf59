/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers, service/init.go
 */

package api

import (
	"predictions-hub/api/controllers"
	"predictions-hub/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController(service.GlobalSession)
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 预测数据
	r.Route("/predictions", func(r chi.Router) {
		pageSize := 0
		if service.GlobalConfig != nil {
			pageSize = service.GlobalConfig.Data.PageSize
		}
		predictionsController := controllers.NewPredictionsController(service.GlobalSession, service.GlobalActivityService, pageSize)
		r.Get("/", predictionsController.List)
		r.Post("/reload", predictionsController.Reload)
		r.Get("/columns", predictionsController.Columns)
		r.Get("/statistics", predictionsController.Statistics)
		r.Get("/export", predictionsController.Export)
	})

	// 结果图库
	galleryController := controllers.NewGalleryController(service.GlobalGalleryProber, service.GlobalActivityService)
	r.Get("/gallery", galleryController.List)

	// 活动记录
	activityController := controllers.NewActivityController(service.GlobalActivityService)
	r.Get("/activities", activityController.List)
}
