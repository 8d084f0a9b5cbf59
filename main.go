package main

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"predictions-hub/api"
	_ "predictions-hub/docs"
	"predictions-hub/logger"
	"predictions-hub/service"
	"predictions-hub/service/config"

	daprd "github.com/dapr/go-sdk/service/http"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title 预测数据服务 API
// @version 1.0
// @description 微塑料识别模型预测结果服务，提供预测数据加载、查询、统计、导出与结果图库功能
// @BasePath /swagger/predictions-hub
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("加载配置失败", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg.LogLevel)

	if err := service.Init(cfg); err != nil {
		slog.Error("服务初始化失败", "error", err)
		os.Exit(1)
	}
	defer service.Shutdown()

	mux := chi.NewRouter()

	// 如果有BASE_CONTEXT，则在该路径下挂载所有路由
	if cfg.Server.BaseContext != "" {
		mux.Route(cfg.Server.BaseContext, func(r chi.Router) {
			// 创建子路由器并初始化路由
			subMux := r.(*chi.Mux)
			api.InitRoute(subMux)
			r.Handle("/metrics", promhttp.Handler())
			r.Handle("/swagger*", httpSwagger.WrapHandler)
		})
	} else {
		api.InitRoute(mux)
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/swagger*", httpSwagger.WrapHandler)
	}

	s := daprd.NewServiceWithMux(":"+strconv.Itoa(cfg.Server.ListenPort), mux)
	slog.Info("服务启动", "port", cfg.Server.ListenPort, "base_context", cfg.Server.BaseContext)
	if err := s.Start(); err != nil && err != http.ErrServerClosed {
		slog.Error("服务异常退出", "error", err)
	}
}
