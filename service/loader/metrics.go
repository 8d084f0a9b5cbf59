/*
 * @module service/loader/metrics
 * @description 数据加载与导出的 Prometheus 指标
 * @architecture 包级指标，通过 promauto 注册到默认注册表
 * @dependencies github.com/prometheus/client_golang
 * @refs session.go, main.go(/metrics)
 */

package loader

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 加载结果标签
const (
	resultSuccess    = "success"
	resultNetwork    = "network_error"
	resultEmpty      = "empty"
	resultInProgress = "in_progress"
	resultError      = "error"
)

var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_loads_total",
		Help: "预测CSV加载次数，按结果分类",
	}, []string{"result"})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "predictions_load_duration_seconds",
		Help:    "预测CSV加载耗时",
		Buckets: prometheus.DefBuckets,
	})

	datasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "predictions_dataset_rows",
		Help: "当前数据集行数",
	})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_exports_total",
		Help: "CSV导出次数",
	}, []string{"scope"})
)

// RecordExport 记录一次导出
func RecordExport(scope string) {
	exportsTotal.WithLabelValues(scope).Inc()
}
