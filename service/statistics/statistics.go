/*
 * @module service/statistics/statistics
 * @description 统计汇总器，对完整数据集计算样本数、平均置信度与高/低置信度数量
 * @architecture 纯函数 - 始终基于完整数据集，与当前过滤/排序无关
 * @stateFlow 数据集 -> 置信度列识别 -> 逐行归一化 -> 汇总
 * @rules 平均值只计算可解析的行；四舍五入到整数百分比；
 *        无置信度数据时平均值为 "unavailable"，计数为0
 * @dependencies math
 * @refs service/confidence
 */

package statistics

import (
	"math"
	"strconv"

	"predictions-hub/service/confidence"
	"predictions-hub/service/csvcodec"
)

// Unavailable 无置信度数据时的平均值占位
const Unavailable = "unavailable"

// Statistics 汇总统计
type Statistics struct {
	TotalSamples      int    `json:"total_samples"`
	AvgConfidence     string `json:"avg_confidence"`
	HighConfSamples   int    `json:"high_conf_samples"`
	LowConfSamples    int    `json:"low_conf_samples"`
	ConfidenceColumn  string `json:"confidence_column,omitempty"`
	ConfidenceSamples int    `json:"confidence_samples"`
}

// Available 是否存在可用的置信度数据
func (s Statistics) Available() bool {
	return s.AvgConfidence != Unavailable
}

// Aggregate 计算完整数据集的统计信息
func Aggregate(ds *csvcodec.Dataset) Statistics {
	stats := Statistics{
		TotalSamples:  ds.Len(),
		AvgConfidence: Unavailable,
	}
	if ds.IsEmpty() {
		return stats
	}

	column, found := confidence.FindColumn(ds.Columns)
	if !found {
		return stats
	}
	stats.ConfidenceColumn = column

	var sum float64
	for _, record := range ds.Records {
		value, ok := confidence.Normalize(record.Value(column))
		if !ok {
			continue
		}
		sum += value
		stats.ConfidenceSamples++

		if value >= confidence.HighThreshold {
			stats.HighConfSamples++
		}
		if value < confidence.LowThreshold {
			stats.LowConfSamples++
		}
	}

	if stats.ConfidenceSamples > 0 {
		stats.AvgConfidence = FormatPercent(sum / float64(stats.ConfidenceSamples))
	}
	return stats
}

// FormatPercent 将小数格式化为整数百分比，0.5 进位（与 Math.round 一致）
func FormatPercent(fraction float64) string {
	return strconv.FormatFloat(math.Floor(fraction*100+0.5), 'f', 0, 64) + "%"
}
