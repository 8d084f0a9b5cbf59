/*
 * @module cmd/predictionctl/cmd_stats
 * @description stats 子命令，输出整个数据集的统计信息
 * @dependencies github.com/spf13/cobra, service/statistics
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"predictions-hub/service/statistics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "输出整个数据集的统计信息",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, _ []string) error {
	ds, source, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	stats := statistics.Aggregate(ds)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "数据来源: %s\n", source)
	fmt.Fprintf(out, "样本总数: %d\n", stats.TotalSamples)
	fmt.Fprintf(out, "平均置信度: %s\n", stats.AvgConfidence)
	fmt.Fprintf(out, "高置信度(>=80%%): %d\n", stats.HighConfSamples)
	fmt.Fprintf(out, "低置信度(<50%%): %d\n", stats.LowConfSamples)
	if stats.Available() {
		fmt.Fprintf(out, "置信度列: %s (有效 %d 行)\n", stats.ConfidenceColumn, stats.ConfidenceSamples)
	} else {
		fmt.Fprintln(out, "置信度列: 未识别")
	}
	return nil
}
