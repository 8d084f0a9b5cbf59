/*
 * @module cmd/predictionctl/main
 * @description 预测数据命令行工具入口，注册 stats/query/export 子命令
 * @architecture cobra 命令树 - 根命令持有数据来源参数
 * @stateFlow 解析参数 -> 加载数据集(文件或URL) -> 子命令处理 -> 输出
 * @rules --file 优先于 --url；未指定时使用配置中的预测数据地址
 * @dependencies github.com/spf13/cobra
 * @refs dataset.go, cmd_stats.go, cmd_query.go, cmd_export.go
 */

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "predictionctl",
	Short: "微塑料识别模型预测结果查看工具",
	Long:  "predictionctl 从URL或本地文件加载预测结果CSV，\n输出统计信息、过滤后的视图，或重新导出为CSV。",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&sourceFlags.url, "url", "", "CSV地址(默认使用配置的预测数据地址)")
	pf.StringVar(&sourceFlags.file, "file", "", "本地CSV文件，优先于 --url")
	pf.DurationVar(&sourceFlags.timeout, "timeout", 0, "HTTP超时时间(默认使用 FETCH_TIMEOUT)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
