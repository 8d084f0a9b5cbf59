/*
 * @module cmd/predictionctl/cmd_export
 * @description export 子命令，将数据集或过滤排序后的视图重新导出为CSV
 * @rules 导出视图时不分页；视图为空时只写表头；-o - 输出到标准输出
 * @dependencies github.com/spf13/cobra, service/csvcodec
 * @refs cmd_query.go
 */

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"predictions-hub/service/csvcodec"
	"predictions-hub/service/query"
)

const defaultExportFile = "predictions_export.csv"

var exportFlags struct {
	output string
	view   bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "将数据集或过滤后的视图导出为CSV",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportFlags.output, "output", "o", defaultExportFile, "输出路径，- 表示标准输出")
	f.BoolVar(&exportFlags.view, "view", false, "导出过滤排序后的视图而不是全部行")
	addViewFlags(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ds, _, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	rows := ds.Records
	if exportFlags.view {
		st, err := viewState()
		if err != nil {
			return err
		}
		if err := checkSortColumn(ds, st.SortKey); err != nil {
			return err
		}
		rows = query.Apply(ds, st)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportFlags.output != "-" {
		f, err := os.Create(exportFlags.output)
		if err != nil {
			return fmt.Errorf("创建文件 %s 失败: %w", exportFlags.output, err)
		}
		defer f.Close()
		w = f
	}

	if err := csvcodec.WriteTable(w, ds.Columns, rows); err != nil {
		return fmt.Errorf("写出导出文件失败: %w", err)
	}
	if exportFlags.output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "已导出 %d 行到 %s\n", len(rows), exportFlags.output)
	}
	return nil
}
