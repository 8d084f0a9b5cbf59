/*
 * @module cmd/predictionctl/cmd_query
 * @description query 子命令，按置信度分档过滤、按列排序并分页输出
 * @architecture 查询状态由命令行参数构建，交给 service/query 执行
 * @rules 分档名称与排序列在加载后校验，错误时不输出表格
 * @dependencies github.com/spf13/cobra, text/tabwriter
 * @refs service/query, service/confidence
 */

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"predictions-hub/service/confidence"
	"predictions-hub/service/query"
)

var queryFlags struct {
	filter string
	sort   string
	desc   bool
	offset int
	limit  int
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "过滤、排序并分页查看预测结果",
	RunE:  runQuery,
}

func init() {
	addViewFlags(queryCmd)
	f := queryCmd.Flags()
	f.IntVar(&queryFlags.offset, "offset", 0, "跳过的行数")
	f.IntVar(&queryFlags.limit, "limit", query.DefaultLimit, "每页行数")
}

// addViewFlags 注册 query 与 export 共用的过滤排序参数
func addViewFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&queryFlags.filter, "filter", "all", "置信度分档: all, high, medium, low")
	f.StringVar(&queryFlags.sort, "sort", "", "排序列")
	f.BoolVar(&queryFlags.desc, "desc", false, "降序排列")
}

func viewState() (query.State, error) {
	bucket, err := confidence.ParseBucket(queryFlags.filter)
	if err != nil {
		return query.State{}, err
	}
	st := query.DefaultState()
	st.Filter = bucket
	st.SortKey = queryFlags.sort
	if queryFlags.desc {
		st.SortDir = query.SortDesc
	}
	st.Offset = queryFlags.offset
	st.Limit = queryFlags.limit
	return st, st.Validate()
}

func runQuery(cmd *cobra.Command, _ []string) error {
	st, err := viewState()
	if err != nil {
		return err
	}
	ds, _, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if err := checkSortColumn(ds, st.SortKey); err != nil {
		return err
	}

	view := query.Run(ds, st)
	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, col := range view.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col)
	}
	fmt.Fprintln(tw)
	for _, row := range view.Rows {
		for i, cell := range row.Cells() {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out, view.Summary())
	return nil
}
