/*
 * @module service/query/page
 * @description 查询结果分页与行数提示
 * @rules 偏移超出范围时返回空页；提示文本中的数字带千位分隔符
 * @dependencies golang.org/x/text/message
 * @refs query.go
 */

package query

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"predictions-hub/service/csvcodec"
)

// View 分页后的查询视图
type View struct {
	Columns []string          `json:"columns"`
	Rows    []csvcodec.Record `json:"rows"`
	Shown   int               `json:"shown"`   // 当前页行数
	Matched int               `json:"matched"` // 过滤后总行数
	Total   int               `json:"total"`   // 数据集总行数
	Offset  int               `json:"offset"`
	Limit   int               `json:"limit"`
}

// Page 对查询结果分页，limit 为0时使用默认页大小
func Page(ds *csvcodec.Dataset, rows []csvcodec.Record, st State) View {
	limit := st.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := st.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(rows) {
		offset = len(rows)
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}

	page := make([]csvcodec.Record, end-offset)
	copy(page, rows[offset:end])

	var columns []string
	if ds != nil {
		columns = append(columns, ds.Columns...)
	}

	return View{
		Columns: columns,
		Rows:    page,
		Shown:   len(page),
		Matched: len(rows),
		Total:   ds.Len(),
		Offset:  offset,
		Limit:   limit,
	}
}

// Run 依次执行过滤、排序与分页
func Run(ds *csvcodec.Dataset, st State) View {
	return Page(ds, Apply(ds, st), st)
}

// Summary 行数提示文本，数字带千位分隔符
func (v View) Summary() string {
	return message.NewPrinter(language.English).Sprintf("Showing %d of %d rows (total %d samples)", v.Shown, v.Matched, v.Total)
}
