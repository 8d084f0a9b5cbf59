/*
 * @module service/csvcodec/serializer
 * @description CSV序列化器，将记录序列写回逗号分隔文本
 * @architecture 纯函数 - 按列顺序输出表头与数据行
 * @rules 含逗号、双引号或换行的值加引号并将引号加倍；行间以\n连接，末尾无换行；
 *        无记录时 WriteTable 只输出表头
 * @dependencies bufio
 * @refs parser.go, record.go
 */

package csvcodec

import (
	"bufio"
	"io"
	"strings"
)

// Serialize 将记录序列编码为CSV文本，表头取第一条记录的列顺序，行之间以 \n 分隔
func Serialize(records []Record) string {
	var b strings.Builder
	_ = WriteTo(&b, records)
	return b.String()
}

// WriteTo 以流的方式写出CSV，用于导出接口
func WriteTo(w io.Writer, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	return WriteTable(w, records[0].columns, records)
}

// WriteTable 按给定列顺序写出表头和记录，没有记录时只写表头
func WriteTable(w io.Writer, columns []string, records []Record) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, columns)
	cells := make([]string, len(columns))
	for _, record := range records {
		for i, col := range columns {
			cells[i] = record.values[col]
		}
		bw.WriteByte('\n')
		writeLine(bw, cells)
	}

	return bw.Flush()
}

// EscapeCell 包含逗号或双引号的值用双引号包裹，内部双引号加倍
func EscapeCell(value string) string {
	if !strings.ContainsAny(value, `,"`) {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func writeLine(bw *bufio.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteString(EscapeCell(cell))
	}
}
