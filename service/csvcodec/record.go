/*
 * @module service/csvcodec/record
 * @description 预测结果数据模型，定义记录(Record)与数据集(Dataset)
 * @architecture 值对象模式 - 记录创建后对外只读
 * @stateFlow 解析 -> 构造记录 -> 查询/统计/导出只读访问
 * @rules 同一数据集内所有记录共享列集合与列顺序；缺失单元格为空字符串
 * @dependencies encoding/json
 * @refs parser.go, serializer.go
 */

package csvcodec

import (
	"bytes"
	"encoding/json"
)

// Record 单行记录，列名到单元格值的有序映射
type Record struct {
	columns []string
	values  map[string]string
}

// NewRecord 按位置构造记录，cells 少于 columns 时缺失值为空字符串，多余的单元格被丢弃。
// 列名重复时保留首次出现的位置，值以最后一次为准。
func NewRecord(columns []string, cells []string) Record {
	values := make(map[string]string, len(columns))
	ordered := make([]string, 0, len(columns))
	for i, col := range columns {
		if _, exists := values[col]; !exists {
			ordered = append(ordered, col)
		}
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		values[col] = cell
	}
	return Record{columns: ordered, values: values}
}

// Get 获取列值，ok 为 false 表示该列不存在（区别于空值）
func (r Record) Get(column string) (string, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Value 获取列值，列不存在时返回空字符串
func (r Record) Value(column string) string {
	return r.values[column]
}

// Columns 返回列名副本
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len 列数
func (r Record) Len() int {
	return len(r.columns)
}

// Map 返回值映射的副本
func (r Record) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Cells 按列顺序返回单元格值
func (r Record) Cells() []string {
	out := make([]string, len(r.columns))
	for i, col := range r.columns {
		out[i] = r.values[col]
	}
	return out
}

// Equal 判断两条记录的列顺序与值是否完全一致
func (r Record) Equal(other Record) bool {
	if len(r.columns) != len(other.columns) {
		return false
	}
	for i, col := range r.columns {
		if other.columns[i] != col {
			return false
		}
		if r.values[col] != other.values[col] {
			return false
		}
	}
	return true
}

// MarshalJSON 按列顺序输出 JSON 对象
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset 一份CSV文档解析得到的数据集，记录顺序即源文件行顺序
type Dataset struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Len 数据行数（不含表头）
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// IsEmpty 是否没有任何数据行
func (d *Dataset) IsEmpty() bool {
	return d.Len() == 0
}

// Rows 返回记录切片的副本
func (d *Dataset) Rows() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, len(d.Records))
	copy(out, d.Records)
	return out
}

// Equal 判断两个数据集的列与记录是否一致
func (d *Dataset) Equal(other *Dataset) bool {
	if d.Len() != other.Len() {
		return false
	}
	if d == nil || other == nil {
		return d.Len() == 0 && other.Len() == 0
	}
	if len(d.Columns) != len(other.Columns) {
		return false
	}
	for i := range d.Columns {
		if d.Columns[i] != other.Columns[i] {
			return false
		}
	}
	for i := range d.Records {
		if !d.Records[i].Equal(other.Records[i]) {
			return false
		}
	}
	return true
}
