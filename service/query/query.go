/*
 * @module service/query/query
 * @description 查询引擎，对数据集按置信度分档过滤并按列排序，生成派生视图
 * @architecture 纯函数 - 查询状态作为参数传入，不修改数据集
 * @stateFlow 数据集 + 查询状态 -> 过滤 -> 稳定排序 -> 分页视图
 * @rules 无置信度列时过滤不生效；无法解析置信度的行不属于任何非 all 分档；
 *        两值均为数字时按数值比较，否则按小写字符串比较；排序必须稳定
 * @dependencies sort, strings
 * @refs service/confidence, service/csvcodec
 */

package query

import (
	"fmt"
	"sort"
	"strings"

	"predictions-hub/service/confidence"
	"predictions-hub/service/csvcodec"
)

// SortDir 排序方向
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// DefaultLimit 默认每页行数
const DefaultLimit = 200

// State 查询状态，由展示层持有并按值传入
type State struct {
	SortKey string            `json:"sort_key,omitempty"`
	SortDir SortDir           `json:"sort_dir"`
	Filter  confidence.Bucket `json:"filter"`
	Offset  int               `json:"offset"`
	Limit   int               `json:"limit"`
}

// DefaultState 默认查询状态：不排序、全部分档、第一页
func DefaultState() State {
	return State{
		SortDir: SortAsc,
		Filter:  confidence.BucketAll,
		Limit:   DefaultLimit,
	}
}

// Validate 校验查询状态
func (s State) Validate() error {
	switch s.SortDir {
	case "", SortAsc, SortDesc:
	default:
		return fmt.Errorf("不支持的排序方向: %s", s.SortDir)
	}
	if _, err := confidence.ParseBucket(string(s.Filter)); err != nil {
		return err
	}
	if s.Offset < 0 {
		return fmt.Errorf("offset不能为负数: %d", s.Offset)
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit不能为负数: %d", s.Limit)
	}
	return nil
}

// Toggle 点击列头时的排序切换：同一列切换方向，新列从升序开始
func (s State) Toggle(column string) State {
	next := s
	if s.SortKey == column {
		if s.SortDir == SortDesc {
			next.SortDir = SortAsc
		} else {
			next.SortDir = SortDesc
		}
	} else {
		next.SortKey = column
		next.SortDir = SortAsc
	}
	next.Offset = 0
	return next
}

// Apply 过滤并排序，返回新的记录切片，不修改数据集
func Apply(ds *csvcodec.Dataset, st State) []csvcodec.Record {
	if ds.IsEmpty() {
		return []csvcodec.Record{}
	}

	rows := filter(ds, st.Filter)
	if st.SortKey != "" {
		sortRows(rows, st.SortKey, st.SortDir)
	}
	return rows
}

func filter(ds *csvcodec.Dataset, bucket confidence.Bucket) []csvcodec.Record {
	column, found := confidence.FindColumn(ds.Columns)
	if bucket == "" || bucket == confidence.BucketAll || !found {
		return ds.Rows()
	}

	rows := make([]csvcodec.Record, 0, ds.Len())
	for _, record := range ds.Records {
		value, ok := confidence.Normalize(record.Value(column))
		if !ok {
			continue
		}
		if bucket.Contains(value) {
			rows = append(rows, record)
		}
	}
	return rows
}

func sortRows(rows []csvcodec.Record, key string, dir SortDir) {
	sign := 1
	if dir == SortDesc {
		sign = -1
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return compareValues(rows[i].Value(key), rows[j].Value(key))*sign < 0
	})
}

// compareValues 返回 -1/0/1；两值都能解析为数字时按数值比较
func compareValues(a, b string) int {
	an, aok := confidence.ParseLeadingFloat(a)
	bn, bok := confidence.ParseLeadingFloat(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
