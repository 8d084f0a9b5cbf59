/*
 * @module service/csvcodec/parser
 * @description CSV文本解析器，将逗号分隔、双引号转义的文本转换为有序记录序列
 * @architecture 纯函数 - 无状态、无副作用
 * @stateFlow 原始文本 -> 行切分 -> 表头解析 -> 逐行扫描 -> 数据集
 * @rules 空行跳过；单元格不足补空字符串；多余单元格丢弃；重复列名后者覆盖前者
 * @dependencies strings, io, golang.org/x/text
 * @refs record.go, serializer.go
 */

package csvcodec

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse 解析CSV文本。空文本或纯空白文本返回空数据集，不会返回错误。
func Parse(text string) *Dataset {
	dataset := &Dataset{}
	if strings.TrimSpace(text) == "" {
		return dataset
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return dataset
	}

	headers := parseHeader(lines[0])
	dataset.Columns = uniqueColumns(headers)
	dataset.Records = make([]Record, 0, len(lines)-1)

	for _, line := range lines[1:] {
		cells := splitCells(line)
		for i := range cells {
			cells[i] = cleanCell(cells[i])
		}
		dataset.Records = append(dataset.Records, NewRecord(headers, cells))
	}

	return dataset
}

// ParseReader 从流中读取全部内容并解析，开头的UTF-8 BOM会被去除；仅在读取失败时返回错误
func ParseReader(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("读取CSV内容失败: %w", err)
	}
	return Parse(string(data)), nil
}

// splitLines 去除回车符并按换行切分，跳过空白行
func splitLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r", "")
	raw := strings.Split(normalized, "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseHeader 解析表头，空列名以 col<序号> 命名
func parseHeader(line string) []string {
	cells := splitCells(line)
	headers := make([]string, len(cells))
	for i, cell := range cells {
		name := cleanCell(cell)
		if name == "" {
			name = "col" + strconv.Itoa(i)
		}
		headers[i] = name
	}
	return headers
}

// splitCells 单次从左到右扫描一行，跟踪是否处于引号内。
// 引号内的 "" 输出一个字面双引号且不切换状态；引号外的逗号结束当前单元格。
func splitCells(line string) []string {
	var cells []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	cells = append(cells, current.String())

	return cells
}

// cleanCell 去除首尾空白，再去掉开头与结尾各一个双引号
func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	cell = strings.TrimPrefix(cell, `"`)
	cell = strings.TrimSuffix(cell, `"`)
	return cell
}

func uniqueColumns(headers []string) []string {
	seen := make(map[string]struct{}, len(headers))
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
