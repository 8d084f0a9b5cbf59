/*
 * @module service/confidence/confidence
 * @description 置信度列识别与数值归一化
 * @architecture 纯函数工具模块
 * @stateFlow 列名列表 -> 置信度列；原始值 -> [0,1] 区间数值
 * @rules 列名按声明顺序匹配 confidence/probability/score，首个命中即返回；
 *        无命中时再接受这些词的缩写(不少于4个字符，如 conf、prob)；
 *        数值大于1视为百分数除以100，不做截断；无法解析视为缺失而非0
 * @dependencies regexp, strconv
 * @refs service/query, service/statistics
 */

package confidence

import (
	"regexp"
	"strconv"
	"strings"
)

// 高/低置信度阈值
const (
	HighThreshold = 0.8
	LowThreshold  = 0.5
)

// 最短缩写长度
const minAbbreviation = 4

var (
	columnFragments = []string{"confidence", "probability", "score"}
	columnPattern   = regexp.MustCompile(`(?i)confidence|probability|score`)
	// 与浏览器 parseFloat 一致：只取开头的合法数字部分
	leadingFloat = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

// FindColumn 在列名中查找置信度列
func FindColumn(columns []string) (string, bool) {
	for _, col := range columns {
		if columnPattern.MatchString(col) {
			return col, true
		}
	}
	for _, col := range columns {
		if isAbbreviation(col) {
			return col, true
		}
	}
	return "", false
}

func isAbbreviation(col string) bool {
	name := strings.ToLower(strings.TrimSpace(col))
	if len(name) < minAbbreviation {
		return false
	}
	for _, fragment := range columnFragments {
		if strings.HasPrefix(fragment, name) {
			return true
		}
	}
	return false
}

// Normalize 将原始置信度值转换为小数。
// "85"、"0.85"、"85%" 都得到 0.85；"abc" 返回 ok=false。
// 注意："150" 会得到 1.5，此处不修正。
func Normalize(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if cleaned == "" {
		return 0, false
	}
	val, ok := ParseLeadingFloat(cleaned)
	if !ok {
		return 0, false
	}
	if val > 1 {
		return val / 100, true
	}
	return val, true
}

// ParseLeadingFloat 解析字符串开头的浮点数，忽略前导空白和数字之后的内容
func ParseLeadingFloat(s string) (float64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	match := leadingFloat.FindString(s)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		// 指数溢出等情况，ParseFloat 仍返回 ±Inf
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return val, true
		}
		return 0, false
	}
	return val, true
}
