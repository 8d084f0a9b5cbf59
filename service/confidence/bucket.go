/*
 * @module service/confidence/bucket
 * @description 置信度分档，high >= 0.8，medium [0.5,0.8)，low < 0.5
 * @rules 未知分档名称在边界处拒绝；all 包含任意值
 * @refs confidence.go, service/query
 */

package confidence

import (
	"fmt"
	"strings"
)

// Bucket 置信度分档
type Bucket string

const (
	BucketAll    Bucket = "all"
	BucketHigh   Bucket = "high"
	BucketMedium Bucket = "medium"
	BucketLow    Bucket = "low"
)

// ParseBucket 解析分档名称，空字符串视为 all
func ParseBucket(s string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BucketAll, nil
	case BucketAll, BucketHigh, BucketMedium, BucketLow:
		return b, nil
	default:
		return "", fmt.Errorf("不支持的置信度分档: %s", s)
	}
}

// Classify 返回归一化置信度所属分档：high >= 0.8，medium [0.5,0.8)，low < 0.5
func Classify(value float64) Bucket {
	switch {
	case value >= HighThreshold:
		return BucketHigh
	case value >= LowThreshold:
		return BucketMedium
	default:
		return BucketLow
	}
}

// Contains 判断归一化置信度是否落在该分档内，all 包含任意值
func (b Bucket) Contains(value float64) bool {
	if b == BucketAll {
		return true
	}
	return Classify(value) == b
}
