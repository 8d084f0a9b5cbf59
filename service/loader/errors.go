/*
 * @module service/loader/errors
 * @description 加载错误定义，区分网络失败、空数据集、加载冲突与未加载
 * @rules 所有获取失败都满足 errors.Is(err, ErrNetwork)
 * @refs fetcher.go, session.go
 */

package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork 请求失败或返回非2xx状态码
	ErrNetwork = errors.New("网络请求失败")
	// ErrEmptyDataset 解析后没有任何数据行
	ErrEmptyDataset = errors.New("CSV没有解析出数据行")
	// ErrLoadInProgress 已有加载在进行中
	ErrLoadInProgress = errors.New("数据加载正在进行中")
	// ErrNoDataset 尚未成功加载过数据集
	ErrNoDataset = errors.New("数据集尚未加载")
)

// FetchError 获取CSV失败的详细信息，errors.Is(err, ErrNetwork) 为 true
type FetchError struct {
	URL        string
	StatusCode int // 0 表示请求未得到响应
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: 获取 %s 返回状态码 %d", ErrNetwork, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: 获取 %s 出错: %v", ErrNetwork, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is 使 FetchError 匹配 ErrNetwork
func (e *FetchError) Is(target error) bool {
	return target == ErrNetwork
}
