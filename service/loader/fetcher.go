/*
 * @module service/loader/fetcher
 * @description 远程CSV获取器，通过HTTP GET读取预测结果文本
 * @architecture 简单HTTP客户端模式 - 单次请求，不重试
 * @stateFlow 构建请求 -> 发送请求 -> 校验状态码 -> 去除BOM -> 返回文本
 * @rules 禁用缓存；非2xx状态码与传输错误统一归为网络错误
 * @dependencies net/http, golang.org/x/text
 * @refs session.go
 */

package loader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source 数据集文本来源
type Source interface {
	Fetch(ctx context.Context) (string, error)
	Location() string
}

// HTTPFetcher 基于HTTP的CSV获取器
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTPFetcher 创建HTTP获取器，timeout 为0时使用30秒
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// Timeout 返回单次请求超时
func (f *HTTPFetcher) Timeout() time.Duration {
	return f.client.Timeout
}

// Location 返回CSV地址
func (f *HTTPFetcher) Location() string {
	return f.url
}

// Fetch 获取CSV文本
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	startTime := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Error("HTTPFetcher.Fetch - 请求失败", "url", f.url, "error", err)
		return "", &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("HTTPFetcher.Fetch - 状态码异常", "url", f.url, "status", resp.StatusCode)
		return "", &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	// 去除可能存在的UTF-8 BOM
	reader := transform.NewReader(resp.Body, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", &FetchError{URL: f.url, Err: err}
	}

	slog.Debug("HTTPFetcher.Fetch - 获取完成",
		"url", f.url,
		"bytes", len(data),
		"duration", time.Since(startTime))
	return string(data), nil
}
