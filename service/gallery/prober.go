/*
 * @module service/gallery/prober
 * @description 结果图片探测，检查直方图、误分类样本等静态图片是否可访问
 * @architecture 简单HTTP客户端模式 - 每张图片只请求一次，报告成功或失败
 * @stateFlow 图片列表 -> 并发探测 -> 按原顺序返回结果
 * @rules 单张图片失败不影响其他图片；不重试
 * @dependencies net/http, golang.org/x/sync/errgroup
 * @refs service/config
 */

package gallery

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Image 待探测的图片
type Image struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ImageStatus 探测结果
type ImageStatus struct {
	Image
	Available   bool   `json:"available"`
	StatusCode  int    `json:"status_code,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Prober 图片探测器
type Prober struct {
	client *http.Client
	images []Image
}

// NewProber 创建图片探测器
func NewProber(images []Image, timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{
		client: &http.Client{Timeout: timeout},
		images: images,
	}
}

// Images 返回配置的图片列表
func (p *Prober) Images() []Image {
	out := make([]Image, len(p.images))
	copy(out, p.images)
	return out
}

// ProbeAll 并发探测所有图片，结果顺序与配置顺序一致
func (p *Prober) ProbeAll(ctx context.Context) []ImageStatus {
	results := make([]ImageStatus, len(p.images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range p.images {
		i, img := i, img
		g.Go(func() error {
			results[i] = p.Probe(gctx, img)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Probe 探测单张图片
func (p *Prober) Probe(ctx context.Context, img Image) ImageStatus {
	status := ImageStatus{Image: img}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
	if err != nil {
		status.Error = err.Error()
		return status
	}

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Warn("图片加载失败", "name", img.Name, "url", img.URL, "error", err)
		status.Error = err.Error()
		return status
	}
	defer resp.Body.Close()

	status.StatusCode = resp.StatusCode
	status.ContentType = resp.Header.Get("Content-Type")
	status.Available = resp.StatusCode >= 200 && resp.StatusCode < 300
	if !status.Available {
		status.Error = http.StatusText(resp.StatusCode)
	} else if status.ContentType != "" && !strings.HasPrefix(status.ContentType, "image/") {
		slog.Debug("图片响应类型异常", "name", img.Name, "content_type", status.ContentType)
	}
	return status
}
