/*
 * @module cmd/predictionctl/dataset
 * @description 命令行数据来源，读取本地文件或远程CSV
 * @architecture 复用服务端解析器与获取器
 * @stateFlow 参数 -> 文件读取/HTTP获取 -> 解析 -> 空数据集检查
 * @rules 文件与远程内容都去除UTF-8 BOM；没有数据行时返回 ErrEmptyDataset
 * @dependencies service/csvcodec, service/loader, service/config
 * @refs main.go
 */

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"predictions-hub/service/config"
	"predictions-hub/service/csvcodec"
	"predictions-hub/service/loader"
)

var sourceFlags struct {
	url     string
	file    string
	timeout time.Duration
}

// loadDataset 从 --file 读取或从 --url 获取数据集
func loadDataset(ctx context.Context) (*csvcodec.Dataset, string, error) {
	if sourceFlags.file != "" {
		f, err := os.Open(sourceFlags.file)
		if err != nil {
			return nil, "", fmt.Errorf("打开文件 %s 失败: %w", sourceFlags.file, err)
		}
		defer f.Close()

		ds, err := csvcodec.ParseReader(f)
		if err != nil {
			return nil, "", fmt.Errorf("读取文件 %s 失败: %w", sourceFlags.file, err)
		}
		return checkDataset(ds, sourceFlags.file)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	url := sourceFlags.url
	if url == "" {
		url = cfg.CSVURL()
	}
	timeout := sourceFlags.timeout
	if timeout <= 0 {
		timeout = cfg.Data.FetchTimeout
	}

	text, err := loader.NewHTTPFetcher(url, timeout).Fetch(ctx)
	if err != nil {
		return nil, "", err
	}
	return checkDataset(csvcodec.Parse(text), url)
}

func checkDataset(ds *csvcodec.Dataset, source string) (*csvcodec.Dataset, string, error) {
	if ds.IsEmpty() {
		return nil, "", fmt.Errorf("%w: %s", loader.ErrEmptyDataset, source)
	}
	return ds, source, nil
}

// checkSortColumn 排序列必须存在于数据集中
func checkSortColumn(ds *csvcodec.Dataset, column string) error {
	if column == "" {
		return nil
	}
	for _, col := range ds.Columns {
		if col == column {
			return nil
		}
	}
	return fmt.Errorf("排序列不存在: %s", column)
}
