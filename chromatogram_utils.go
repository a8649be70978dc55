package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// getChromatogramAsFile 获取色谱数据文件。
// - 如果输入不包含 "://", 则视为本地文件路径（相对或绝对）。
// - 如果是 file:// URI，直接使用其路径。
// - 如果是 http:// 或 https:// URI，下载到临时文件并返回其路径。
// 返回最终的文件路径、一个用于清理临时文件的函数（如果创建了临时文件）以及错误。
func getChromatogramAsFile(uriStr string) (filePath string, cleanup func(), err error) {
	cleanup = func() {} // 默认清理函数为空操作

	// 检查输入是否包含协议头，如果没有，则假定为本地文件路径
	if !strings.Contains(uriStr, "://") {
		absPath, err := filepath.Abs(uriStr)
		if err != nil {
			return "", nil, fmt.Errorf("failed to get absolute path for '%s': %w", uriStr, err)
		}
		zap.S().Infof("Using local chromatogram path: %s", absPath)
		return absPath, cleanup, nil
	}

	// 如果包含 "://", 则按 URI 处理
	parsedURI, err := url.Parse(uriStr)
	if err != nil {
		return "", nil, fmt.Errorf("invalid chromatogram URI '%s': %w", uriStr, err)
	}

	switch parsedURI.Scheme {
	case "file":
		filePath = parsedURI.Path
		if filePath == "" {
			return "", nil, fmt.Errorf("invalid file path derived from URI '%s'", uriStr)
		}
		zap.S().Infof("Using local chromatogram file: %s", filePath)
		return filePath, cleanup, nil

	case "http", "https":
		zap.S().Infof("Attempting to download chromatogram from URL: %s", uriStr)
		resp, err := http.Get(uriStr)
		if err != nil {
			return "", nil, fmt.Errorf("failed to download chromatogram from '%s': %w", uriStr, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", nil, fmt.Errorf("failed to download chromatogram from '%s': received status code %d", uriStr, resp.StatusCode)
		}

		// 创建临时文件来存储下载的内容
		tempFile, err := os.CreateTemp("", "chromatogram-*.txt")
		if err != nil {
			return "", nil, fmt.Errorf("failed to create temporary file for download: %w", err)
		}
		filePath = tempFile.Name()
		trackTempFile(filePath) // 注册到退出清理列表（参见 cleanup.go）
		zap.S().Infof("Downloading chromatogram to temporary file: %s", filePath)

		// 定义清理函数，用于删除临时文件
		cleanup = func() {
			zap.S().Infof("Cleaning up temporary file: %s", filePath)
			untrackTempFile(filePath)
			err := os.Remove(filePath)
			if err != nil && !os.IsNotExist(err) {
				zap.S().Warnf("Failed to remove temporary file '%s': %v", filePath, err)
			}
		}

		_, err = io.Copy(tempFile, resp.Body)
		closeErr := tempFile.Close()

		if err != nil {
			cleanup() // 如果复制失败，尝试清理临时文件
			return "", nil, fmt.Errorf("failed to write downloaded content to temporary file '%s': %w", filePath, err)
		}
		if closeErr != nil {
			zap.S().Warnf("Failed to close temporary file handle for '%s': %v", filePath, closeErr)
		}

		zap.S().Infof("Successfully downloaded chromatogram to %s", filePath)
		return filePath, cleanup, nil

	default:
		return "", nil, fmt.Errorf("unsupported URI scheme '%s', only 'file://', 'http://', 'https://', or a plain local path are supported", parsedURI.Scheme)
	}
}
