package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// 全局变量，用于跟踪由本服务器下载的临时色谱文件，
// 以便在收到终止信号时统一删除。
var (
	tempFiles   = make(map[string]struct{})
	tempFilesMu sync.Mutex
)

func trackTempFile(path string) {
	tempFilesMu.Lock()
	defer tempFilesMu.Unlock()
	tempFiles[path] = struct{}{}
}

func untrackTempFile(path string) {
	tempFilesMu.Lock()
	defer tempFilesMu.Unlock()
	delete(tempFiles, path)
}

// cleanupTempFiles 删除所有仍在跟踪中的临时文件。
func cleanupTempFiles() {
	tempFilesMu.Lock()
	defer tempFilesMu.Unlock()

	for path := range tempFiles {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			zap.S().Warnf("Failed to remove temporary file '%s' during shutdown: %v", path, err)
		} else {
			zap.S().Infof("Removed temporary file: %s", path)
		}
		delete(tempFiles, path)
	}
}

// setupSignalHandler 设置信号处理程序，在收到 SIGINT/SIGTERM 时
// 清理临时文件后退出。应在服务器启动前调用。
func setupSignalHandler() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		zap.S().Infof("Received signal %v, cleaning up before exit", sig)
		cleanupTempFiles()
		os.Exit(1)
	}()
}
