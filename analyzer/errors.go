package analyzer

import (
	"errors"
	"fmt"
)

// --- 错误分类 ---
// 所有错误都立即向调用方传播；本地没有任何可重试的瞬态条件。

// FormatError 表示输入文件格式错误或数据不足：
// 数据行无法解析为两个浮点数、过滤后剩余数据点少于 2 个、
// 或时间值不是严格递增。
type FormatError struct {
	Path string // 出错的文件路径
	Line int    // 出错的行号（从 1 开始；与具体行无关时为 0）
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid chromatogram file '%s' (line %d): %s", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("invalid chromatogram file '%s': %s", e.Path, e.Msg)
}

// ErrInsufficientPeaks 表示请求计算分离度时峰数不足 2 个。
// 调用方可以选择将其视为非致命错误（例如跳过分离度报告）。
var ErrInsufficientPeaks = errors.New("at least two peaks are required to calculate resolution")

// ErrUndefinedResolution 表示两个峰的宽度之和为零，分离度无定义。
// 显式报告，而不是静默传播 Inf 或 NaN。
var ErrUndefinedResolution = errors.New("resolution is undefined: combined peak width is zero")
