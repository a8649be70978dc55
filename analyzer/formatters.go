package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// 支持的输出格式。
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Format 将分析结果渲染为指定格式的字符串。
// 文本输出的字段顺序是固定的：文件路径、数据点数、时间范围、
// 基线、逐峰的保留时间/峰高/峰面积、相邻峰对的分离度。
func Format(result *AnalysisResult, format string) (string, error) {
	switch format {
	case FormatText, FormatMarkdown: // 目前两者使用相似格式
		var b strings.Builder
		if format == FormatMarkdown {
			b.WriteString("```text\n") // 使用文本块以获得更好的对齐效果
		}
		b.WriteString(fmt.Sprintf("File: %s\n", result.Filepath))
		b.WriteString(fmt.Sprintf("Data points: %d\n", result.NPoints))
		b.WriteString(fmt.Sprintf("Time range: %.2f - %.2f min\n", result.TimeStart, result.TimeEnd))
		b.WriteString(fmt.Sprintf("Baseline: %.2f mAU\n", result.Baseline))
		b.WriteString(fmt.Sprintf("\nDetected %d peak(s):\n", len(result.Peaks)))
		b.WriteString("--------------------------------------------------\n")
		for i, peak := range result.Peaks {
			b.WriteString(fmt.Sprintf("Peak %d:\n", i+1))
			b.WriteString(fmt.Sprintf("  Retention Time: %.2f min\n", peak.RetentionTime))
			b.WriteString(fmt.Sprintf("  Height: %.1f mAU\n", peak.Height))
			b.WriteString(fmt.Sprintf("  Area: %.1f mAU·min\n", peak.Area))
		}
		if len(result.Resolutions) > 0 {
			b.WriteString("\nPeak Resolution:\n")
			b.WriteString("--------------------------------------------------\n")
			for i, rs := range result.Resolutions {
				b.WriteString(fmt.Sprintf("Peak %d - Peak %d: Rs = %.2f\n", i+1, i+2, rs))
			}
		}
		if format == FormatMarkdown {
			b.WriteString("```\n")
		}
		return b.String(), nil

	case FormatJSON:
		out := ChromatogramResult{
			Filepath:    result.Filepath,
			NPoints:     result.NPoints,
			TimeStart:   result.TimeStart,
			TimeEnd:     result.TimeEnd,
			Baseline:    result.Baseline,
			NPeaks:      len(result.Peaks),
			Peaks:       make([]PeakStat, 0, len(result.Peaks)),
			Resolutions: result.Resolutions,
		}
		for _, peak := range result.Peaks {
			out.Peaks = append(out.Peaks, PeakStat{
				Index:         peak.Index,
				RetentionTime: peak.RetentionTime,
				Height:        peak.Height,
				Area:          peak.Area,
			})
		}
		jsonBytes, err := json.MarshalIndent(out, "", "  ") // 使用缩进美化输出
		if err != nil {
			zap.S().Errorf("Error marshaling analysis result to JSON: %v", err)
			errorResult := ErrorResult{Error: fmt.Sprintf("Failed to marshal result to JSON: %v", err)}
			errJSONBytes, _ := json.Marshal(errorResult)
			return string(errJSONBytes), nil // 返回错误信息，但不标记为分析错误
		}
		return string(jsonBytes), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
