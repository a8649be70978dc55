package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

// optionsFromArgs 从工具参数构造分析选项，未提供的参数回落到配置默认值。
func optionsFromArgs(args map[string]interface{}) analyzer.Options {
	opts := cfg.Options()
	if thresholdFloat, ok := args["threshold"].(float64); ok && thresholdFloat > 0 {
		opts.Threshold = thresholdFloat
	}
	if smooth, ok := args["smooth"].(bool); ok {
		opts.Smooth = smooth
	}
	return opts
}

// loadSeriesFromURI 获取（必要时下载）并加载色谱文件。
// 返回序列和清理函数；调用方必须 defer cleanup()。
func loadSeriesFromURI(uriStr string) (*analyzer.Series, func(), error) {
	filePath, cleanup, err := getChromatogramAsFile(uriStr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get chromatogram file: %w", err)
	}
	series, err := analyzer.LoadChromatogram(filePath)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return series, cleanup, nil
}

// textResult 把字符串包装为 MCP 工具调用结果。
func textResult(texts ...string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, mcp.TextContent{Type: "text", Text: t})
	}
	return &mcp.CallToolResult{Content: content}
}

// handleAnalyzeChromatogram 处理完整色谱分析的请求。
// 这是 MCP 工具 "analyze_chromatogram" 的处理器函数。
func handleAnalyzeChromatogram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	// --- 1. 获取并验证参数 ---
	uriStr, ok := args["chromatogram_uri"].(string)
	if !ok || uriStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: chromatogram_uri (string)")
	}
	outputFormat, ok := args["output_format"].(string)
	if !ok || outputFormat == "" {
		outputFormat = cfg.OutputFormat
	}
	opts := optionsFromArgs(args)

	zap.S().Infof("Handling analyze_chromatogram: URI=%s, Threshold=%.4g, Format=%s", uriStr, opts.Threshold, outputFormat)

	// --- 2. 获取并加载色谱文件（本地或下载）---
	series, cleanup, err := loadSeriesFromURI(uriStr)
	if err != nil {
		return nil, err
	}
	defer cleanup() // 确保临时文件（如果创建了）被清理

	// --- 3. 运行分析并格式化 ---
	result, err := analyzer.AnalyzeSeries(series, opts)
	if err != nil {
		zap.S().Errorf("Analysis error for '%s': %v", uriStr, err)
		return nil, err
	}
	rendered, err := analyzer.Format(result, outputFormat)
	if err != nil {
		return nil, err
	}

	// --- 4. 返回分析结果 ---
	zap.S().Infof("Analysis successful for '%s': %d peak(s)", uriStr, len(result.Peaks))
	return textResult(rendered), nil
}

// handleCalculateResolution 处理计算相邻峰分离度的请求。
// 峰数不足 2 个时返回错误（ErrInsufficientPeaks），由调用方决定如何处理。
func handleCalculateResolution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	uriStr, ok := args["chromatogram_uri"].(string)
	if !ok || uriStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: chromatogram_uri (string)")
	}
	opts := optionsFromArgs(args)

	zap.S().Infof("Handling calculate_resolution: URI=%s, Threshold=%.4g", uriStr, opts.Threshold)

	series, cleanup, err := loadSeriesFromURI(uriStr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if opts.Smooth {
		series.Signal = analyzer.SmoothSignal(series.Signal, opts.SmoothCutoff)
	}
	baseline := analyzer.EstimateBaseline(series, opts.BaselineMode)
	peaks := analyzer.FindPeaks(series, baseline, opts)

	rs, err := analyzer.Resolutions(series, baseline, peaks)
	if err != nil {
		if errors.Is(err, analyzer.ErrInsufficientPeaks) {
			return nil, fmt.Errorf("cannot calculate resolution: %d peak(s) detected at threshold %.4g: %w", len(peaks), opts.Threshold, err)
		}
		return nil, err
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Peak Resolution (threshold %.4g mAU, %d peaks)\n", opts.Threshold, len(peaks)))
	b.WriteString("--------------------------------------------------\n")
	for i, v := range rs {
		b.WriteString(fmt.Sprintf("Peak %d (RT %.2f min) - Peak %d (RT %.2f min): Rs = %.2f\n",
			i+1, peaks[i].RetentionTime, i+2, peaks[i+1].RetentionTime, v))
	}
	return textResult(b.String()), nil
}

// handleExportPeaksCSV 处理导出峰表 CSV 的请求。
func handleExportPeaksCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	uriStr, ok := args["chromatogram_uri"].(string)
	if !ok || uriStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: chromatogram_uri (string)")
	}
	outputCSVPath, ok := args["output_csv_path"].(string)
	if !ok || outputCSVPath == "" {
		return nil, fmt.Errorf("missing or invalid required argument: output_csv_path (string)")
	}
	opts := optionsFromArgs(args)

	zap.S().Infof("Handling export_peaks_csv: URI=%s, Output=%s", uriStr, outputCSVPath)

	series, cleanup, err := loadSeriesFromURI(uriStr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := analyzer.AnalyzeSeries(series, opts)
	if err != nil {
		return nil, err
	}

	// 相对输出路径视为相对于当前工作目录
	if !filepath.IsAbs(outputCSVPath) {
		cwd, err := os.Getwd()
		if err == nil {
			outputCSVPath = filepath.Join(cwd, outputCSVPath)
		}
	}

	outFile, err := os.Create(outputCSVPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV file '%s': %w", outputCSVPath, err)
	}
	writeErr := analyzer.WritePeaksCSV(result, outFile)
	closeErr := outFile.Close()
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write peaks CSV to '%s': %w", outputCSVPath, writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close CSV file '%s': %w", outputCSVPath, closeErr)
	}

	// 读回内容一并返回，客户端无需再访问文件系统
	csvBytes, readErr := os.ReadFile(outputCSVPath)
	message := fmt.Sprintf("Peak table exported to: %s (%d peaks)", outputCSVPath, len(result.Peaks))
	if readErr != nil {
		zap.S().Warnf("Exported CSV '%s' but failed to read it back: %v", outputCSVPath, readErr)
		return textResult(message), nil
	}
	return textResult(message, string(csvBytes)), nil
}

// handlePlotChromatogram 处理生成色谱 SVG 图的请求。
func handlePlotChromatogram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	uriStr, ok := args["chromatogram_uri"].(string)
	if !ok || uriStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: chromatogram_uri (string)")
	}
	outputSVGPath, ok := args["output_svg_path"].(string)
	if !ok || outputSVGPath == "" {
		return nil, fmt.Errorf("missing or invalid required argument: output_svg_path (string)")
	}
	opts := optionsFromArgs(args)

	zap.S().Infof("Handling plot_chromatogram: URI=%s, Output=%s", uriStr, outputSVGPath)

	series, cleanup, err := loadSeriesFromURI(uriStr)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := analyzer.AnalyzeSeries(series, opts)
	if err != nil {
		return nil, err
	}

	if !filepath.IsAbs(outputSVGPath) {
		cwd, err := os.Getwd()
		if err == nil {
			outputSVGPath = filepath.Join(cwd, outputSVGPath)
		}
	}

	svg := analyzer.RenderSVG(series, result)
	if err := os.WriteFile(outputSVGPath, []byte(svg), 0644); err != nil {
		return nil, fmt.Errorf("failed to write SVG plot to '%s': %w", outputSVGPath, err)
	}

	zap.S().Infof("Successfully generated chromatogram plot: %s", outputSVGPath)
	message := fmt.Sprintf("Chromatogram plot saved to: %s", outputSVGPath)
	// 返回包含文本消息和 SVG 内容的结果
	return textResult(message, svg), nil
}
