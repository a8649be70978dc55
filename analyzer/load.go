package analyzer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// LoadChromatogram 从文本文件加载色谱数据。
// 文件应包含两列：时间（分钟）和吸光度（mAU），以空白分隔。
// 以 '#' 开头的行被视为注释并收集到 Series.Metadata 中，
// 内容不做任何解析（其中的 eLabFTW 链接等仅作为不透明元数据保留）。
// 空行被跳过。
//
// 以下情况返回 *FormatError：
//   - 某个数据行无法解析为两个浮点数；
//   - 过滤后剩余数据点少于 2 个；
//   - 时间值不是严格递增。
func LoadChromatogram(path string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chromatogram file '%s': %w", path, err)
	}
	defer file.Close() // 确保所有退出路径（包括解析失败）都释放文件句柄

	series := &Series{Path: path}

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			series.Metadata = append(series.Metadata, line)
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("expected two numeric columns, got %d field(s)", len(fields))}
		}
		timeVal, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("cannot parse time value '%s'", fields[0])}
		}
		sigVal, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("cannot parse signal value '%s'", fields[1])}
		}

		if n := len(series.Time); n > 0 && timeVal <= series.Time[n-1] {
			return nil, &FormatError{Path: path, Line: lineNo, Msg: fmt.Sprintf("time values must be strictly increasing (%g after %g)", timeVal, series.Time[n-1])}
		}
		series.Time = append(series.Time, timeVal)
		series.Signal = append(series.Signal, sigVal)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chromatogram file '%s': %w", path, err)
	}

	if series.Len() < 2 {
		return nil, &FormatError{Path: path, Msg: fmt.Sprintf("need at least 2 data points, got %d", series.Len())}
	}

	zap.S().Infof("Loaded chromatogram '%s': %d points, %d metadata line(s)", path, series.Len(), len(series.Metadata))
	return series, nil
}
