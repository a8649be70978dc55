// Package analyzer 实现 HPLC 色谱数据的加载、峰检测、峰表征和
// 分离度计算。所有操作都是输入的纯函数，没有跨调用状态，
// 依赖链是严格线性的：load -> detect -> characterize -> resolve。
//
// 数据文件头部注释中的 eLabFTW 实验/设备链接作为不透明元数据
// 保留在 Series.Metadata 中，本包不解析也不访问这些外部系统。
package analyzer

import (
	"errors"

	"go.uber.org/zap"
)

// Analyze 是完整的分析入口：加载文件、（可选）平滑、估算基线、
// 检测峰、计算峰面积，并在峰数足够时计算相邻峰对的分离度。
//
// 峰数不足 2 个时 Resolutions 留空，不视为错误；
// 需要严格报错的调用方应直接使用 Resolutions 函数。
// 文件级错误（*FormatError 等）原样向上传播，不产生部分结果。
func Analyze(path string, opts Options) (*AnalysisResult, error) {
	series, err := LoadChromatogram(path)
	if err != nil {
		return nil, err
	}
	return AnalyzeSeries(series, opts)
}

// AnalyzeSeries 对已加载的序列执行 Analyze 的计算部分。
// opts.Smooth 开启时会就地替换 series.Signal 为平滑后的信号。
func AnalyzeSeries(series *Series, opts Options) (*AnalysisResult, error) {
	if opts.Smooth {
		series.Signal = SmoothSignal(series.Signal, opts.SmoothCutoff)
	}

	baseline := EstimateBaseline(series, opts.BaselineMode)
	peaks := FindPeaks(series, baseline, opts)
	peaks = CharacterizePeaks(series, baseline, peaks)

	result := &AnalysisResult{
		Filepath:  series.Path,
		NPoints:   series.Len(),
		TimeStart: series.Time[0],
		TimeEnd:   series.Time[series.Len()-1],
		Baseline:  baseline,
		Peaks:     peaks,
	}

	rs, err := Resolutions(series, baseline, peaks)
	switch {
	case err == nil:
		result.Resolutions = rs
	case errors.Is(err, ErrInsufficientPeaks):
		// 在这一层峰数不足不是致命错误，只是跳过分离度
		zap.S().Infof("Fewer than 2 peaks detected, skipping resolution calculation")
	default:
		return nil, err
	}

	zap.S().Infof("Analysis complete for '%s': %d peak(s), baseline %.4g", series.Path, len(result.Peaks), baseline)
	return result, nil
}
