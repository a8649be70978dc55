package analyzer

import (
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// 基线估算模式。
const (
	BaselineMin    = "min"    // 序列中的最小信号值（默认）
	BaselineMedian = "median" // 序列前 10% 数据点的中位数
)

// DefaultThreshold 是峰检测的默认高度阈值，单位 mAU。
const DefaultThreshold = 10.0

// Options 控制一次分析调用的行为。零值表示全部使用默认值。
type Options struct {
	Threshold    float64 // 峰高阈值（相对于基线），单位 mAU；<= 0 时使用 DefaultThreshold
	MinDistance  int     // 相邻峰之间的最小数据点间隔；0 表示关闭
	BaselineMode string  // BaselineMin 或 BaselineMedian；空串表示 BaselineMin
	Smooth       bool    // 是否在检测前做 FFT 低通平滑
	SmoothCutoff float64 // 平滑保留的频率比例 (0, 1]；<= 0 时使用 DefaultSmoothCutoff
}

// EstimateBaseline 估算序列的基线吸光度。每次分析只计算一次。
// mode 为 BaselineMedian 时取序列前 10% 数据点的中位数
// （至少 1 个点），否则取全序列最小值。
func EstimateBaseline(series *Series, mode string) float64 {
	if mode == BaselineMedian {
		n := series.Len() / 10
		if n < 1 {
			n = 1
		}
		leading := make([]float64, n)
		copy(leading, series.Signal[:n])
		sort.Float64s(leading)
		return stat.Quantile(0.5, stat.Empirical, leading, nil)
	}
	return floats.Min(series.Signal)
}

// FindPeaks 在色谱序列中检测峰。
// 对序列做单次从左到右扫描：下标 i（非首非尾）满足
// Signal[i] > Signal[i-1] 且 Signal[i] >= Signal[i+1]，
// 并且 Signal[i] - baseline >= threshold 时即为峰。
//
// 平台（连续相等的最大值）取其前沿下标作为峰位。这是一个显式的
// 设计决策：比较条件对左侧取严格大于、对右侧取大于等于，
// 因此平台内部的后续点不再满足条件。
//
// opts.MinDistance > 0 时，与上一个已接受峰相距不足 MinDistance 个
// 数据点的候选峰只在更高时替换上一个峰，否则被丢弃。
//
// 没有峰满足条件时返回空序列，不是错误。
// 此处不计算峰面积；参见 CharacterizePeaks。
func FindPeaks(series *Series, baseline float64, opts Options) []Peak {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var peaks []Peak
	n := series.Len()
	for i := 1; i < n-1; i++ {
		if !(series.Signal[i] > series.Signal[i-1] && series.Signal[i] >= series.Signal[i+1]) {
			continue
		}
		height := series.Signal[i] - baseline
		if height < threshold {
			continue
		}

		candidate := Peak{
			Index:         i,
			RetentionTime: series.Time[i],
			Height:        height,
		}

		// 与上一个峰距离过近时保留较高者
		if opts.MinDistance > 0 && len(peaks) > 0 {
			last := peaks[len(peaks)-1]
			if i-last.Index < opts.MinDistance {
				if height > last.Height {
					peaks[len(peaks)-1] = candidate
				}
				continue
			}
		}
		peaks = append(peaks, candidate)
	}

	zap.S().Infof("Peak detection: baseline=%.4g threshold=%.4g -> %d peak(s)", baseline, threshold, len(peaks))
	return peaks
}
