package analyzer

import (
	"go.uber.org/zap"
)

// PeakWidth 估算峰的基线宽度，单位分钟。
// 从峰顶向两侧行走，找到信号（扣除基线后）降到峰高一半或以下的
// 第一个数据点，两点之间的时间跨度即半高宽 (FWHH)；
// 按高斯峰近似，基线宽度取 2 * FWHH。
func PeakWidth(series *Series, baseline float64, peak Peak) float64 {
	half := peak.Height / 2.0
	n := series.Len()

	left := peak.Index
	for left > 0 && series.Signal[left]-baseline > half {
		left--
	}
	right := peak.Index
	for right < n-1 && series.Signal[right]-baseline > half {
		right++
	}

	fwhh := series.Time[right] - series.Time[left]
	return 2.0 * fwhh
}

// Resolution 计算两个相邻峰（按保留时间排序）之间的色谱分离度：
//
//	Rs = 2 * (rt2 - rt1) / (w1 + w2)
//
// 其中 w1、w2 是两个峰的基线宽度估计（参见 PeakWidth）。
// Rs > 1.5 通常表示基线分离。
// 两个宽度之和为零时返回 ErrUndefinedResolution，
// 而不是静默产生 Inf 或 NaN。
func Resolution(series *Series, baseline float64, p1, p2 Peak) (float64, error) {
	w1 := PeakWidth(series, baseline, p1)
	w2 := PeakWidth(series, baseline, p2)
	if w1+w2 == 0 {
		return 0, ErrUndefinedResolution
	}

	rtDiff := p2.RetentionTime - p1.RetentionTime
	if rtDiff < 0 {
		rtDiff = -rtDiff
	}
	return 2.0 * rtDiff / (w1 + w2), nil
}

// Resolutions 计算所有相邻峰对之间的分离度，按峰对顺序返回。
// 峰数不足 2 个时返回 ErrInsufficientPeaks；
// 调用方可以选择将其视为非致命错误。
func Resolutions(series *Series, baseline float64, peaks []Peak) ([]float64, error) {
	if len(peaks) < 2 {
		return nil, ErrInsufficientPeaks
	}

	rs := make([]float64, 0, len(peaks)-1)
	for i := 0; i < len(peaks)-1; i++ {
		v, err := Resolution(series, baseline, peaks[i], peaks[i+1])
		if err != nil {
			return nil, err
		}
		rs = append(rs, v)
	}
	zap.S().Infof("Calculated %d resolution value(s) for %d peak(s)", len(rs), len(peaks))
	return rs, nil
}
