package analyzer

import (
	"gonum.org/v1/gonum/integrate"
)

// peakBounds 返回包围峰顶的积分窗口 [left, right]：
// 从峰顶向两侧下行，直到信号不再下降（最近的局部极小值），
// 两侧都没有极小值时回落到序列边缘。
func peakBounds(series *Series, idx int) (left, right int) {
	left = idx
	for left > 0 && series.Signal[left-1] < series.Signal[left] {
		left--
	}
	right = idx
	n := series.Len()
	for right < n-1 && series.Signal[right+1] < series.Signal[right] {
		right++
	}
	return left, right
}

// CharacterizePeaks 为每个已检测到的峰计算面积并返回更新后的切片。
// 面积是 (Signal - baseline) 在峰两侧最近局部极小值所界定窗口上的
// 梯形数值积分（gonum integrate.Trapezoidal）。
// 计算是确定性的：相同输入总是产生相同输出。
func CharacterizePeaks(series *Series, baseline float64, peaks []Peak) []Peak {
	for k := range peaks {
		left, right := peakBounds(series, peaks[k].Index)
		if right-left < 1 {
			peaks[k].Area = 0
			continue
		}
		corrected := make([]float64, right-left+1)
		for j := left; j <= right; j++ {
			corrected[j-left] = series.Signal[j] - baseline
		}
		peaks[k].Area = integrate.Trapezoidal(series.Time[left:right+1], corrected)
	}
	return peaks
}
