package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

func TestEstimateBaseline(t *testing.T) {
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		Signal: []float64{3, 3, 3, 3, 3, 3, 3, 3, 50, 1},
	}

	t.Run("min mode", func(t *testing.T) {
		assert.InDelta(t, 1.0, analyzer.EstimateBaseline(series, analyzer.BaselineMin), 1e-9)
	})

	t.Run("default is min", func(t *testing.T) {
		assert.InDelta(t, 1.0, analyzer.EstimateBaseline(series, ""), 1e-9)
	})

	t.Run("median of leading points", func(t *testing.T) {
		// 10 个点的前 10% 只有第一个点
		assert.InDelta(t, 3.0, analyzer.EstimateBaseline(series, analyzer.BaselineMedian), 1e-9)
	})
}

func TestFindPeaks_SingleIsolatedMaximum(t *testing.T) {
	// 场景 A：time=[0..4], signal=[2,8,2,2,2], threshold=3, baseline=2
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4},
		Signal: []float64{2, 8, 2, 2, 2},
	}
	baseline := analyzer.EstimateBaseline(series, analyzer.BaselineMin)
	require.InDelta(t, 2.0, baseline, 1e-9)

	peaks := analyzer.FindPeaks(series, baseline, analyzer.Options{Threshold: 3})
	require.Len(t, peaks, 1)
	assert.Equal(t, 1, peaks[0].Index)
	assert.InDelta(t, 1.0, peaks[0].RetentionTime, 1e-9)
	assert.InDelta(t, 6.0, peaks[0].Height, 1e-9)
}

func TestFindPeaks_TwoPointSeries(t *testing.T) {
	// 只有 2 个点的序列没有内部下标，不可能有峰
	series := &analyzer.Series{
		Time:   []float64{0, 1},
		Signal: []float64{2, 100},
	}
	peaks := analyzer.FindPeaks(series, 2, analyzer.Options{Threshold: 1})
	assert.Empty(t, peaks)
}

func TestFindPeaks_NoQualifyingPeaks(t *testing.T) {
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4},
		Signal: []float64{2, 3, 2, 3, 2},
	}
	// 高于所有峰的阈值：返回空序列而不是错误
	peaks := analyzer.FindPeaks(series, 2, analyzer.Options{Threshold: 50})
	assert.Empty(t, peaks)
}

func TestFindPeaks_PlateauLeadingEdge(t *testing.T) {
	// 宽度大于 2 个点的平台视为一个峰，峰位取前沿下标
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4, 5},
		Signal: []float64{1, 5, 5, 5, 1, 1},
	}
	peaks := analyzer.FindPeaks(series, 1, analyzer.Options{Threshold: 2})
	require.Len(t, peaks, 1)
	assert.Equal(t, 1, peaks[0].Index)
}

func TestFindPeaks_ThresholdMonotonicity(t *testing.T) {
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		Signal: []float64{1, 8, 1, 15, 1, 30, 1, 60, 1, 90, 1},
	}
	baseline := analyzer.EstimateBaseline(series, analyzer.BaselineMin)

	prevCount := series.Len()
	for _, threshold := range []float64{1, 5, 10, 20, 50, 80, 100} {
		peaks := analyzer.FindPeaks(series, baseline, analyzer.Options{Threshold: threshold})
		assert.LessOrEqual(t, len(peaks), prevCount, "raising threshold must never increase the peak count")
		prevCount = len(peaks)

		// 相同输入重复调用结果一致
		again := analyzer.FindPeaks(series, baseline, analyzer.Options{Threshold: threshold})
		assert.Equal(t, peaks, again)
	}
}

func TestFindPeaks_MinDistanceKeepsHigher(t *testing.T) {
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4, 5, 6},
		Signal: []float64{0, 10, 5, 20, 0, 0, 0},
	}

	t.Run("disabled", func(t *testing.T) {
		peaks := analyzer.FindPeaks(series, 0, analyzer.Options{Threshold: 5})
		assert.Len(t, peaks, 2)
	})

	t.Run("close peaks merge to the higher one", func(t *testing.T) {
		peaks := analyzer.FindPeaks(series, 0, analyzer.Options{Threshold: 5, MinDistance: 5})
		require.Len(t, peaks, 1)
		assert.Equal(t, 3, peaks[0].Index)
		assert.InDelta(t, 20.0, peaks[0].Height, 1e-9)
	})
}
