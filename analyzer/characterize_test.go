package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

func TestCharacterizePeaks_TriangleArea(t *testing.T) {
	// 三角峰：底 2 min，高 2 mAU，梯形积分面积 = 2.0
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2},
		Signal: []float64{0, 2, 0},
	}
	peaks := analyzer.FindPeaks(series, 0, analyzer.Options{Threshold: 1})
	require.Len(t, peaks, 1)

	peaks = analyzer.CharacterizePeaks(series, 0, peaks)
	assert.InDelta(t, 2.0, peaks[0].Area, 1e-9)
}

func TestCharacterizePeaks_WindowBoundedByLocalMinima(t *testing.T) {
	// 两个相邻峰：每个峰的积分窗口止于两峰之间的局部极小值
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2, 3, 4},
		Signal: []float64{0, 4, 1, 4, 0},
	}
	peaks := analyzer.FindPeaks(series, 0, analyzer.Options{Threshold: 2})
	require.Len(t, peaks, 2)

	peaks = analyzer.CharacterizePeaks(series, 0, peaks)
	// 峰 1 窗口 [0,2]：(0+4)/2 + (4+1)/2 = 4.5；峰 2 对称
	assert.InDelta(t, 4.5, peaks[0].Area, 1e-9)
	assert.InDelta(t, 4.5, peaks[1].Area, 1e-9)
}

func TestCharacterizePeaks_BaselineSubtracted(t *testing.T) {
	// 面积是 (signal - baseline) 的积分，而不是原始信号的积分
	series := &analyzer.Series{
		Time:   []float64{0, 1, 2},
		Signal: []float64{10, 12, 10},
	}
	peaks := analyzer.FindPeaks(series, 10, analyzer.Options{Threshold: 1})
	require.Len(t, peaks, 1)

	peaks = analyzer.CharacterizePeaks(series, 10, peaks)
	assert.InDelta(t, 2.0, peaks[0].Area, 1e-9)
}

func TestCharacterizePeaks_Deterministic(t *testing.T) {
	series, err := analyzer.LoadChromatogram(sampleFile)
	require.NoError(t, err)
	baseline := analyzer.EstimateBaseline(series, analyzer.BaselineMin)

	first := analyzer.CharacterizePeaks(series, baseline, analyzer.FindPeaks(series, baseline, analyzer.Options{Threshold: 50}))
	second := analyzer.CharacterizePeaks(series, baseline, analyzer.FindPeaks(series, baseline, analyzer.Options{Threshold: 50}))
	assert.Equal(t, first, second)
}
