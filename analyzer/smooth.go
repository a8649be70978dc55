package analyzer

import (
	"github.com/mjibson/go-dsp/fft"
	"go.uber.org/zap"
)

// DefaultSmoothCutoff 是 FFT 低通平滑默认保留的频率比例。
const DefaultSmoothCutoff = 0.15

// SmoothSignal 对信号做 FFT 低通平滑，返回新的切片，不修改输入。
// cutoff 是保留的频率比例 (0, 1]：高于 cutoff * Nyquist 的频率分量
// 被置零后做逆变换。适用于去除检测器高频噪声；
// 峰形会被轻微展宽，默认关闭，由 Options.Smooth 显式开启。
func SmoothSignal(signal []float64, cutoff float64) []float64 {
	if cutoff <= 0 {
		cutoff = DefaultSmoothCutoff
	}
	if cutoff >= 1 || len(signal) < 4 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	spectrum := fft.FFTReal(signal)
	n := len(spectrum)
	keep := int(cutoff * float64(n) / 2.0)
	if keep < 1 {
		keep = 1
	}

	// 频谱是共轭对称的：bin i 和 bin n-i 对应同一频率
	for i := 1; i < n; i++ {
		freqBin := i
		if i > n/2 {
			freqBin = n - i
		}
		if freqBin > keep {
			spectrum[i] = 0
		}
	}

	inverse := fft.IFFT(spectrum)
	out := make([]float64, n)
	for i, c := range inverse {
		out[i] = real(c)
	}
	zap.S().Infof("Smoothed signal with FFT low-pass (cutoff=%.2f, kept %d of %d bins)", cutoff, keep, n/2)
	return out
}
