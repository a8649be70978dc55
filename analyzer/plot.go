package analyzer

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// SVG 画布尺寸与边距（像素）。
const (
	svgWidth   = 800
	svgHeight  = 400
	svgMargin  = 50
	svgPlotW   = svgWidth - 2*svgMargin
	svgPlotH   = svgHeight - 2*svgMargin
	peakMarker = 4 // 峰顶标记半径
)

// RenderSVG 把色谱曲线渲染为独立的 SVG 文档：
// 信号折线、虚线基线、峰顶标记和保留时间标注。
// 输出是自包含的字符串，可直接写入 .svg 文件。
func RenderSVG(series *Series, result *AnalysisResult) string {
	tMin := series.Time[0]
	tMax := series.Time[series.Len()-1]
	sMin := floats.Min(series.Signal)
	sMax := floats.Max(series.Signal)
	if sMax == sMin {
		sMax = sMin + 1 // 避免平坦信号导致除零
	}

	x := func(t float64) float64 {
		return svgMargin + (t-tMin)/(tMax-tMin)*svgPlotW
	}
	y := func(s float64) float64 {
		return svgHeight - svgMargin - (s-sMin)/(sMax-sMin)*svgPlotH
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgWidth, svgHeight, svgWidth, svgHeight))
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	// 坐标轴
	b.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n",
		svgMargin, svgHeight-svgMargin, svgWidth-svgMargin, svgHeight-svgMargin))
	b.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="black"/>`+"\n",
		svgMargin, svgMargin, svgMargin, svgHeight-svgMargin))
	b.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="12" text-anchor="middle">Time (min)</text>`+"\n",
		svgWidth/2, svgHeight-10))
	b.WriteString(fmt.Sprintf(`<text x="15" y="%d" font-size="12" text-anchor="middle" transform="rotate(-90 15 %d)">Absorbance (mAU)</text>`+"\n",
		svgHeight/2, svgHeight/2))

	// 基线（虚线）
	by := y(result.Baseline)
	b.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="gray" stroke-dasharray="4 3"/>`+"\n",
		svgMargin, by, svgWidth-svgMargin, by))

	// 信号折线
	points := make([]string, series.Len())
	for i := range series.Time {
		points[i] = fmt.Sprintf("%.1f,%.1f", x(series.Time[i]), y(series.Signal[i]))
	}
	b.WriteString(fmt.Sprintf(`<polyline points="%s" fill="none" stroke="steelblue" stroke-width="1.5"/>`+"\n",
		strings.Join(points, " ")))

	// 峰顶标记与保留时间标注
	for i, peak := range result.Peaks {
		px := x(peak.RetentionTime)
		py := y(series.Signal[peak.Index])
		b.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="crimson"/>`+"\n", px, py, peakMarker))
		b.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="11" text-anchor="middle">P%d %.2f</text>`+"\n",
			px, py-8, i+1, peak.RetentionTime))
	}

	b.WriteString("</svg>\n")
	return b.String()
}
