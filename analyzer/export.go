package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WritePeaksCSV 把峰表写为 CSV（表头 + 每峰一行），
// 便于上传到 eLabFTW 实验记录或导入其他工具。
func WritePeaksCSV(result *AnalysisResult, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"peak", "index", "retention_time_min", "height_mau", "area_mau_min"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, peak := range result.Peaks {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(peak.Index),
			strconv.FormatFloat(peak.RetentionTime, 'f', 2, 64),
			strconv.FormatFloat(peak.Height, 'f', 2, 64),
			strconv.FormatFloat(peak.Area, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for peak %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
