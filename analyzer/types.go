package analyzer

// --- 核心数据模型 ---

// Series 代表一条已加载的色谱曲线：两列等长的时间/吸光度序列。
// Metadata 保存文件头部的注释行（以 '#' 开头），其中可能包含
// eLabFTW 实验记录的链接等外部引用。这些内容是不透明的元数据，
// 任何计算都不会解析它。
type Series struct {
	Time     []float64 // 时间值，单位分钟，严格递增
	Signal   []float64 // 吸光度值，单位 mAU
	Metadata []string  // 原始注释行，按出现顺序保存
	Path     string    // 数据来源文件路径
}

// Len 返回数据点数量。
func (s *Series) Len() int {
	return len(s.Time)
}

// Peak 代表一个检测到的色谱峰。每次分析调用都会重新计算，
// 不在调用之间保留任何状态。
type Peak struct {
	Index         int     // 峰顶在序列中的下标
	RetentionTime float64 // 保留时间 = Time[Index]，单位分钟
	Height        float64 // 峰高 = Signal[Index] - baseline，单位 mAU
	Area          float64 // 峰面积（梯形积分），单位 mAU·min
}

// AnalysisResult 聚合一次完整分析的输出。一旦生成即视为不可变。
type AnalysisResult struct {
	Filepath    string    // 输入文件路径
	NPoints     int       // 数据点数量
	TimeStart   float64   // 时间范围起点，单位分钟
	TimeEnd     float64   // 时间范围终点，单位分钟
	Baseline    float64   // 估算的基线吸光度，单位 mAU
	Peaks       []Peak    // 按保留时间升序排列的峰
	Resolutions []float64 // 相邻峰对之间的分离度；峰数不足 2 时为空
}

// --- JSON 输出结构体定义 ---

// ErrorResult 用于在 JSON 格式中返回错误信息
type ErrorResult struct {
	Error string `json:"error"`
}

// PeakStat 代表 JSON 输出中的单个峰 (JSON)
type PeakStat struct {
	Index         int     `json:"index"`
	RetentionTime float64 `json:"retentionTime"` // 单位分钟
	Height        float64 `json:"height"`        // 单位 mAU
	Area          float64 `json:"area"`          // 单位 mAU·min
}

// ChromatogramResult 代表分析的整体结果 (JSON)
type ChromatogramResult struct {
	Filepath    string     `json:"filepath"`
	NPoints     int        `json:"nPoints"`
	TimeStart   float64    `json:"timeStart"`
	TimeEnd     float64    `json:"timeEnd"`
	Baseline    float64    `json:"baseline"`
	NPeaks      int        `json:"nPeaks"`
	Peaks       []PeakStat `json:"peaks"`
	Resolutions []float64  `json:"resolutions,omitempty"` // 相邻峰对的 Rs 值
}
