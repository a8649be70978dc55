package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

// serverVersion 是对外报告的版本号。
const serverVersion = "0.1.0"

// cfg 保存当前进程的分析默认值，在命令执行前由配置文件填充。
var cfg = DefaultConfig()

var configPath string

var rootCmd = &cobra.Command{
	Use:   "chromalyzer",
	Short: "HPLC chromatogram analyzer (console summary + MCP server)",
	Long: "chromalyzer loads two-column HPLC chromatogram exports, detects peaks above a\n" +
		"threshold, characterizes them (retention time, height, area) and calculates the\n" +
		"resolution between adjacent peaks. eLabFTW references in file headers are kept\n" +
		"as opaque metadata and never parsed.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 日志输出到 stderr：stdout 留给 MCP 传输和控制台摘要
		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		zap.ReplaceGlobals(logger)

		loaded, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <chromatogram-file>",
	Short: "Analyze a chromatogram file and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cfg.Options()
		if f, _ := cmd.Flags().GetFloat64("threshold"); f > 0 {
			opts.Threshold = f
		}
		if cmd.Flags().Changed("smooth") {
			opts.Smooth, _ = cmd.Flags().GetBool("smooth")
		}
		if cmd.Flags().Changed("min-distance") {
			opts.MinDistance, _ = cmd.Flags().GetInt("min-distance")
		}
		if mode, _ := cmd.Flags().GetString("baseline"); mode != "" {
			opts.BaselineMode = mode
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.OutputFormat
		}

		// 分析完成前不输出任何内容：出错时不打印部分结果
		result, err := analyzer.Analyze(args[0], opts)
		if err != nil {
			return err
		}
		rendered, err := analyzer.Format(result, format)
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP stdio server exposing chromatogram analysis tools",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 初始化 MCP 服务器
		mcpServer := server.NewMCPServer(
			"ChromatogramAnalyzer", // 服务器名称
			serverVersion,          // 服务器版本
			server.WithLogging(),   // 启用日志记录
			server.WithRecovery(),  // 启用 panic 恢复
		)

		// 2. 定义 analyze_chromatogram 工具及其参数
		analyzeTool := mcp.NewTool("analyze_chromatogram",
			mcp.WithDescription("分析指定的 HPLC 色谱数据文件：峰检测、保留时间、峰高、峰面积和相邻峰分离度。"),
			mcp.WithString("chromatogram_uri",
				mcp.Description("要分析的色谱文件的 URI (支持 'file://', 'http://', 'https://' 协议或本地路径)。文件为两列文本：时间(min) 和吸光度(mAU)，'#' 开头的行是注释。"),
				mcp.Required(),
			),
			mcp.WithNumber("threshold",
				mcp.Description("峰高阈值 (相对于基线，单位 mAU)。省略时使用配置默认值。"),
			),
			mcp.WithBoolean("smooth",
				mcp.Description("检测前是否对信号做 FFT 低通平滑。"),
			),
			mcp.WithString("output_format",
				mcp.Description("分析结果的输出格式。"),
				mcp.DefaultString("text"),
				mcp.Enum("text", "markdown", "json"),
			),
		)

		// 3. 定义 calculate_resolution 工具
		resolutionTool := mcp.NewTool("calculate_resolution",
			mcp.WithDescription("计算色谱文件中所有相邻峰对的分离度 Rs = 2(rt2-rt1)/(w1+w2)。检测到的峰少于 2 个时返回错误。"),
			mcp.WithString("chromatogram_uri",
				mcp.Description("色谱文件的 URI (支持 'file://', 'http://', 'https://' 协议或本地路径)。"),
				mcp.Required(),
			),
			mcp.WithNumber("threshold",
				mcp.Description("峰高阈值 (相对于基线，单位 mAU)。省略时使用配置默认值。"),
			),
		)

		// 4. 定义 export_peaks_csv 工具
		exportTool := mcp.NewTool("export_peaks_csv",
			mcp.WithDescription("分析色谱文件并把峰表导出为 CSV 文件，便于上传到 eLabFTW 实验记录。"),
			mcp.WithString("chromatogram_uri",
				mcp.Description("色谱文件的 URI (支持 'file://', 'http://', 'https://' 协议或本地路径)。"),
				mcp.Required(),
			),
			mcp.WithString("output_csv_path",
				mcp.Description("生成的 CSV 文件的保存路径 (绝对路径或相对于工作目录的路径)。"),
				mcp.Required(),
			),
			mcp.WithNumber("threshold",
				mcp.Description("峰高阈值 (相对于基线，单位 mAU)。省略时使用配置默认值。"),
			),
		)

		// 5. 定义 plot_chromatogram 工具
		plotTool := mcp.NewTool("plot_chromatogram",
			mcp.WithDescription("把色谱曲线渲染为 SVG 图 (信号折线、基线、峰顶标记) 并保存到指定路径。"),
			mcp.WithString("chromatogram_uri",
				mcp.Description("色谱文件的 URI (支持 'file://', 'http://', 'https://' 协议或本地路径)。"),
				mcp.Required(),
			),
			mcp.WithString("output_svg_path",
				mcp.Description("生成的 SVG 文件的保存路径 (绝对路径或相对于工作目录的路径)。"),
				mcp.Required(),
			),
			mcp.WithNumber("threshold",
				mcp.Description("峰高阈值 (相对于基线，单位 mAU)。省略时使用配置默认值。"),
			),
		)

		// 6. 将所有工具及其处理器函数添加到服务器
		mcpServer.AddTool(analyzeTool, handleAnalyzeChromatogram)
		mcpServer.AddTool(resolutionTool, handleCalculateResolution)
		mcpServer.AddTool(exportTool, handleExportPeaksCSV)
		mcpServer.AddTool(plotTool, handlePlotChromatogram)

		// 7. 设置信号处理程序以清理下载的临时文件
		setupSignalHandler()

		// 8. Start the server using stdio transport
		zap.S().Infof("Starting ChromatogramAnalyzer MCP server via stdio...")
		if err := server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", DefaultConfigPath, "path to the YAML config file")

	analyzeCmd.Flags().Float64("threshold", 0, "peak height threshold above baseline in mAU (default from config)")
	analyzeCmd.Flags().String("format", "", "output format: text, markdown or json (default from config)")
	analyzeCmd.Flags().Bool("smooth", false, "apply FFT low-pass smoothing before detection")
	analyzeCmd.Flags().Int("min-distance", 0, "minimum number of data points between peaks")
	analyzeCmd.Flags().String("baseline", "", "baseline estimation mode: min or median")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
