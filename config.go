package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ZephyrDeng/hplc-analyzer-mcp/analyzer"
)

// DefaultConfigPath 是默认的配置文件位置（相对于工作目录）。
const DefaultConfigPath = "chromalyzer.yaml"

// Config 保存分析参数的默认值。所有字段都是可选的，
// 缺失时回落到 analyzer 包的默认值。
type Config struct {
	// 峰检测
	Threshold   float64 `yaml:"threshold"`     // 峰高阈值，单位 mAU
	MinDistance int     `yaml:"min_distance"`  // 相邻峰之间的最小数据点间隔
	Baseline    string  `yaml:"baseline_mode"` // "min" 或 "median"

	// 信号预处理
	Smooth       bool    `yaml:"smooth"`        // 检测前是否做 FFT 低通平滑
	SmoothCutoff float64 `yaml:"smooth_cutoff"` // 保留的频率比例 (0, 1]

	// 输出
	OutputFormat string `yaml:"output_format"` // text, markdown 或 json
}

// DefaultConfig 返回全部使用内置默认值的配置。
func DefaultConfig() *Config {
	return &Config{
		Threshold:    analyzer.DefaultThreshold,
		Baseline:     analyzer.BaselineMin,
		SmoothCutoff: analyzer.DefaultSmoothCutoff,
		OutputFormat: analyzer.FormatText,
	}
}

// LoadConfig 从 path 读取 YAML 配置。文件不存在时返回默认配置，
// 不视为错误；文件存在但无法解析时报错。
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
		}
		zap.S().Infof("Loaded config from %s", path)
	case os.IsNotExist(err):
		// 没有配置文件不是错误，使用内置默认值
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖。
// 只支持阈值一项：CHROMALYZER_THRESHOLD。
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CHROMALYZER_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.Threshold = f
		} else {
			zap.S().Warnf("Ignoring invalid CHROMALYZER_THRESHOLD value '%s'", v)
		}
	}
}

func (c *Config) validate() error {
	switch c.Baseline {
	case "", analyzer.BaselineMin, analyzer.BaselineMedian:
	default:
		return fmt.Errorf("invalid baseline_mode '%s', expected '%s' or '%s'", c.Baseline, analyzer.BaselineMin, analyzer.BaselineMedian)
	}
	switch c.OutputFormat {
	case "", analyzer.FormatText, analyzer.FormatMarkdown, analyzer.FormatJSON:
	default:
		return fmt.Errorf("invalid output_format '%s'", c.OutputFormat)
	}
	if c.SmoothCutoff < 0 || c.SmoothCutoff > 1 {
		return fmt.Errorf("smooth_cutoff must be in (0, 1], got %g", c.SmoothCutoff)
	}
	return nil
}

// Options 把配置转换为 analyzer.Options。
func (c *Config) Options() analyzer.Options {
	return analyzer.Options{
		Threshold:    c.Threshold,
		MinDistance:  c.MinDistance,
		BaselineMode: c.Baseline,
		Smooth:       c.Smooth,
		SmoothCutoff: c.SmoothCutoff,
	}
}
