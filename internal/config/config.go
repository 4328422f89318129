package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName 配置文件名（位于可执行文件同目录）
const ConfigFileName = "config.toml"

// 环境变量覆盖
const (
	EnvWorkbook = "SHOWBOARD_WORKBOOK"
	EnvDataDir  = "SHOWBOARD_DATA_DIR"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Sheets   SheetsConfig   `toml:"sheets"`
	Matching MatchingConfig `toml:"matching"`
	Search   SearchConfig   `toml:"search"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	Database string `toml:"database"` // 相对 data_dir
	Workbook string `toml:"workbook"` // 直接读取的 xlsx；为空时使用数据库
}

// SheetsConfig 表名
type SheetsConfig struct {
	Schedule string `toml:"schedule"`
	Clients  string `toml:"clients"`
	Shows    string `toml:"shows"`
}

// MatchingConfig 模糊匹配阈值（每十个字符允许的编辑次数）
type MatchingConfig struct {
	ClientThreshold float64 `toml:"client_threshold"`
	ShowThreshold   float64 `toml:"show_threshold"`
}

// SearchConfig 搜索高亮标记
type SearchConfig struct {
	OpenTag  string `toml:"open_tag"`
	CloseTag string `toml:"close_tag"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:  "data",
			Database: "showboard.db",
		},
		Sheets: SheetsConfig{
			Schedule: "Schedule",
			Clients:  "Clients",
			Shows:    "Shows",
		},
		Matching: MatchingConfig{
			ClientThreshold: 1.5,
			ShowThreshold:   2.5,
		},
		Search: SearchConfig{
			OpenTag:  "<mark>",
			CloseTag: "</mark>",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath config.toml 的默认位置；无法获取可执行文件目录时使用当前目录
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, ConfigFileName)
}

// LoadConfigWithInfo 从 path 加载配置并返回元信息；文件不存在时使用默认配置
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, err
		}
	case os.IsNotExist(err):
		// 配置文件不存在，使用默认配置
	default:
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

// 环境变量覆盖（用于 E2E / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv(EnvWorkbook); v != "" {
		config.Data.Workbook = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		config.Data.DataDir = v
	}
}

// LoadConfig 从默认位置加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo("")
	return config, err
}

// SaveConfig 保存配置到 path
func SaveConfig(config *AppConfig, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir 数据目录的绝对位置：相对路径以可执行文件目录为基准
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir 确保数据目录及 uploads/exports 子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	for _, dir := range []string{dataDir, filepath.Join(dataDir, "uploads"), filepath.Join(dataDir, "exports")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}

// DatabasePath SQLite 数据库文件路径
func DatabasePath(config *AppConfig) string {
	if filepath.IsAbs(config.Data.Database) {
		return config.Data.Database
	}
	return filepath.Join(ResolveDataDir(config), config.Data.Database)
}
