package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/decker502/shootrange/pkg/utils"
	"gopkg.in/yaml.v3"
)

// ErrLevelNotFound 关卡目录中不存在请求的关卡
var ErrLevelNotFound = errors.New("level not found")

// LevelConfig 关卡配置数据结构
// 定义了关卡的靶子位置和时间限制，加载后不再修改
type LevelConfig struct {
	ID           int          `yaml:"id"`           // 关卡序号，从 1 开始
	Name         string       `yaml:"name"`         // 关卡名称（HUD 显示）
	Duration     float64      `yaml:"duration"`     // 时间限制（秒）
	TargetHealth int          `yaml:"targetHealth"` // 靶子生命值，默认 1
	Targets      []utils.Vec3 `yaml:"targets"`      // 靶子生成坐标（有序）
}

// TargetCount 返回本关靶子数量
func (c *LevelConfig) TargetCount() int {
	return len(c.Targets)
}

// LoadLevelConfig 从YAML文件加载关卡配置
// 参数：
//
//	filepath - 关卡配置文件的路径（相对或绝对路径）
//
// 返回：
//
//	*LevelConfig - 解析后的关卡配置对象
//	error - 如果文件读取或解析失败，返回错误信息
func LoadLevelConfig(filepath string) (*LevelConfig, error) {
	// 读取文件内容
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", filepath, err)
	}
	return parseLevelConfig(data, filepath)
}

// LoadLevelConfigFS 从文件系统（通常是 embed.FS）加载关卡配置
func LoadLevelConfigFS(fsys fs.FS, path string) (*LevelConfig, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level config file %s: %w", path, err)
	}
	return parseLevelConfig(data, path)
}

// parseLevelConfig 解析、补默认值并验证
func parseLevelConfig(data []byte, source string) (*LevelConfig, error) {
	// 解析YAML数据
	var levelConfig LevelConfig
	if err := yaml.Unmarshal(data, &levelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse level config YAML from %s: %w", source, err)
	}

	// 应用默认值
	applyDefaults(&levelConfig)

	// 验证必填字段
	if err := validateLevelConfig(&levelConfig); err != nil {
		return nil, fmt.Errorf("invalid level config in %s: %w", source, err)
	}

	return &levelConfig, nil
}

// applyDefaults 为 LevelConfig 中缺失的可选字段设置默认值
func applyDefaults(config *LevelConfig) {
	if config.TargetHealth == 0 {
		config.TargetHealth = DefaultTargetHealth
	}

	if config.Name == "" && config.ID > 0 {
		config.Name = fmt.Sprintf("Level %d", config.ID)
	}
}

// validateLevelConfig 验证关卡配置的完整性和合法性
func validateLevelConfig(config *LevelConfig) error {
	if config.ID < 1 {
		return fmt.Errorf("level id must be at least 1, got %d", config.ID)
	}

	if config.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", config.Duration)
	}

	if config.TargetHealth < 1 {
		return fmt.Errorf("targetHealth must be at least 1, got %d", config.TargetHealth)
	}

	if len(config.Targets) == 0 {
		return fmt.Errorf("at least one target is required")
	}

	return nil
}
