package game

import (
	"fmt"
	"log"

	"github.com/decker502/shootrange/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家设置（全局，跨会话保存）
type GameSettings struct {
	// 视角
	MouseSensitivity float64 `yaml:"mouseSensitivity"` // 弧度/像素
	InvertY          bool    `yaml:"invertY"`

	// 音频
	AmbienceVolume  float64 `yaml:"ambienceVolume"` // 环境音 0.0 ~ 1.0
	SoundVolume     float64 `yaml:"soundVolume"`    // 枪声等音效 0.0 ~ 1.0
	AmbienceEnabled bool    `yaml:"ambienceEnabled"`
	SoundEnabled    bool    `yaml:"soundEnabled"`

	// 显示
	Fullscreen bool `yaml:"fullscreen"`
	ShowFPS    bool `yaml:"showFps"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		MouseSensitivity: config.DefaultMouseSensitivity,
		AmbienceVolume:   config.AmbienceVolume,
		SoundVolume:      0.8,
		AmbienceEnabled:  true,
		SoundEnabled:     true,
		ShowFPS:          true,
	}
}

// 灵敏度范围
const (
	minMouseSensitivity = 0.0002
	maxMouseSensitivity = 0.02
)

// SettingsManager 设置管理器
// gdataManager 为 nil 时进入降级模式，设置只保存在内存中
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败不是致命错误，回退到默认设置
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置；不存在时使用默认值
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本存档缺失的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.MouseSensitivity = clampSensitivity(loaded.MouseSensitivity)
	loaded.AmbienceVolume = clampVolume(loaded.AmbienceVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata；降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMouseSensitivity 设置鼠标灵敏度（限制在合理范围内）
func (sm *SettingsManager) SetMouseSensitivity(v float64) {
	sm.settings.MouseSensitivity = clampSensitivity(v)
}

// SetInvertY 设置竖直视角反转
func (sm *SettingsManager) SetInvertY(invert bool) {
	sm.settings.InvertY = invert
}

// SetAmbienceVolume 设置环境音音量
// 注意：仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetAmbienceVolume(volume float64) {
	sm.settings.AmbienceVolume = clampVolume(volume)
}

// SetSoundVolume 设置音效音量
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

func (sm *SettingsManager) SetAmbienceEnabled(enabled bool) {
	sm.settings.AmbienceEnabled = enabled
}

func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetFullscreen 设置启动时是否全屏
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func (sm *SettingsManager) SetShowFPS(show bool) {
	sm.settings.ShowFPS = show
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

func clampSensitivity(v float64) float64 {
	if v <= 0 {
		return config.DefaultMouseSensitivity
	}
	if v < minMouseSensitivity {
		return minMouseSensitivity
	}
	if v > maxMouseSensitivity {
		return maxMouseSensitivity
	}
	return v
}
