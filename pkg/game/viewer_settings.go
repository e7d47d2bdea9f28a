// Package game 保存查看器自身的状态（偏好设置），与粒子引擎状态无关
package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/dotfield/pkg/types"
)

// ViewerSettings 查看器偏好
//
// 只记录查看器的界面选择，引擎每次挂载都从零重建，不读取这里的任何值。
type ViewerSettings struct {
	LastPreset     types.PresetID `yaml:"lastPreset"`     // 上次查看的预设
	DebugOverlay   bool           `yaml:"debugOverlay"`   // 是否显示调试叠加层
	SimulateMobile bool           `yaml:"simulateMobile"` // 是否模拟移动端
	SidePanel      bool           `yaml:"sidePanel"`      // 侧栏是否展开
	Fullscreen     bool           `yaml:"fullscreen"`     // 启动时是否全屏
}

// DefaultViewerSettings 返回默认偏好
func DefaultViewerSettings() *ViewerSettings {
	return &ViewerSettings{
		LastPreset: types.PresetHero,
	}
}

// ViewerSettingsManager 偏好管理器
// 负责偏好的加载、保存和内存管理
type ViewerSettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *ViewerSettings
}

const (
	viewerObject   = "viewer"
	viewerProperty = "preferences"
)

// NewViewerSettingsManager 创建偏好管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 加载失败不影响创建，使用默认偏好
func NewViewerSettingsManager(gdataManager *gdata.Manager) *ViewerSettingsManager {
	m := &ViewerSettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultViewerSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[ViewerSettings] Warning: %v (using defaults)", err)
	}
	return m
}

// Load 从 gdata 加载偏好；降级模式或文件不存在时使用默认值
func (m *ViewerSettingsManager) Load() error {
	if m.gdataManager == nil || !m.gdataManager.ObjectPropExists(viewerObject, viewerProperty) {
		m.settings = DefaultViewerSettings()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(viewerObject, viewerProperty)
	if err != nil {
		m.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to load viewer settings: %w", err)
	}

	loaded := DefaultViewerSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultViewerSettings()
		return fmt.Errorf("failed to unmarshal viewer settings: %w", err)
	}
	// 存档里的预设可能来自旧版本
	if !loaded.LastPreset.IsKnown() {
		loaded.LastPreset = types.PresetHero
	}

	m.settings = loaded
	return nil
}

// Save 保存偏好；降级模式下直接返回 nil
func (m *ViewerSettingsManager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal viewer settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(viewerObject, viewerProperty, data); err != nil {
		return fmt.Errorf("failed to save viewer settings: %w", err)
	}

	log.Printf("[ViewerSettings] saved (preset=%s)", m.settings.LastPreset)
	return nil
}

// Settings 返回当前偏好（可直接修改，需调用 Save 持久化）
func (m *ViewerSettingsManager) Settings() *ViewerSettings {
	return m.settings
}

// Persistent 是否可以持久化
func (m *ViewerSettingsManager) Persistent() bool {
	return m.gdataManager != nil
}
