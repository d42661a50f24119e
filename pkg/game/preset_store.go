package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/Tomortec/particle-emitter/pkg/config"
)

// presetObject gdata 对象名，每个预设是其中一个属性
const presetObject = "presets"

// PresetStore 发射器预设存储
// 每个预设以 YAML 形式保存为 gdata 的一个属性，属性名即预设名。
type PresetStore struct {
	gdataManager *gdata.Manager                  // gdata 跨平台存储管理器，可为 nil（降级模式）
	presets      map[string]*config.EmitterConfig // 内存中的预设
}

// NewPresetStore 创建预设存储，并尝试加载已保存的预设
//
// gdataManager 为 nil 时仅保存在内存中。加载失败只记录日志，不影响创建。
func NewPresetStore(gdataManager *gdata.Manager) *PresetStore {
	ps := &PresetStore{
		gdataManager: gdataManager,
		presets:      make(map[string]*config.EmitterConfig),
	}
	if err := ps.Load(); err != nil {
		log.Printf("[PresetStore] Warning: Failed to load presets: %v", err)
	}
	return ps
}

// Load 从 gdata 重新加载全部预设
//
// 单个预设损坏时跳过该预设并继续，返回第一个错误。
func (ps *PresetStore) Load() error {
	if ps.gdataManager == nil {
		return nil
	}
	names, err := ps.gdataManager.ListObjectProps(presetObject)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	var firstErr error
	for _, name := range names {
		cfg, err := ps.loadOne(name)
		if err != nil {
			log.Printf("[PresetStore] Skipping preset %q: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ps.presets[name] = cfg
	}
	log.Printf("[PresetStore] Loaded %d presets", len(ps.presets))
	return firstErr
}

func (ps *PresetStore) loadOne(name string) (*config.EmitterConfig, error) {
	data, err := ps.gdataManager.LoadObjectProp(presetObject, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	cfg, err := config.ParseEmitterConfig(data)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	return cfg, nil
}

// Save 保存预设（覆盖同名预设）
//
// 降级模式下只更新内存，不报错。
func (ps *PresetStore) Save(name string, cfg *config.EmitterConfig) error {
	if name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if cfg == nil {
		return fmt.Errorf("preset %q: nil config", name)
	}
	ps.presets[name] = cfg

	if ps.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal preset %q: %w", name, err)
	}
	if err := ps.gdataManager.SaveObjectProp(presetObject, name, data); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}

	log.Printf("[PresetStore] Preset %q saved", name)
	return nil
}

// Delete 删除预设（不存在时不报错）
func (ps *PresetStore) Delete(name string) error {
	delete(ps.presets, name)
	if ps.gdataManager == nil {
		return nil
	}
	if err := ps.gdataManager.DeleteObjectProp(presetObject, name); err != nil {
		return fmt.Errorf("failed to delete preset %q: %w", name, err)
	}
	return nil
}

// Get 获取预设
func (ps *PresetStore) Get(name string) (*config.EmitterConfig, bool) {
	cfg, ok := ps.presets[name]
	return cfg, ok
}

// Names 返回全部预设名称（已排序）
func (ps *PresetStore) Names() []string {
	names := make([]string, 0, len(ps.presets))
	for name := range ps.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
