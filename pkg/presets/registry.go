// Package presets 提供六个页面预设的运动策略及其注册表
//
// 每个策略负责三件事：计算初始布局、初始化运动状态、逐帧更新粒子。
// 策略只通过 Particle.PresetData 保存私有状态，不持有粒子引用。
package presets

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/types"
)

// ErrPresetNotFound 注册表中不存在该预设
var ErrPresetNotFound = errors.New("preset not found")

// Strategy 运动策略契约
//
// 三个方法都可能返回错误；调用方负责捕获错误与 panic 并跳过本步。
type Strategy interface {
	// CalculatePositions 计算每个粒子的初始目标位置（纯函数）
	CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error)

	// InitializeMovement 根据初始布局设置粒子的运动状态（原地修改 particles）
	InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error

	// Update 每帧调用，原地推进粒子；refs 仅在该预设存在暂存状态时非 nil
	Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error
}

// RefsProvider 需要跨帧暂存状态的策略实现此接口
type RefsProvider interface {
	NewRefs() *components.PresetRefs
}

// Registry 预设 ID 到运动策略的映射
type Registry struct {
	strategies map[types.PresetID]Strategy
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[types.PresetID]Strategy)}
}

// Register 注册（或替换）一个策略
func (r *Registry) Register(id types.PresetID, s Strategy) {
	r.strategies[id] = s
}

// Lookup 查找策略，未注册时返回 ErrPresetNotFound
func (r *Registry) Lookup(id types.PresetID) (Strategy, error) {
	s, ok := r.strategies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
	}
	return s, nil
}

// IDs 返回已注册的预设 ID（按字典序）
func (r *Registry) IDs() []types.PresetID {
	ids := make([]types.PresetID, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DefaultRegistry 按配置注册全部内置策略
//
// 配置中缺少调参或调参无法编译的预设不会被注册，
// 查询时得到 ErrPresetNotFound，由调用方按未知预设处理。
func DefaultRegistry(cfg *config.FieldConfig, seed int64) *Registry {
	r := NewRegistry()
	rng := rand.New(rand.NewSource(seed))

	constructors := map[types.PresetID]func(base) Strategy{
		types.PresetHero:  func(b base) Strategy { return &Hero{base: b} },
		types.PresetSpeed: func(b base) Strategy { return &Speed{base: b} },
		types.PresetFees:  func(b base) Strategy { return &Fees{base: b} },
		types.PresetMEV:   func(b base) Strategy { return NewMEV(b) },
		types.PresetVault: func(b base) Strategy { return &Vault{base: b} },
		types.PresetLinks: func(b base) Strategy { return &Links{base: b} },
	}

	for _, id := range types.AllPresets() {
		tuning, ok := cfg.Tuning(id)
		if !ok {
			continue
		}
		b := base{tuning: tuning, rng: rand.New(rand.NewSource(rng.Int63()))}
		r.Register(id, constructors[id](b))
	}
	return r
}
