package systems

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/presets"
	"github.com/gonewx/dotfield/pkg/types"
)

// ParticleBuffer 粒子缓冲区
//
// 持有活动粒子数组、初始布局缓存以及各预设的暂存状态。
// 所有对运动策略的调用都在这里集中做错误与 panic 防护：
// 失败只记录日志并跳过本步，上一帧的粒子状态保持不变。
type ParticleBuffer struct {
	registry *presets.Registry
	anchors  config.AnchorSection
	seed     config.SeedSection
	rng      *rand.Rand

	particles []components.Particle
	cache     map[string][]components.Position
	refs      map[types.PresetID]*components.PresetRefs

	lastErr error
}

// NewParticleBuffer 创建空缓冲区
func NewParticleBuffer(registry *presets.Registry, cfg *config.FieldConfig, seed int64) *ParticleBuffer {
	return &ParticleBuffer{
		registry: registry,
		anchors:  cfg.Anchors,
		seed:     cfg.Seed,
		rng:      rand.New(rand.NewSource(seed)),
		cache:    make(map[string][]components.Position),
		refs:     make(map[types.PresetID]*components.PresetRefs),
	}
}

// CacheKey 初始布局缓存键：presetId::isMobile::isTablet
func CacheKey(preset types.PresetID, rc components.ResponsiveConfig) string {
	return fmt.Sprintf("%s::%t::%t", preset, rc.IsMobile, rc.IsTablet)
}

// Seed 重新播种 count 个休眠态粒子
//
// 粒子在 center 周围 Jitter×Jitter 的正方形内随机分布，透明度 0、尺寸 1。
// 容量足够时原地复用底层数组。
func (b *ParticleBuffer) Seed(count int, center components.Position) {
	if count < 0 {
		count = 0
	}
	if cap(b.particles) >= count {
		b.particles = b.particles[:count]
	} else {
		b.particles = make([]components.Particle, count)
	}

	half := b.seed.Jitter / 2
	for i := range b.particles {
		b.particles[i] = components.Particle{
			X:             center.X + (b.rng.Float64()*2-1)*half,
			Y:             center.Y + (b.rng.Float64()*2-1)*half,
			Size:          1,
			TargetSize:    1,
			Opacity:       0,
			TargetOpacity: 0,
			Color:         b.seed.Color,
		}
	}
}

// ComputeInitialLayout 返回预设在当前几何下的初始布局
//
// 命中缓存直接返回；未命中时调用策略计算并写入缓存。
// 策略失败时记录日志、不写缓存并返回 false，调用方需跳过依赖布局的步骤。
func (b *ParticleBuffer) ComputeInitialLayout(preset types.PresetID, width, height float64, rc components.ResponsiveConfig, mode types.DisplayMode) ([]components.Position, bool) {
	strategy, ok := b.lookup(preset)
	if !ok {
		return nil, false
	}

	key := CacheKey(preset, rc)
	if positions, ok := b.cache[key]; ok {
		return positions, true
	}

	center := CenterPosition(width, height, mode, b.anchors)
	var positions []components.Position
	err := b.guard(preset, "calculatePositions", func() error {
		var err error
		positions, err = strategy.CalculatePositions(width, height, center, rc)
		return err
	})
	if err != nil {
		return nil, false
	}

	b.cache[key] = positions
	return positions, true
}

// InitializeMotion 根据缓存布局初始化预设的运动状态
//
// 缓存中没有布局时什么都不做。声明了暂存状态的预设会在这里创建或重置其 refs。
func (b *ParticleBuffer) InitializeMotion(preset types.PresetID, width, height float64, rc components.ResponsiveConfig, mode types.DisplayMode) bool {
	strategy, ok := b.lookup(preset)
	if !ok {
		return false
	}
	positions, ok := b.cache[CacheKey(preset, rc)]
	if !ok {
		return false
	}

	if provider, ok := strategy.(presets.RefsProvider); ok {
		fresh := provider.NewRefs()
		if existing, ok := b.refs[preset]; ok && fresh != nil {
			existing.Reset()
			for k, v := range fresh.Values {
				existing.Set(k, v)
			}
		} else {
			b.refs[preset] = fresh
		}
	}

	center := CenterPosition(width, height, mode, b.anchors)
	err := b.guard(preset, "initializeMovement", func() error {
		return strategy.InitializeMovement(b.particles, positions, width, height, center, rc)
	})
	return err == nil
}

// Advance 推进一帧；预设存在暂存状态时才传入 refs
func (b *ParticleBuffer) Advance(preset types.PresetID, width, height float64, rc components.ResponsiveConfig, mode types.DisplayMode) bool {
	strategy, ok := b.lookup(preset)
	if !ok {
		return false
	}

	center := CenterPosition(width, height, mode, b.anchors)
	refs := b.refs[preset]
	err := b.guard(preset, "update", func() error {
		return strategy.Update(b.particles, width, height, center, rc, refs)
	})
	return err == nil
}

// SnapToLayout 首次加载时把粒子直接放到布局目标位置，透明度归零
func (b *ParticleBuffer) SnapToLayout(positions []components.Position) {
	for i := range b.particles {
		p := &b.particles[i]
		if i < len(positions) {
			p.X, p.Y = positions[i].X, positions[i].Y
		}
		p.Opacity = 0
	}
}

// Particles 返回活动粒子（与缓冲区共享底层数组）
func (b *ParticleBuffer) Particles() []components.Particle {
	return b.particles
}

// Len 返回粒子数量
func (b *ParticleBuffer) Len() int {
	return len(b.particles)
}

// CachedLayout 按缓存键读取布局
func (b *ParticleBuffer) CachedLayout(key string) ([]components.Position, bool) {
	positions, ok := b.cache[key]
	return positions, ok
}

// CacheLen 返回缓存条目数
func (b *ParticleBuffer) CacheLen() int {
	return len(b.cache)
}

// ClearCache 清空初始布局缓存
func (b *ParticleBuffer) ClearCache() {
	for k := range b.cache {
		delete(b.cache, k)
	}
}

// Refs 返回预设的暂存状态，不存在时返回 nil
func (b *ParticleBuffer) Refs(preset types.PresetID) *components.PresetRefs {
	return b.refs[preset]
}

// LastError 返回最近一次失败的原因（未知预设或策略失败）
func (b *ParticleBuffer) LastError() error {
	return b.lastErr
}

func (b *ParticleBuffer) lookup(preset types.PresetID) (presets.Strategy, bool) {
	strategy, err := b.registry.Lookup(preset)
	if err != nil {
		b.lastErr = err
		log.Printf("[ParticleBuffer] %v", err)
		return nil, false
	}
	return strategy, true
}

// guard 调用策略函数，把返回的错误和 panic 统一转成日志
func (b *ParticleBuffer) guard(preset types.PresetID, op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			b.lastErr = fmt.Errorf("preset %q %s: %w", preset, op, err)
			log.Printf("[ParticleBuffer] preset %q %s failed: %v", preset, op, err)
		}
	}()
	return fn()
}
