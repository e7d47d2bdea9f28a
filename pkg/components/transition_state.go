package components

import (
	"time"

	"github.com/gonewx/dotfield/pkg/types"
)

// Timestamp 可为空的单调时钟时间戳
type Timestamp struct {
	At  time.Duration
	Set bool
}

// At 返回一个已设置的时间戳
func At(d time.Duration) Timestamp {
	return Timestamp{At: d, Set: true}
}

// TransitionState 过渡状态机的状态
//
// IsInitialLoad 只会从 true 变为 false 一次，不会反转。
// FadeInStart / TransitionStart 仅供渲染器等消费者计算缓动进度。
type TransitionState struct {
	Preset          types.PresetID
	DisplayMode     types.DisplayMode
	EffectiveMode   types.DisplayMode
	IsInitialLoad   bool
	FadeInStart     Timestamp
	TransitionStart Timestamp
}

// PresetRefs 预设私有的跨帧暂存状态（如环绕角度）
//
// 由粒子缓冲区按预设 ID 持有，只有所属预设的生命周期显式重置时才会清空。
type PresetRefs struct {
	Values map[string]float64
}

// NewPresetRefs 创建空的暂存状态
func NewPresetRefs() *PresetRefs {
	return &PresetRefs{Values: make(map[string]float64)}
}

// Get 读取暂存值，不存在时返回 0
func (r *PresetRefs) Get(key string) float64 {
	if r == nil {
		return 0
	}
	return r.Values[key]
}

// Set 写入暂存值
func (r *PresetRefs) Set(key string, v float64) {
	if r.Values == nil {
		r.Values = make(map[string]float64)
	}
	r.Values[key] = v
}

// Reset 清空所有暂存值
func (r *PresetRefs) Reset() {
	for k := range r.Values {
		delete(r.Values, k)
	}
}
