package systems

import (
	"math"
	"time"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
)

// Surface 2D 绘图表面
//
// 语义与 HTML canvas 的同名状态一致：SetFillStyle 和 SetGlobalAlpha 设置后续绘制使用的状态。
type Surface interface {
	ClearRect(x, y, width, height float64)
	SetFillStyle(color string)
	SetGlobalAlpha(alpha float64)
	FillCircle(x, y, radius float64)
}

// RenderStats 最近一帧的绘制统计
type RenderStats struct {
	Drawn   int
	Skipped int
	Batches int
}

type batchKey struct {
	color string
	size  float64
}

type batch struct {
	key     batchKey
	indices []int
}

// CanvasRenderer 批量绘制粒子
//
// 按 (颜色, 尺寸取整) 分组，每组只设置一次填充色，减少绘图状态切换。
// 首次加载时整体乘以线性淡入系数。
type CanvasRenderer struct {
	clock    Clock
	duration time.Duration
	epsilon  float64
	quantum  float64

	fadeStart components.Timestamp
	stats     RenderStats

	batches []batch
	index   map[batchKey]int
}

// NewCanvasRenderer 创建渲染器
func NewCanvasRenderer(cfg *config.FieldConfig, clock Clock) *CanvasRenderer {
	return &CanvasRenderer{
		clock:    clock,
		duration: cfg.FadeInDuration(),
		epsilon:  cfg.Render.OpacityEpsilon,
		quantum:  cfg.Render.SizeQuantum,
		index:    make(map[batchKey]int),
	}
}

// StartFadeIn 以当前时间作为淡入起点（每次首次加载调用一次）
func (r *CanvasRenderer) StartFadeIn() {
	r.fadeStart = components.At(r.clock.Now())
}

// FadeStart 返回淡入起点，淡入结束后为未设置
func (r *CanvasRenderer) FadeStart() components.Timestamp {
	return r.fadeStart
}

// LastStats 返回最近一帧的绘制统计
func (r *CanvasRenderer) LastStats() RenderStats {
	return r.stats
}

// fadeMultiplier 计算淡入系数；达到时长后固定为 1 并清除起点
func (r *CanvasRenderer) fadeMultiplier(now time.Duration) float64 {
	if !r.fadeStart.Set {
		return 1
	}
	elapsed := now - r.fadeStart.At
	if elapsed >= r.duration {
		r.fadeStart = components.Timestamp{}
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(r.duration)
}

// quantize 尺寸取整到最近的 quantum 倍数
func (r *CanvasRenderer) quantize(size float64) float64 {
	return math.Round(size/r.quantum) * r.quantum
}

// Draw 清空表面并绘制所有粒子
func (r *CanvasRenderer) Draw(surface Surface, width, height float64, particles []components.Particle) {
	if surface == nil {
		return
	}
	surface.ClearRect(0, 0, width, height)
	fade := r.fadeMultiplier(r.clock.Now())

	// 复用上一帧的分组切片
	for k := range r.index {
		delete(r.index, k)
	}
	r.batches = r.batches[:0]
	stats := RenderStats{}

	for i := range particles {
		p := &particles[i]
		if p.Opacity < r.epsilon {
			stats.Skipped++
			continue
		}
		key := batchKey{color: p.Color, size: r.quantize(p.Size)}
		n, ok := r.index[key]
		if !ok {
			n = len(r.batches)
			r.index[key] = n
			if n < cap(r.batches) {
				r.batches = r.batches[:n+1]
				r.batches[n].key = key
				r.batches[n].indices = r.batches[n].indices[:0]
			} else {
				r.batches = append(r.batches, batch{key: key})
			}
		}
		r.batches[n].indices = append(r.batches[n].indices, i)
	}

	for _, b := range r.batches {
		surface.SetFillStyle(b.key.color)
		for _, i := range b.indices {
			p := &particles[i]
			surface.SetGlobalAlpha(p.Opacity * fade)
			surface.FillCircle(p.X, p.Y, p.Size)
			stats.Drawn++
		}
	}
	surface.SetGlobalAlpha(1)

	stats.Batches = len(r.batches)
	r.stats = stats
}
