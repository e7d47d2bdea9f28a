package systems

import (
	"log"
	"time"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/presets"
	"github.com/gonewx/dotfield/pkg/types"
)

// FieldProps 宿主页面提供的输入
type FieldProps struct {
	Preset      types.PresetID
	IsMobile    bool
	IsLandscape bool
}

// LifecycleDeps 宿主提供的依赖
type LifecycleDeps struct {
	Registry  *presets.Registry
	Scheduler FrameScheduler
	Clock     Clock
	// Resize 窗口尺寸通知，可为 nil
	Resize ResizeSubscriber
	// Observer 画布元素尺寸观察器，可为 nil
	Observer *ElementSizeObserver
	// Seed 粒子播种随机种子
	Seed int64
}

// FieldLifecycle 粒子场生命周期编排
//
// 一个实例对应一块挂载的画布，独占自己的粒子缓冲区与缓存。
// 所有方法都必须在同一个 goroutine（ebiten 的 Update）上调用。
type FieldLifecycle struct {
	buffer     *ParticleBuffer
	responsive *ResponsiveConfigSystem
	renderer   *CanvasRenderer
	gate       *VisibilityGate
	fsm        *TransitionController

	scheduler FrameScheduler
	clock     Clock
	resize    ResizeSubscriber
	observer  *ElementSizeObserver

	canvas        Canvas
	props         FieldProps
	rc            components.ResponsiveConfig
	hasConfig     bool
	width, height float64

	frame       FrameHandle
	running     bool
	unsubscribe func()
	frames      int
}

// NewFieldLifecycle 创建生命周期编排器
func NewFieldLifecycle(cfg *config.FieldConfig, deps LifecycleDeps, props FieldProps) *FieldLifecycle {
	buffer := NewParticleBuffer(deps.Registry, cfg, deps.Seed)
	res := ResolveMode(props.Preset, props.IsMobile)
	return &FieldLifecycle{
		buffer:     buffer,
		responsive: NewResponsiveConfigSystem(cfg, buffer),
		renderer:   NewCanvasRenderer(cfg, deps.Clock),
		gate:       NewVisibilityGate(cfg.Visibility.Threshold),
		fsm:        NewTransitionController(props.Preset, res.Mode, res.EffectiveMode),
		scheduler:  deps.Scheduler,
		clock:      deps.Clock,
		resize:     deps.Resize,
		observer:   deps.Observer,
		props:      props,
	}
}

// Mount 挂载到画布
//
// 顺序：重算响应式配置 → 计算初始布局 → 首次加载时吸附粒子并开始淡入 →
// 启动帧循环 → 订阅窗口尺寸变化。画布尚无尺寸时跳过前三步，留待下一次尺寸事件。
// 卸载后再次挂载只重新布局，不重复首次加载。
func (l *FieldLifecycle) Mount(canvas Canvas) {
	if canvas == nil || l.running {
		return
	}
	l.canvas = canvas

	ready := l.recomputeConfig()
	switch {
	case !ready:
		log.Printf("[Lifecycle] canvas has no geometry yet, deferring layout")
	case l.fsm.State().IsInitialLoad:
		l.initialLoad()
	default:
		// 重新挂载：沿用当前粒子外观，不再淡入
		l.refreshScene()
	}

	l.running = true
	l.frame = l.scheduler.RequestFrame(l.tick)

	if l.resize != nil {
		l.unsubscribe = l.resize.Subscribe(l.OnWindowResize)
	}
	if l.observer != nil {
		l.observer.Observe(l.OnElementResize)
		if ready {
			// 挂载时已按当前尺寸计算过，首次上报相同尺寸不应再重算
			l.observer.Seed(l.width, l.height)
		}
	}
	log.Printf("[Lifecycle] mounted: preset=%s mode=%s dots=%d", l.props.Preset, l.fsm.State().EffectiveMode, l.buffer.Len())
}

// Unmount 取消待执行的帧并断开所有观察者
func (l *FieldLifecycle) Unmount() {
	if !l.running {
		return
	}
	l.running = false
	l.scheduler.CancelFrame(l.frame)
	l.frame = 0
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
	if l.observer != nil {
		l.observer.Disconnect()
	}
	l.canvas = nil
	log.Printf("[Lifecycle] unmounted after %d frames", l.frames)
}

// SetProps 更新宿主输入
//
// 预设、模式或设备类别相对上次观察值变化时：
// 没有响应式配置就先计算一次；有效模式或设备类别变化时重算配置（清空缓存）；
// 然后重新计算当前预设的布局与运动初始化，最后记录过渡起点。
func (l *FieldLifecycle) SetProps(props FieldProps) {
	prev := l.props
	l.props = props

	res := ResolveMode(props.Preset, props.IsMobile)
	presetChanged := l.fsm.SetPreset(props.Preset)
	modes := l.fsm.SetModes(res.Mode, res.EffectiveMode)
	deviceChanged := prev.IsMobile != props.IsMobile || prev.IsLandscape != props.IsLandscape
	if !presetChanged && !modes.Any() && !deviceChanged {
		return
	}
	if l.canvas == nil {
		return
	}

	if !l.hasConfig || modes.EffectiveChanged || deviceChanged {
		if !l.recomputeConfig() {
			return
		}
	}

	if l.fsm.State().IsInitialLoad {
		l.initialLoad()
	} else {
		l.refreshScene()
	}
	l.fsm.MarkTransitionStart(components.At(l.clock.Now()))
}

// OnWindowResize 窗口尺寸变化
func (l *FieldLifecycle) OnWindowResize() {
	l.handleResize()
}

// OnElementResize 画布元素自身尺寸变化（布局引起，窗口不一定变化）
func (l *FieldLifecycle) OnElementResize(width, height float64) {
	l.handleResize()
}

// OnIntersection 宿主上报可见比例
func (l *FieldLifecycle) OnIntersection(ratio float64) {
	l.gate.OnIntersection(ratio)
}

func (l *FieldLifecycle) handleResize() {
	if l.canvas == nil {
		return
	}
	if !l.recomputeConfig() {
		return
	}
	if l.fsm.State().IsInitialLoad {
		l.initialLoad()
		return
	}
	l.refreshScene()
}

// recomputeConfig 读取容器尺寸并重算响应式配置；几何不可用时返回 false
func (l *FieldLifecycle) recomputeConfig() bool {
	rect, ok := l.canvas.ContainerRect()
	if !ok || rect.Empty() {
		return false
	}
	l.canvas.Resize(int(rect.W), int(rect.H))
	l.width, l.height = rect.W, rect.H

	state := l.fsm.State()
	l.rc = l.responsive.Recompute(rect, l.props.IsMobile, l.props.IsLandscape, state.EffectiveMode)
	l.hasConfig = true
	return true
}

// refreshScene 为当前预设重新计算布局与运动初始化
func (l *FieldLifecycle) refreshScene() {
	state := l.fsm.State()
	if _, ok := l.buffer.ComputeInitialLayout(state.Preset, l.width, l.height, l.rc, state.EffectiveMode); !ok {
		return
	}
	l.buffer.InitializeMotion(state.Preset, l.width, l.height, l.rc, state.EffectiveMode)
}

// initialLoad 首次加载：吸附到布局、透明度归零、开始淡入、初始化运动并锁存
func (l *FieldLifecycle) initialLoad() {
	state := l.fsm.State()
	positions, ok := l.buffer.ComputeInitialLayout(state.Preset, l.width, l.height, l.rc, state.EffectiveMode)
	if ok {
		l.buffer.SnapToLayout(positions)
	}
	l.fsm.MarkFadeInStart(components.At(l.clock.Now()))
	l.renderer.StartFadeIn()
	l.buffer.InitializeMotion(state.Preset, l.width, l.height, l.rc, state.EffectiveMode)
	l.fsm.CompleteInitialLoad()
}

// tick 帧回调：先续约，再在可见时推进并绘制
func (l *FieldLifecycle) tick(now time.Duration) {
	if !l.running {
		return
	}
	l.frame = l.scheduler.RequestFrame(l.tick)

	if !l.gate.Visible() || !l.hasConfig {
		return
	}
	state := l.fsm.State()
	l.buffer.Advance(state.Preset, l.width, l.height, l.rc, state.EffectiveMode)
	l.renderer.Draw(l.canvas.Surface(), l.width, l.height, l.buffer.Particles())
	l.frames++
}

// Buffer 返回粒子缓冲区
func (l *FieldLifecycle) Buffer() *ParticleBuffer {
	return l.buffer
}

// Renderer 返回渲染器
func (l *FieldLifecycle) Renderer() *CanvasRenderer {
	return l.renderer
}

// Gate 返回可见性门控
func (l *FieldLifecycle) Gate() *VisibilityGate {
	return l.gate
}

// Controller 返回过渡状态机
func (l *FieldLifecycle) Controller() *TransitionController {
	return l.fsm
}

// Responsive 返回响应式配置管理器（调试叠加层读取 DebugRect）
func (l *FieldLifecycle) Responsive() *ResponsiveConfigSystem {
	return l.responsive
}

// Config 返回当前响应式配置
func (l *FieldLifecycle) Config() (components.ResponsiveConfig, bool) {
	return l.rc, l.hasConfig
}

// Frames 返回已绘制的帧数
func (l *FieldLifecycle) Frames() int {
	return l.frames
}

// Mounted 是否已挂载
func (l *FieldLifecycle) Mounted() bool {
	return l.running
}
