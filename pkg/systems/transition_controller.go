package systems

import (
	"fmt"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/types"
)

// ActionKind 过渡状态机动作类型
type ActionKind int

const (
	ActionSetPreset ActionKind = iota
	ActionSetModes
	ActionMarkFadeInStart
	ActionMarkTransitionStart
	ActionCompleteInitialLoad
)

// String 返回动作名称
func (k ActionKind) String() string {
	switch k {
	case ActionSetPreset:
		return "SET_PRESET"
	case ActionSetModes:
		return "SET_MODES"
	case ActionMarkFadeInStart:
		return "MARK_FADE_IN_START"
	case ActionMarkTransitionStart:
		return "MARK_TRANSITION_START"
	case ActionCompleteInitialLoad:
		return "COMPLETE_INITIAL_LOAD"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action 可回放的状态机动作，只有与 Kind 对应的字段有意义
type Action struct {
	Kind      ActionKind
	Preset    types.PresetID
	Display   types.DisplayMode
	Effective types.DisplayMode
	At        components.Timestamp
}

// ModeChange SetModes 的结果：两个模式分别是否发生变化
//
// 有效模式变化会使响应式配置与缓存失效；仅名义模式变化则不会。
type ModeChange struct {
	DisplayChanged   bool
	EffectiveChanged bool
}

// Any 任一模式发生变化
func (c ModeChange) Any() bool {
	return c.DisplayChanged || c.EffectiveChanged
}

// TransitionController 过渡状态机
//
// 所有动作在值未变化时都是空操作，避免触发多余的下游重算。
type TransitionController struct {
	state components.TransitionState
}

// NewTransitionController 以初始属性创建状态机，IsInitialLoad 为 true
func NewTransitionController(preset types.PresetID, display, effective types.DisplayMode) *TransitionController {
	return &TransitionController{
		state: components.TransitionState{
			Preset:        preset,
			DisplayMode:   display,
			EffectiveMode: effective,
			IsInitialLoad: true,
		},
	}
}

// State 返回状态副本
func (c *TransitionController) State() components.TransitionState {
	return c.state
}

// SetPreset 更新当前预设，返回是否变化
func (c *TransitionController) SetPreset(id types.PresetID) bool {
	if c.state.Preset == id {
		return false
	}
	c.state.Preset = id
	return true
}

// SetModes 同时更新名义模式与有效模式
func (c *TransitionController) SetModes(display, effective types.DisplayMode) ModeChange {
	change := ModeChange{
		DisplayChanged:   c.state.DisplayMode != display,
		EffectiveChanged: c.state.EffectiveMode != effective,
	}
	if change.Any() {
		c.state.DisplayMode = display
		c.state.EffectiveMode = effective
	}
	return change
}

// MarkFadeInStart 记录淡入起点
func (c *TransitionController) MarkFadeInStart(ts components.Timestamp) bool {
	if c.state.FadeInStart == ts {
		return false
	}
	c.state.FadeInStart = ts
	return true
}

// MarkTransitionStart 记录过渡起点
func (c *TransitionController) MarkTransitionStart(ts components.Timestamp) bool {
	if c.state.TransitionStart == ts {
		return false
	}
	c.state.TransitionStart = ts
	return true
}

// CompleteInitialLoad 首次加载完成（单向锁存），返回本次调用是否改变了状态
func (c *TransitionController) CompleteInitialLoad() bool {
	if !c.state.IsInitialLoad {
		return false
	}
	c.state.IsInitialLoad = false
	return true
}

// Dispatch 执行一个动作，返回状态是否变化
func (c *TransitionController) Dispatch(a Action) bool {
	switch a.Kind {
	case ActionSetPreset:
		return c.SetPreset(a.Preset)
	case ActionSetModes:
		return c.SetModes(a.Display, a.Effective).Any()
	case ActionMarkFadeInStart:
		return c.MarkFadeInStart(a.At)
	case ActionMarkTransitionStart:
		return c.MarkTransitionStart(a.At)
	case ActionCompleteInitialLoad:
		return c.CompleteInitialLoad()
	default:
		return false
	}
}
