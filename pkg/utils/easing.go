package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 运动策略用它们让粒子"飞向目标"时看起来更自然。
//
// 参考：https://easings.net/

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（推荐用于"飞向目标"动画）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp 将 v 限制在 [lo, hi] 范围内
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 范围内
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Approach 以固定比例向目标逼近（每帧调用）
// rate ∈ (0, 1]，rate=1 时直接到达目标
// 距离小于 0.001 时吸附到目标，避免无限逼近
func Approach(current, target, rate float64) float64 {
	next := current + (target-current)*Clamp01(rate)
	if math.Abs(target-next) < 0.001 {
		return target
	}
	return next
}

// Wrap 将 v 折回 [lo, hi) 区间（用于横向循环的粒子）
func Wrap(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	v = math.Mod(v-lo, span)
	if v < 0 {
		v += span
	}
	return v + lo
}
