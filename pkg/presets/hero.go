package presets

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
)

// Hero 首屏：黄金角向日葵圆盘，整体缓慢环绕中心旋转
type Hero struct {
	base
}

type heroData struct {
	travel
	radius float64 // 到中心的距离
	theta  float64 // 初始极角
	phase  float64 // 脉冲相位偏移
}

// NewRefs 环绕角度跨帧保存
func (h *Hero) NewRefs() *components.PresetRefs {
	refs := components.NewPresetRefs()
	refs.Set("angle", 0)
	return refs
}

// CalculatePositions 黄金角螺旋铺满半径为 R 的圆盘
func (h *Hero) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	n := rc.DotCount
	radius := h.sceneRadius(rc)
	positions := make([]components.Position, n)
	for i := 0; i < n; i++ {
		r := radius * math.Sqrt((float64(i)+0.5)/float64(n))
		theta := float64(i) * goldenAngle
		positions[i] = components.Position{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
	}
	return positions, nil
}

// InitializeMovement 记录每个粒子相对中心的极坐标
func (h *Hero) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	for i := range particles {
		p := &particles[i]
		target := positionAt(positions, i)
		dx, dy := target.X-center.X, target.Y-center.Y
		h.appearance(p, i)
		p.PresetData = &heroData{
			travel: newTravel(p),
			radius: math.Hypot(dx, dy),
			theta:  math.Atan2(dy, dx),
			phase:  h.rng.Float64(),
		}
	}
	return nil
}

// Update 旋转整个圆盘，外圈粒子略慢，形成轻微的涡旋感
func (h *Hero) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	angle := 0.0
	if refs != nil {
		angle = refs.Get("angle") + h.tuning.Speed.At(0)
		refs.Set("angle", angle)
	}
	outer := h.sceneRadius(rc)
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*heroData)
		if !ok {
			continue
		}
		swirl := 1.0
		if outer > 0 {
			swirl = 1 - 0.35*(data.radius/outer)
		}
		theta := data.theta + angle*swirl
		data.step(p, center.X+data.radius*math.Cos(theta), center.Y+data.radius*math.Sin(theta), h.tuning.Easing)
		data.phase += 0.004
		settle(p, h.pulseAt(data.phase))
	}
	return nil
}
