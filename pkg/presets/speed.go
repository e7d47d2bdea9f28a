package presets

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/utils"
)

// speedLanes 横向流线的条数
const speedLanes = 14

// Speed 速度场景：粒子沿水平流线从左向右穿行并循环
type Speed struct {
	base
}

type speedData struct {
	travel
	baseX    float64
	laneY    float64
	offset   float64
	velocity float64
}

// bounds 场景方框的左右边界（方框边长为 spread × 容器边长）
func (s *Speed) bounds(center components.Position, rc components.ResponsiveConfig) (float64, float64) {
	half := s.sceneRadius(rc) / 2
	return center.X - half, center.X + half
}

// CalculatePositions 粒子均匀分布在 speedLanes 条水平线上
func (s *Speed) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	left, right := s.bounds(center, rc)
	span := right - left
	laneGap := span / float64(speedLanes)
	top := center.Y - span/2 + laneGap/2

	n := rc.DotCount
	perLane := int(math.Ceil(float64(n) / speedLanes))
	positions := make([]components.Position, n)
	for i := 0; i < n; i++ {
		lane := i % speedLanes
		slot := i / speedLanes
		// 相邻流线错开半个间距，避免形成竖直条纹
		shift := 0.5 * float64(lane%2)
		positions[i] = components.Position{
			X: left + span*(float64(slot)+shift)/float64(perLane),
			Y: top + laneGap*float64(lane),
		}
	}
	return positions, nil
}

// InitializeMovement 每个粒子抽取一个横向速度，速度越快粒子越小越亮
func (s *Speed) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	lo, hi := s.tuning.Speed.Min, s.tuning.Speed.Max
	for i := range particles {
		p := &particles[i]
		target := positionAt(positions, i)
		s.appearance(p, i)
		v := s.tuning.Speed.Sample(s.rng)
		if hi > lo {
			ratio := (v - lo) / (hi - lo)
			p.TargetSize *= 1.2 - 0.5*ratio
			p.TargetOpacity = utils.Clamp01(p.TargetOpacity * (0.7 + 0.3*ratio))
		}
		p.PresetData = &speedData{
			travel:   newTravel(p),
			baseX:    target.X,
			laneY:    target.Y,
			velocity: v,
		}
	}
	return nil
}

// Update 粒子到达流线后开始横向流动，越过右边界后从左边界重新进入
func (s *Speed) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	left, right := s.bounds(center, rc)
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*speedData)
		if !ok {
			continue
		}
		if data.progress >= 1 {
			data.offset += data.velocity
		}
		x := utils.Wrap(data.baseX+data.offset, left, right)
		data.step(p, x, data.laneY, s.tuning.Easing)

		// 靠近左右边缘时淡出，掩盖折回
		edge := math.Min(x-left, right-x) / ((right - left) * 0.12)
		settle(p, utils.Clamp01(edge))
	}
	return nil
}
