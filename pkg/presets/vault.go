package presets

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
)

// vaultRings 同心环数量
const vaultRings = 6

// Vault 金库场景：同心圆环，相邻环反向旋转
type Vault struct {
	base
}

type vaultData struct {
	travel
	ring   int
	radius float64
	theta  float64
}

// NewRefs 旋转角跨帧保存
func (v *Vault) NewRefs() *components.PresetRefs {
	refs := components.NewPresetRefs()
	refs.Set("angle", 0)
	return refs
}

// ringRadius 第 k 个环的半径（k 从 0 开始，由内向外）
func ringRadius(outer float64, k int) float64 {
	return outer * float64(k+1) / vaultRings
}

// CalculatePositions 按周长比例把粒子分配到各环，环上等距排布
func (v *Vault) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	outer := v.sceneRadius(rc)
	n := rc.DotCount

	// 周长与半径成正比，权重之和为 1+2+...+vaultRings
	totalWeight := float64(vaultRings*(vaultRings+1)) / 2
	positions := make([]components.Position, 0, n)
	for k := 0; k < vaultRings; k++ {
		count := int(math.Round(float64(n) * float64(k+1) / totalWeight))
		if k == vaultRings-1 || len(positions)+count > n {
			count = n - len(positions)
		}
		r := ringRadius(outer, k)
		offset := float64(k) * 0.5
		for j := 0; j < count; j++ {
			theta := (float64(j)+offset)/float64(count)*2*math.Pi
			positions = append(positions, components.Position{
				X: center.X + r*math.Cos(theta),
				Y: center.Y + r*math.Sin(theta),
			})
		}
	}
	return positions, nil
}

// InitializeMovement 记录粒子所属的环与极角
func (v *Vault) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	outer := v.sceneRadius(rc)
	for i := range particles {
		p := &particles[i]
		target := positionAt(positions, i)
		dx, dy := target.X-center.X, target.Y-center.Y
		radius := math.Hypot(dx, dy)
		ring := 0
		if outer > 0 {
			ring = int(math.Round(radius/outer*vaultRings)) - 1
		}
		if ring < 0 {
			ring = 0
		}
		v.appearance(p, i)
		p.PresetData = &vaultData{
			travel: newTravel(p),
			ring:   ring,
			radius: radius,
			theta:  math.Atan2(dy, dx),
		}
	}
	return nil
}

// Update 偶数环顺时针、奇数环逆时针，内环转得更快
func (v *Vault) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	angle := 0.0
	if refs != nil {
		angle = refs.Get("angle") + v.tuning.Speed.At(0)
		refs.Set("angle", angle)
	}
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*vaultData)
		if !ok {
			continue
		}
		dir := 1.0
		if data.ring%2 == 1 {
			dir = -1
		}
		rate := float64(vaultRings-data.ring) / vaultRings
		theta := data.theta + dir*angle*(0.5+rate)
		data.step(p, center.X+data.radius*math.Cos(theta), center.Y+data.radius*math.Sin(theta), v.tuning.Easing)
		settle(p, 1)
	}
	return nil
}
