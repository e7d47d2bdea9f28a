package presets

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/utils"
)

const (
	mevNoiseScale = 0.006
	mevTimeStep   = 0.01
	// mevTether 漂移离家超过该比例的场景半径后开始回拉
	mevTether = 0.35
)

// MEV 场景：粒子云在 Perlin 噪声场中漂移，被松散地拴在各自的落点附近
type MEV struct {
	base
	noise *perlin.Perlin
	// layoutSeed 布局随机源的种子，同一几何总是得到同一团云
	layoutSeed int64
}

type mevData struct {
	travel
	homeX, homeY float64
	vx, vy       float64
	speed        float64
	t            float64
}

// NewMEV 创建 MEV 策略，噪声种子取自策略随机源
func NewMEV(b base) *MEV {
	return &MEV{
		base:       b,
		noise:      perlin.NewPerlin(2, 2, 3, b.rng.Int63()),
		layoutSeed: b.rng.Int63(),
	}
}

// CalculatePositions 粒子按近似高斯分布聚成一团云
func (m *MEV) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	radius := m.sceneRadius(rc) / 2
	n := rc.DotCount
	rng := rand.New(rand.NewSource(m.layoutSeed))
	positions := make([]components.Position, n)
	for i := 0; i < n; i++ {
		// 半径取两次均匀采样的平均值，中心更密
		r := radius * (rng.Float64() + rng.Float64()) / 2
		theta := rng.Float64() * 2 * math.Pi
		positions[i] = components.Position{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
	}
	return positions, nil
}

// InitializeMovement 记录落点并抽取漂移速度
func (m *MEV) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	for i := range particles {
		p := &particles[i]
		target := positionAt(positions, i)
		m.appearance(p, i)
		p.PresetData = &mevData{
			travel: newTravel(p),
			homeX:  target.X,
			homeY:  target.Y,
			speed:  m.tuning.Speed.Sample(m.rng),
			t:      m.rng.Float64() * 100,
		}
	}
	return nil
}

// Update 粒子先飞到落点，然后沿噪声场方向漂移
func (m *MEV) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	tether := m.sceneRadius(rc) / 2 * mevTether
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*mevData)
		if !ok {
			continue
		}
		if data.progress < 1 {
			data.step(p, data.homeX, data.homeY, m.tuning.Easing)
			settle(p, 1)
			continue
		}

		data.t += mevTimeStep
		angle := m.noise.Noise3D(p.X*mevNoiseScale, p.Y*mevNoiseScale, data.t) * 2 * math.Pi
		data.vx = utils.Lerp(data.vx, math.Cos(angle)*data.speed, 0.1)
		data.vy = utils.Lerp(data.vy, math.Sin(angle)*data.speed, 0.1)

		// 离家太远时回拉
		dx, dy := data.homeX-p.X, data.homeY-p.Y
		if dist := math.Hypot(dx, dy); tether > 0 && dist > tether {
			pull := (dist - tether) / tether * 0.05
			data.vx += dx / dist * pull
			data.vy += dy / dist * pull
		}

		p.X += data.vx
		p.Y += data.vy
		settle(p, 1)
	}
	return nil
}
