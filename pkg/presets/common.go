package presets

import (
	"errors"
	"math"
	"math/rand"

	"github.com/gonewx/dotfield/internal/particle"
	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/utils"
)

const (
	// travelFrames 切换预设时粒子飞向新布局所用的帧数
	travelFrames = 72.0
	// appearanceRate 尺寸/透明度向目标逼近的比例（每帧）
	appearanceRate = 0.06
	goldenAngle    = math.Pi * (3 - 2.2360679774997896964) // π(3-√5)
)

var (
	errEmptyGeometry = errors.New("empty geometry")
	errNoPositions   = errors.New("no initial positions")
)

// base 所有策略共享的调参与随机源
type base struct {
	tuning *particle.Tuning
	rng    *rand.Rand
}

// checkGeometry 画布或配置尚不可用时拒绝计算
func checkGeometry(width, height float64, rc components.ResponsiveConfig) error {
	if width <= 0 || height <= 0 || rc.DotCount <= 0 || rc.ContainerSize <= 0 {
		return errEmptyGeometry
	}
	return nil
}

// sceneRadius 场景尺度：容器边长乘以调参中的 spread
func (b base) sceneRadius(rc components.ResponsiveConfig) float64 {
	spread := b.tuning.Spread.At(0)
	if spread <= 0 {
		spread = 0.5
	}
	return rc.ContainerSize * spread
}

// appearance 为粒子抽取颜色与目标外观
func (b base) appearance(p *components.Particle, index int) {
	palette := b.tuning.Palette
	p.Color = palette[index%len(palette)]
	p.TargetSize = b.tuning.Size.Sample(b.rng)
	if p.TargetSize <= 0 {
		p.TargetSize = 1
	}
	p.TargetOpacity = utils.Clamp01(b.tuning.Opacity.Sample(b.rng))
}

// settle 尺寸与透明度向目标逼近，pulse 为透明度乘数
func settle(p *components.Particle, pulse float64) {
	p.Size = utils.Approach(p.Size, p.TargetSize, appearanceRate)
	p.Opacity = utils.Approach(p.Opacity, utils.Clamp01(p.TargetOpacity*pulse), appearanceRate)
}

// pulseAt 在脉冲曲线上取值，未配置曲线时返回 1
func (b base) pulseAt(phase float64) float64 {
	if !b.tuning.Pulse.IsCurve() {
		return 1
	}
	return b.tuning.Pulse.At(phase - math.Floor(phase))
}

// travel 粒子从切换时的位置沿缓动曲线飞向目标
type travel struct {
	fromX, fromY float64
	progress     float64
}

func newTravel(p *components.Particle) travel {
	return travel{fromX: p.X, fromY: p.Y}
}

// step 推进一帧并写入粒子坐标；到达后直接跟随目标
func (t *travel) step(p *components.Particle, tx, ty float64, easing string) {
	if t.progress >= 1 {
		p.X, p.Y = tx, ty
		return
	}
	t.progress = math.Min(1, t.progress+1/travelFrames)
	k := particle.Interpolate(t.progress, easing)
	p.X = utils.Lerp(t.fromX, tx, k)
	p.Y = utils.Lerp(t.fromY, ty, k)
}

func positionAt(positions []components.Position, i int) components.Position {
	return positions[i%len(positions)]
}
