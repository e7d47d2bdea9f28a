package presets

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/utils"
)

// linksGrid 网格每边的节点数
const linksGrid = 7

// Links 连接场景：抖动的节点网格，粒子沿相邻节点之间的连线往返
type Links struct {
	base
}

type linksData struct {
	travel
	ax, ay  float64 // 所在连线的起点
	bx, by  float64 // 所在连线的终点
	t       float64 // 连线上的位置 [0,1]
	speed   float64
	forward bool
}

// NewRefs 全局脉冲相位跨帧保存
func (l *Links) NewRefs() *components.PresetRefs {
	refs := components.NewPresetRefs()
	refs.Set("phase", 0)
	return refs
}

// nodes 生成带抖动的网格节点；抖动由节点下标决定，同样的几何得到同样的节点
func (l *Links) nodes(center components.Position, rc components.ResponsiveConfig) []components.Position {
	side := l.sceneRadius(rc)
	step := side / (linksGrid - 1)
	left := center.X - side/2
	top := center.Y - side/2
	nodes := make([]components.Position, 0, linksGrid*linksGrid)
	for row := 0; row < linksGrid; row++ {
		for col := 0; col < linksGrid; col++ {
			k := float64(row*linksGrid + col)
			jx := math.Sin(k*12.9898) * 0.3 * step
			jy := math.Cos(k*78.233) * 0.3 * step
			nodes = append(nodes, components.Position{
				X: left + float64(col)*step + jx,
				Y: top + float64(row)*step + jy,
			})
		}
	}
	return nodes
}

// edge 第 i 条连线的两个端点；横向与纵向连线交替编号
func edge(nodes []components.Position, i int) (components.Position, components.Position) {
	perAxis := linksGrid * (linksGrid - 1)
	k := i % (2 * perAxis)
	if k < perAxis {
		row, col := k/(linksGrid-1), k%(linksGrid-1)
		a := row*linksGrid + col
		return nodes[a], nodes[a+1]
	}
	k -= perAxis
	row, col := k/linksGrid, k%linksGrid
	a := row*linksGrid + col
	return nodes[a], nodes[a+linksGrid]
}

// CalculatePositions 粒子均匀分散在各条连线上
func (l *Links) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	nodes := l.nodes(center, rc)
	edges := 2 * linksGrid * (linksGrid - 1)
	n := rc.DotCount
	positions := make([]components.Position, n)
	for i := 0; i < n; i++ {
		a, b := edge(nodes, i)
		// 同一条连线上的粒子按出现次序错开
		t := math.Mod(float64(i/edges)*0.618+0.1, 1)
		positions[i] = components.Position{
			X: utils.Lerp(a.X, b.X, t),
			Y: utils.Lerp(a.Y, b.Y, t),
		}
	}
	return positions, nil
}

// InitializeMovement 为粒子分配所在连线与移动速度
func (l *Links) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	nodes := l.nodes(center, rc)
	edges := 2 * linksGrid * (linksGrid - 1)
	for i := range particles {
		p := &particles[i]
		a, b := edge(nodes, i)
		l.appearance(p, i)
		p.PresetData = &linksData{
			travel:  newTravel(p),
			ax:      a.X,
			ay:      a.Y,
			bx:      b.X,
			by:      b.Y,
			t:       math.Mod(float64(i/edges)*0.618+0.1, 1),
			speed:   l.tuning.Speed.Sample(l.rng),
			forward: l.rng.Intn(2) == 0,
		}
	}
	return nil
}

// Update 粒子在连线两端之间往返，靠近节点时变亮
func (l *Links) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	phase := 0.0
	if refs != nil {
		phase = refs.Get("phase") + 0.01
		refs.Set("phase", phase)
	}
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*linksData)
		if !ok {
			continue
		}
		if data.progress >= 1 {
			if data.forward {
				data.t += data.speed
			} else {
				data.t -= data.speed
			}
			if data.t >= 1 {
				data.t, data.forward = 1, false
			} else if data.t <= 0 {
				data.t, data.forward = 0, true
			}
		}
		data.step(p, utils.Lerp(data.ax, data.bx, data.t), utils.Lerp(data.ay, data.by, data.t), l.tuning.Easing)

		// 到最近节点的归一化距离，越近越亮
		near := math.Abs(data.t-0.5) * 2
		glow := 0.6 + 0.4*near*(0.75+0.25*math.Sin(phase+float64(i)*0.1))
		settle(p, glow)
	}
	return nil
}
