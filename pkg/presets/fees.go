package presets

import (
	"math"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/utils"
)

// feesColumns 柱状图的柱数
const feesColumns = 9

// Fees 费用场景：粒子堆叠成逐级降低的柱状图，柱顶随脉冲轻微起伏
type Fees struct {
	base
}

type feesData struct {
	travel
	homeX, homeY float64
	column       int
	phase        float64
}

// columnHeight 第 j 根柱子相对方框边长的高度，从左到右递减
func columnHeight(j int) float64 {
	return 0.95 - 0.7*float64(j)/float64(feesColumns-1)
}

// CalculatePositions 按柱高比例分配粒子，每根柱子内部按网格自下而上堆叠
func (f *Fees) CalculatePositions(width, height float64, center components.Position, rc components.ResponsiveConfig) ([]components.Position, error) {
	if err := checkGeometry(width, height, rc); err != nil {
		return nil, err
	}
	side := f.sceneRadius(rc)
	left := center.X - side/2
	bottom := center.Y + side/2
	colWidth := side / feesColumns

	var total float64
	for j := 0; j < feesColumns; j++ {
		total += columnHeight(j)
	}

	n := rc.DotCount
	positions := make([]components.Position, 0, n)
	for j := 0; j < feesColumns && len(positions) < n; j++ {
		count := int(math.Round(float64(n) * columnHeight(j) / total))
		if j == feesColumns-1 {
			count = n - len(positions)
		}
		colHeight := side * columnHeight(j)
		perRow := 4
		rows := int(math.Ceil(float64(count) / float64(perRow)))
		if rows == 0 {
			continue
		}
		rowGap := colHeight / float64(rows)
		for k := 0; k < count && len(positions) < n; k++ {
			row := k / perRow
			col := k % perRow
			positions = append(positions, components.Position{
				X: left + colWidth*float64(j) + colWidth*(0.2+0.6*float64(col)/float64(perRow-1)),
				Y: bottom - rowGap*(float64(row)+0.5),
			})
		}
	}
	return positions, nil
}

// InitializeMovement 记录每个粒子的落点与所在柱
func (f *Fees) InitializeMovement(particles []components.Particle, positions []components.Position, width, height float64, center components.Position, rc components.ResponsiveConfig) error {
	if len(positions) == 0 {
		return errNoPositions
	}
	side := f.sceneRadius(rc)
	left := center.X - side/2
	colWidth := side / feesColumns
	for i := range particles {
		p := &particles[i]
		target := positionAt(positions, i)
		f.appearance(p, i)
		column := 0
		if colWidth > 0 {
			column = int(utils.Clamp(math.Floor((target.X-left)/colWidth), 0, feesColumns-1))
		}
		p.PresetData = &feesData{
			travel: newTravel(p),
			homeX:  target.X,
			homeY:  target.Y,
			column: column,
			phase:  float64(column) / feesColumns,
		}
	}
	return nil
}

// Update 粒子以弹簧方式落到柱中，之后整根柱子随脉冲上下呼吸
func (f *Fees) Update(particles []components.Particle, width, height float64, center components.Position, rc components.ResponsiveConfig, refs *components.PresetRefs) error {
	side := f.sceneRadius(rc)
	bottom := center.Y + side/2
	rate := f.tuning.Speed.At(0)
	if rate <= 0 {
		rate = 0.08
	}
	for i := range particles {
		p := &particles[i]
		data, ok := p.PresetData.(*feesData)
		if !ok {
			continue
		}
		data.phase += 0.003
		pulse := f.pulseAt(data.phase)
		// 柱内高度按脉冲缩放，柱底保持不动
		ty := bottom - (bottom-data.homeY)*pulse
		if data.progress < 1 {
			data.step(p, data.homeX, ty, f.tuning.Easing)
		} else {
			p.X = utils.Approach(p.X, data.homeX, rate)
			p.Y = utils.Approach(p.Y, ty, rate)
		}
		settle(p, pulse)
	}
	return nil
}
