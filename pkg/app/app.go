// Package app 提供查看器应用的核心包装器
//
// 该包把粒子场引擎挂到 ebiten 游戏循环上，桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/dotfield/pkg/components"
	"github.com/gonewx/dotfield/pkg/config"
	"github.com/gonewx/dotfield/pkg/embedded"
	"github.com/gonewx/dotfield/pkg/game"
	"github.com/gonewx/dotfield/pkg/presets"
	"github.com/gonewx/dotfield/pkg/systems"
	"github.com/gonewx/dotfield/pkg/types"
	"github.com/gonewx/dotfield/pkg/utils"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Preset 初始预设，为空则使用上次查看的预设
	Preset types.PresetID
	// Mobile 以模拟移动端启动
	Mobile bool
	// ConfigPath 磁盘上的粒子场配置，为空则使用嵌入的 data/field.yaml
	ConfigPath string
	// Seed 粒子随机种子，0 表示使用当前时间
	Seed int64
}

var (
	pageColor    = color.RGBA{R: 14, G: 17, B: 26, A: 255}
	panelColor   = color.RGBA{R: 28, G: 33, B: 48, A: 255}
	debugColor   = color.RGBA{R: 255, G: 80, B: 120, A: 255}
	sectionColor = color.RGBA{R: 60, G: 68, B: 90, A: 255}
)

// App 查看器应用，实现 ebiten.Game 接口
type App struct {
	verbose bool

	fieldConfig *config.FieldConfig
	settings    *game.ViewerSettingsManager

	queue    *systems.FrameQueue
	clock    *systems.MonotonicClock
	resize   *systems.WindowResizeNotifier
	observer *systems.ElementSizeObserver
	life     *systems.FieldLifecycle

	page    *page
	canvas  *viewerCanvas
	pointer *utils.PointerTracker

	preset types.PresetID
	debug  bool
}

// NewApp 创建并初始化查看器应用
//
// 未指定 ConfigPath 时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	fieldConfig, err := loadFieldConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	settings := game.NewViewerSettingsManager(openStorage())
	prefs := settings.Settings()

	preset := cfg.Preset
	if preset == "" {
		preset = prefs.LastPreset
	}
	if !preset.IsKnown() {
		return nil, fmt.Errorf("unknown preset %q", preset)
	}
	if cfg.Mobile || utils.IsMobile() {
		prefs.SimulateMobile = true
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	a := &App{
		verbose:     cfg.Verbose,
		fieldConfig: fieldConfig,
		settings:    settings,
		queue:       systems.NewFrameQueue(),
		clock:       systems.NewMonotonicClock(),
		resize:      systems.NewWindowResizeNotifier(),
		observer:    &systems.ElementSizeObserver{},
		page: &page{
			sidePanel: prefs.SidePanel,
			mobile:    prefs.SimulateMobile,
		},
		pointer: utils.NewPointerTracker(),
		preset:  preset,
		debug:   prefs.DebugOverlay,
	}
	a.canvas = newViewerCanvas(a.page, fieldConfig.Render.Background)
	a.life = systems.NewFieldLifecycle(fieldConfig, systems.LifecycleDeps{
		Registry:  presets.DefaultRegistry(fieldConfig, seed),
		Scheduler: a.queue,
		Clock:     a.clock,
		Resize:    a.resize,
		Observer:  a.observer,
		Seed:      seed,
	}, a.props())

	if prefs.Fullscreen {
		ebiten.SetFullscreen(true)
	}

	log.Printf("[App] viewer ready: preset=%s mobile=%v seed=%d", preset, a.page.mobile, seed)
	return a, nil
}

// loadFieldConfig 优先读取磁盘配置，否则使用嵌入配置
func loadFieldConfig(path string) (*config.FieldConfig, error) {
	if path != "" {
		cfg, err := config.LoadFieldConfig(path)
		if err != nil {
			return nil, fmt.Errorf("粒子场配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载粒子场配置: %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(config.DefaultFieldConfigPath)
	if err != nil {
		return nil, fmt.Errorf("读取嵌入配置失败: %w", err)
	}
	cfg, err := config.ParseFieldConfig(data)
	if err != nil {
		return nil, fmt.Errorf("粒子场配置加载失败: %w", err)
	}
	log.Printf("[Config] 使用嵌入配置: %s", config.DefaultFieldConfigPath)
	return cfg, nil
}

// openStorage 打开偏好存储；失败时返回 nil（降级为仅内存）
func openStorage() *gdata.Manager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: storage dir unavailable: %v", err)
		return nil
	}
	manager, err := gdata.Open(gdata.Config{AppName: "dotfield"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (preferences will not persist)", err)
		return nil
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] preferences stored under %s", path)
	}
	return manager
}

func (a *App) props() systems.FieldProps {
	return systems.FieldProps{
		Preset:      a.preset,
		IsMobile:    a.page.mobile,
		IsLandscape: a.page.landscape,
	}
}

// Update 每个 tick 调用一次：处理输入、上报宿主事件、驱动帧队列
func (a *App) Update() error {
	if a.page.screenW == 0 || a.page.screenH == 0 {
		return nil
	}
	if !a.life.Mounted() {
		a.life.Mount(a.canvas)
	}

	if err := a.handleInput(); err != nil {
		return err
	}

	a.resize.Report(a.page.screenW, a.page.screenH)
	rect := a.page.canvasRect()
	a.observer.Report(rect.W, rect.H)

	ratio := a.page.visibleRatio()
	if ebiten.IsWindowMinimized() || !ebiten.IsFocused() {
		ratio = 0
	}
	a.life.OnIntersection(ratio)

	a.queue.Tick(a.clock.Now())
	return nil
}

// handleInput 处理键盘与滚轮；Esc 退出
func (a *App) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.life.Unmount()
		a.saveSettings()
		return ebiten.Termination
	}

	presetKeys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6}
	all := types.AllPresets()
	for i, key := range presetKeys {
		if i < len(all) && inpututil.IsKeyJustPressed(key) {
			a.selectPreset(all[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		a.cyclePreset(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		a.cyclePreset(-1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.page.mobile = !a.page.mobile
		a.settings.Settings().SimulateMobile = a.page.mobile
		a.life.SetProps(a.props())
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.page.landscape = !a.page.landscape
		a.life.SetProps(a.props())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		// 只改变画布元素尺寸，由元素尺寸观察器触发重算
		a.page.sidePanel = !a.page.sidePanel
		a.settings.Settings().SidePanel = a.page.sidePanel
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		a.debug = !a.debug
		a.settings.Settings().DebugOverlay = a.debug
		a.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settings.Settings().Fullscreen = fullscreen
		a.saveSettings()
	}

	// 拖拽滚动页面，点击画布切换到下一个预设
	a.pointer.Update()
	if _, dy := a.pointer.FrameDelta(); dy != 0 && a.pointer.IsDragging() {
		a.page.scrollBy(-float64(dy))
	}
	if tapped, x, y := a.pointer.Tapped(); tapped {
		rect := a.page.canvasRect()
		py := float64(y) + a.page.scroll
		if float64(x) >= rect.X && float64(x) < rect.X+rect.W && py >= rect.Y && py < rect.Y+rect.H {
			a.cyclePreset(1)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		a.page.scrollBy(-dy * config.ScrollStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		a.page.scrollBy(config.ScrollStep / 4)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		a.page.scrollBy(-config.ScrollStep / 4)
	}
	return nil
}

func (a *App) selectPreset(id types.PresetID) {
	if id == a.preset {
		return
	}
	a.preset = id
	a.life.SetProps(a.props())
	a.settings.Settings().LastPreset = id
	a.saveSettings()
	log.Printf("[App] preset -> %s", id)
}

func (a *App) cyclePreset(step int) {
	all := types.AllPresets()
	idx := 0
	for i, id := range all {
		if id == a.preset {
			idx = i
			break
		}
	}
	idx = (idx + step + len(all)) % len(all)
	a.selectPreset(all[idx])
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制虚拟页面、画布元素与调试信息
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(pageColor)
	scroll := a.page.scroll
	h := float64(a.page.screenH)

	// 画布下方的页面区块
	for i := 1; i < config.PageSections; i++ {
		y := float64(i)*h - scroll
		vector.StrokeLine(screen, 0, float32(y), float32(a.page.screenW), float32(y), 1, sectionColor, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("section %d", i+1), 16, int(y)+16)
	}

	rect := a.page.canvasRect()
	if img := a.canvas.image(); img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(rect.X, rect.Y-scroll)
		screen.DrawImage(img, op)
	}

	if a.page.sidePanel {
		vector.DrawFilledRect(screen, 0, 0, float32(config.SidePanelWidth), float32(h), panelColor, false)
		ebitenutil.DebugPrintAt(screen, "side panel (P)", 16, 16)
	}

	if a.debug {
		a.drawDebug(screen, rect, scroll)
	}
}

// drawDebug 调试叠加层：状态文本与 right-side 调试矩形
func (a *App) drawDebug(screen *ebiten.Image, canvas components.Rect, scroll float64) {
	state := a.life.Controller().State()
	rc, _ := a.life.Config()
	stats := a.life.Renderer().LastStats()

	lines := fmt.Sprintf("TPS: %.0f  FPS: %.0f\npreset: %s (%s / %s)\ndots: %d  container: %.0f  mobile: %v  tablet: %v  landscape: %v\ndrawn: %d  skipped: %d  batches: %d\nvisible: %.2f  frames: %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		state.Preset, state.DisplayMode, state.EffectiveMode,
		rc.DotCount, rc.ContainerSize, rc.IsMobile, rc.IsTablet, rc.IsLandscape,
		stats.Drawn, stats.Skipped, stats.Batches,
		a.life.Gate().Ratio(), a.life.Frames())
	x := int(canvas.X) + 16
	ebitenutil.DebugPrintAt(screen, lines, x, int(canvas.Y-scroll)+48)
	ebitenutil.DebugPrintAt(screen, "1-6 preset  <-/-> cycle  M mobile  L landscape  P panel  D debug  wheel scroll  F11  Esc", x, a.page.screenH-24)

	if box, ok := a.life.Responsive().DebugRect(); ok {
		vector.StrokeRect(screen,
			float32(canvas.X+box.X), float32(canvas.Y+box.Y-scroll),
			float32(box.W), float32(box.H),
			1, debugColor, false)
	}
}

// Layout 逻辑屏幕尺寸跟随窗口尺寸，以便触发窗口尺寸变化
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.page.screenW, a.page.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// Close 卸载引擎并保存偏好
func (a *App) Close() {
	a.life.Unmount()
	a.saveSettings()
}
