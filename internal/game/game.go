// Package game implements the gear viewer: the main loop, live editing and
// config hot reload.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/gearworks/internal/config"
	"github.com/Faultbox/gearworks/internal/engine/camera"
	"github.com/Faultbox/gearworks/internal/engine/debug"
	"github.com/Faultbox/gearworks/internal/engine/input"
	"github.com/Faultbox/gearworks/internal/engine/lighting"
	"github.com/Faultbox/gearworks/internal/engine/picking"
	"github.com/Faultbox/gearworks/internal/engine/renderer"
	"github.com/Faultbox/gearworks/internal/engine/window"
	"github.com/Faultbox/gearworks/internal/game/entity"
	"github.com/Faultbox/gearworks/internal/physics"
)

const (
	fixedStep   = 1.0 / 120
	maxSubsteps = 8

	wireSegments = 32
)

var (
	wireColor   = [3]float32{0.2, 1, 0.4}
	boundsColor = [3]float32{1, 0.8, 0.2}
)

// Game is the main viewer instance.
type Game struct {
	cfg *config.Config
	log *zap.Logger

	running bool
	paused  bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	bindings input.Bindings

	camera      *camera.OrbitCamera
	light       lighting.Light
	entities    *entity.Manager
	editor      *Editor
	screenshots *debug.ScreenshotCapture
	watcher     *config.Watcher

	accumulator float32
}

// New creates the window, GL renderer and startup scene.
func New(cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		cfg:      cfg,
		log:      log.Named("game"),
		input:    input.New(),
		bindings: input.DefaultBindings(),
	}

	g.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	fbW, fbH := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:      fbW,
		Height:     fbH,
		Background: cfg.Window.Background.Array(),
	}, log)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.camera = camera.NewOrbitCamera()
	g.camera.SetViewport(fbW, fbH)

	world := physics.NewWorld(cfg.Physics.Iterations, log)
	g.entities = entity.NewManager(g.renderer, world, entity.Options{
		Mass:            cfg.Physics.Mass,
		ProxyHalfHeight: cfg.Physics.ProxyHalfHeight,
	}, log)
	g.editor = NewEditor(cfg.Gear.Spec(), rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)))

	g.applyConfig(cfg)

	if err := g.spawnStartup(); err != nil {
		g.Close()
		return nil, err
	}

	if path := config.Source(); path != "" {
		if g.watcher, err = config.Watch(path, log); err != nil {
			g.log.Warn("config hot reload disabled", zap.String("path", path), zap.Error(err))
		}
	}

	g.updateTitle()
	g.log.Info("viewer initialized", zap.Int("gears", g.entities.Count()))
	return g, nil
}

// applyConfig installs the settings that do not require rebuilding gears.
func (g *Game) applyConfig(cfg *config.Config) {
	g.cfg = cfg

	g.light = lighting.Light{
		Position: cfg.Light.Position.Vec(),
		Ambient:  cfg.Light.Ambient,
		Diffuse:  cfg.Light.Diffuse,
		Specular: cfg.Light.Specular,
	}
	g.renderer.SetBackground(cfg.Window.Background.Array())

	c := g.camera
	c.Distance = cfg.Camera.Distance
	c.MinDistance = cfg.Camera.MinDistance
	c.MaxDistance = cfg.Camera.MaxDistance
	c.FOV = cfg.Camera.FOV * math32.Pi / 180
	c.Near = cfg.Camera.Near
	c.Far = cfg.Camera.Far

	format, err := debug.ParseFormat(cfg.Capture.Format)
	if err != nil {
		g.log.Warn("screenshot format", zap.Error(err))
		format = debug.PNG
	}
	g.screenshots = debug.NewScreenshotCapture(cfg.Capture.Dir, cfg.Capture.Prefix, format)
}

func (g *Game) spawnStartup() error {
	template := g.cfg.Gear.Spec()
	if !g.cfg.Train.Enabled {
		_, err := g.entities.Spawn(template, entity.SpawnOptions{Material: g.nextMaterial()})
		return err
	}

	var mats [3]lighting.Material
	for i := range mats {
		mats[i] = g.nextMaterial()
	}
	_, err := g.entities.SpawnTrain(entity.TrainOptions{
		Template:    template,
		Spacing:     g.cfg.Train.Spacing,
		DriverSpeed: g.cfg.Train.DriverSpeed,
		Materials:   mats,
	})
	if err != nil {
		return fmt.Errorf("failed to spawn gear train: %w", err)
	}
	return nil
}

func (g *Game) nextMaterial() lighting.Material {
	m := lighting.Material{Color: g.editor.Color, Shininess: g.cfg.Gear.Shininess}
	g.editor.NextColor()
	return m
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting main loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleInput()

		// 2. Pick up config edits
		g.pollConfig()

		// 3. Simulate
		if !g.paused {
			g.step(dt)
		}

		// 4. Render
		if err := g.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 5. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// step advances physics in fixed increments.
func (g *Game) step(dt float32) {
	g.accumulator += dt
	for n := 0; g.accumulator >= fixedStep; n++ {
		if n == maxSubsteps {
			g.accumulator = 0
			break
		}
		g.entities.Update(fixedStep)
		g.accumulator -= fixedStep
	}
}

func (g *Game) handleInput() {
	for _, event := range g.input.Events() {
		if event.Type == input.EventWindowResize {
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)
			g.camera.SetViewport(w, h)
		}
	}

	for _, action := range g.input.Actions(g.bindings) {
		g.handleAction(action)
	}

	if dx, dy := g.input.Drag(sdl.BUTTON_RIGHT); dx != 0 || dy != 0 {
		g.camera.HandleDrag(float32(dx), float32(dy))
	}
	if steps := g.input.Wheel(); steps != 0 {
		g.camera.HandleZoom(float32(steps))
	}
	for _, click := range g.input.Clicks(sdl.BUTTON_LEFT) {
		g.pick(click[0], click[1])
	}
}

func (g *Game) handleAction(a input.Action) {
	switch a {
	case input.ActionQuit:
		g.running = false
	case input.ActionToggleEdit:
		g.editor.Active = !g.editor.Active
		g.updateTitle()
	case input.ActionSpawn:
		if g.editor.Active {
			g.spawnFromTemplate()
		}
	case input.ActionScreenshot:
		g.screenshot()
	case input.ActionToggleDebug:
		g.cfg.Physics.DebugDraw = !g.cfg.Physics.DebugDraw
	case input.ActionToggleFullscreen:
		if err := g.window.SetFullscreen(!g.window.Fullscreen()); err != nil {
			g.log.Warn("fullscreen toggle failed", zap.Error(err))
		}
	case input.ActionPause:
		g.paused = !g.paused
	case input.ActionSaveTemplate:
		g.saveTemplate()
	default:
		changed, err := g.editor.Apply(a)
		if err != nil {
			g.log.Warn("edit rejected", zap.Error(err))
			return
		}
		if changed {
			g.editSelected()
			g.updateTitle()
		}
	}
}

// spawnFromTemplate adds a gear at the configured spawn point.
func (g *Game) spawnFromTemplate() {
	spec := g.editor.Template
	spec.Position = g.cfg.Gear.Spawn.Vec()
	spec.Angle = 0
	if _, err := g.entities.Spawn(spec, entity.SpawnOptions{Material: g.nextMaterial()}); err != nil {
		g.log.Error("spawn failed", zap.Error(err))
	}
}

// editSelected regenerates the selected gear from the edited template.
func (g *Game) editSelected() {
	sel := g.entities.Selected()
	if sel == nil {
		return
	}
	if err := g.entities.Regenerate(sel.ID, g.editor.Template); err != nil {
		g.log.Error("regenerate failed", zap.String("gear", sel.Name), zap.Error(err))
	}
}

// saveTemplate writes the edited template back to the config file it came
// from, or to the user config directory.
func (g *Game) saveTemplate() {
	g.cfg.Gear.SetSpec(g.editor.Template)
	path := config.Source()
	save := func() error { return g.cfg.SaveTo(path) }
	if path == "" {
		path = config.DefaultPath()
		save = g.cfg.Save
	}
	if err := save(); err != nil {
		g.log.Error("saving template failed", zap.String("path", path), zap.Error(err))
		return
	}
	g.log.Info("template saved", zap.String("path", path), zap.Object("gear", g.editor.Template))
}

func (g *Game) pick(x, y int) {
	w, h := g.window.GetSize()
	inv := g.camera.ViewProjection().Inverse()
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)

	e, ok := g.entities.Pick(ray)
	if !ok {
		g.entities.Select(uuid.Nil)
		return
	}
	g.entities.Select(e.ID)
	g.log.Info("picked gear", zap.String("name", e.Name), zap.Object("gear", e.Spec))
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// pollConfig applies the newest reloaded config, if any, and rebuilds every
// gear from its gear section.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg := <-g.watcher.Changes():
		g.applyConfig(cfg)
		g.editor.Template = cfg.Gear.Spec()
		for _, e := range g.entities.All() {
			if err := g.entities.Regenerate(e.ID, g.editor.Template); err != nil {
				g.log.Error("regenerate failed", zap.String("gear", e.Name), zap.Error(err))
			}
		}
		g.updateTitle()
		g.log.Info("config reloaded", zap.String("path", g.watcher.Path()))
	default:
	}
}

func (g *Game) updateTitle() {
	g.window.SetTitle(g.cfg.Window.Title + "  " + g.editor.Status())
}

// render draws the current frame.
func (g *Game) render() error {
	g.renderer.Begin(renderer.View{
		View:       g.camera.ViewMatrix(),
		Projection: g.camera.ProjectionMatrix(),
		Eye:        g.camera.Position(),
		Light:      g.light,
	})
	defer g.renderer.End()

	var drawErr error
	g.entities.Each(func(e *entity.Entity) bool {
		if e.Resource == nil {
			return true
		}
		if err := g.renderer.DrawMesh(e.Resource, e.Transform(), e.Material, e.Selected); err != nil {
			drawErr = fmt.Errorf("draw %s: %w", e.Name, err)
			return false
		}
		return true
	})
	if drawErr != nil {
		return drawErr
	}

	if g.cfg.Physics.DebugDraw {
		for _, b := range g.entities.World().Bodies() {
			lines := debug.CylinderWireframe(b.Shape.Radius, b.Shape.HalfHeight, wireSegments, b.Transform())
			g.renderer.DrawLines(lines, wireColor)
		}
		if sel := g.entities.Selected(); sel != nil {
			box := sel.Body.Bounds()
			g.renderer.DrawLines(debug.BoxWireframe(box.Min, box.Max), boundsColor)
		}
	}
	return nil
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn("closing config watcher", zap.Error(err))
		}
	}
	if g.entities != nil {
		g.entities.Clear()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
