package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/nightsky/internal/audio"
	"github.com/tomz197/nightsky/internal/config"
	"github.com/tomz197/nightsky/internal/input"
	"github.com/tomz197/nightsky/internal/logging"
	"github.com/tomz197/nightsky/internal/render"
	"github.com/tomz197/nightsky/internal/scene"
)

const (
	windowWidth  = 960
	windowHeight = 600
)

// keyMap lists the keys any scene reacts to.
var keyMap = []struct {
	key  ebiten.Key
	name input.Key
}{
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyEscape, input.KeyEsc},
	{ebiten.KeyEnter, input.KeyEnter},
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyA, "a"},
	{ebiten.KeyB, "b"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyQ, "q"},
}

// game adapts the controller to ebiten's update and draw callbacks.
type game struct {
	ctrl    *scene.Controller
	list    *render.List
	levels  *input.LevelTracker
	surface *surface

	held     []input.Key
	touchIDs []ebiten.TouchID
}

func (g *game) Update() error {
	g.held = g.held[:0]
	for _, k := range keyMap {
		if ebiten.IsKeyPressed(k.key) {
			g.held = append(g.held, k.name)
		}
	}
	events := g.levels.Keys(g.held, nil)

	x, y := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		x, y = ebiten.TouchPosition(g.touchIDs[0])
		down = true
	}
	events = g.levels.Pointer(down, float64(x), float64(y), events)

	for _, ev := range events {
		g.ctrl.Post(ev)
	}

	g.list.Reset()
	g.ctrl.Step(time.Now(), g.list)
	if g.ctrl.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	g.list.Replay(g.surface)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.list.SetSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "screensaver error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings := config.Load()
	if len(os.Args) > 1 {
		settings.Scene = os.Args[1]
	}

	logger := logging.New(os.Stderr, "gui", settings.Debug)
	player := audio.Open(settings.Sound, logger)
	defer player.Close()

	sc, err := scene.New(settings.Scene, scene.Options{
		Player: player,
		Logger: logger,
		Count:  settings.Count,
	})
	if err != nil {
		return err
	}

	g := &game{
		ctrl: scene.NewController(sc, scene.ControllerOptions{
			Interval: settings.Interval,
			Logger:   logger,
		}),
		list:    render.NewList(windowWidth, windowHeight, debugLineHeight),
		levels:  input.NewLevelTracker(),
		surface: newSurface(render.DefaultPalette()),
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("nightsky: " + sc.Name())
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(max(int(time.Second/settings.Interval), 1))

	logger.Info("window started", "scene", sc.Name())
	return ebiten.RunGame(g)
}
