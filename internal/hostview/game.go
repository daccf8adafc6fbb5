//go:build cgo

package hostview

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/zeusync/orbit/internal/core/frame"
	"github.com/zeusync/orbit/internal/core/observability/log"
	"github.com/zeusync/orbit/internal/input"
)

var (
	background = color.RGBA{R: 0x05, G: 0x05, B: 0x12, A: 0xff}
	outline    = color.RGBA{R: 0xb4, G: 0xb4, B: 0xff, A: 0xff}
	selected   = color.RGBA{R: 0xff, G: 0xc8, B: 0x40, A: 0xff}
)

type game struct {
	loop    *frame.Loop
	state   *input.State
	onFrame func(frame.Snapshot)
	logger  log.Log

	width, height int
	last          frame.Snapshot
	picked        string
}

func pollKeys() Keys {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return Keys{
		Up:    pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: pressed(ebiten.KeyD, ebiten.KeyArrowRight),
	}
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.state.Set(pollKeys().Flags())

	snap, err := g.loop.Tick()
	if errors.Is(err, frame.ErrClosed) {
		return ebiten.Termination
	}
	g.last = snap
	if g.onFrame != nil {
		g.onFrame(snap)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && g.width > 0 && g.height > 0 {
		cx, cy := ebiten.CursorPosition()
		x, y := frame.ToNDC(cx, cy, g.width, g.height)
		body, hit, ok, err := g.loop.Pick(x, y)
		switch {
		case err != nil:
			g.logger.Warn("pick failed", log.Error(err))
		case ok:
			g.picked = body.Name()
			g.logger.Info("body picked", log.String("body", g.picked), log.Vector("point", hit.Point))
		default:
			g.picked = ""
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for _, c := range g.last.Project(g.width, g.height) {
		clr := outline
		if c.Name == g.picked {
			clr = selected
		}
		r := c.Radius
		if r < 1 {
			r = 1
		}
		vector.StrokeCircle(screen, c.X, c.Y, r, 1, clr, true)
	}
	p := g.last.CameraPosition
	ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d  camera (%.1f, %.1f, %.1f)  %s", g.last.Frame, p.X, p.Y, p.Z, g.picked))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if outsideHeight > 0 {
			g.loop.SetAspect(float64(outsideWidth) / float64(outsideHeight))
		}
	}
	return outsideWidth, outsideHeight
}

// Window configures Run.
type Window struct {
	Title         string
	Width, Height int
	TPS           int
	Logger        log.Log
	// OnFrame, if set, receives every snapshot after it is drawn.
	OnFrame func(frame.Snapshot)
}

// Run opens the window and ticks loop once per ebiten update until the
// window closes or Escape is pressed. state must be the input source loop
// polls.
func Run(loop *frame.Loop, state *input.State, w Window) error {
	logger := w.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	g := &game{
		loop:    loop,
		state:   state,
		onFrame: w.OnFrame,
		logger:  logger.With(log.String("component", "hostview")),
	}

	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if w.TPS > 0 {
		ebiten.SetTPS(w.TPS)
	}

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
