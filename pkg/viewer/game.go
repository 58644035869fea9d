package viewer

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
)

// Game adapts a Session to ebiten's game loop
type Game struct {
	ctx     context.Context
	session *Session
	width   int
	height  int

	canvas   *ebiten.Image
	overlay  *ebiten.Image
	shownGen int
}

// NewGame creates the window state and starts the first render
func NewGame(ctx context.Context, sc *scene.Scene, opts renderer.Options) (*Game, error) {
	session, err := NewSession(sc, opts)
	if err != nil {
		return nil, err
	}
	w, h := session.Size()
	g := &Game{ctx: ctx, session: session, width: w, height: h}
	session.Render(ctx)
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.session.ToggleNormals(g.ctx)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.session.ToggleAxes()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.width, g.height)
	}
	if fb, gen := g.session.Frame(); fb != nil && gen != g.shownGen {
		g.canvas.WritePixels(fb.ToImage().Pix)
		g.shownGen = gen
	}
	screen.DrawImage(g.canvas, nil)

	if axes, visible := g.session.Axes(); visible {
		if g.overlay == nil {
			g.overlay = ebiten.NewImage(g.width, g.height)
			g.overlay.WritePixels(axes.ToImage().Pix)
		}
		screen.DrawImage(g.overlay, nil)
	}

	ebitenutil.DebugPrint(screen, g.session.Status())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens a window showing sc and blocks until it is closed
func Run(ctx context.Context, sc *scene.Scene, opts renderer.Options, title string) error {
	g, err := NewGame(ctx, sc, opts)
	if err != nil {
		return err
	}
	defer g.session.Close()

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// RunGame reports nil when Update returns ebiten.Termination
	return ebiten.RunGame(g)
}
