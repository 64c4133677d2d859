package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// MatchFactory builds a fresh, unstarted match. The game calls it at startup
// and again on restart, so it should read the latest config each time.
type MatchFactory func() (*Match, error)

// Game adapts a Match to Ebitengine: it polls input, owns the camera and
// draws the board.
type Game struct {
	width      int
	height     int
	viewWidth  int // board view width (feed panel takes the rest)
	viewHeight int

	factory MatchFactory
	match   *Match
	log     *zap.Logger

	pickShape Pickable
	sheet     *ebiten.Image
	white     *ebiten.Image

	// Camera pan + zoom, in screen-oriented draw space (Y down).
	camX    float64
	camY    float64
	camZoom float64

	showHUD   bool
	inspector Inspector
	status    string // transient HUD message
	statusTTL int    // ticks left to show status
}

// New creates the game and its first match.
func New(viewW, viewH int, factory MatchFactory, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Game{
		width:      viewW + feedPanelWidth,
		height:     viewH,
		viewWidth:  viewW,
		viewHeight: viewH,
		factory:    factory,
		log:        log,
		showHUD:    true,
		camZoom:    1.0,
		sheet:      buildUnitSheet(),
		white:      whitePixel(),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart replaces the current match with a fresh one and recentres the camera.
func (g *Game) restart() error {
	m, err := g.factory()
	if err != nil {
		return err
	}
	m.Start()
	g.match = m
	w, h := m.Layout().TileSize()
	g.pickShape = TilePickable(w, h)
	g.centreCamera()
	g.log.Info("new match", zap.String("match", m.ID()))
	return nil
}

// centreCamera points the camera at the middle of the board.
func (g *Game) centreCamera() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range g.match.Tiles() {
		p := g.match.Layout().Project(t.At, false)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, -p.Y), math.Max(maxY, -p.Y)
	}
	g.camX = (minX + maxX) / 2
	g.camY = (minY + maxY) / 2
}

// Match returns the match being played.
func (g *Game) Match() *Match { return g.match }

func (g *Game) Update() error {
	g.handleCamera()
	g.handleKeys()

	in := InputFrame{
		Primary:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Secondary: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Pass:      inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	mx, my := ebiten.CursorPosition()
	if mx < g.viewWidth {
		if c, ok := g.pickAt(mx, my); ok {
			in.Hover = &c
		}
	}
	g.inspector.update(g.match, in.Hover)

	g.match.Tick(1.0/float64(ebiten.TPS()), in)

	if g.statusTTL > 0 {
		g.statusTTL--
	}
	return nil
}

// pickAt resolves the tile under a screen position.
func (g *Game) pickAt(mx, my int) (Coord, bool) {
	sx, sy := g.screenToWorld(float64(mx), float64(my))
	// Draw space is Y up; the camera works Y down.
	return PickNearest(g.match.Layout(), g.match.Tiles(), g.pickShape, Point{X: sx, Y: -sy})
}

// worldToScreen maps draw-space (Y down) to screen pixels.
func (g *Game) worldToScreen(x, y float64) (float64, float64) {
	return (x-g.camX)*g.camZoom + float64(g.viewWidth)/2,
		(y-g.camY)*g.camZoom + float64(g.viewHeight)/2
}

// screenToWorld is the inverse of worldToScreen.
func (g *Game) screenToWorld(sx, sy float64) (float64, float64) {
	return (sx-float64(g.viewWidth)/2)/g.camZoom + g.camX,
		(sy-float64(g.viewHeight)/2)/g.camZoom + g.camY
}

func (g *Game) handleCamera() {
	panSpeed := 6.0 / g.camZoom // pan slower when zoomed in
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.camY -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.camY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.camX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.camX += panSpeed
	}

	const zoomMin, zoomMax = 0.5, 3.0
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camZoom *= math.Pow(1.12, wy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.camZoom *= 1.25
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.camZoom /= 1.25
	}
	g.camZoom = math.Max(zoomMin, math.Min(zoomMax, g.camZoom))
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.Error("restart failed", zap.Error(err))
			g.setStatus("restart failed: " + err.Error())
		}
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusTTL = 180
}

// Size is the window size the game lays out to, feed panel included.
func (g *Game) Size() (int, int) { return g.width, g.height }

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
