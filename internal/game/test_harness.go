package game

import "go.uber.org/zap"

// harnessDT is the fixed step the harness ticks with (60 TPS).
const harnessDT = 1.0 / 60.0

// TestMatch is a headless match driver used by tests and the headless report.
// It mirrors Game.Update without any Ebitengine dependency and feeds
// synthetic input frames.
type TestMatch struct {
	Match *Match
	DT    float64

	layout *MapLayout
	tiles  []Tile
	cfg    MatchConfig
	log    *zap.Logger
}

// MatchOption is a builder function applied to a TestMatch during construction.
type MatchOption func(*TestMatch)

// WithFlatBoard uses a single-layer cols x rows board.
func WithFlatBoard(cols, rows int) MatchOption {
	return func(tm *TestMatch) {
		tm.layout = FlatLayout(cols, rows, 64, 32)
		tm.tiles = nil
	}
}

// WithLayout uses an explicit layout.
func WithLayout(layout *MapLayout) MatchOption {
	return func(tm *TestMatch) {
		tm.layout = layout
		tm.tiles = nil
	}
}

// WithTiledMap builds the board from a Tiled map.
func WithTiledMap(m *TiledMap) MatchOption {
	return func(tm *TestMatch) {
		tm.layout, tm.tiles = BuildMap(m)
	}
}

// WithGeneratedBoard builds the board from simplex terrain.
func WithGeneratedBoard(cfg GenConfig) MatchOption {
	return func(tm *TestMatch) {
		tm.layout, tm.tiles = BuildMap(GenerateTerrain(cfg))
	}
}

// WithParticipants sets the roster.
func WithParticipants(ps ...Participant) MatchOption {
	return func(tm *TestMatch) {
		tm.cfg.Participants = ps
	}
}

// WithUnitsPerParticipant sets how many units each player places.
func WithUnitsPerParticipant(n int) MatchOption {
	return func(tm *TestMatch) {
		tm.cfg.UnitsPerParticipant = n
	}
}

// WithTemplates sets the unit roster.
func WithTemplates(ts ...UnitTemplate) MatchOption {
	return func(tm *TestMatch) {
		tm.cfg.Templates = ts
	}
}

// WithVerbose enables verbose match logging.
func WithVerbose(v bool) MatchOption {
	return func(tm *TestMatch) {
		tm.cfg.Verbose = v
	}
}

// WithLogger routes match logging to l.
func WithLogger(l *zap.Logger) MatchOption {
	return func(tm *TestMatch) {
		tm.log = l
	}
}

// NewTestMatch builds and starts a match. Defaults: 8x8 flat board, human
// against bot, two units each, no bot think delay. It panics on an invalid
// setup since it only runs under tests and tooling.
func NewTestMatch(opts ...MatchOption) *TestMatch {
	tm := &TestMatch{
		DT:     harnessDT,
		layout: FlatLayout(8, 8, 64, 32),
		cfg: MatchConfig{
			Participants:        []Participant{Me, Bot},
			UnitsPerParticipant: 2,
			Templates:           DefaultTemplates(),
		},
	}
	for _, o := range opts {
		o(tm)
	}
	m, err := NewMatch(tm.layout, tm.tiles, tm.cfg, tm.log)
	if err != nil {
		panic(err)
	}
	m.Start()
	tm.Match = m
	return tm
}

// Step runs one tick with the given input.
func (tm *TestMatch) Step(in InputFrame) {
	tm.Match.Tick(tm.DT, in)
}

// RunTicks runs n ticks with no input.
func (tm *TestMatch) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tm.Step(InputFrame{})
	}
}

// Click runs one tick with a primary click on c.
func (tm *TestMatch) Click(c Coord) {
	tm.Step(InputFrame{Hover: &c, Primary: true})
}

// RightClick runs one tick with a secondary click.
func (tm *TestMatch) RightClick() {
	tm.Step(InputFrame{Secondary: true})
}

// Pass runs one tick with the pass key held.
func (tm *TestMatch) Pass() {
	tm.Step(InputFrame{Pass: true})
}

// RunUntil ticks until cond holds or limit ticks have run. It reports whether
// cond was met.
func (tm *TestMatch) RunUntil(limit int, cond func(*Match) bool) bool {
	for i := 0; i < limit; i++ {
		if cond(tm.Match) {
			return true
		}
		tm.Step(InputFrame{})
	}
	return cond(tm.Match)
}

// Idle reports whether nothing is queued or moving.
func Idle(m *Match) bool {
	return m.queue.Len() == 0 && !m.mapState.Moving
}
