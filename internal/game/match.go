package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InputFrame is the pointer/keyboard state resolved for one tick.
type InputFrame struct {
	Hover     *Coord // tile under the pointer, if any
	Primary   bool   // primary button pressed this tick
	Secondary bool   // secondary button pressed this tick
	Pass      bool   // end the current turn without moving
}

// MatchConfig holds the rules a match is created with.
type MatchConfig struct {
	Participants        []Participant
	UnitsPerParticipant int
	Templates           []UnitTemplate
	BotThinkDelay       time.Duration // wait before a bot acts; 0 for headless runs
	Verbose             bool          // record per-leg movement in the match log
}

// DefaultMatchConfig is one human against one bot with three units each.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Participants:        []Participant{Me, Bot},
		UnitsPerParticipant: 3,
		Templates:           DefaultTemplates(),
		BotThinkDelay:       400 * time.Millisecond,
	}
}

var (
	ErrEmptyBoard    = errors.New("match: map has no tiles")
	ErrBoardTooSmall = errors.New("match: board has fewer cells than units to place")
)

// Match owns every piece of match state and runs the systems in a fixed phase
// order each tick: Input, Logic, Update, Render. Nothing else holds references
// to its resources, so no system ever observes another mid-update.
type Match struct {
	id        string
	layout    *MapLayout
	tiles     []Tile
	registry  *UnitRegistry
	units     map[UnitID]*Unit
	unitOrder []UnitID
	nextID    UnitID
	state     *GameState
	mapState  *MapState
	queue     CommandQueue
	templates []UnitTemplate
	clips     ClipSet

	matchLog *MatchLog
	feed     *EventFeed
	log      *zap.Logger

	tick          int
	botDelay      float64 // seconds
	botWait       float64
	spawnInFlight bool
}

// NewMatch prepares a match on layout. tiles may be nil, in which case one
// tile per layout cell is derived.
func NewMatch(layout *MapLayout, tiles []Tile, cfg MatchConfig, log *zap.Logger) (*Match, error) {
	if layout == nil || layout.Len() == 0 {
		return nil, ErrEmptyBoard
	}
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	log = log.With(zap.String("match", id))

	gs, err := NewGameState(cfg.Participants, cfg.UnitsPerParticipant, log)
	if err != nil {
		return nil, fmt.Errorf("new match: %w", err)
	}
	if need := len(cfg.Participants) * cfg.UnitsPerParticipant; layout.Len() < need {
		return nil, fmt.Errorf("new match: %d cells for %d units: %w", layout.Len(), need, ErrBoardTooSmall)
	}
	templates := cfg.Templates
	if len(templates) == 0 {
		templates = DefaultTemplates()
	}
	if tiles == nil {
		tiles = layout.Tiles()
	}
	return &Match{
		id:        id,
		layout:    layout,
		tiles:     tiles,
		registry:  NewUnitRegistry(),
		units:     make(map[UnitID]*Unit),
		nextID:    1,
		state:     gs,
		mapState:  NewMapState(),
		templates: templates,
		clips:     DefaultClips(),
		matchLog:  NewMatchLog(id, cfg.Verbose),
		feed:      NewEventFeed(),
		log:       log,
		botDelay:  cfg.BotThinkDelay.Seconds(),
	}, nil
}

// Start opens the placement phase.
func (m *Match) Start() {
	m.state.Start(&m.queue)
	m.matchLog.Add(m.tick, "--", "--", "phase", "start", m.state.Phase().String(), 0)
	m.feed.Add(m.tick, "--", -1, "placement begins")
	m.log.Info("match started",
		zap.Int("players", len(m.state.Participants())),
		zap.Int("units_per_player", m.state.UnitsPerParticipant()),
		zap.Int("cells", m.layout.Len()))
}

// Ready reports whether the board is loaded. Tick does nothing until it is.
func (m *Match) Ready() bool { return m.layout != nil && m.layout.Len() > 0 }

// Tick runs one frame of the match with dt seconds of elapsed time.
func (m *Match) Tick(dt float64, in InputFrame) {
	if !m.Ready() {
		return
	}
	m.tick++

	// Input
	m.mapState.Hover = in.Hover

	// Logic
	m.runCommands(dt)
	m.handleInput(in)

	// Update
	m.updateMovement(dt)

	// Render
	for _, id := range m.unitOrder {
		m.units[id].Anim.Tick(dt)
	}
}

// runCommands drains the commands queued since the last tick. Anything pushed
// while draining waits for the next tick.
func (m *Match) runCommands(dt float64) {
	botTicked := false
	for _, cmd := range m.queue.Drain() {
		prev := m.state.Phase()
		switch c := cmd.(type) {
		case SpawnUnit:
			m.spawn(c)
		case UnitSpawned:
			m.spawnInFlight = false
			m.state.Place(c.Unit, &m.queue)
		case PlaceAIUnit:
			if !m.botReady(dt, &botTicked) {
				m.queue.Push(c)
				continue
			}
			m.botPlace(c.Player)
		case MoveAIUnit:
			if !m.botReady(dt, &botTicked) {
				m.queue.Push(c)
				continue
			}
			m.botMove(c.Unit)
		case TurnEnded:
			m.state.NextTurn(&m.queue)
		default:
			m.log.Warn("unhandled command", zap.Stringer("command", cmd))
		}
		m.log.Debug("command", zap.Stringer("command", cmd))
		m.notePhase(prev)
	}
}

// botReady gates bot actions behind the configured think delay. Time is
// counted once per tick however many bot commands are waiting.
func (m *Match) botReady(dt float64, ticked *bool) bool {
	if m.botDelay <= 0 {
		return true
	}
	if !*ticked {
		m.botWait += dt
		*ticked = true
	}
	if m.botWait < m.botDelay {
		return false
	}
	m.botWait = 0
	return true
}

func samePhase(a, b Phase) bool {
	ta, okA := a.(Turn)
	tb, okB := b.(Turn)
	if okA && okB {
		return ta.Index == tb.Index
	}
	return a == b
}

// notePhase records a phase change since prev.
func (m *Match) notePhase(prev Phase) {
	cur := m.state.Phase()
	if samePhase(prev, cur) {
		return
	}
	m.matchLog.Add(m.tick, "--", "--", "phase", "change", cur.String(), 0)
	switch ph := cur.(type) {
	case Placing:
		m.feed.Add(m.tick, "--", ph.Player, fmt.Sprintf("P%d places (round %d)", ph.Player, ph.Round+1))
	case Turn:
		slot := m.state.TurnOrder()[ph.Index]
		m.feed.Add(m.tick, fmt.Sprintf("U%d", slot.Unit), slot.Player, "takes the turn")
	case Finished:
		m.feed.Add(m.tick, "--", -1, "no units left")
	}
	m.log.Info("phase", zap.Stringer("from", prev), zap.Stringer("to", cur))
}

func (m *Match) handleInput(in InputFrame) {
	if in.Secondary {
		m.mapState.Clear()
		return
	}
	if in.Pass {
		m.humanPass()
	}
	if in.Primary && in.Hover != nil {
		m.primaryClick(*in.Hover)
	}
}

// humanIsActing returns the acting player when it is a human.
func (m *Match) humanIsActing() (int, bool) {
	player, ok := m.state.ActingPlayer()
	if !ok || m.state.Participant(player) != Me {
		return 0, false
	}
	return player, true
}

func (m *Match) humanPass() {
	player, ok := m.humanIsActing()
	if !ok || m.mapState.Moving {
		return
	}
	if _, ok := m.state.Phase().(Turn); !ok {
		return
	}
	prev := m.state.Phase()
	unit, _ := m.state.CurrentUnit()
	m.mapState.Clear()
	m.state.Pass(&m.queue)
	m.matchLog.Add(m.tick, fmt.Sprintf("U%d", unit), playerLabel(player), "turn", "pass", "", 0)
	m.notePhase(prev)
}

func (m *Match) primaryClick(at Coord) {
	player, ok := m.humanIsActing()
	if !ok {
		return
	}
	switch m.state.Phase().(type) {
	case Placing:
		if m.spawnInFlight || !m.layout.Has(at) || m.registry.Occupied(at) {
			return
		}
		m.spawnInFlight = true
		m.queue.Push(SpawnUnit{Player: player, At: at})
	case Turn:
		if m.mapState.Moving {
			return
		}
		if m.mapState.Pending == nil {
			id, ok := m.registry.At(at)
			if !ok {
				return
			}
			u := m.units[id]
			if cur, ok := m.state.CurrentUnit(); !ok || cur != id || u.Owner != player {
				return
			}
			m.mapState.Select(u, m.layout, m.registry)
			m.matchLog.Add(m.tick, unitLabel(u), playerLabel(player), "select", "unit", at.String(), float64(len(m.mapState.Pending.Preds)))
			return
		}
		id := m.mapState.Pending.Unit
		path, ok := m.mapState.Confirm(at, m.registry)
		if !ok {
			m.matchLog.Add(m.tick, fmt.Sprintf("U%d", id), playerLabel(player), "select", "cleared", at.String(), 0)
			return
		}
		m.startMove(m.units[id], path)
	case Finished:
	}
}

// startMove sets u in motion and locks selection until it arrives.
func (m *Match) startMove(u *Unit, path []Coord) {
	if !BeginMove(u, path) {
		return
	}
	m.mapState.Moving = true
	m.state.MarkMoved()
	dest := path[len(path)-1]
	m.matchLog.Add(m.tick, unitLabel(u), playerLabel(u.Owner), "move", "start", fmt.Sprintf("%s -> %s", u.Cell, dest), float64(len(path)-1))
	m.feed.Add(m.tick, unitLabel(u), u.Owner, fmt.Sprintf("moves to %s", dest))
}

// spawn is the spawn collaborator: it creates the unit, registers it on the
// board and reports it back to the game state.
func (m *Match) spawn(c SpawnUnit) {
	p, ok := m.state.Phase().(Placing)
	if !ok || p.Player != c.Player || !m.layout.Has(c.At) || m.registry.Occupied(c.At) {
		m.spawnInFlight = false
		return
	}
	tpl := m.templates[p.Round%len(m.templates)]
	id := m.nextID
	m.nextID++
	u := &Unit{
		ID:             id,
		Owner:          c.Player,
		Kind:           tpl.Name,
		Cell:           c.At,
		TravelDistance: tpl.TravelDistance,
		TravelSpeed:    tpl.TravelSpeed,
		IsAir:          tpl.IsAir,
		Facing:         FacingSE,
		Clips:          m.clips,
	}
	u.Anim = NewAnimatable(u.Clips.Idle, true)
	m.placeAt(u, c.At)
	m.registry.Insert(c.At, id)
	m.units[id] = u
	m.unitOrder = append(m.unitOrder, id)

	m.matchLog.Add(m.tick, unitLabel(u), playerLabel(c.Player), "place", "spawned", c.At.String(), float64(p.Round))
	m.feed.Add(m.tick, unitLabel(u), c.Player, fmt.Sprintf("%s deployed at %s", tpl.Name, c.At))
	m.queue.Push(UnitSpawned{Unit: id})
}

func (m *Match) botPlace(player int) {
	p, ok := m.state.Phase().(Placing)
	if !ok || p.Player != player || m.state.Participant(player) != Bot || m.spawnInFlight {
		return
	}
	at, ok := choosePlacement(m.layout, m.registry)
	if !ok {
		m.log.Warn("bot found no free cell to place on", zap.Int("player", player))
		return
	}
	m.spawnInFlight = true
	m.matchLog.Add(m.tick, "--", playerLabel(player), "ai", "place", at.String(), 0)
	m.queue.Push(SpawnUnit{Player: player, At: at})
}

func (m *Match) botMove(id UnitID) {
	cur, ok := m.state.CurrentUnit()
	if !ok || cur != id || m.mapState.Moving {
		return
	}
	u := m.units[id]
	var enemies []Coord
	for _, oid := range m.unitOrder {
		if o := m.units[oid]; o.Owner != u.Owner {
			enemies = append(enemies, o.Cell)
		}
	}
	path, ok := chooseMove(u, m.layout, m.registry, enemies)
	if !ok {
		prev := m.state.Phase()
		m.matchLog.Add(m.tick, unitLabel(u), playerLabel(u.Owner), "ai", "hold", u.Cell.String(), 0)
		m.state.Pass(&m.queue)
		m.notePhase(prev)
		return
	}
	m.matchLog.Add(m.tick, unitLabel(u), playerLabel(u.Owner), "ai", "move", path[len(path)-1].String(), float64(len(path)-1))
	m.startMove(u, path)
}

// RemoveUnit takes a unit off the board and out of the turn order.
func (m *Match) RemoveUnit(id UnitID) {
	u, ok := m.units[id]
	if !ok {
		return
	}
	prev := m.state.Phase()
	if u.Path != nil {
		m.mapState.Moving = false
	}
	if m.mapState.Pending != nil && m.mapState.Pending.Unit == id {
		m.mapState.Clear()
	}
	m.registry.Remove(u.Cell)
	delete(m.units, id)
	for i, oid := range m.unitOrder {
		if oid == id {
			m.unitOrder = append(m.unitOrder[:i:i], m.unitOrder[i+1:]...)
			break
		}
	}
	m.state.Vacate(id, &m.queue)
	m.matchLog.Add(m.tick, unitLabel(u), playerLabel(u.Owner), "place", "removed", u.Cell.String(), 0)
	m.notePhase(prev)
}

// ID returns the match id.
func (m *Match) ID() string { return m.id }

// TickCount returns how many ticks have run.
func (m *Match) TickCount() int { return m.tick }

// Layout returns the board layout.
func (m *Match) Layout() *MapLayout { return m.layout }

// Tiles returns the drawable tiles, back to front.
func (m *Match) Tiles() []Tile { return m.tiles }

// State returns the turn state machine.
func (m *Match) State() *GameState { return m.state }

// MapState returns the selection state.
func (m *Match) MapState() *MapState { return m.mapState }

// Registry returns the cell to unit index.
func (m *Match) Registry() *UnitRegistry { return m.registry }

// Queue returns the pending command queue.
func (m *Match) Queue() *CommandQueue { return &m.queue }

// MatchLog returns the structured match log.
func (m *Match) MatchLog() *MatchLog { return m.matchLog }

// Feed returns the on-screen event feed.
func (m *Match) Feed() *EventFeed { return m.feed }

// Unit returns a unit by id.
func (m *Match) Unit(id UnitID) (*Unit, bool) {
	u, ok := m.units[id]
	return u, ok
}

// Units returns every unit in creation order.
func (m *Match) Units() []*Unit {
	out := make([]*Unit, 0, len(m.unitOrder))
	for _, id := range m.unitOrder {
		out = append(out, m.units[id])
	}
	return out
}
