package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// placeHuman clicks at and waits for the placement to land.
func placeHuman(t *testing.T, tm *TestMatch, at Coord) {
	t.Helper()
	before := tm.Match.Registry().Len()
	tm.Click(at)
	if !tm.RunUntil(10, func(m *Match) bool { return m.Registry().Len() > before }) {
		t.Fatalf("click on %s never spawned a unit (phase %s)", at, tm.Match.State().Phase())
	}
}

// waitForPhase ticks until the phase equals want.
func waitForPhase(t *testing.T, tm *TestMatch, want Phase, limit int) {
	t.Helper()
	if !tm.RunUntil(limit, func(m *Match) bool { return m.State().Phase() == want }) {
		t.Fatalf("phase = %s, want %s", tm.Match.State().Phase(), want)
	}
}

// placedMatch returns a human-vs-bot match on an 8x8 board with placement
// done: the human holds (0,0) and (1,0), the bot the far corner.
func placedMatch(t *testing.T) *TestMatch {
	t.Helper()
	tm := NewTestMatch()
	placeHuman(t, tm, C(0, 0))
	waitForPhase(t, tm, Placing{Player: 0, Round: 1}, 20)
	placeHuman(t, tm, C(1, 0))
	waitForPhase(t, tm, Turn{Index: 0}, 20)
	return tm
}

func TestHumanAndBotPlacementAlternate(t *testing.T) {
	tm := placedMatch(t)
	m := tm.Match

	want := map[Coord]int{C(0, 0): 0, C(1, 0): 0, C(7, 7): 1, C(6, 7): 1}
	for c, owner := range want {
		id, ok := m.Registry().At(c)
		if !ok {
			t.Fatalf("no unit at %s", c)
		}
		u, _ := m.Unit(id)
		if u.Owner != owner {
			t.Fatalf("unit at %s owned by P%d, want P%d", c, u.Owner, owner)
		}
	}

	order := m.State().TurnOrder()
	if len(order) != 4 {
		t.Fatalf("turn order len = %d", len(order))
	}
	wantOrder := []TurnSlot{{0, 1, false}, {0, 3, false}, {1, 2, false}, {1, 4, false}}
	for i, s := range wantOrder {
		if order[i] != s {
			t.Fatalf("slot %d = %+v, want %+v", i, order[i], s)
		}
	}
	if m.MatchLog().Count("place", "spawned") != 4 {
		t.Fatalf("expected 4 spawn entries")
	}
	if m.MatchLog().Count("ai", "place") != 2 {
		t.Fatalf("expected 2 bot placement decisions")
	}
}

func TestPlacementClickGuards(t *testing.T) {
	tm := NewTestMatch()
	m := tm.Match

	tm.Click(C(2, 2))
	tm.Click(C(3, 3)) // spawn still in flight
	tm.RunTicks(10)
	if m.Registry().Occupied(C(3, 3)) {
		t.Fatalf("second click during an in-flight spawn placed a unit")
	}
	if !m.Registry().Occupied(C(2, 2)) {
		t.Fatalf("first click did not place")
	}

	waitForPhase(t, tm, Placing{Player: 0, Round: 1}, 20)
	tm.Click(C(2, 2)) // occupied
	tm.Click(C(20, 20))
	tm.RunTicks(5)
	if m.Registry().Len() != 2 {
		t.Fatalf("units = %d, clicks on occupied or missing cells must be ignored", m.Registry().Len())
	}
	if m.State().Phase() != (Placing{Player: 0, Round: 1}) {
		t.Fatalf("phase moved on to %s", m.State().Phase())
	}
}

func TestClicksIgnoredWhileBotActs(t *testing.T) {
	tm := NewTestMatch(WithParticipants(Bot, Me))
	m := tm.Match
	tm.Click(C(0, 0)) // bot's placement: the human click must not spawn
	tm.RunTicks(5)
	if m.Registry().Occupied(C(0, 0)) {
		t.Fatalf("human placed during the bot's placement")
	}
	if !m.Registry().Occupied(C(7, 7)) {
		t.Fatalf("bot did not place at the far corner")
	}
}

func TestHumanSelectMoveEndsTurn(t *testing.T) {
	tm := placedMatch(t)
	m := tm.Match

	tm.Click(C(7, 7)) // enemy unit: no selection
	if m.MapState().Pending != nil {
		t.Fatalf("selected another player's unit")
	}

	tm.Click(C(0, 0))
	pm := m.MapState().Pending
	if pm == nil || pm.Unit != 1 {
		t.Fatalf("pending = %+v, want unit 1", pm)
	}
	if _, ok := m.MapState().Tint[C(1, 0)]; ok {
		t.Fatalf("occupied cell tinted as a destination")
	}
	if _, ok := m.MapState().Tint[C(0, 2)]; !ok {
		t.Fatalf("free reachable cell not tinted")
	}

	tm.Click(C(0, 2))
	if !m.MapState().Moving {
		t.Fatalf("confirm did not start a move")
	}
	if ph, _ := m.State().Phase().(Turn); !ph.DidMove {
		t.Fatalf("turn not marked as moved: %s", m.State().Phase())
	}
	tm.Click(C(0, 0)) // locked while in flight
	if m.MapState().Pending != nil {
		t.Fatalf("selection allowed while a unit is moving")
	}

	waitForPhase(t, tm, Turn{Index: 1}, 120)
	u, _ := m.Unit(1)
	if u.Cell != C(0, 2) || m.Registry().Occupied(C(0, 0)) {
		t.Fatalf("unit 1 at %s, origin occupied=%v", u.Cell, m.Registry().Occupied(C(0, 0)))
	}
	if !m.MatchLog().HasEntry("move", "arrived", "(0,2)") {
		t.Fatalf("arrival not logged")
	}
}

func TestOnlyTurnHolderCanBeSelected(t *testing.T) {
	tm := placedMatch(t)
	m := tm.Match

	tm.Click(C(1, 0)) // U3 is ours but U1 holds the turn
	if m.MapState().Pending != nil {
		t.Fatalf("selected U3 while U1 holds the turn")
	}
	tm.Click(C(1, 2))
	tm.RunTicks(60)
	if m.Registry().Occupied(C(1, 2)) || m.State().Phase() != (Turn{Index: 0}) {
		t.Fatalf("out-of-turn move went through: phase %s", m.State().Phase())
	}

	tm.Pass() // U3 now holds the turn
	tm.Click(C(1, 0))
	if pm := m.MapState().Pending; pm == nil || pm.Unit != 3 {
		t.Fatalf("pending = %+v, want unit 3", pm)
	}
}

func TestRightClickAndBadConfirmClearSelection(t *testing.T) {
	tm := placedMatch(t)
	m := tm.Match

	tm.Click(C(0, 0))
	tm.RightClick()
	if m.MapState().Pending != nil || len(m.MapState().Tint) != 0 {
		t.Fatalf("right click did not clear")
	}

	tm.Click(C(0, 0))
	tm.Click(C(7, 0)) // out of reach
	if m.MapState().Pending != nil || m.MapState().Moving {
		t.Fatalf("unreachable confirm should clear without moving")
	}
	if m.State().Phase() != (Turn{Index: 0}) {
		t.Fatalf("turn advanced on a rejected confirm")
	}
}

func TestHumanPassHandsTurnToBots(t *testing.T) {
	tm := placedMatch(t)
	m := tm.Match

	tm.Pass()
	if m.State().Phase() != (Turn{Index: 1}) {
		t.Fatalf("phase after pass = %s", m.State().Phase())
	}
	last, ok := m.MatchLog().LastOf("turn", "pass")
	if !ok || last.Unit != "U1" || last.Player != "P0" {
		t.Fatalf("pass entry = %+v,%v", last, ok)
	}

	tm.Pass()
	// Both bot units act, then the turn comes back to the human.
	waitForPhase(t, tm, Turn{Index: 0}, 600)
	if n := m.MatchLog().Count("ai", "move") + m.MatchLog().Count("ai", "hold"); n != 2 {
		t.Fatalf("bot decisions = %d, want 2", n)
	}
}

func TestBotsCycleTurns(t *testing.T) {
	tm := NewTestMatch(WithParticipants(Bot, Bot), WithUnitsPerParticipant(3))
	m := tm.Match

	changes := func(m *Match) int { return m.MatchLog().Count("phase", "change") }
	// 6 placements, then at least two full rounds of turns.
	if !tm.RunUntil(5000, func(m *Match) bool { return changes(m) >= 6+12 }) {
		t.Fatalf("bots stalled: %d phase changes by tick %d\n%s", changes(m), m.TickCount(), m.MatchReport(200))
	}
	if m.Registry().Len() != 6 {
		t.Fatalf("registry holds %d units, want 6", m.Registry().Len())
	}
	seen := make(map[Coord]bool)
	for _, u := range m.Units() {
		if seen[u.Cell] {
			t.Fatalf("two units share %s", u.Cell)
		}
		seen[u.Cell] = true
		if id, ok := m.Registry().At(u.Cell); !ok || id != u.ID {
			t.Fatalf("registry out of sync for U%d at %s", u.ID, u.Cell)
		}
	}
}

func TestRemovingEveryUnitFinishes(t *testing.T) {
	tm := NewTestMatch(WithParticipants(Bot, Bot), WithUnitsPerParticipant(1))
	m := tm.Match
	if !tm.RunUntil(50, func(m *Match) bool { _, ok := m.State().Phase().(Turn); return ok }) {
		t.Fatalf("never reached the first turn")
	}
	for _, u := range m.Units() {
		m.RemoveUnit(u.ID)
	}
	if _, ok := m.State().Phase().(Finished); !ok {
		t.Fatalf("phase = %s, want finished", m.State().Phase())
	}
	if m.Registry().Len() != 0 || len(m.Units()) != 0 {
		t.Fatalf("units left behind")
	}
	tm.RunTicks(10)
	if _, ok := m.State().Phase().(Finished); !ok {
		t.Fatalf("finished match resumed: %s", m.State().Phase())
	}
}

func TestBotThinkDelay(t *testing.T) {
	m, err := NewMatch(FlatLayout(4, 4, 64, 32), nil, MatchConfig{
		Participants:        []Participant{Bot},
		UnitsPerParticipant: 1,
		BotThinkDelay:       250 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	m.Start()
	for i := 0; i < 10; i++ {
		m.Tick(harnessDT, InputFrame{})
	}
	if m.Registry().Len() != 0 {
		t.Fatalf("bot placed before its think delay ran out")
	}
	if m.Queue().Len() != 1 {
		t.Fatalf("waiting bot command not kept: %v", m.Queue().Pending())
	}
	for i := 0; i < 20; i++ {
		m.Tick(harnessDT, InputFrame{})
	}
	if m.Registry().Len() != 1 {
		t.Fatalf("bot never placed")
	}
}

func TestNewMatchRejectsEmptyBoard(t *testing.T) {
	if _, err := NewMatch(NewMapLayout(nil, 64, 32), nil, DefaultMatchConfig(), nil); err != ErrEmptyBoard {
		t.Fatalf("err = %v, want ErrEmptyBoard", err)
	}
	if _, err := NewMatch(FlatLayout(2, 2, 64, 32), nil, MatchConfig{}, nil); err == nil {
		t.Fatalf("empty roster should be rejected")
	}
}

func TestNewMatchRejectsBoardTooSmall(t *testing.T) {
	cfg := MatchConfig{Participants: []Participant{Bot, Bot}, UnitsPerParticipant: 2}
	if _, err := NewMatch(FlatLayout(2, 1, 64, 32), nil, cfg, nil); !errors.Is(err, ErrBoardTooSmall) {
		t.Fatalf("err = %v, want ErrBoardTooSmall", err)
	}

	// A board with exactly one cell per unit still finishes placement.
	tm := NewTestMatch(WithFlatBoard(2, 2), WithParticipants(Bot, Bot), WithUnitsPerParticipant(2))
	if !tm.RunUntil(200, func(m *Match) bool { _, ok := m.State().Phase().(Turn); return ok }) {
		t.Fatalf("placement stalled on a full board: phase %s, units %d, queued %d",
			tm.Match.State().Phase(), tm.Match.Registry().Len(), tm.Match.Queue().Len())
	}
	if tm.Match.Registry().Len() != 4 {
		t.Fatalf("units = %d, want 4", tm.Match.Registry().Len())
	}
}

func TestMatchReportSections(t *testing.T) {
	tm := placedMatch(t)
	tm.Pass()
	report := tm.Match.MatchReport(0)
	for _, want := range []string{
		"--- Iso-Tactics match report ---",
		"participants: P0=me P1=bot",
		"turn order: U1/P0 U3/P0 U2/P1 U4/P1",
		"U1 police P0 cell=(0,0)",
		"U1 moves=0 cells=0 arrived=0 holds=0 passes=1",
		"place     spawned",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}
