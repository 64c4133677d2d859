package game

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Participant is who controls a player slot.
type Participant int

const (
	Bot Participant = iota
	Me
)

func (p Participant) String() string {
	switch p {
	case Bot:
		return "bot"
	case Me:
		return "me"
	default:
		return "unknown"
	}
}

// ParseParticipant accepts "bot" or "me" (any case).
func ParseParticipant(s string) (Participant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bot":
		return Bot, nil
	case "me", "human":
		return Me, nil
	default:
		return 0, fmt.Errorf("unknown participant %q", s)
	}
}

// Phase is the match phase. It is one of Placing, Turn or Finished.
type Phase interface {
	isPhase()
	String() string
}

// Placing: Player places its unit for Round.
type Placing struct {
	Player int
	Round  int
}

// Turn: the unit in turn order slot Index acts.
type Turn struct {
	Index   int
	DidMove bool
}

// Finished: every unit has left the board.
type Finished struct{}

func (Placing) isPhase() {}
func (Turn) isPhase() {}
func (Finished) isPhase() {}

func (p Placing) String() string { return fmt.Sprintf("placing(p%d, r%d)", p.Player, p.Round) }
func (t Turn) String() string { return fmt.Sprintf("turn(%d, moved=%t)", t.Index, t.DidMove) }
func (Finished) String() string { return "finished" }

// TurnSlot is one entry of the turn order. Vacant slots belong to units that
// left the board and are skipped.
type TurnSlot struct {
	Player int
	Unit   UnitID
	Vacant bool
}

var (
	ErrNoParticipants = errors.New("game state: roster is empty")
	ErrNoUnits        = errors.New("game state: units per participant must be at least 1")
)

// GameState is the placement/turn state machine. Transitions that do not apply
// to the current phase are ignored.
type GameState struct {
	phase               Phase
	participants        []Participant
	unitsPerParticipant int
	placed              [][]UnitID // per player, in placement order
	turnOrder           []TurnSlot
	log                 *zap.Logger
}

// NewGameState starts a match in Placing{0, 0}.
func NewGameState(participants []Participant, unitsPerParticipant int, log *zap.Logger) (*GameState, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if unitsPerParticipant < 1 {
		return nil, ErrNoUnits
	}
	if log == nil {
		log = zap.NewNop()
	}
	roster := make([]Participant, len(participants))
	copy(roster, participants)
	return &GameState{
		phase:               Placing{Player: 0, Round: 0},
		participants:        roster,
		unitsPerParticipant: unitsPerParticipant,
		placed:              make([][]UnitID, len(roster)),
		log:                 log,
	}, nil
}

// Start asks for the first placement when player 0 is a bot.
func (gs *GameState) Start(q *CommandQueue) {
	if p, ok := gs.phase.(Placing); ok && gs.participants[p.Player] == Bot {
		q.Push(PlaceAIUnit{Player: p.Player})
	}
}

// Phase returns the current phase.
func (gs *GameState) Phase() Phase { return gs.phase }

// Participants returns the roster.
func (gs *GameState) Participants() []Participant { return gs.participants }

// Participant returns the controller of player.
func (gs *GameState) Participant(player int) Participant { return gs.participants[player] }

// UnitsPerParticipant returns how many units each player places.
func (gs *GameState) UnitsPerParticipant() int { return gs.unitsPerParticipant }

// UnitsOf returns the units player has placed, in placement order.
func (gs *GameState) UnitsOf(player int) []UnitID {
	if player < 0 || player >= len(gs.placed) {
		return nil
	}
	return gs.placed[player]
}

// TurnOrder returns the turn order. It is empty while placing.
func (gs *GameState) TurnOrder() []TurnSlot { return gs.turnOrder }

// ActingPlayer returns the player whose action the game is waiting for.
func (gs *GameState) ActingPlayer() (int, bool) {
	switch p := gs.phase.(type) {
	case Placing:
		return p.Player, true
	case Turn:
		return gs.turnOrder[p.Index].Player, true
	case Finished:
		return 0, false
	}
	return 0, false
}

// CurrentUnit returns the unit holding the turn.
func (gs *GameState) CurrentUnit() (UnitID, bool) {
	switch p := gs.phase.(type) {
	case Turn:
		return gs.turnOrder[p.Index].Unit, true
	case Placing, Finished:
		return 0, false
	}
	return 0, false
}

// Place records a freshly spawned unit for the placing player and moves on to
// the next placement, or to the first turn once every round is done.
func (gs *GameState) Place(unit UnitID, q *CommandQueue) {
	var p Placing
	switch ph := gs.phase.(type) {
	case Placing:
		p = ph
	case Turn, Finished:
		return
	}

	gs.placed[p.Player] = append(gs.placed[p.Player], unit)
	gs.log.Debug("unit placed", zap.Int("player", p.Player), zap.Int("round", p.Round), zap.Int("unit", int(unit)))

	player, round := p.Player+1, p.Round
	if player >= len(gs.participants) {
		player = 0
		round++
	}
	if round >= gs.unitsPerParticipant {
		gs.endPlacePhase(q)
		return
	}

	gs.phase = Placing{Player: player, Round: round}
	if gs.participants[player] == Bot {
		q.Push(PlaceAIUnit{Player: player})
	}
}

// endPlacePhase builds the turn order from every placed unit, ordered by player
// then by the order each player placed them, and hands the first turn out.
func (gs *GameState) endPlacePhase(q *CommandQueue) {
	order := make([]TurnSlot, 0, len(gs.participants)*gs.unitsPerParticipant)
	for player, units := range gs.placed {
		for _, u := range units {
			order = append(order, TurnSlot{Player: player, Unit: u})
		}
	}
	gs.turnOrder = order

	if len(order) == 0 {
		gs.phase = Finished{}
		gs.log.Info("placement ended with no units on the board")
		return
	}
	gs.phase = Turn{Index: 0, DidMove: false}
	gs.log.Info("placement finished", zap.Int("turn_order", len(order)))
	gs.announceTurn(q)
}

// NextTurn hands the turn to the next occupied slot, wrapping around. When no
// slot is occupied the match is Finished.
func (gs *GameState) NextTurn(q *CommandQueue) {
	var t Turn
	switch ph := gs.phase.(type) {
	case Turn:
		t = ph
	case Placing, Finished:
		return
	}

	n := len(gs.turnOrder)
	for step := 1; step <= n; step++ {
		i := (t.Index + step) % n
		if gs.turnOrder[i].Vacant {
			continue
		}
		gs.phase = Turn{Index: i, DidMove: false}
		gs.announceTurn(q)
		return
	}
	gs.phase = Finished{}
	gs.log.Info("no units left, match finished")
}

// Pass ends the current turn without a move.
func (gs *GameState) Pass(q *CommandQueue) {
	gs.NextTurn(q)
}

// MarkMoved records that the turn holder has started its move.
func (gs *GameState) MarkMoved() {
	if t, ok := gs.phase.(Turn); ok {
		t.DidMove = true
		gs.phase = t
	}
}

// Vacate takes unit out of the match. During placement it is forgotten; once
// turns run its slot is skipped. If it held the turn, the turn moves on.
func (gs *GameState) Vacate(unit UnitID, q *CommandQueue) {
	switch ph := gs.phase.(type) {
	case Placing:
		for p, units := range gs.placed {
			for i, u := range units {
				if u == unit {
					gs.placed[p] = append(units[:i:i], units[i+1:]...)
					return
				}
			}
		}
	case Turn:
		for i := range gs.turnOrder {
			if gs.turnOrder[i].Unit != unit || gs.turnOrder[i].Vacant {
				continue
			}
			gs.turnOrder[i].Vacant = true
			if i == ph.Index {
				gs.NextTurn(q)
			}
			return
		}
	case Finished:
	}
}

func (gs *GameState) announceTurn(q *CommandQueue) {
	t, ok := gs.phase.(Turn)
	if !ok {
		return
	}
	slot := gs.turnOrder[t.Index]
	gs.log.Debug("turn", zap.Int("index", t.Index), zap.Int("player", slot.Player), zap.Int("unit", int(slot.Unit)))
	if gs.participants[slot.Player] == Bot {
		q.Push(MoveAIUnit{Unit: slot.Unit})
	}
}
