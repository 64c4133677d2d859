package game

import "fmt"

// Command is a message between systems. Commands pushed while the queue is
// being drained are handled on the next tick, so no transition ever re-enters
// itself.
type Command interface {
	isCommand()
	String() string
}

// SpawnUnit asks the spawn collaborator to create a unit for Player at At.
type SpawnUnit struct {
	Player int
	At     Coord
}

// UnitSpawned reports that a unit now exists on the board.
type UnitSpawned struct {
	Unit UnitID
}

// PlaceAIUnit asks the bot controller to choose a placement for Player.
type PlaceAIUnit struct {
	Player int
}

// MoveAIUnit asks the bot controller to act for Unit, the turn holder.
type MoveAIUnit struct {
	Unit UnitID
}

// TurnEnded reports that Unit finished its move.
type TurnEnded struct {
	Unit UnitID
}

func (SpawnUnit) isCommand() {}
func (UnitSpawned) isCommand() {}
func (PlaceAIUnit) isCommand() {}
func (MoveAIUnit) isCommand() {}
func (TurnEnded) isCommand() {}

func (c SpawnUnit) String() string { return fmt.Sprintf("spawn_unit p%d %s", c.Player, c.At) }
func (c UnitSpawned) String() string { return fmt.Sprintf("unit_spawned u%d", c.Unit) }
func (c PlaceAIUnit) String() string { return fmt.Sprintf("place_ai_unit p%d", c.Player) }
func (c MoveAIUnit) String() string { return fmt.Sprintf("move_ai_unit u%d", c.Unit) }
func (c TurnEnded) String() string { return fmt.Sprintf("turn_ended u%d", c.Unit) }

// CommandQueue buffers commands for the next drain.
type CommandQueue struct {
	pending []Command
}

// Push enqueues a command.
func (q *CommandQueue) Push(c Command) {
	q.pending = append(q.pending, c)
}

// Drain returns everything queued so far and starts a fresh batch.
func (q *CommandQueue) Drain() []Command {
	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued commands.
func (q *CommandQueue) Len() int { return len(q.pending) }

// Pending returns a copy of the queued commands without draining them.
func (q *CommandQueue) Pending() []Command {
	out := make([]Command, len(q.pending))
	copy(out, q.pending)
	return out
}
