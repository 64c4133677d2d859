package game

import (
	"fmt"
	"strings"
)

// MatchReport renders a plain-text report of the match: the board, the turn
// order, each unit's activity and the last lastTicks ticks of the match log.
func (m *Match) MatchReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 600
	}
	toTick := m.tick
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Iso-Tactics match report ---\n")
	fmt.Fprintf(&b, "match=%s tick=%d phase=%s cells=%d units=%d\n",
		m.id, m.tick, m.state.Phase(), m.layout.Len(), m.registry.Len())

	b.WriteString("participants:")
	for i, p := range m.state.Participants() {
		fmt.Fprintf(&b, " %s=%s", playerLabel(i), p)
	}
	b.WriteByte('\n')

	if order := m.state.TurnOrder(); len(order) > 0 {
		b.WriteString("turn order:")
		for _, slot := range order {
			if slot.Vacant {
				b.WriteString(" (vacant)")
				continue
			}
			fmt.Fprintf(&b, " U%d/%s", slot.Unit, playerLabel(slot.Player))
		}
		b.WriteByte('\n')
	}

	b.WriteString("\nunits:\n")
	for _, u := range m.Units() {
		fmt.Fprintf(&b, "  %s %-6s %s cell=%s facing=%s travel=%d speed=%.1f air=%t\n",
			unitLabel(u), u.Kind, playerLabel(u.Owner), u.Cell, u.Facing, u.TravelDistance, u.TravelSpeed, u.IsAir)
	}

	b.WriteString("\nactivity:\n")
	activity := m.matchLog.UnitActivity()
	if len(activity) == 0 {
		b.WriteString("  (nothing recorded yet)\n")
	}
	for _, a := range activity {
		fmt.Fprintf(&b, "  %s moves=%d cells=%d arrived=%d holds=%d passes=%d\n",
			a.Label, a.Moves, a.Cells, a.Arrived, a.Holds, a.Passes)
	}

	fmt.Fprintf(&b, "\nlog T=%d..%d:\n", fromTick, toTick)
	b.WriteString(m.matchLog.FormatRange(fromTick, toTick))
	return b.String()
}
