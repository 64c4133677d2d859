package game

import (
	"fmt"
	"strings"
)

// MatchLogEntry is one recorded match event.
type MatchLogEntry struct {
	Tick     int
	Unit     string  // label e.g. "U3", or "--" for match-wide events
	Player   string  // "P0", "P1", or "--"
	Category string  // phase, place, select, move, turn, ai
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // cells for move/start, otherwise optional
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] U3   P1  move      arrived          (4,2)
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-3s %-9s %-16s %s",
		e.Tick, e.Unit, e.Player, e.Category, e.Key, e.Value)
}

func (e MatchLogEntry) is(category, key string) bool {
	return (category == "" || e.Category == category) && (key == "" || e.Key == key)
}

// MatchLog collects structured events for one match. Unlike EventFeed (UI
// ring-buffer) it is unbounded and machine-readable; the journal persists it.
type MatchLog struct {
	MatchID string
	entries []MatchLogEntry
	verbose bool
}

// NewMatchLog creates a MatchLog. If verbose is true, per-leg movement
// entries are also recorded.
func NewMatchLog(matchID string, verbose bool) *MatchLog {
	return &MatchLog{MatchID: matchID, verbose: verbose}
}

func (ml *MatchLog) Add(tick int, unit, player, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Unit:     unit,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (ml *MatchLog) AddVerbose(tick int, unit, player, category, key, value string, numVal float64) {
	if ml.verbose {
		ml.Add(tick, unit, player, category, key, value, numVal)
	}
}

func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Count returns how many entries match category and key. Empty strings match
// anything.
func (ml *MatchLog) Count(category, key string) int {
	return ml.CountMatching(category, key, "")
}

// CountMatching is Count restricted to entries whose Value contains substr.
func (ml *MatchLog) CountMatching(category, key, substr string) int {
	n := 0
	for _, e := range ml.entries {
		if e.is(category, key) && strings.Contains(e.Value, substr) {
			n++
		}
	}
	return n
}

// HasEntry reports whether any entry matches category, key and value substring.
func (ml *MatchLog) HasEntry(category, key, substr string) bool {
	return ml.FirstTick(category, key, substr) >= 0
}

// FirstTick returns the tick of the earliest matching entry, or -1.
func (ml *MatchLog) FirstTick(category, key, substr string) int {
	for _, e := range ml.entries {
		if e.is(category, key) && strings.Contains(e.Value, substr) {
			return e.Tick
		}
	}
	return -1
}

// LastOf returns the most recent entry matching category and key.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		if ml.entries[i].is(category, key) {
			return ml.entries[i], true
		}
	}
	return MatchLogEntry{}, false
}

// FormatRange renders the entries with fromTick <= Tick <= toTick, one per line.
func (ml *MatchLog) FormatRange(fromTick, toTick int) string {
	var sb strings.Builder
	for _, e := range ml.entries {
		if e.Tick < fromTick || e.Tick > toTick {
			continue
		}
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Activity is what one unit or one player did over a match.
type Activity struct {
	Label   string
	Moves   int
	Cells   int // cells travelled over all moves
	Longest int // longest single move in cells
	Arrived int
	Holds   int
	Passes  int
}

// UnitActivity folds the log into per-unit activity, in order of first
// appearance. Match-wide entries are skipped.
func (ml *MatchLog) UnitActivity() []Activity {
	return ml.activity(func(e MatchLogEntry) string { return e.Unit })
}

// PlayerActivity is UnitActivity grouped by owning player instead.
func (ml *MatchLog) PlayerActivity() []Activity {
	return ml.activity(func(e MatchLogEntry) string { return e.Player })
}

func (ml *MatchLog) activity(key func(MatchLogEntry) string) []Activity {
	idx := make(map[string]int)
	var out []Activity
	for _, e := range ml.entries {
		label := key(e)
		if label == "--" || label == "" {
			continue
		}
		i, ok := idx[label]
		if !ok {
			i = len(out)
			idx[label] = i
			out = append(out, Activity{Label: label})
		}
		a := &out[i]
		switch {
		case e.is("move", "start"):
			n := int(e.NumVal)
			a.Moves++
			a.Cells += n
			a.Longest = max(a.Longest, n)
		case e.is("move", "arrived"):
			a.Arrived++
		case e.is("ai", "hold"):
			a.Holds++
		case e.is("turn", "pass"):
			a.Passes++
		}
	}
	return out
}

func unitLabel(u *Unit) string {
	if u == nil {
		return "--"
	}
	return fmt.Sprintf("U%d", u.ID)
}

func playerLabel(player int) string {
	if player < 0 {
		return "--"
	}
	return fmt.Sprintf("P%d", player)
}
