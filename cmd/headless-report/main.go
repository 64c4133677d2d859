package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Garsondee/Iso-Tactics/internal/config"
	"github.com/Garsondee/Iso-Tactics/internal/game"
	"github.com/Garsondee/Iso-Tactics/internal/journal"
	"github.com/Garsondee/Iso-Tactics/internal/logs"
)

type runStats struct {
	runIndex int
	seed     int64
	matchID  string
	cells    int
	units    int
	phase    string

	firstTurnTick int
	placements    int
	moves         int
	cellsMoved    int
	arrivals      int
	holds         int
	turnChanges   int
	longestMove   int
	movesByPlayer map[string]int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var bots int
	var units int
	var journalPath string
	var cfgName string

	flag.IntVar(&runs, "runs", 5, "number of headless matches")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "terrain seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&bots, "bots", 2, "number of bot participants")
	flag.IntVar(&units, "units", 0, "units per participant (0 = from config)")
	flag.StringVar(&journalPath, "journal", "", "sqlite journal to record matches in")
	flag.StringVar(&cfgName, "config", "", "config file (default: search for configs/iso-tactics.yml upward)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if bots <= 0 {
		fmt.Println("error: -bots must be > 0")
		return
	}

	path, err := config.Resolve(cfgName)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	if err := logs.Init("headless-report", cfg.Log); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	defer logs.Sync()
	if units <= 0 {
		units = cfg.Match.UnitsPerParticipant
	}

	var j *journal.Journal
	if journalPath != "" {
		j, err = journal.Open(journalPath)
		if err != nil {
			logs.Fatal("open journal", zap.Error(err))
		}
		defer j.Close()
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d ticks=%d bots=%d units=%d seed_base=%d seed_step=%d\n\n", runs, ticks, bots, units, seedBase, seedStep)

	gen := game.GenConfigFromConfig(cfg.Map.Generate)
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		gen.Seed = seedBase + int64(i)*seedStep
		tm := runMatch(gen, bots, units, ticks)
		stats := collectStats(i+1, gen.Seed, tm.Match)
		all = append(all, stats)
		printRun(stats)

		if j != nil {
			if err := j.SaveMatch(journal.RecordFor(tm.Match, gen.Seed), tm.Match.MatchLog().Entries()); err != nil {
				logs.Error("journal save failed", zap.String("match", stats.matchID), zap.Error(err))
			}
		}
	}

	printAggregate(all)
}

func runMatch(gen game.GenConfig, bots, units, ticks int) *game.TestMatch {
	ps := make([]game.Participant, bots)
	for i := range ps {
		ps[i] = game.Bot
	}
	tm := game.NewTestMatch(
		game.WithGeneratedBoard(gen),
		game.WithParticipants(ps...),
		game.WithUnitsPerParticipant(units),
		game.WithLogger(logs.Logger()),
	)
	tm.RunTicks(ticks)
	return tm
}

func collectStats(runIndex int, seed int64, m *game.Match) runStats {
	log := m.MatchLog()
	rs := runStats{
		runIndex:      runIndex,
		seed:          seed,
		matchID:       m.ID(),
		cells:         m.Layout().Len(),
		units:         m.Registry().Len(),
		phase:         m.State().Phase().String(),
		firstTurnTick: log.FirstTick("phase", "change", "turn("),
		placements:    log.Count("place", "spawned"),
		moves:         log.Count("move", "start"),
		arrivals:      log.Count("move", "arrived"),
		holds:         log.Count("ai", "hold"),
		turnChanges:   log.CountMatching("phase", "change", "turn("),
		movesByPlayer: map[string]int{},
	}
	for _, a := range log.PlayerActivity() {
		rs.cellsMoved += a.Cells
		rs.longestMove = max(rs.longestMove, a.Longest)
		rs.movesByPlayer[a.Label] = a.Moves
	}
	return rs
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d match=%s) ---\n", rs.runIndex, rs.seed, rs.matchID)
	fmt.Printf("board: cells=%d units=%d final_phase=%s\n", rs.cells, rs.units, rs.phase)
	fmt.Printf("phase_markers: first_turn=%d turn_changes=%d\n", rs.firstTurnTick, rs.turnChanges)
	fmt.Printf("event_totals: placements=%d moves=%d arrivals=%d holds=%d cells_moved=%d longest_move=%d\n",
		rs.placements, rs.moves, rs.arrivals, rs.holds, rs.cellsMoved, rs.longestMove)
	fmt.Printf("moves_by_player: %s\n", joinCounts(rs.movesByPlayer))
	fmt.Println()
}

func printAggregate(all []runStats) {
	totalMoves := 0
	totalArrivals := 0
	totalHolds := 0
	totalCells := 0
	totalTurns := 0
	stalled := 0
	firstTurnTicks := make([]int, 0, len(all))
	byPlayer := map[string]int{}

	for _, rs := range all {
		totalMoves += rs.moves
		totalArrivals += rs.arrivals
		totalHolds += rs.holds
		totalCells += rs.cellsMoved
		totalTurns += rs.turnChanges
		if rs.firstTurnTick >= 0 {
			firstTurnTicks = append(firstTurnTicks, rs.firstTurnTick)
		}
		if isStalled(rs) {
			stalled++
		}
		for p, n := range rs.movesByPlayer {
			byPlayer[p] += n
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stalled_runs=%d\n", len(all), stalled)
	fmt.Printf("avg_per_run: moves=%.1f arrivals=%.1f holds=%.1f cells_moved=%.1f turn_changes=%.1f\n",
		avg(totalMoves, len(all)), avg(totalArrivals, len(all)), avg(totalHolds, len(all)), avg(totalCells, len(all)), avg(totalTurns, len(all)))
	fmt.Printf("avg_first_turn_tick=%s\n", avgTickString(firstTurnTicks))
	fmt.Printf("moves_by_player: %s\n", joinCounts(byPlayer))
}

// isStalled reports a run that never left placement or never moved a unit.
func isStalled(rs runStats) bool {
	return rs.firstTurnTick < 0 || (rs.moves == 0 && rs.holds == 0)
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}
