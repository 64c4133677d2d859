// Package journal stores finished matches and their match logs in SQLite.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Garsondee/Iso-Tactics/internal/game"
)

// Journal wraps a SQLite connection holding match records.
type Journal struct {
	conn *sqlx.DB
}

// MatchRecord is one row of the matches table.
type MatchRecord struct {
	ID           string    `db:"id"`
	Seed         int64     `db:"seed"`
	Participants string    `db:"participants"` // comma separated, turn order
	Ticks        int       `db:"ticks"`
	Phase        string    `db:"phase"`
	Units        int       `db:"units"`
	Moves        int       `db:"moves"`
	CreatedAt    time.Time `db:"created_at"`
}

type eventRow struct {
	Tick     int     `db:"tick"`
	Unit     string  `db:"unit"`
	Player   string  `db:"player"`
	Category string  `db:"category"`
	Key      string  `db:"event_key"`
	Value    string  `db:"value"`
	NumVal   float64 `db:"num_val"`
}

// Open opens or creates a journal at path.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		participants TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		phase TEXT NOT NULL,
		units INTEGER NOT NULL,
		moves INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL REFERENCES matches(id),
		tick INTEGER NOT NULL,
		unit TEXT NOT NULL,
		player TEXT NOT NULL,
		category TEXT NOT NULL,
		event_key TEXT NOT NULL,
		value TEXT NOT NULL,
		num_val REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_match_events_match ON match_events(match_id, tick);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// RecordFor summarises m for the matches table.
func RecordFor(m *game.Match, seed int64) MatchRecord {
	names := make([]string, 0, len(m.State().Participants()))
	for _, p := range m.State().Participants() {
		names = append(names, p.String())
	}
	return MatchRecord{
		ID:           m.ID(),
		Seed:         seed,
		Participants: strings.Join(names, ","),
		Ticks:        m.TickCount(),
		Phase:        m.State().Phase().String(),
		Units:        m.Registry().Len(),
		Moves:        m.MatchLog().Count("move", "start"),
		CreatedAt:    time.Now().UTC(),
	}
}

// SaveMatch writes a match and its full log in one transaction. Saving the
// same match again replaces the earlier copy.
func (j *Journal) SaveMatch(rec MatchRecord, entries []game.MatchLogEntry) error {
	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM match_events WHERE match_id = ?", rec.ID); err != nil {
		return err
	}
	if _, err := tx.NamedExec(`INSERT OR REPLACE INTO matches
		(id, seed, participants, ticks, phase, units, moves, created_at)
		VALUES (:id, :seed, :participants, :ticks, :phase, :units, :moves, :created_at)`, rec); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO match_events
		(match_id, tick, unit, player, category, event_key, value, num_val)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(rec.ID, e.Tick, e.Unit, e.Player, e.Category, e.Key, e.Value, e.NumVal); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// Match loads one match record.
func (j *Journal) Match(id string) (MatchRecord, error) {
	var rec MatchRecord
	err := j.conn.Get(&rec, "SELECT * FROM matches WHERE id = ?", id)
	return rec, err
}

// RecentMatches returns the newest matches first.
func (j *Journal) RecentMatches(limit int) ([]MatchRecord, error) {
	var recs []MatchRecord
	err := j.conn.Select(&recs, "SELECT * FROM matches ORDER BY created_at DESC, id LIMIT ?", limit)
	return recs, err
}

// Events returns a match's log in tick order.
func (j *Journal) Events(matchID string) ([]game.MatchLogEntry, error) {
	var rows []eventRow
	err := j.conn.Select(&rows,
		"SELECT tick, unit, player, category, event_key, value, num_val FROM match_events WHERE match_id = ? ORDER BY tick, id",
		matchID)
	if err != nil {
		return nil, err
	}
	out := make([]game.MatchLogEntry, len(rows))
	for i, r := range rows {
		out[i] = game.MatchLogEntry(r)
	}
	return out, nil
}
