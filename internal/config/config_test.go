package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	if err := d.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Match.UnitsPerParticipant != 3 || c.Match.BotThinkDelay != 400*time.Millisecond {
		t.Fatalf("unexpected defaults: %+v", c.Match)
	}
	if len(c.Match.Participants) != 2 || c.Match.Participants[0] != "me" {
		t.Fatalf("unexpected participants: %v", c.Match.Participants)
	}
	if Current() != c {
		t.Fatalf("Load should publish Current")
	}
}

func TestLoadYAMLOverridesAndResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "game.yml", `
match:
  participants: [bot, bot, bot]
  units_per_participant: 2
  bot_think_delay: 1.5s
map:
  path: maps/arena.tmj
journal:
  path: matches.db
log:
  file: logs/iso.log
`)
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(c.Match.Participants); got != 3 {
		t.Fatalf("participants = %d, want 3", got)
	}
	if c.Match.BotThinkDelay != 1500*time.Millisecond {
		t.Fatalf("bot_think_delay = %v", c.Match.BotThinkDelay)
	}
	if c.Window.Width != 960 {
		t.Fatalf("unset keys should keep defaults, width=%d", c.Window.Width)
	}
	if want := filepath.Join(dir, "maps", "arena.tmj"); c.Map.Path != want {
		t.Fatalf("map path = %q, want %q", c.Map.Path, want)
	}
	if want := filepath.Join(dir, "matches.db"); c.Journal.Path != want {
		t.Fatalf("journal path = %q, want %q", c.Journal.Path, want)
	}
	if want := filepath.Join(dir, "logs", "iso.log"); c.Log.File != want {
		t.Fatalf("log file = %q, want %q", c.Log.File, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"no units":          "match:\n  units_per_participant: 0\n",
		"unknown player":    "match:\n  participants: [me, alien]\n",
		"empty board":       "map:\n  generate:\n    cols: 0\n",
		"board too small":   "map:\n  generate:\n    cols: 2\n    rows: 1\n",
		"negative delay":    "match:\n  bot_think_delay: -1s\n",
		"zero window width": "window:\n  width: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, t.TempDir(), "bad.yml", body)
			_, err := Load(p)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("want ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ISO_MATCH_UNITS_PER_PARTICIPANT", "5")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Match.UnitsPerParticipant != 5 {
		t.Fatalf("units = %d, want 5 from env", c.Match.UnitsPerParticipant)
	}
}

func TestLoadAndWatchPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "watch.yml", "match:\n  units_per_participant: 2\n")

	changed := make(chan *Config, 4)
	c, err := LoadAndWatch(p, func(next *Config, err error) {
		if err == nil {
			changed <- next
		}
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Match.UnitsPerParticipant != 2 {
		t.Fatalf("initial units = %d", c.Match.UnitsPerParticipant)
	}

	writeFile(t, dir, "watch.yml", "match:\n  units_per_participant: 4\n")
	deadline := time.After(5 * time.Second)
	for {
		select {
		case next := <-changed:
			if next.Match.UnitsPerParticipant == 4 {
				if Current().Match.UnitsPerParticipant != 4 {
					t.Fatalf("Current not updated")
				}
				return
			}
		case <-deadline:
			t.Fatalf("config change not observed")
		}
	}
}

func TestResolveSearchesUpward(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	want := writeFile(t, filepath.Join(root, "configs"), "iso-tactics.yml", "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := findConfigUpward(nested); got != want {
		t.Fatalf("findConfigUpward = %q, want %q", got, want)
	}
}
