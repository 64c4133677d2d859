package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Iso-Tactics/internal/config"
	"github.com/Garsondee/Iso-Tactics/internal/game"
	"github.com/Garsondee/Iso-Tactics/internal/journal"
	"github.com/Garsondee/Iso-Tactics/internal/logs"
)

func main() {
	cfgName := flag.String("config", "", "config file (default: search for configs/iso-tactics.yml upward)")
	flag.Parse()

	path, err := config.Resolve(*cfgName)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadAndWatch(path, func(_ *config.Config, err error) {
		if err != nil {
			logs.Warn("config reload rejected", zap.Error(err))
			return
		}
		logs.Info("config reloaded; press R to start a match with it")
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := logs.Init("iso-tactics", cfg.Log); err != nil {
		log.Fatal(err)
	}
	defer logs.Sync()
	logs.Info("config loaded", zap.String("path", path))

	var j *journal.Journal
	if cfg.Journal.Path != "" {
		j, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			logs.Fatal("open journal", zap.Error(err))
		}
		defer j.Close()
	}

	var last *game.Match
	saveLast := func() {
		if j == nil || last == nil {
			return
		}
		seed := config.Current().Map.Generate.Seed
		if err := j.SaveMatch(journal.RecordFor(last, seed), last.MatchLog().Entries()); err != nil {
			logs.Warn("journal save failed", zap.String("match", last.ID()), zap.Error(err))
		}
	}

	factory := func() (*game.Match, error) {
		saveLast()
		m, err := game.NewMatchFromConfig(config.Current(), logs.Logger())
		if err != nil {
			return nil, err
		}
		last = m
		return m, nil
	}

	g, err := game.New(cfg.Window.Width, cfg.Window.Height, factory, logs.Logger())
	if err != nil {
		logs.Fatal("start match", zap.Error(err))
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		logs.Error("game exited", zap.Error(err))
	}
	saveLast()
}
