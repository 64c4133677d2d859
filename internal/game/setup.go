package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Garsondee/Iso-Tactics/internal/config"
)

// MatchConfigFromConfig converts the match section of the config file.
func MatchConfigFromConfig(c config.MatchConfig) (MatchConfig, error) {
	ps := make([]Participant, 0, len(c.Participants))
	for _, name := range c.Participants {
		p, err := ParseParticipant(name)
		if err != nil {
			return MatchConfig{}, err
		}
		ps = append(ps, p)
	}
	return MatchConfig{
		Participants:        ps,
		UnitsPerParticipant: c.UnitsPerParticipant,
		Templates:           DefaultTemplates(),
		BotThinkDelay:       c.BotThinkDelay,
		Verbose:             c.Verbose,
	}, nil
}

// GenConfigFromConfig converts the terrain generator section of the config file.
func GenConfigFromConfig(c config.GenerateConfig) GenConfig {
	return GenConfig{
		Cols:       c.Cols,
		Rows:       c.Rows,
		Layers:     c.Layers,
		Seed:       c.Seed,
		Frequency:  c.Frequency,
		Octaves:    c.Octaves,
		TileWidth:  c.TileWidth,
		TileHeight: c.TileHeight,
	}
}

// BoardFromConfig builds the board the config asks for: the Tiled map at
// c.Path, or generated terrain when no path is set.
func BoardFromConfig(c config.MapConfig) (*MapLayout, []Tile, error) {
	var tm *TiledMap
	if c.Path != "" {
		var err error
		tm, err = LoadTiledMap(c.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load map: %w", err)
		}
	} else {
		tm = GenerateTerrain(GenConfigFromConfig(c.Generate))
	}
	layout, tiles := BuildMap(tm)
	if layout.Len() == 0 {
		return nil, nil, ErrEmptyBoard
	}
	return layout, tiles, nil
}

// NewMatchFromConfig builds an unstarted match from a full config.
func NewMatchFromConfig(c *config.Config, log *zap.Logger) (*Match, error) {
	mc, err := MatchConfigFromConfig(c.Match)
	if err != nil {
		return nil, err
	}
	layout, tiles, err := BoardFromConfig(c.Map)
	if err != nil {
		return nil, err
	}
	return NewMatch(layout, tiles, mc, log)
}
