package game

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds procedural terrain parameters.
type GenConfig struct {
	Cols       int
	Rows       int
	Layers     int     // number of elevation bands (>= 1)
	Seed       int64   // 0 = random
	Frequency  float64 // noise frequency per cell
	Octaves    int
	TileWidth  int
	TileHeight int
}

// DefaultGenConfig returns a board that fits the default window.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Cols:       10,
		Rows:       10,
		Layers:     3,
		Seed:       0,
		Frequency:  0.12,
		Octaves:    3,
		TileWidth:  64,
		TileHeight: 32,
	}
}

// GenerateTerrain produces a layered Tiled map from simplex noise. Each column of
// the board gets one top tile whose layer is the quantised elevation. Tiles are
// written in editor coordinates so the map goes through the same correction as a
// hand-authored .tmj file.
func GenerateTerrain(cfg GenConfig) *TiledMap {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63() // #nosec G404 -- terrain only
	}
	layers := max(1, cfg.Layers)
	octaves := max(1, cfg.Octaves)

	elev := opensimplex.NewNormalized(seed)
	variant := opensimplex.NewNormalized(seed + 1)

	// Board cells start at (layers-1, layers-1) so every editor coordinate
	// editor = board + 1 - layer stays non-negative.
	w := cfg.Cols + layers
	h := cfg.Rows + layers
	tm := &TiledMap{
		Width:      w,
		Height:     h,
		TileWidth:  cfg.TileWidth,
		TileHeight: cfg.TileHeight,
		Layers:     make([]TiledLayer, layers),
	}
	for i := range tm.Layers {
		tm.Layers[i] = TiledLayer{ID: i + 1, Name: layerName(i), Width: w, Height: h, Data: make([]int, w*h)}
	}

	base := layers - 1
	for cy := 0; cy < cfg.Rows; cy++ {
		for cx := 0; cx < cfg.Cols; cx++ {
			e := octaveNoise(elev, float64(cx), float64(cy), octaves, cfg.Frequency, 0.5)
			l := int(math.Floor(e * float64(layers)))
			if l >= layers {
				l = layers - 1
			}
			if l < 0 {
				l = 0
			}
			bx, by := base+cx, base+cy
			ex, ey := bx+1-l, by+1-l
			gid := 2*l + 1
			if variant.Eval2(float64(cx)*0.5, float64(cy)*0.5) > 0.5 {
				gid++
			}
			tm.Layers[l].Data[ex+ey*w] = gid
		}
	}
	return tm
}

func layerName(i int) string {
	names := []string{"ground", "hills", "ridge", "peaks"}
	if i < len(names) {
		return names[i]
	}
	return "layer"
}

// octaveNoise sums several noise octaves and renormalises to [0,1).
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amp := 1.0
	norm := 0.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	return total / norm
}
