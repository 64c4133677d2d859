package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// TiledLayer is one tile layer of a Tiled (.tmj) map. Data is row-major, 0 = empty.
type TiledLayer struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Data   []int  `json:"data"`
}

// TiledMap is the subset of the Tiled JSON map format the game reads.
type TiledMap struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Layers     []TiledLayer `json:"layers"`
}

// ReadTiledMap decodes a Tiled JSON map and checks that every layer's data
// matches its declared size.
func ReadTiledMap(r io.Reader) (*TiledMap, error) {
	var tm TiledMap
	if err := json.NewDecoder(r).Decode(&tm); err != nil {
		return nil, fmt.Errorf("decode tiled map: %w", err)
	}
	if tm.TileWidth <= 0 || tm.TileHeight <= 0 {
		return nil, fmt.Errorf("tiled map: bad tile size %dx%d", tm.TileWidth, tm.TileHeight)
	}
	for i, l := range tm.Layers {
		if len(l.Data) != l.Width*l.Height {
			return nil, fmt.Errorf("tiled map: layer %d (%q) has %d cells, want %d", i, l.Name, len(l.Data), l.Width*l.Height)
		}
	}
	return &tm, nil
}

// LoadTiledMap reads a .tmj file from disk.
func LoadTiledMap(path string) (*TiledMap, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the game config
	if err != nil {
		return nil, fmt.Errorf("open tiled map: %w", err)
	}
	defer f.Close()
	return ReadTiledMap(f)
}

// correctEditorTransform compensates for the per-layer grid offset Tiled uses
// when stacking isometric layers.
func correctEditorTransform(editorX, editorY, layer int) Coord {
	return Coord{X: editorX - 1 + layer, Y: editorY - 1 + layer}
}
