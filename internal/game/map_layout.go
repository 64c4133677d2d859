package game

import "sort"

// Tile is the top-most terrain tile of one board cell, as drawn and picked.
type Tile struct {
	At     Coord
	Layer  uint32
	TileID int // Tiled gid, 1-based
}

// MapLayout is the per-cell terrain layer index. It is built once when the map
// loads and is read-only afterward. A missing cell is not part of the board.
type MapLayout struct {
	layers     map[Coord]uint32
	tileWidth  float64
	tileHeight float64
}

// NewMapLayout builds a layout directly from a layer table.
func NewMapLayout(layers map[Coord]uint32, tileW, tileH float64) *MapLayout {
	ml := &MapLayout{
		layers:     make(map[Coord]uint32, len(layers)),
		tileWidth:  tileW,
		tileHeight: tileH,
	}
	for c, l := range layers {
		ml.layers[c] = l
	}
	return ml
}

// FlatLayout returns a cols x rows single-layer board starting at (0,0).
func FlatLayout(cols, rows int, tileW, tileH float64) *MapLayout {
	layers := make(map[Coord]uint32, cols*rows)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			layers[Coord{X: x, Y: y}] = 0
		}
	}
	return NewMapLayout(layers, tileW, tileH)
}

// BuildMap converts a Tiled map into the layout and the drawable tile list.
// When several layers land on the same cell, the higher layer wins.
func BuildMap(tm *TiledMap) (*MapLayout, []Tile) {
	top := make(map[Coord]Tile)
	for i, layer := range tm.Layers {
		for ey := 0; ey < layer.Height; ey++ {
			for ex := 0; ex < layer.Width; ex++ {
				id := layer.Data[ex+ey*layer.Width]
				if id == 0 {
					continue
				}
				at := correctEditorTransform(ex, ey, i)
				top[at] = Tile{At: at, Layer: uint32(i), TileID: id} // #nosec G115 -- layer count is tiny
			}
		}
	}

	layers := make(map[Coord]uint32, len(top))
	tiles := make([]Tile, 0, len(top))
	for c, t := range top {
		layers[c] = t.Layer
		tiles = append(tiles, t)
	}
	sortTilesForDraw(tiles)
	return NewMapLayout(layers, float64(tm.TileWidth), float64(tm.TileHeight)), tiles
}

// sortTilesForDraw orders tiles back-to-front by projected depth.
func sortTilesForDraw(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		di := tiles[i].At.X + tiles[i].At.Y + int(tiles[i].Layer)
		dj := tiles[j].At.X + tiles[j].At.Y + int(tiles[j].Layer)
		if di != dj {
			return di < dj
		}
		return tiles[i].At.Less(tiles[j].At)
	})
}

// Layer returns the layer index of c, or false when there is no tile.
func (ml *MapLayout) Layer(c Coord) (uint32, bool) {
	l, ok := ml.layers[c]
	return l, ok
}

// Has reports whether c is part of the board.
func (ml *MapLayout) Has(c Coord) bool {
	_, ok := ml.layers[c]
	return ok
}

// Len returns the number of board cells.
func (ml *MapLayout) Len() int { return len(ml.layers) }

// TileSize returns the tile pixel size used by the projection.
func (ml *MapLayout) TileSize() (w, h float64) { return ml.tileWidth, ml.tileHeight }

// Coords returns every board cell in a stable order.
func (ml *MapLayout) Coords() []Coord {
	out := make([]Coord, 0, len(ml.layers))
	for c := range ml.layers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Project returns the iso draw position of a cell on its own layer.
func (ml *MapLayout) Project(c Coord, isUnit bool) Vec3 {
	l := ml.layers[c]
	return IsoTransform(float64(c.X), float64(c.Y), float64(l), ml.tileWidth, ml.tileHeight, isUnit)
}

// Tiles returns a drawable tile per cell with a tile id derived from the layer.
// Used for layouts that were not built from a Tiled map.
func (ml *MapLayout) Tiles() []Tile {
	tiles := make([]Tile, 0, len(ml.layers))
	for _, c := range ml.Coords() {
		l := ml.layers[c]
		tiles = append(tiles, Tile{At: c, Layer: l, TileID: int(l) + 1})
	}
	sortTilesForDraw(tiles)
	return tiles
}
