package game

import (
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsoTransform(t *testing.T) {
	v := IsoTransform(2, 1, 0, 64, 32, false)
	if v.X != 32 || v.Y != -48 || v.Z != 3 {
		t.Fatalf("IsoTransform(2,1,0) = %+v", v)
	}
	raised := IsoTransform(2, 1, 1, 64, 32, false)
	if raised.Y != v.Y+32 || raised.Z != v.Z+1 {
		t.Fatalf("a layer should lift by one tile height: %+v vs %+v", raised, v)
	}
	unit := IsoTransform(2, 1, 0, 64, 32, true)
	if unit.Z != v.Z+unitDepthOffset || unit.X != v.X || unit.Y != v.Y {
		t.Fatalf("unit projection = %+v", unit)
	}
}

func TestFacingFor(t *testing.T) {
	cases := map[Coord]Facing{C(1, 0): FacingSE, C(-1, 0): FacingNW, C(0, 1): FacingSW, C(0, -1): FacingNE}
	for d, want := range cases {
		got, ok := FacingFor(d)
		if !ok || got != want {
			t.Fatalf("FacingFor(%s) = %v,%v want %v", d, got, ok, want)
		}
	}
	for _, d := range []Coord{C(0, 0), C(1, 1), C(2, 0)} {
		if _, ok := FacingFor(d); ok {
			t.Fatalf("FacingFor(%s) should fail", d)
		}
	}
}

func TestCorrectEditorTransform(t *testing.T) {
	if got := correctEditorTransform(1, 1, 0); got != C(0, 0) {
		t.Fatalf("layer 0: got %s", got)
	}
	if got := correctEditorTransform(3, 5, 2); got != C(4, 6) {
		t.Fatalf("layer 2: got %s", got)
	}
}

func TestBuildMapHigherLayerWins(t *testing.T) {
	tm := &TiledMap{
		Width: 3, Height: 3, TileWidth: 64, TileHeight: 32,
		Layers: []TiledLayer{
			{Width: 3, Height: 3, Data: []int{
				0, 0, 0,
				0, 1, 1,
				0, 1, 1,
			}},
			{Width: 3, Height: 3, Data: []int{
				0, 0, 0,
				0, 3, 0,
				0, 0, 0,
			}},
		},
	}
	ml, tiles := BuildMap(tm)
	// Layer 0 editor (1,1)..(2,2) -> board (0,0)..(1,1); layer 1 editor (1,1) -> board (1,1).
	if ml.Len() != 4 {
		t.Fatalf("layout has %d cells, want 4", ml.Len())
	}
	if l, _ := ml.Layer(C(1, 1)); l != 1 {
		t.Fatalf("(1,1) layer = %d, want 1", l)
	}
	if l, _ := ml.Layer(C(0, 0)); l != 0 {
		t.Fatalf("(0,0) layer = %d, want 0", l)
	}
	if len(tiles) != 4 {
		t.Fatalf("tiles = %d, want one per cell", len(tiles))
	}
	for i := 1; i < len(tiles); i++ {
		a, b := tiles[i-1], tiles[i]
		if a.At.X+a.At.Y+int(a.Layer) > b.At.X+b.At.Y+int(b.Layer) {
			t.Fatalf("tiles not back to front: %+v before %+v", a, b)
		}
	}
	last := tiles[len(tiles)-1]
	if last.At != C(1, 1) || last.TileID != 3 {
		t.Fatalf("deepest tile = %+v, want the layer 1 tile at (1,1)", last)
	}
}

func TestReadTiledMapValidates(t *testing.T) {
	bad := []string{
		`{`,
		`{"tilewidth":0,"tileheight":32,"layers":[]}`,
		`{"tilewidth":64,"tileheight":32,"layers":[{"width":2,"height":2,"data":[1,1,1]}]}`,
	}
	for _, s := range bad {
		if _, err := ReadTiledMap(strings.NewReader(s)); err == nil {
			t.Fatalf("expected error for %s", s)
		}
	}
	tm, err := ReadTiledMap(strings.NewReader(`{"width":2,"height":1,"tilewidth":64,"tileheight":32,
		"layers":[{"id":1,"name":"ground","width":2,"height":1,"data":[0,1],"type":"tilelayer"}]}`))
	if err != nil {
		t.Fatalf("ReadTiledMap: %v", err)
	}
	ml, _ := BuildMap(tm)
	if !ml.Has(C(0, -1)) || ml.Len() != 1 {
		t.Fatalf("expected one cell at (0,-1), got %v", ml.Coords())
	}
}

func TestLoadSampleMap(t *testing.T) {
	tm, err := LoadTiledMap(filepath.Join("..", "..", "assets", "maps", "1.tmj"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ml, tiles := BuildMap(tm)
	if ml.Len() != 64 || len(tiles) != 64 {
		t.Fatalf("sample map: %d cells %d tiles, want 8x8", ml.Len(), len(tiles))
	}
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			if !ml.Has(C(x, y)) {
				t.Fatalf("sample map missing %s", C(x, y))
			}
		}
	}
	if l, _ := ml.Layer(C(6, 6)); l != 1 {
		t.Fatalf("(6,6) should be on the hills layer, got %d", l)
	}
}

func TestFlatLayoutTiles(t *testing.T) {
	ml := FlatLayout(3, 2, 64, 32)
	if ml.Len() != 6 {
		t.Fatalf("Len = %d", ml.Len())
	}
	tiles := ml.Tiles()
	if len(tiles) != 6 || tiles[0].At != C(0, 0) || tiles[5].At != C(2, 1) {
		t.Fatalf("tiles = %+v", tiles)
	}
	if w, h := ml.TileSize(); w != 64 || h != 32 {
		t.Fatalf("TileSize = %v,%v", w, h)
	}
}

func TestGenerateTerrainDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 1234
	a, at := BuildMap(GenerateTerrain(cfg))
	b, bt := BuildMap(GenerateTerrain(cfg))
	if a.Len() != cfg.Cols*cfg.Rows {
		t.Fatalf("generated %d cells, want %d", a.Len(), cfg.Cols*cfg.Rows)
	}
	if len(at) != len(bt) {
		t.Fatalf("tile counts differ: %d vs %d", len(at), len(bt))
	}
	for i := range at {
		if at[i] != bt[i] {
			t.Fatalf("tile %d differs: %+v vs %+v", i, at[i], bt[i])
		}
	}
	for _, c := range a.Coords() {
		la, _ := a.Layer(c)
		lb, _ := b.Layer(c)
		if la != lb || int(la) >= cfg.Layers {
			t.Fatalf("cell %s: layers %d vs %d", c, la, lb)
		}
	}
}

func TestGenerateTerrainBoardIsContiguous(t *testing.T) {
	cfg := DefaultGenConfig()
	cfg.Seed = 99
	ml, _ := BuildMap(GenerateTerrain(cfg))
	coords := ml.Coords()
	minX, minY := math.MaxInt, math.MaxInt
	for _, c := range coords {
		minX, minY = min(minX, c.X), min(minY, c.Y)
	}
	for x := 0; x < cfg.Cols; x++ {
		for y := 0; y < cfg.Rows; y++ {
			if !ml.Has(C(minX+x, minY+y)) {
				t.Fatalf("hole at %s", C(minX+x, minY+y))
			}
		}
	}
}
