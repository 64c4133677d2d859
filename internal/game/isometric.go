package game

// unitDepthOffset lifts units above the terrain tile of the same cell.
const unitDepthOffset = 0.5

// Vec3 is a projected draw position. Y grows upward; Z is the depth key.
type Vec3 struct {
	X, Y, Z float64
}

// IsoTransform projects grid (x, y) on layer z into draw space. Depth is the grid
// diagonal sum, so cells further down-right draw on top.
func IsoTransform(x, y, z, w, h float64, isUnit bool) Vec3 {
	v := Vec3{
		X: (x*w - y*w) / 2,
		Y: (-x*h-y*h)/2 + z*h,
		Z: x + y + z,
	}
	if isUnit {
		v.Z += unitDepthOffset
	}
	return v
}
