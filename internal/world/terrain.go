package world

import "github.com/go-gl/mathgl/mgl64"

// Terrain exposes ground elevation and surface normals for the solver and
// for downward ray queries.
type Terrain interface {
	HeightAt(x, z float64) float64
	NormalAt(x, z float64) mgl64.Vec3
}

// FlatTerrain is an infinite horizontal plane at a fixed elevation.
type FlatTerrain struct {
	Level float64
}

func (t FlatTerrain) HeightAt(x, z float64) float64 {
	return t.Level
}

func (t FlatTerrain) NormalAt(x, z float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 1, 0}
}

// Heightfield samples elevation over a regular grid with bilinear
// interpolation. Coordinates outside the grid clamp to the border.
type Heightfield struct {
	heights [][]float64 // heights[row][col], row along z, col along x
	cell    float64     // spacing between adjacent samples
}

// NewHeightfield wraps a row-major elevation grid. The grid must be
// rectangular with at least two samples per axis.
func NewHeightfield(heights [][]float64, cell float64) *Heightfield {
	return &Heightfield{heights: heights, cell: cell}
}

func (h *Heightfield) sample(col, row int) float64 {
	if row < 0 {
		row = 0
	}
	if row > len(h.heights)-1 {
		row = len(h.heights) - 1
	}
	line := h.heights[row]
	if col < 0 {
		col = 0
	}
	if col > len(line)-1 {
		col = len(line) - 1
	}
	return line[col]
}

func (h *Heightfield) HeightAt(x, z float64) float64 {
	cx := x / h.cell
	cz := z / h.cell
	col := int(cx)
	row := int(cz)
	if cx < 0 {
		col--
	}
	if cz < 0 {
		row--
	}
	fx := cx - float64(col)
	fz := cz - float64(row)

	h00 := h.sample(col, row)
	h10 := h.sample(col+1, row)
	h01 := h.sample(col, row+1)
	h11 := h.sample(col+1, row+1)

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return top + (bottom-top)*fz
}

// NormalAt derives the surface normal from central differences of the
// interpolated height function.
func (h *Heightfield) NormalAt(x, z float64) mgl64.Vec3 {
	e := h.cell * 0.5
	dhdx := (h.HeightAt(x+e, z) - h.HeightAt(x-e, z)) / (2 * e)
	dhdz := (h.HeightAt(x, z+e) - h.HeightAt(x, z-e)) / (2 * e)
	return mgl64.Vec3{-dhdx, 1, -dhdz}.Normalize()
}
