package osmimport

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/roadnet/grid"
)

const (
	earthRadiusM      = 6378137.0
	maxMercatorLatDeg = 85.05112878
)

func mercatorX(lonDeg float64) float64 {
	return earthRadiusM * lonDeg * math.Pi / 180
}

func mercatorY(latDeg float64) float64 {
	lat := math.Max(-maxMercatorLatDeg, math.Min(maxMercatorLatDeg, latDeg))
	return earthRadiusM * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
}

// projector maps lat/lon into [pad, side-pad) with y growing southwards.
type projector struct {
	minX, minY     float64
	spanX, spanY   float64
	pad            int
	availW, availH int
}

func newProjector(b Bounds, width, height, padding int) (projector, error) {
	pad := max(0, min(padding, min(width, height)/4))
	if width-2*pad <= 1 || height-2*pad <= 1 {
		return projector{}, errors.Wrapf(ErrWorldTooSmall, "%dx%d with padding %d", width, height, pad)
	}
	minX, maxX := mercatorX(b.MinLon), mercatorX(b.MaxLon)
	minY, maxY := mercatorY(b.MinLat), mercatorY(b.MaxLat)
	p := projector{minX: minX, minY: minY, spanX: maxX - minX, spanY: maxY - minY, pad: pad}
	if !(p.spanX > 0) || !(p.spanY > 0) {
		return projector{}, ErrZeroArea
	}
	p.availW, p.availH = width-2*pad, height-2*pad

	return p, nil
}

func (p projector) project(lat, lon float64) grid.Point {
	u := (mercatorX(lon) - p.minX) / p.spanX
	v := 1 - (mercatorY(lat)-p.minY)/p.spanY
	fx := float64(p.pad) + u*float64(max(1, p.availW-1))
	fy := float64(p.pad) + v*float64(max(1, p.availH-1))

	return grid.Point{X: int(math.Floor(fx + 0.5)), Y: int(math.Floor(fy + 0.5))}
}

// autoSize derives world dimensions from the bounds at metersPerTile.
func autoSize(b Bounds, metersPerTile float64, padding int) (int, int, error) {
	spanX := mercatorX(b.MaxLon) - mercatorX(b.MinLon)
	spanY := mercatorY(b.MaxLat) - mercatorY(b.MinLat)
	if !(spanX > 0) || !(spanY > 0) {
		return 0, 0, ErrZeroArea
	}
	mpt := math.Max(0.001, metersPerTile)
	pad := max(0, padding)
	w := max(1, int(math.Ceil(spanX/mpt))+2*pad)
	h := max(1, int(math.Ceil(spanY/mpt))+2*pad)
	if w > MaxAutoSize || h > MaxAutoSize {
		return 0, 0, errors.Wrapf(ErrTooLarge, "%dx%d at %.1f m per tile", w, h, mpt)
	}

	return w, h, nil
}

// linePoints returns the 4-connected raster from a to b, both inclusive.
// Diagonal Bresenham steps are split, stepping the dominant axis first.
func linePoints(a, b grid.Point) []grid.Point {
	x0, y0 := a.X, a.Y
	dx, dy := abs(b.X-x0), abs(b.Y-y0)
	sx, sy := 1, 1
	if x0 > b.X {
		sx = -1
	}
	if y0 > b.Y {
		sy = -1
	}
	err := dx - dy
	dominantX := dx >= dy

	out := make([]grid.Point, 0, dx+dy+1)
	for {
		out = append(out, grid.Point{X: x0, Y: y0})
		if x0 == b.X && y0 == b.Y {
			return out
		}
		e2 := 2 * err
		stepX, stepY := e2 > -dy, e2 < dx
		if stepX && stepY {
			if dominantX {
				err -= dy
				x0 += sx
				out = append(out, grid.Point{X: x0, Y: y0})
				err += dx
				y0 += sy
			} else {
				err += dx
				y0 += sy
				out = append(out, grid.Point{X: x0, Y: y0})
				err -= dy
				x0 += sx
			}
			continue
		}
		if stepX {
			err -= dy
			x0 += sx
		}
		if stepY {
			err += dx
			y0 += sy
		}
	}
}

// diamond calls fn for every point within Manhattan radius r of p.
func diamond(p grid.Point, r int, fn func(x, y int)) {
	r = max(0, r)
	for dy := -r; dy <= r; dy++ {
		xr := r - abs(dy)
		for dx := -xr; dx <= xr; dx++ {
			fn(p.X+dx, p.Y+dy)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
