package layout

import (
	"cmp"
	"slices"
)

// SortParents orders parent anchors by X, rightmost first. Equal X keeps
// the given order.
func SortParents(points []Point) {
	slices.SortStableFunc(points, func(a, b Point) int {
		return cmp.Compare(b.X, a.X)
	})
}

// ConnectorMargin returns the horizontal spacing of the i-th connector of a
// service.
func ConnectorMargin(scale, i int) int {
	return (i + 1) * scale
}

// ConnectorOffset returns the start of a connector relative to the child
// anchor.
func ConnectorOffset(mode Mode, margin int) (dx, dy int) {
	if mode == Vertical {
		return 0, margin / 2
	}
	return margin, 0
}

// ConnectorPoints returns the elbow polyline of the i-th connector from
// child to parent, relative to its start. height and width are the base
// container dimensions.
func ConnectorPoints(mode Mode, child, parent Point, height, width, margin, scale, i int) [][2]int {
	levelHeight := parent.Y - child.Y
	if mode == Vertical {
		step := -2 * (i + 1) * scale
		return [][2]int{
			{0, 0},
			{step, 0},
			{step, levelHeight + scale},
			{-1, levelHeight + scale},
		}
	}
	dx := parent.X - child.X + width - 2*margin
	return [][2]int{
		{0, 0},
		{0, levelHeight - height},
		{dx, levelHeight - height},
		{dx, parent.Y - child.Y},
	}
}

// Bounds returns the width and height of a polyline as the sum of its
// absolute extents on each axis, measured from the origin.
func Bounds(points [][2]int) (width, height int) {
	var minX, maxX, minY, maxY int
	for _, p := range points {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	return maxX - minX, maxY - minY
}
