// Package layout computes where services, ports and connectors go on the
// canvas.
//
// Everything here is a pure function of the alignment [Mode], the grid
// scale and a few element dimensions. The diagram builder walks the services
// in dependency order and asks this package for offsets relative to the
// current cursor; it never does geometry itself.
//
// All coordinates are integer canvas units. The canvas grid is [GridSize]
// units wide, and the x axis grows to the right and the y axis downwards.
package layout

// Canvas dimensions.
const (
	GridSize        = 20  // grid cell size, also the scale unit
	ContainerWidth  = 140 // base width of a service rectangle
	ContainerHeight = 60  // height of a service rectangle
	PortDiameter    = 60  // diameter of a host port ellipse
	PortStride      = 80  // distance between consecutive ports
	Margin          = 60  // gap between consecutive services
)

// Mode is the alignment mode that decides how the cursor advances after each
// service.
type Mode int

const (
	// Stepped moves right and down after each service (default).
	Stepped Mode = iota
	// Horizontal lays services out on a single row.
	Horizontal
	// Vertical stacks services in a single column with ports on the right.
	Vertical
)

// ParseMode maps a configured alignment mode to a Mode. Unknown values are
// stepped.
func ParseMode(s string) Mode {
	switch s {
	case "horizontal":
		return Horizontal
	case "vertical":
		return Vertical
	default:
		return Stepped
	}
}

func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "stepped"
	}
}

// Margins holds the fixed cursor advance of a mode and the factors applied
// to the container width and grid scale.
type Margins struct {
	X, Y             int
	XFactor, YFactor int
}

// MarginsFor returns the margins of mode.
func MarginsFor(mode Mode) Margins {
	switch mode {
	case Horizontal:
		return Margins{X: Margin, Y: 0, XFactor: 1, YFactor: 0}
	case Vertical:
		return Margins{X: 0, Y: Margin, XFactor: 0, YFactor: 1}
	default:
		return Margins{X: Margin, Y: Margin, XFactor: 1, YFactor: 0}
	}
}

// Advance returns how far the cursor moves after placing a service of the
// given width.
func Advance(mode Mode, containerWidth, scale int) (dx, dy int) {
	m := MarginsFor(mode)
	dx = m.X + m.XFactor*containerWidth
	if mode == Vertical {
		dy = m.Y + m.YFactor*2*scale
	} else {
		dy = m.Y + m.YFactor*scale
	}
	return dx, dy
}

// Point is the top-left anchor of a placed service.
type Point struct {
	Name string
	X, Y int
}
