package layout

import "strings"

// PortLabelOffset is the position of the host port label relative to its
// ellipse.
var PortLabelOffset = [2]int{15, 20}

// Port arrow box dimensions.
const (
	PortArrowWidth  = 200
	PortArrowHeight = 100
)

// PortOffset returns the position of the i-th host port ellipse relative to
// the service anchor. Vertical mode puts ports right of the container,
// the other modes below it.
func PortOffset(mode Mode, containerWidth, scale, i int) (dx, dy int) {
	if mode == Vertical {
		return containerWidth + 5*scale, PortStride*i - 35
	}
	return PortStride * i, 8 * scale
}

// HostPortArrowOffset returns where port arrows leave the container. width
// is the base container width and containerWidth the widened one.
func HostPortArrowOffset(mode Mode, height, width, containerWidth int) (dx, dy int) {
	if mode == Vertical {
		return containerWidth, height / 2
	}
	return width / 2, height
}

// HostPortArrowPoints returns the polyline of the i-th port arrow.
func HostPortArrowPoints(mode Mode, i int) [][2]int {
	if mode == Vertical {
		return [][2]int{{0, 0}, {i + 100, PortStride*i - 35}}
	}
	return [][2]int{{0, 0}, {PortStride*i - 35, i + 100}}
}

// ContainerPortLabelOffset returns the position of the i-th container port
// label relative to the service anchor.
func ContainerPortLabelOffset(mode Mode, height, width, i int) (dx, dy int) {
	if mode == Vertical {
		return width + 20, height/2 + 40*i - 35
	}
	return 20 + PortStride*i, 80
}

// SplitPort splits a port declaration into its host and container parts.
//
//	"8080"                -> "8080", "8080"
//	"8080:80"             -> "8080", "80"
//	"127.0.0.1:8080:80"   -> "127.0.0.1:8080", "80"
//	"6060:6060/udp"       -> "6060", "6060/udp"
//
// A declaration without a colon is used for both sides. With several colons
// the split happens at the last one.
func SplitPort(raw string) (host, container string) {
	i := strings.LastIndex(raw, ":")
	if i < 0 {
		return raw, raw
	}
	return raw[:i], raw[i+1:]
}
