package excalidraw

import "github.com/excalidocker/excalidocker/pkg/layout"

// Type discriminates the element variants.
type Type string

// Element types.
const (
	TypeText      Type = "text"
	TypeLine      Type = "line"
	TypeArrow     Type = "arrow"
	TypeRectangle Type = "rectangle"
	TypeEllipse   Type = "ellipse"
)

// Style defaults shared by all elements.
const (
	StrokeColor     = "#000000"
	BackgroundColor = "transparent"
	FillStyle       = "hachure"
	StrokeWidth     = 1
	StrokeSolid     = "solid"
	StrokeDashed    = "dashed"
	Opacity         = 100
	SharpEdge       = "sharp"
	RoundEdge       = "round"
)

// Text defaults.
const (
	FontFamilyHandDrawn = 1
	FontFamilyNormal    = 2
	FontFamilyMonospace = 3
	TextAlignLeft       = "left"
	VerticalAlignTop    = "top"
	Baseline            = 15

	charWidth  = 9
	lineHeight = 19
	textPad    = 4
)

// Binding attaches one end of an arrow to a shape.
type Binding struct {
	ElementID string  `json:"elementId"`
	Focus     float64 `json:"focus"`
	Gap       int     `json:"gap"`
}

// BoundElement is a back-reference from a shape to an arrow attached to it.
type BoundElement struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`
}

// Roundness selects rounded corners.
type Roundness struct {
	Type int `json:"type"`
}

// BindTo returns the binding of an arrow end to the element id.
func BindTo(id string) Binding {
	return Binding{ElementID: id, Focus: 0.05, Gap: 1}
}

// ArrowRef returns the back-reference to the arrow id.
func ArrowRef(id string) BoundElement {
	return BoundElement{ID: id, Type: TypeArrow}
}

// RoundnessFor maps an edge style to its roundness. Only "round" yields
// rounded corners; anything else is sharp (nil).
func RoundnessFor(edge string) *Roundness {
	if edge == RoundEdge {
		return &Roundness{Type: 3}
	}
	return nil
}

// Element is one drawable item. Fields that do not apply to Type are left
// zero and are not serialized.
type Element struct {
	Type Type
	ID   string

	X, Y, Width, Height int
	Angle               int

	StrokeColor     string
	BackgroundColor string
	FillStyle       string
	StrokeWidth     int
	StrokeStyle     string
	Roughness       int
	Opacity         int
	GroupIDs        []string
	Roundness       *Roundness
	StrokeSharpness string
	Locked          bool

	// text
	Text          string
	FontSize      int
	FontFamily    int
	TextAlign     string
	VerticalAlign string
	Baseline      int

	// line and arrow
	Points       [][2]int
	StartBinding *Binding
	EndBinding   *Binding

	// rectangle and ellipse
	BoundElements []BoundElement
}

// Shape holds the fill options of rectangles and ellipses.
type Shape struct {
	Background string
	Fill       string
	Edge       string
}

func base(t Type, id string, x, y, width, height int) Element {
	return Element{
		Type:            t,
		ID:              id,
		X:               x,
		Y:               y,
		Width:           width,
		Height:          height,
		StrokeColor:     StrokeColor,
		BackgroundColor: BackgroundColor,
		FillStyle:       FillStyle,
		StrokeWidth:     StrokeWidth,
		StrokeStyle:     StrokeSolid,
		Opacity:         Opacity,
		GroupIDs:        []string{},
		StrokeSharpness: SharpEdge,
	}
}

// Text creates a left-aligned label whose box is sized from its content.
func Text(x, y int, text string, groupIDs []string, fontSize, fontFamily int) Element {
	chars, lines := 0, 1
	for _, r := range text {
		if r == '\n' {
			lines++
			continue
		}
		chars++
	}
	e := base(TypeText, "", x, y, textPad+chars*charWidth, lines*lineHeight)
	e.GroupIDs = groups(groupIDs)
	e.Text = text
	e.FontSize = fontSize
	e.FontFamily = fontFamily
	e.TextAlign = TextAlignLeft
	e.VerticalAlign = VerticalAlignTop
	e.Baseline = Baseline
	return e
}

// Line creates an unbound polyline. Its box is derived from the points.
func Line(x, y int, points [][2]int, strokeStyle string) Element {
	w, h := layout.Bounds(points)
	e := base(TypeLine, "", x, y, w, h)
	e.StrokeStyle = strokeStyle
	e.Roughness = 2
	e.Points = points
	return e
}

// Arrow creates an arrow from the start shape to the end shape.
func Arrow(id string, x, y, width, height int, points [][2]int, strokeStyle, edge string, start, end Binding) Element {
	e := base(TypeArrow, id, x, y, width, height)
	e.StrokeStyle = strokeStyle
	e.Roughness = 2
	e.Roundness = RoundnessFor(edge)
	e.StrokeSharpness = sharpness(edge)
	e.Points = points
	e.StartBinding = &start
	e.EndBinding = &end
	return e
}

// Rectangle creates a shape that arrows can attach to.
func Rectangle(id string, x, y, width, height int, groupIDs []string, bound []BoundElement, s Shape) Element {
	e := base(TypeRectangle, id, x, y, width, height)
	e.GroupIDs = groups(groupIDs)
	e.BoundElements = bound
	e.Roughness = 2
	e.Roundness = RoundnessFor(s.Edge)
	e.StrokeSharpness = sharpness(s.Edge)
	shape(&e, s)
	return e
}

// Ellipse creates a round shape that arrows can attach to.
func Ellipse(id string, x, y, width, height int, groupIDs []string, bound []BoundElement, s Shape) Element {
	e := base(TypeEllipse, id, x, y, width, height)
	e.GroupIDs = groups(groupIDs)
	e.BoundElements = bound
	e.Roughness = 1
	shape(&e, s)
	return e
}

func shape(e *Element, s Shape) {
	if s.Background != "" {
		e.BackgroundColor = s.Background
	}
	if s.Fill != "" {
		e.FillStyle = s.Fill
	}
}

func sharpness(edge string) string {
	if edge == RoundEdge {
		return RoundEdge
	}
	return SharpEdge
}

func groups(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return append([]string(nil), ids...)
}
