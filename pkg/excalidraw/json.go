package excalidraw

import (
	"encoding/json"
	"io"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	indent bool
}

// WithIndent pretty-prints the output with two-space indentation.
func WithIndent(on bool) JSONOption { return func(r *jsonRenderer) { r.indent = on } }

// RenderJSON serializes the document. The output is compact unless
// [WithIndent] is given.
func RenderJSON(doc *Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.indent {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// WriteJSON serializes the document to w followed by a newline.
func WriteJSON(w io.Writer, doc *Document, opts ...JSONOption) error {
	data, err := RenderJSON(doc, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

type jsonCommon struct {
	Type            Type       `json:"type"`
	ID              string     `json:"id,omitempty"`
	X               int        `json:"x"`
	Y               int        `json:"y"`
	Width           int        `json:"width"`
	Height          int        `json:"height"`
	Angle           int        `json:"angle"`
	StrokeColor     string     `json:"strokeColor"`
	BackgroundColor string     `json:"backgroundColor"`
	FillStyle       string     `json:"fillStyle"`
	StrokeWidth     int        `json:"strokeWidth"`
	StrokeStyle     string     `json:"strokeStyle"`
	Roughness       int        `json:"roughness"`
	Opacity         int        `json:"opacity"`
	GroupIDs        []string   `json:"groupIds"`
	Roundness       *Roundness `json:"roundness"`
	StrokeSharpness string     `json:"strokeSharpness"`
	Locked          bool       `json:"locked"`
	IsDeleted       bool       `json:"isDeleted"`
}

type jsonText struct {
	jsonCommon
	Text          string `json:"text"`
	OriginalText  string `json:"originalText"`
	FontSize      int    `json:"fontSize"`
	FontFamily    int    `json:"fontFamily"`
	TextAlign     string `json:"textAlign"`
	VerticalAlign string `json:"verticalAlign"`
	Baseline      int    `json:"baseline"`
}

type jsonLine struct {
	jsonCommon
	Points [][2]int `json:"points"`
}

type jsonArrow struct {
	jsonCommon
	Points         [][2]int `json:"points"`
	StartBinding   *Binding `json:"startBinding"`
	EndBinding     *Binding `json:"endBinding"`
	StartArrowhead *string  `json:"startArrowhead"`
	EndArrowhead   string   `json:"endArrowhead"`
}

type jsonShape struct {
	jsonCommon
	BoundElements []BoundElement `json:"boundElements"`
}

// MarshalJSON writes the common fields followed by the fields of the
// element's variant.
func (e Element) MarshalJSON() ([]byte, error) {
	c := jsonCommon{
		Type:            e.Type,
		ID:              e.ID,
		X:               e.X,
		Y:               e.Y,
		Width:           e.Width,
		Height:          e.Height,
		Angle:           e.Angle,
		StrokeColor:     e.StrokeColor,
		BackgroundColor: e.BackgroundColor,
		FillStyle:       e.FillStyle,
		StrokeWidth:     e.StrokeWidth,
		StrokeStyle:     e.StrokeStyle,
		Roughness:       e.Roughness,
		Opacity:         e.Opacity,
		GroupIDs:        e.GroupIDs,
		Roundness:       e.Roundness,
		StrokeSharpness: e.StrokeSharpness,
		Locked:          e.Locked,
	}
	if c.GroupIDs == nil {
		c.GroupIDs = []string{}
	}

	switch e.Type {
	case TypeText:
		return json.Marshal(jsonText{
			jsonCommon:    c,
			Text:          e.Text,
			OriginalText:  e.Text,
			FontSize:      e.FontSize,
			FontFamily:    e.FontFamily,
			TextAlign:     e.TextAlign,
			VerticalAlign: e.VerticalAlign,
			Baseline:      e.Baseline,
		})
	case TypeLine:
		return json.Marshal(jsonLine{jsonCommon: c, Points: points(e.Points)})
	case TypeArrow:
		return json.Marshal(jsonArrow{
			jsonCommon:   c,
			Points:       points(e.Points),
			StartBinding: e.StartBinding,
			EndBinding:   e.EndBinding,
			EndArrowhead: "arrow",
		})
	case TypeRectangle, TypeEllipse:
		bound := e.BoundElements
		if bound == nil {
			bound = []BoundElement{}
		}
		return json.Marshal(jsonShape{jsonCommon: c, BoundElements: bound})
	default:
		return json.Marshal(c)
	}
}

func points(p [][2]int) [][2]int {
	if p == nil {
		return [][2]int{}
	}
	return p
}
