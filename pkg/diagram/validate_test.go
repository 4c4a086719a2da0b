package diagram

import (
	"errors"
	"testing"

	"github.com/excalidocker/excalidocker/pkg/excalidraw"
)

func TestValidate(t *testing.T) {
	rect := func(id string, refs ...string) excalidraw.Element {
		var bound []excalidraw.BoundElement
		for _, r := range refs {
			bound = append(bound, excalidraw.ArrowRef(r))
		}
		return excalidraw.Rectangle(id, 0, 0, 10, 10, nil, bound, excalidraw.Shape{})
	}
	arrow := func(id, from, to string) excalidraw.Element {
		return excalidraw.Arrow(id, 0, 0, 0, 0, nil, excalidraw.StrokeSolid, excalidraw.SharpEdge,
			excalidraw.BindTo(from), excalidraw.BindTo(to))
	}

	tests := []struct {
		name     string
		elements []excalidraw.Element
		want     error
	}{
		{"empty", nil, nil},
		{"bound", []excalidraw.Element{rect("a", "x"), rect("b", "x"), arrow("x", "a", "b")}, nil},
		{"unknown target", []excalidraw.Element{rect("a", "x"), arrow("x", "a", "b")}, ErrDanglingBinding},
		{"target missing ref", []excalidraw.Element{rect("a", "x"), rect("b"), arrow("x", "a", "b")}, ErrMissingBoundElement},
		{"stale ref", []excalidraw.Element{rect("a", "gone")}, ErrMissingBoundElement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(excalidraw.NewDocument(tt.elements))
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
