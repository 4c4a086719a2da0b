package diagram

import (
	"errors"
	"fmt"
	"slices"

	"github.com/excalidocker/excalidocker/pkg/excalidraw"
)

var (
	// ErrDanglingBinding is returned when an arrow binds to an id that no
	// shape in the document carries.
	ErrDanglingBinding = errors.New("arrow binding refers to unknown element")

	// ErrMissingBoundElement is returned when a shape and an arrow disagree
	// about being bound to each other.
	ErrMissingBoundElement = errors.New("bound element mismatch")
)

// Validate checks binding consistency: every arrow binding names an
// existing shape which lists the arrow in its bound elements, and every
// bound element of a shape is an arrow in the document.
func Validate(doc *excalidraw.Document) error {
	shapes := make(map[string]excalidraw.Element)
	arrows := make(map[string]bool)
	for _, e := range doc.Elements {
		switch e.Type {
		case excalidraw.TypeRectangle, excalidraw.TypeEllipse:
			shapes[e.ID] = e
		case excalidraw.TypeArrow:
			arrows[e.ID] = true
		}
	}

	for _, e := range doc.Elements {
		if e.Type != excalidraw.TypeArrow {
			continue
		}
		for _, b := range []*excalidraw.Binding{e.StartBinding, e.EndBinding} {
			if b == nil {
				continue
			}
			target, ok := shapes[b.ElementID]
			if !ok {
				return fmt.Errorf("%w: %s -> %s", ErrDanglingBinding, e.ID, b.ElementID)
			}
			if !slices.Contains(target.BoundElements, excalidraw.ArrowRef(e.ID)) {
				return fmt.Errorf("%w: %s does not list %s", ErrMissingBoundElement, target.ID, e.ID)
			}
		}
	}

	for _, s := range shapes {
		for _, ref := range s.BoundElements {
			if !arrows[ref.ID] {
				return fmt.Errorf("%w: %s lists unknown arrow %s", ErrMissingBoundElement, s.ID, ref.ID)
			}
		}
	}
	return nil
}
