// Package excalidraw models the Excalidraw file format.
//
// A [Document] wraps the ordered list of [Element] values together with the
// canvas state. Elements are a tagged union: every element carries the
// common geometry and style fields, and the [Type] decides which of the
// variant fields (text, points and bindings, bound elements) are written.
//
// Arrows attach to shapes in both directions. An arrow's start and end
// [Binding] name the shapes it connects, and each of those shapes lists the
// arrow in its bound elements. Excalidraw resolves attachments by id from
// either side, so both halves must agree.
//
// [RenderJSON] and [WriteJSON] serialize a document:
//
//	doc := excalidraw.NewDocument(elements)
//	data, err := excalidraw.RenderJSON(doc, excalidraw.WithIndent(true))
package excalidraw
