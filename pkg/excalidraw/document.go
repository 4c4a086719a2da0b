package excalidraw

// Document defaults.
const (
	DocumentType      = "excalidraw"
	DocumentVersion   = 2
	DefaultGridSize   = 20
	DefaultBackground = "#ffffff"
)

// Document is a complete .excalidraw file.
type Document struct {
	Type     string         `json:"type"`
	Version  int            `json:"version"`
	Source   *string        `json:"source"` // always null
	Elements []Element      `json:"elements"`
	AppState AppState       `json:"appState"`
	Files    map[string]any `json:"files"`
}

// AppState is the canvas state stored with the elements.
type AppState struct {
	GridSize            int    `json:"gridSize"`
	ViewBackgroundColor string `json:"viewBackgroundColor"`
}

// DocumentOption configures a document created by [NewDocument].
type DocumentOption func(*Document)

// WithGridSize sets the canvas grid size.
func WithGridSize(n int) DocumentOption { return func(d *Document) { d.AppState.GridSize = n } }

// NewDocument wraps elements in a document with the default canvas state
// and no source.
func NewDocument(elements []Element, opts ...DocumentOption) *Document {
	if elements == nil {
		elements = []Element{}
	}
	d := &Document{
		Type:     DocumentType,
		Version:  DocumentVersion,
		Elements: elements,
		AppState: AppState{GridSize: DefaultGridSize, ViewBackgroundColor: DefaultBackground},
		Files:    map[string]any{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Count returns the number of elements of type t.
func (d *Document) Count(t Type) int {
	n := 0
	for _, e := range d.Elements {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Find returns the element with the given id.
func (d *Document) Find(id string) (Element, bool) {
	for _, e := range d.Elements {
		if e.ID != "" && e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}
