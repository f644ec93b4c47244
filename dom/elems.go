package dom

// Elems holds the page landmarks most views need. It replaces a package-wide
// registry: build one per document with NewElems and pass it along.
type Elems struct {
	Document *ElementSet
	HTML     *ElementSet
	Body     *ElementSet
	Header   *ElementSet
	Main     *ElementSet
	Footer   *ElementSet
}

// NewElems resolves the landmarks of doc. mainID names the main content
// container; it defaults to "main".
func NewElems(doc Document, mainID string) *Elems {
	if mainID == "" {
		mainID = "main"
	}
	return &Elems{
		Document: Wrap(doc, doc),
		HTML:     New(doc, "html"),
		Body:     New(doc, "body"),
		Header:   New(doc, "#header"),
		Main:     New(doc, "#"+mainID),
		Footer:   New(doc, "#footer"),
	}
}

// ParseHTML parses markup into detached nodes owned by doc.
func ParseHTML(doc Document, html string) ([]Node, error) {
	return doc.ParseFragment(html)
}
