// Package fbx reads the FBX scene-interchange container into a walkable
// node tree and exposes the document-level accessors the lint checks
// consume: the global-settings property bag and the authoring-application
// identity. Both the binary and ASCII forms of the container are supported
// and produce the same Document.
package fbx

// Node is one record in the FBX node tree: a name, an ordered list of
// typed attributes, and nested child nodes.
type Node struct {
	Name       string
	Attributes []Attribute
	Children   []*Node
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Format identifies which container form a document was parsed from.
type Format string

const (
	FormatBinary Format = "binary"
	FormatASCII  Format = "ascii"
)

// Document is a parsed FBX file.
type Document struct {
	// Version is the FBX version (e.g. 7400), when the container declares it.
	Version int
	// Format records which container form the file used.
	Format Format
	// Roots are the top-level nodes of the file.
	Roots []*Node
}

// Node returns the first top-level node with the given name, or nil.
func (d *Document) Node(name string) *Node {
	for _, n := range d.Roots {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// GlobalSettings returns the property bag of the document's GlobalSettings
// node, or nil when the document has none.
func (d *Document) GlobalSettings() *PropertyBag {
	gs := d.Node("GlobalSettings")
	if gs == nil {
		return nil
	}
	return propertyBagOf(gs)
}

// SceneInfo returns the property bag of the header's SceneInfo node, or nil.
func (d *Document) SceneInfo() *PropertyBag {
	header := d.Node("FBXHeaderExtension")
	if header == nil {
		return nil
	}
	si := header.Child("SceneInfo")
	if si == nil {
		return nil
	}
	return propertyBagOf(si)
}

// Creator returns the top-level Creator string, or "".
func (d *Document) Creator() string {
	c := d.Node("Creator")
	if c == nil || len(c.Attributes) == 0 {
		return ""
	}
	s, _ := c.Attributes[0].Str()
	return s
}

func propertyBagOf(n *Node) *PropertyBag {
	props := n.Child("Properties70")
	if props == nil {
		return nil
	}
	return &PropertyBag{node: props}
}

// PropertyBag wraps a Properties70 node and resolves named properties.
type PropertyBag struct {
	node *Node
}

// Property returns the property with the given name, or nil. A property is
// a P child whose first attribute is the property name.
func (b *PropertyBag) Property(name string) *Property {
	for _, c := range b.node.ChildrenNamed("P") {
		if len(c.Attributes) == 0 {
			continue
		}
		if n, ok := c.Attributes[0].Str(); ok && n == name {
			return &Property{node: c}
		}
	}
	return nil
}

// Property is one typed entry of a property bag. The first four attributes
// are the header strings (name, type, label, flags); everything after them
// is the value part.
type Property struct {
	node *Node
}

const propertyHeaderLen = 4

// Name returns the property name.
func (p *Property) Name() string {
	s, _ := p.node.Attributes[0].Str()
	return s
}

// TypeName returns the declared property type (e.g. "int", "KString").
func (p *Property) TypeName() string {
	if len(p.node.Attributes) < 2 {
		return ""
	}
	s, _ := p.node.Attributes[1].Str()
	return s
}

// Values returns the property's value part.
func (p *Property) Values() []Attribute {
	if len(p.node.Attributes) <= propertyHeaderLen {
		return nil
	}
	return p.node.Attributes[propertyHeaderLen:]
}

// Value returns the i-th element of the value part.
func (p *Property) Value(i int) (Attribute, bool) {
	values := p.Values()
	if i < 0 || i >= len(values) {
		return Attribute{}, false
	}
	return values[i], true
}
