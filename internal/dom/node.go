package dom

import "strings"

// NodeType identifies the kind of node in a parsed fragment
type NodeType int

const (
	// DocumentNode is the root holding every top-level node
	DocumentNode NodeType = iota
	// ElementNode is an element such as <img> or <a>
	ElementNode
	// TextNode is character data between tags
	TextNode
)

// Attribute is a single name/value pair on an element. Key is lower-cased.
type Attribute struct {
	Key string
	Val string
}

// Node is an element, text run or the document root of a parsed fragment
type Node struct {
	Type NodeType
	// Tag is the lower-cased element name (elements only)
	Tag string
	// Data is the unescaped character data (text nodes only)
	Data     string
	Attrs    []Attribute
	Parent   *Node
	Children []*Node
	// Line is the 1-based line of the node's first byte in the parsed source
	Line int
}

// Attr returns the value of the named attribute and whether it is present.
// Lookup is case-insensitive.
func (n *Node) Attr(key string) (string, bool) {
	key = strings.ToLower(key)
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present, whatever its value
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attr(key)
	return ok
}

// ElementsByTag returns the descendant elements of n with the given tag name,
// in document order. n itself is never included.
func (n *Node) ElementsByTag(tags ...string) []*Node {
	var found []*Node
	for _, c := range n.Children {
		c.walk(func(d *Node) {
			if d.Type != ElementNode {
				return
			}
			for _, tag := range tags {
				if d.Tag == tag {
					found = append(found, d)
					return
				}
			}
		})
	}
	return found
}

// walk visits n and its descendants depth-first, pre-order
func (n *Node) walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.walk(visit)
	}
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}
