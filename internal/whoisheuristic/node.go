package whoisheuristic

// Node is a duck-typed WHOIS response tree: a mapping from field name to
// (scalar | array | nested Node). Arrays are
// deliberately opaque — their contents (Name Server, Domain Status, text)
// are already reflected in the owning node's Raw field — so Value only
// distinguishes scalar/array from a nested Node.
type Node struct {
	// Raw holds the node's "__raw" field, if present.
	Raw string
	// HasRaw reports whether Raw was actually present (vs. the zero value).
	HasRaw bool
	// Fields holds every other field on the node, keyed by name.
	Fields map[string]Value
}

// Value is one field's value within a Node: either a scalar/array leaf
// (Leaf true for either case — the scanner never distinguishes them) or a
// nested Node to recurse into.
type Value struct {
	Nested *Node
	Leaf   bool
}

// NewLeaf wraps an opaque scalar or array field.
func NewLeaf() Value {
	return Value{Leaf: true}
}

// NewNested wraps a referral/child node.
func NewNested(n *Node) Value {
	return Value{Nested: n}
}
