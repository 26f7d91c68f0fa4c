package records

import "strings"

// Node is one level of a parsed record tree. Children keep the order their
// keys first appeared in.
type Node struct {
	// Value is the leaf value, empty for pure branch nodes.
	Value string

	order    []string
	children map[string]*Node
}

// Keys returns the child keys in first-appearance order.
func (n *Node) Keys() []string {
	return n.order
}

// Child returns the child node for key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.children[key]
	return c, ok
}

// Get walks a dotted path and returns the leaf value.
func (n *Node) Get(path string) (string, bool) {
	cur := n
	for _, key := range strings.Split(path, ".") {
		next, ok := cur.children[key]
		if !ok {
			return "", false
		}
		cur = next
	}
	return cur.Value, true
}

func (n *Node) set(path []string, value string) {
	cur := n
	for _, key := range path {
		if cur.children == nil {
			cur.children = make(map[string]*Node)
		}
		next, ok := cur.children[key]
		if !ok {
			next = &Node{}
			cur.children[key] = next
			cur.order = append(cur.order, key)
		}
		cur = next
	}
	cur.Value = value
}

// Parse builds a record tree from "key[.sub...]=value" lines. Lines without
// an equals sign are skipped; a later write to the same path wins. A "meta"
// leaf such as "type:array" is stored verbatim for the consumer.
func Parse(records []string) *Node {
	root := &Node{}
	for _, r := range records {
		key, value, ok := strings.Cut(r, "=")
		if !ok || key == "" {
			continue
		}
		root.set(strings.Split(key, "."), value)
	}
	return root
}
