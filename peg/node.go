package peg

import (
	"fmt"
	"io"
	"strings"
)

// Span is a half-open range [From, To) of byte offsets into the input.
type Span struct {
	From int
	To   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int {
	return s.To - s.From
}

func (s Span) String() string {
	return fmt.Sprintf("[%d:%d)", s.From, s.To)
}

// Node is a node of a parse tree. Children are ordered by position and do not
// overlap.
type Node struct {
	Rule     string
	Span     Span
	Children []*Node
}

// Text returns the part of input covered by the node. input must be the string
// the tree has been parsed from.
func (n *Node) Text(input string) string {
	return input[n.Span.From:n.Span.To]
}

// Find returns the first node in pre-order with the given rule name, or nil.
func (n *Node) Find(rule string) *Node {
	if n == nil {
		return nil
	}
	if n.Rule == rule {
		return n
	}
	for _, ch := range n.Children {
		if f := ch.Find(rule); f != nil {
			return f
		}
	}
	return nil
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return n.Rule + n.Span.String()
}

// Dump writes an indented representation of the tree to w, quoting the text of
// leaf nodes.
func (n *Node) Dump(w io.Writer, input string) {
	n.dump(w, input, 0)
}

func (n *Node) dump(w io.Writer, input string, level int) {
	indent := strings.Repeat("  ", level)
	if len(n.Children) == 0 {
		if n.Span.Len() == 0 {
			fmt.Fprintf(w, "%s%s\n", indent, n)
			return
		}
		fmt.Fprintf(w, "%s%s %q\n", indent, n, n.Text(input))
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, n)
	for _, ch := range n.Children {
		ch.dump(w, input, level+1)
	}
}
