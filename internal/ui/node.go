package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: panel, label, link, etc. It has optional class and id for CSS
// matching, bounds (position and size), optional text, and the two page-level switches the
// portfolio drives: Opacity (0 hides it visually, 1 fully shown) and Hidden (display: none).
type Node struct {
	Type    string // "panel", "label", "link", etc.
	Class   string // e.g. "nav" for .nav
	ID      string // e.g. "Title" for #Title
	Bounds  rl.Rectangle
	Text    string
	Opacity float32
	Hidden  bool
}

// NewNode creates a fully opaque, displayed node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:    typ,
		Class:   class,
		ID:      id,
		Text:    text,
		Opacity: 1,
	}
}

// Visible reports whether the node would draw anything.
func (n *Node) Visible() bool {
	return !n.Hidden && n.Opacity > 0
}
