package ui

import "fmt"

// Inspector is a right-side panel with the camera and transition readout. It owns its nodes
// and updates their text when AppendNodes is called with visible true.
// Shown only when visible is true (the console is open).
type Inspector struct {
	panel    *Node
	title    *Node
	state    *Node
	progress *Node
	position *Node
	look     *Node
	hover    *Node
}

// NewInspector creates an Inspector with nodes styled by the engine's CSS (.inspector, .inspector-title, etc.).
func NewInspector() *Inspector {
	return &Inspector{
		panel:    NewNode("panel", "inspector", "", ""),
		title:    NewNode("label", "inspector-title", "", "Camera"),
		state:    NewNode("label", "inspector-state", "", ""),
		progress: NewNode("label", "inspector-progress", "", ""),
		position: NewNode("label", "inspector-position", "", ""),
		look:     NewNode("label", "inspector-look", "", ""),
		hover:    NewNode("label", "inspector-hover", "", ""),
	}
}

// Selection holds the data shown in the inspector. The caller fills it from the app context;
// ui does not depend on the camera packages.
type Selection struct {
	State    string
	Progress float32
	Position [3]float32
	Look     [3]float32
	Hover    bool
	// RevealPending is set while the nav reveal timer is armed.
	RevealPending bool
}

// AppendNodes appends inspector nodes to dst when visible is true, after updating labels from sel.
// When visible is false, dst is returned unchanged. Call every frame so visibility and content stay in sync.
func (in *Inspector) AppendNodes(dst []*Node, visible bool, sel Selection) []*Node {
	if !visible {
		return dst
	}
	in.state.Text = "State: " + sel.State
	if sel.RevealPending {
		in.state.Text += " (reveal pending)"
	}
	in.progress.Text = fmt.Sprintf("Progress: %.3f", sel.Progress)
	in.position.Text = fmt.Sprintf("Position: %.3f, %.3f, %.3f", sel.Position[0], sel.Position[1], sel.Position[2])
	in.look.Text = fmt.Sprintf("Look: %.3f, %.3f, %.3f", sel.Look[0], sel.Look[1], sel.Look[2])
	if sel.Hover {
		in.hover.Text = "Hover: computer"
	} else {
		in.hover.Text = "Hover: -"
	}
	return append(dst, in.panel, in.title, in.state, in.progress, in.position, in.look, in.hover)
}
