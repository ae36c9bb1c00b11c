package site

// Viewport receives scroll resets caused by navigation
type Viewport interface {
	ScrollTo(x, y int)
}

// NavigationState is the serializable part of a Navigator
type NavigationState struct {
	CurrentPath string `json:"current_path"`
}

// Navigator tracks the current path of one visitor
type Navigator struct {
	state    NavigationState
	viewport Viewport
}

// NewNavigator restores a navigator from state. An empty path starts at DefaultPath.
// viewport may be nil.
func NewNavigator(state NavigationState, viewport Viewport) *Navigator {
	if state.CurrentPath == "" {
		state.CurrentPath = DefaultPath
	}
	return &Navigator{state: state, viewport: viewport}
}

// CurrentPath returns the path of the active page
func (n *Navigator) CurrentPath() string {
	return n.state.CurrentPath
}

// Navigate moves to path and scrolls the viewport back to the top
func (n *Navigator) Navigate(path string) {
	n.state.CurrentPath = path
	if n.viewport != nil {
		n.viewport.ScrollTo(0, 0)
	}
}

// Reset returns to the entry path without touching the viewport
func (n *Navigator) Reset() {
	n.state.CurrentPath = DefaultPath
}

// State returns a copy of the navigator state for persisting
func (n *Navigator) State() NavigationState {
	return n.state
}
