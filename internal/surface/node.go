package surface

import (
	"slices"
	"time"

	"github.com/danhigham/splashscreen/internal/domain"
)

// Kind identifies what a node renders as.
type Kind int

const (
	KindContainer Kind = iota
	KindImage
	KindText
	KindTrack
	KindFill
	KindSpinner
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	case KindTrack:
		return "track"
	case KindFill:
		return "fill"
	case KindSpinner:
		return "spinner"
	default:
		return "unknown"
	}
}

// Style holds the inline style properties a node can carry.
type Style struct {
	Background   string        // hex or ANSI color
	Foreground   string        // text, spinner or fill color
	ZIndex       int           // stacking order among mounted containers
	Transition   time.Duration // duration of the hidden/visible transition
	WidthPercent float64       // fill width, 0-100
	DisplayNone  bool
}

// Node is one element of the retained visual tree.
type Node struct {
	ID        string
	Kind      Kind
	Style     Style
	Src       string
	Alt       string
	Text      string
	Width     int // pixels, converted to cells at render time
	Height    int
	Animation domain.Animation

	classes  []string
	children []*Node
	parent   *Node
	art      string
	mounted  time.Time
}

// NewNode creates a detached node.
func NewNode(kind Kind, classes ...string) *Node {
	n := &Node{Kind: kind}
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// AddClass adds c to the class list if absent.
func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.classes = append(n.classes, c)
}

// RemoveClass removes each of cs from the class list.
func (n *Node) RemoveClass(cs ...string) {
	n.classes = slices.DeleteFunc(n.classes, func(c string) bool {
		return slices.Contains(cs, c)
	})
}

// HasClass reports whether c is in the class list.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.classes, c)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Art returns the loaded image content of an image node.
func (n *Node) Art() string {
	return n.art
}

// Query returns the first descendant (depth first) carrying class c.
func (n *Node) Query(c string) *Node {
	for _, child := range n.children {
		if child.HasClass(c) {
			return child
		}
		if found := child.Query(c); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 1
	for _, child := range n.children {
		total += child.Count()
	}
	return total
}
