package getcomics

import (
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
)

// htmlNavigator implements xpath.NodeNavigator for HTML nodes.
// attr is the index of the current attribute, or -1 when positioned on the
// node itself.
type htmlNavigator struct {
	root *html.Node
	node *html.Node
	attr int
}

func createHTMLNavigator(root *html.Node) *htmlNavigator {
	return &htmlNavigator{root: root, node: root, attr: -1}
}

func (h *htmlNavigator) NodeType() xpath.NodeType {
	switch h.node.Type {
	case html.DocumentNode:
		return xpath.RootNode
	case html.ElementNode:
		if h.attr != -1 {
			return xpath.AttributeNode
		}
		return xpath.ElementNode
	case html.TextNode:
		return xpath.TextNode
	case html.CommentNode:
		return xpath.CommentNode
	default:
		return xpath.ElementNode
	}
}

func (h *htmlNavigator) LocalName() string {
	if h.attr != -1 {
		return h.node.Attr[h.attr].Key
	}
	if h.node.Type == html.ElementNode {
		return h.node.Data
	}
	return ""
}

func (h *htmlNavigator) Prefix() string {
	return ""
}

// Value is the attribute value, the text of text and comment nodes, or the
// concatenated inner text of an element.
func (h *htmlNavigator) Value() string {
	if h.attr != -1 {
		return h.node.Attr[h.attr].Val
	}
	switch h.node.Type {
	case html.TextNode, html.CommentNode:
		return h.node.Data
	case html.ElementNode, html.DocumentNode:
		return innerText(h.node)
	}
	return ""
}

func (h *htmlNavigator) Copy() xpath.NodeNavigator {
	n := *h
	return &n
}

func (h *htmlNavigator) MoveToRoot() {
	h.node = h.root
	h.attr = -1
}

func (h *htmlNavigator) MoveToParent() bool {
	if h.attr != -1 {
		h.attr = -1
		return true
	}
	if h.node.Parent != nil {
		h.node = h.node.Parent
		return true
	}
	return false
}

func (h *htmlNavigator) MoveToNextAttribute() bool {
	if h.node.Type != html.ElementNode || h.attr >= len(h.node.Attr)-1 {
		return false
	}
	h.attr++
	return true
}

func (h *htmlNavigator) MoveToChild() bool {
	if h.attr != -1 || h.node.FirstChild == nil {
		return false
	}
	h.node = h.node.FirstChild
	return true
}

func (h *htmlNavigator) MoveToFirst() bool {
	if h.attr != -1 || h.node.Parent == nil {
		return false
	}
	h.node = h.node.Parent.FirstChild
	return true
}

func (h *htmlNavigator) String() string {
	return h.Value()
}

func (h *htmlNavigator) MoveToNext() bool {
	if h.attr != -1 || h.node.NextSibling == nil {
		return false
	}
	h.node = h.node.NextSibling
	return true
}

func (h *htmlNavigator) MoveToPrevious() bool {
	if h.attr != -1 || h.node.PrevSibling == nil {
		return false
	}
	h.node = h.node.PrevSibling
	return true
}

func (h *htmlNavigator) MoveTo(other xpath.NodeNavigator) bool {
	if o, ok := other.(*htmlNavigator); ok && o.root == h.root {
		h.node = o.node
		h.attr = o.attr
		return true
	}
	return false
}

// current returns the node the navigator is positioned on.
func (h *htmlNavigator) current() *html.Node {
	return h.node
}

func innerText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var out []byte
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode {
			continue
		}
		out = append(out, innerText(c)...)
	}
	return string(out)
}
