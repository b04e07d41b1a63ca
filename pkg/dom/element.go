// Package dom provides the minimal DOM-like element contract controls bind
// to, plus an in-memory Node used by tests, the CLI and server-side
// rendering.
package dom

import (
	"html"
	"slices"
	"sort"
	"strings"
)

// Element is the element surface the control core needs: id assignment and
// class add/remove. Adding a present class or removing an absent one is a
// no-op.
type Element interface {
	ID() string
	SetID(id string)
	AddClass(class string)
	RemoveClass(class string)
	HasClass(class string) bool
	Classes() []string
}

// Node is an in-memory element. Classes keep insertion order so rendered
// output is stable.
type Node struct {
	tag       string
	id        string
	classes   []string
	attrs     map[string]string
	innerHTML string
	hidden    bool
}

var _ Element = (*Node)(nil)

// NewNode creates a node for the supplied tag name. An empty tag renders as
// a div.
func NewNode(tag string) *Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	return &Node{tag: tag}
}

func (n *Node) Tag() string {
	return n.tag
}

func (n *Node) ID() string {
	return n.id
}

func (n *Node) SetID(id string) {
	n.id = strings.TrimSpace(id)
}

func (n *Node) AddClass(class string) {
	class = strings.TrimSpace(class)
	if class == "" || n.HasClass(class) {
		return
	}
	n.classes = append(n.classes, class)
}

func (n *Node) RemoveClass(class string) {
	class = strings.TrimSpace(class)
	idx := slices.Index(n.classes, class)
	if idx < 0 {
		return
	}
	n.classes = slices.Delete(n.classes, idx, idx+1)
}

func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the class list.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// SetAttr sets an attribute. "id" and "class" are routed to their dedicated
// setters.
func (n *Node) SetAttr(name, value string) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return
	case "id":
		n.SetID(value)
		return
	case "class":
		n.classes = nil
		for _, class := range strings.Fields(value) {
			n.AddClass(class)
		}
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
}

// Attr returns an attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "id":
		return n.id, n.id != ""
	case "class":
		return strings.Join(n.classes, " "), len(n.classes) > 0
	}
	value, ok := n.attrs[name]
	return value, ok
}

// RemoveAttr deletes an attribute.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, strings.ToLower(strings.TrimSpace(name)))
}

// SetInnerHTML replaces the node body. Callers are responsible for
// sanitizing the markup.
func (n *Node) SetInnerHTML(markup string) {
	n.innerHTML = markup
}

func (n *Node) InnerHTML() string {
	return n.innerHTML
}

func (n *Node) SetHidden(hidden bool) {
	n.hidden = hidden
}

func (n *Node) Hidden() bool {
	return n.hidden
}

// voidElements never carry a body or a closing tag.
var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "link": true, "meta": true,
}

// Render serialises the node as HTML. Void elements such as input are
// written without a body. Attributes are emitted in a stable
// order: id, class, then the rest sorted by name.
func (n *Node) Render() string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.tag)
	if n.id != "" {
		writeAttr(&b, "id", n.id)
	}
	if len(n.classes) > 0 {
		writeAttr(&b, "class", strings.Join(n.classes, " "))
	}
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		writeAttr(&b, name, n.attrs[name])
	}
	if n.hidden {
		b.WriteString(" hidden")
	}
	b.WriteString(">")
	if voidElements[n.tag] {
		return b.String()
	}
	b.WriteString(n.innerHTML)
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteString(">")
	return b.String()
}

func writeAttr(b *strings.Builder, name, value string) {
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}
