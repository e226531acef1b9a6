// Package xmlnode is a small namespace-tolerant node tree over an XML
// document. The legacy wire generation is navigated with it; the current
// generation unmarshals straight into tagged structs and never touches this
// package.
package xmlnode

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

type Node struct {
	Name  string
	Space string

	Attributes map[string]string

	Children []*Node

	text strings.Builder
}

// Parse reads the whole document into a node tree. Namespace prefixes are
// dropped; lookups match on local names, which is what the feeds in the wild
// require since prefix choice varies per publisher.
func Parse(reader io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(reader)
	decoder.CharsetReader = charset.NewReaderLabel

	root := &Node{}
	stack := []*Node{root}

	for {
		token, err := decoder.Token()
		if token == nil || err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch element := token.(type) {
		case xml.StartElement:
			node := &Node{
				Name:  element.Name.Local,
				Space: element.Name.Space,
			}
			if len(element.Attr) > 0 {
				node.Attributes = map[string]string{}
				for _, attribute := range element.Attr {
					node.Attributes[attribute.Name.Local] = attribute.Value
				}
			}

			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			stack[len(stack)-1].text.Write(element)
		}
	}

	if len(root.Children) == 1 {
		return root.Children[0], nil
	}

	return root, nil
}

func (n *Node) Text() string {
	return strings.TrimSpace(n.text.String())
}

// Child returns the first direct child with the given local name, stripping
// any "prefix:" from name first.
func (n *Node) Child(name string) *Node {
	name = localName(name)

	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}

	return nil
}

func (n *Node) ChildrenNamed(name string) []*Node {
	name = localName(name)

	var matches []*Node
	for _, child := range n.Children {
		if child.Name == name {
			matches = append(matches, child)
		}
	}

	return matches
}

// ChildOrSelf returns the named child when present, the node itself
// otherwise. Wire shapes differ on whether calls sit inside a CallAtStop
// wrapper.
func (n *Node) ChildOrSelf(name string) *Node {
	if child := n.Child(name); child != nil {
		return child
	}

	return n
}

// Find walks a slash-separated path of local names and returns the first
// match, nil when any step is missing.
func (n *Node) Find(path string) *Node {
	current := n
	for _, step := range strings.Split(path, "/") {
		current = current.Child(step)
		if current == nil {
			return nil
		}
	}

	return current
}

// FindAll returns every node matching the final path step under the first
// match of the leading steps.
func (n *Node) FindAll(path string) []*Node {
	steps := strings.Split(path, "/")

	current := n
	for _, step := range steps[:len(steps)-1] {
		current = current.Child(step)
		if current == nil {
			return nil
		}
	}

	return current.ChildrenNamed(steps[len(steps)-1])
}

// TextOf returns the trimmed text of the node at path, empty when absent.
func (n *Node) TextOf(path string) string {
	node := n.Find(path)
	if node == nil {
		return ""
	}

	return node.Text()
}

func (n *Node) IntOf(path string) int {
	value, err := strconv.Atoi(n.TextOf(path))
	if err != nil {
		return 0
	}

	return value
}

func (n *Node) FloatOf(path string) float64 {
	value, err := strconv.ParseFloat(n.TextOf(path), 64)
	if err != nil {
		return 0
	}

	return value
}

func (n *Node) BoolOf(path string) bool {
	return n.TextOf(path) == "true"
}

func localName(name string) string {
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		return name[idx+1:]
	}

	return name
}
