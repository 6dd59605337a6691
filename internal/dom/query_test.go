package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindFirstPreOrder(t *testing.T) {
	// Two matching text nodes; pre-order traversal must return the first
	// one in document order
	root := &Node{
		Tag: "DIV",
		Children: []*Node{
			{Tag: "SPAN", Children: []*Node{
				{Tag: TextTag, Value: "first"},
			}},
			{Tag: TextTag, Value: "second"},
		},
	}

	found := FindFirst(root, func(n *Node) bool { return n.IsText() })
	assert.NotNil(t, found)
	assert.Equal(t, "first", found.Value)
}

func TestFindFirstIncludesRoot(t *testing.T) {
	root := &Node{Tag: "TBODY"}
	assert.Equal(t, root, FindByTag(root, "TBODY"))
}

func TestFindFirstNilRoot(t *testing.T) {
	assert.Nil(t, FindFirst(nil, func(n *Node) bool { return true }))
}

func TestFindFirstNoMatch(t *testing.T) {
	root := &Node{Tag: "DIV", Children: []*Node{{Tag: "SPAN"}}}
	assert.Nil(t, FindByTag(root, "TABLE"))
}

func TestFindByClassExactCompoundMatch(t *testing.T) {
	root := &Node{
		Tag: "DIV",
		Children: []*Node{
			{Tag: "TD", Attributes: map[string]string{"class": "wsod_bold"}},
			{Tag: "TD", Attributes: map[string]string{"class": "wsod_bold wsod_aRight"}},
		},
	}

	// The compound string matches the whole attribute value verbatim,
	// not set membership
	found := FindByClass(root, "wsod_bold wsod_aRight")
	assert.NotNil(t, found)
	assert.Equal(t, "wsod_bold wsod_aRight", found.Attributes["class"])

	assert.Nil(t, FindByClass(root, "wsod_aRight"))
}

func TestFindByClassAbsentAttributes(t *testing.T) {
	// Nodes without attributes must be non-matching, never an error
	root := &Node{Tag: "DIV", Children: []*Node{{Tag: "SPAN"}}}
	assert.Nil(t, FindByClass(root, "anything"))
}
