package dom

// FindFirst returns the first node in the subtree rooted at root (root
// included) for which pred holds, traversing depth-first in pre-order
// with children visited in document order. Returns nil when no node
// matches; absence is a value, never an error.
func FindFirst(root *Node, pred func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	if pred(root) {
		return root
	}
	for _, child := range root.Children {
		if found := FindFirst(child, pred); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag returns the first descendant (or root) with the given tag name
func FindByTag(root *Node, tag string) *Node {
	return FindFirst(root, func(n *Node) bool {
		return n.Tag == tag
	})
}

// FindByClass returns the first descendant (or root) whose class attribute
// equals class verbatim. Compound values like "wsod_bold wsod_aRight" must
// match the whole attribute string; nodes without attributes never match.
func FindByClass(root *Node, class string) *Node {
	return FindFirst(root, func(n *Node) bool {
		return n.Attributes["class"] == class
	})
}
