package bsp

// Action tells a traversal whether to keep walking.
type Action int

const (
	// Continue visits the next node.
	Continue Action = iota
	// Stop aborts the rest of the traversal, including unvisited siblings.
	Stop
)

// Visitor is called once per visited node.
type Visitor func(node *Node) Action

// TraversePreOrder visits a node before its children.
func (n *Node) TraversePreOrder(visit Visitor) Action {
	if visit(n) == Stop {
		return Stop
	}
	if n.left != nil && n.left.TraversePreOrder(visit) == Stop {
		return Stop
	}
	if n.right != nil && n.right.TraversePreOrder(visit) == Stop {
		return Stop
	}
	return Continue
}

// TraverseInOrder visits the left subtree, the node, then the right subtree.
func (n *Node) TraverseInOrder(visit Visitor) Action {
	if n.left != nil && n.left.TraverseInOrder(visit) == Stop {
		return Stop
	}
	if visit(n) == Stop {
		return Stop
	}
	if n.right != nil && n.right.TraverseInOrder(visit) == Stop {
		return Stop
	}
	return Continue
}

// TraversePostOrder visits a node after its children.
func (n *Node) TraversePostOrder(visit Visitor) Action {
	if n.left != nil && n.left.TraversePostOrder(visit) == Stop {
		return Stop
	}
	if n.right != nil && n.right.TraversePostOrder(visit) == Stop {
		return Stop
	}
	return visit(n)
}

// TraverseLevelOrder visits nodes breadth first, left to right.
func (n *Node) TraverseLevelOrder(visit Visitor) Action {
	for _, node := range n.levelOrder() {
		if visit(node) == Stop {
			return Stop
		}
	}
	return Continue
}

// TraverseInvertedLevelOrder visits the level order sequence backwards, so the
// deepest nodes come first and the root last.
func (n *Node) TraverseInvertedLevelOrder(visit Visitor) Action {
	nodes := n.levelOrder()
	for i := len(nodes) - 1; i >= 0; i-- {
		if visit(nodes[i]) == Stop {
			return Stop
		}
	}
	return Continue
}

func (n *Node) levelOrder() []*Node {
	nodes := []*Node{n}
	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if node.left != nil {
			nodes = append(nodes, node.left)
		}
		if node.right != nil {
			nodes = append(nodes, node.right)
		}
	}
	return nodes
}
