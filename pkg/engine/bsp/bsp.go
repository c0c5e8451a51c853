// Package bsp implements a binary space partition tree that recursively carves
// a rectangle into non-overlapping sub-rectangles for procedural layouts.
package bsp

import (
	"roguekernel/pkg/engine/rng"
)

// Node is a rectangle in the tree. A node is a leaf until it is split, after
// which its two children exactly cover its rectangle.
type Node struct {
	x, y, w, h int

	horizontal bool
	position   int
	level      int

	// parent is a lookup link only; nodes are owned by their parent's
	// left/right fields.
	parent      *Node
	left, right *Node
}

// New creates a root node covering (x, y, w, h).
func New(x, y, w, h int) *Node {
	return &Node{x: x, y: y, w: w, h: h}
}

// X returns the left edge.
func (n *Node) X() int { return n.x }

// Y returns the top edge.
func (n *Node) Y() int { return n.y }

// W returns the width.
func (n *Node) W() int { return n.w }

// H returns the height.
func (n *Node) H() int { return n.h }

// Horizontal reports whether the node was cut by a horizontal line (children
// stacked top and bottom). Meaningless for leaves.
func (n *Node) Horizontal() bool { return n.horizontal }

// Position returns the absolute coordinate of the cut. Meaningless for leaves.
func (n *Node) Position() int { return n.position }

// Level returns the depth of the node; the root is level 0.
func (n *Node) Level() int { return n.level }

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Left returns the top or left child.
func (n *Node) Left() *Node { return n.left }

// Right returns the bottom or right child.
func (n *Node) Right() *Node { return n.right }

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	return n.left == nil && n.right == nil
}

// Contains reports whether (px, py) lies inside the node's rectangle.
func (n *Node) Contains(px, py int) bool {
	return px >= n.x && py >= n.y && px < n.x+n.w && py < n.y+n.h
}

// Center returns the centre cell of the rectangle.
func (n *Node) Center() (int, int) {
	return n.x + n.w/2, n.y + n.h/2
}

// Split cuts the node at the absolute coordinate position. A horizontal split
// cuts along y. Returns false and leaves the node untouched if it is already
// split or if either child would be empty.
func (n *Node) Split(horizontal bool, position int) bool {
	if !n.IsLeaf() {
		return false
	}

	if horizontal {
		if position <= n.y || position >= n.y+n.h {
			return false
		}
		n.left = n.child(n.x, n.y, n.w, position-n.y)
		n.right = n.child(n.x, position, n.w, n.y+n.h-position)
	} else {
		if position <= n.x || position >= n.x+n.w {
			return false
		}
		n.left = n.child(n.x, n.y, position-n.x, n.h)
		n.right = n.child(position, n.y, n.x+n.w-position, n.h)
	}

	n.horizontal = horizontal
	n.position = position
	return true
}

func (n *Node) child(x, y, w, h int) *Node {
	return &Node{x: x, y: y, w: w, h: h, level: n.level + 1, parent: n}
}

// RemoveChildren turns the node back into a leaf.
func (n *Node) RemoveChildren() {
	if n.left != nil {
		n.left.parent = nil
	}
	if n.right != nil {
		n.right.parent = nil
	}
	n.left, n.right = nil, nil
	n.horizontal = false
	n.position = 0
}

// SplitRecursive splits every leaf below n up to depth times.
//
// minSize is the smallest side a child may have (values below 1 mean 1).
// When both sides leave room the axis is random, unless maxRatio is positive
// and the rectangle is more than maxRatio times longer on one side, in which
// case the long side is cut. When only one side has room that side is cut;
// when neither has, the node stays a leaf.
func (n *Node) SplitRecursive(r rng.Source, depth, minSize int, maxRatio float64) {
	if minSize < 1 {
		minSize = 1
	}
	n.splitRecursive(r, depth, minSize, maxRatio)
}

func (n *Node) splitRecursive(r rng.Source, depth, minSize int, maxRatio float64) {
	if depth <= 0 {
		return
	}
	if !n.IsLeaf() {
		n.left.splitRecursive(r, depth-1, minSize, maxRatio)
		n.right.splitRecursive(r, depth-1, minSize, maxRatio)
		return
	}

	roomW := n.w >= 2*minSize
	roomH := n.h >= 2*minSize
	if !roomW && !roomH {
		return
	}

	var horizontal bool
	switch {
	case !roomH:
		horizontal = false
	case !roomW:
		horizontal = true
	case maxRatio > 0 && float64(n.w) > float64(n.h)*maxRatio:
		horizontal = false
	case maxRatio > 0 && float64(n.h) > float64(n.w)*maxRatio:
		horizontal = true
	default:
		horizontal = r.GetNumber(0, 1) == 0
	}

	var position int
	if horizontal {
		position = r.GetNumber(n.y+minSize, n.y+n.h-minSize)
	} else {
		position = r.GetNumber(n.x+minSize, n.x+n.w-minSize)
	}
	n.Split(horizontal, position)

	n.left.splitRecursive(r, depth-1, minSize, maxRatio)
	n.right.splitRecursive(r, depth-1, minSize, maxRatio)
}

// FindNode returns the deepest node containing (px, py), preferring the left
// child, or nil if the point is outside n.
func (n *Node) FindNode(px, py int) *Node {
	if !n.Contains(px, py) {
		return nil
	}
	if n.left != nil && n.left.Contains(px, py) {
		return n.left.FindNode(px, py)
	}
	if n.right != nil && n.right.Contains(px, py) {
		return n.right.FindNode(px, py)
	}
	return n
}

// Leaves returns the leaves under n from left to right.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	n.TraversePreOrder(func(node *Node) Action {
		if node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return Continue
	})
	return leaves
}
