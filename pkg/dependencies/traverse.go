package dependencies

import (
	"iter"
	"slices"
)

// TraverseOptions controls how Traverse walks the graph
type TraverseOptions struct {
	// TraverseAllPaths yields a node once per distinct import path instead of once overall.
	// A node already on the current import path is still pruned.
	TraverseAllPaths bool
}

// Visit is a node reached during a traversal together with the import path that reached
// it. ImportPath runs from the root to the node itself and belongs to the caller. The
// embedded node is shared with the graph.
type Visit struct {
	*Node
	ImportPath []*Node
}

type frame struct {
	node   *Node
	parent []*Node
}

// Walker is a pull-based depth-first pre-order traversal. The graph must not change while
// a Walker is in use, and a Walker serves a single consumer.
type Walker struct {
	opts    TraverseOptions
	stack   []frame
	visited map[*Node]bool
}

// NewWalker starts a traversal at root
func NewWalker(root *Node, opts TraverseOptions) *Walker {
	w := &Walker{opts: opts, visited: make(map[*Node]bool)}
	if root != nil {
		w.stack = append(w.stack, frame{node: root})
	}
	return w
}

// Next returns the next visit, or false when the traversal is done
func (w *Walker) Next() (*Visit, bool) {
	for len(w.stack) > 0 {
		f := w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]

		if slices.Contains(f.parent, f.node) {
			continue
		}
		if !w.opts.TraverseAllPaths {
			if w.visited[f.node] {
				continue
			}
			w.visited[f.node] = true
		}

		importPath := make([]*Node, len(f.parent)+1)
		copy(importPath, f.parent)
		importPath[len(f.parent)] = f.node

		// pushed in reverse so the first declared dependency is visited first
		names := f.node.Dependencies.Names()
		for i := len(names) - 1; i >= 0; i-- {
			child, _ := f.node.Dependencies.Get(names[i])
			w.stack = append(w.stack, frame{node: child, parent: importPath})
		}

		// children keep importPath as their parent, so the caller gets its own copy
		return &Visit{Node: f.node, ImportPath: slices.Clone(importPath)}, true
	}
	return nil, false
}

// Traverse returns a lazy depth-first pre-order sequence of visits starting at root
func Traverse(root *Node, opts TraverseOptions) iter.Seq[*Visit] {
	return func(yield func(*Visit) bool) {
		w := NewWalker(root, opts)
		for {
			v, ok := w.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}
