package thread

// Entry is one line of a rendered thread: the node, its indentation depth,
// the number of immediate replies, and whether the subtree below it is
// currently hidden.
type Entry struct {
	Node      *Node
	Depth     int
	Replies   int
	Collapsed bool
}

// Flatten walks the forest depth-first and returns the entries visible under
// the given collapse state. A collapsed node is itself visible but its entire
// subtree is skipped; descendant collapse flags are neither consulted nor
// altered, so re-expanding a parent reveals descendants in whatever state
// they were left.
func Flatten(roots []*Node, collapsed map[string]bool) []Entry {
	var out []Entry
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			hidden := collapsed[n.ID] && len(n.Children) > 0
			out = append(out, Entry{
				Node:      n,
				Depth:     depth,
				Replies:   len(n.Children),
				Collapsed: hidden,
			})
			if !hidden {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(roots, 0)
	return out
}
