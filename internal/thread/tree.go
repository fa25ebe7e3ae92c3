package thread

import "sort"

// BuildTree converts a flat, unordered comment collection into a forest of
// top-level nodes. Children are attached by ParentID and every level
// (including the top level) is sorted ascending by creation time. The sort is
// stable, so comments sharing a timestamp keep their input order.
//
// A comment whose parent id does not exist in the collection is kept as a
// top-level node rather than dropped. The input is not modified; calling
// BuildTree twice on the same collection yields the same forest regardless of
// input order.
func BuildTree(comments []Comment) []*Node {
	nodes := make(map[string]*Node, len(comments))
	for i := range comments {
		nodes[comments[i].ID] = &Node{Comment: comments[i]}
	}

	roots := make([]*Node, 0, len(comments))
	for i := range comments {
		n := nodes[comments[i].ID]
		pid := comments[i].ParentID
		if pid != nil && *pid != "" && *pid != comments[i].ID {
			if parent, ok := nodes[*pid]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		// top-level, or orphan demoted to top-level
		roots = append(roots, n)
	}

	sortByDate(roots)
	return roots
}

// sortByDate orders siblings oldest-first at every level. Timestamps are
// compared as instants, not as strings.
func sortByDate(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
	for _, n := range nodes {
		sortByDate(n.Children)
	}
}

// Count returns the number of nodes reachable from the forest.
func Count(roots []*Node) int {
	total := 0
	for _, n := range roots {
		total += 1 + Count(n.Children)
	}
	return total
}

// Descendants returns the ids of every comment whose parent chain leads back
// to rootID, at any depth. rootID itself is not included. An id that is not
// present in the collection has no descendants.
func Descendants(comments []Comment, rootID string) []string {
	children := make(map[string][]string, len(comments))
	for i := range comments {
		if pid := comments[i].ParentID; pid != nil {
			children[*pid] = append(children[*pid], comments[i].ID)
		}
	}

	var ids []string
	seen := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if seen[child] {
				// reference cycle in adversarial data, don't loop
				continue
			}
			seen[child] = true
			ids = append(ids, child)
			queue = append(queue, child)
		}
	}
	return ids
}

// Prune removes id and every descendant from the flat collection in a single
// pass and returns the remainder. Pruning an id that is not present removes
// nothing. The input slice is left untouched.
func Prune(comments []Comment, id string) []Comment {
	doomed := map[string]bool{id: true}
	for _, d := range Descendants(comments, id) {
		doomed[d] = true
	}

	kept := make([]Comment, 0, len(comments))
	for i := range comments {
		if !doomed[comments[i].ID] {
			kept = append(kept, comments[i])
		}
	}
	return kept
}
