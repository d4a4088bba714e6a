package workflow

// Distances computes each block's shortest hop count from the workflow's
// starter block via breadth-first traversal over the directed edges.
//
// The starter is the first block (in snapshot order) whose type is
// BlockTypeStarter. Blocks that are unreachable from it, and every block
// when no starter exists, keep distance zero — so ordering built on these
// distances collapses to insertion order in those cases. A visited set
// guards against cycles; each block is enqueued at most once.
func Distances(blocks []Block, edges []Edge) map[string]int {
	dist := make(map[string]int, len(blocks))

	var start string
	for _, b := range blocks {
		if b.Type == BlockTypeStarter {
			start = b.ID
			break
		}
	}
	if start == "" {
		return dist
	}

	adjacency := make(map[string][]string, len(edges))
	for _, e := range edges {
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	dist[start] = 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[current] {
			if visited[next] {
				continue
			}
			visited[next] = true
			dist[next] = dist[current] + 1
			queue = append(queue, next)
		}
	}
	return dist
}
