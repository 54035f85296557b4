package domain

// Graph is the validated dependency graph produced by the Graph Builder:
// forward edges (dependents), an indegree map, and the node table itself.
// Cycle detection is deliberately not performed here — that is the
// Topological Scheduler's job (see internal/core/graph).
type Graph struct {
	nodes      map[string]Task
	order      []string
	indegree   map[string]int
	dependents map[string][]string
}

// NewGraph builds a Graph from a flat task list. It does not check for
// cycles; it only establishes the node table, per-node indegree, and the
// reverse adjacency (dependents) list.
func NewGraph(tasks []Task) *Graph {
	g := &Graph{
		nodes:      make(map[string]Task, len(tasks)),
		order:      make([]string, 0, len(tasks)),
		indegree:   make(map[string]int, len(tasks)),
		dependents: make(map[string][]string),
	}
	for _, t := range tasks {
		g.nodes[t.ID] = t
		g.order = append(g.order, t.ID)
		if _, ok := g.indegree[t.ID]; !ok {
			g.indegree[t.ID] = 0
		}
	}
	for _, t := range tasks {
		seen := make(map[string]bool, len(t.DependsOn))
		for _, dep := range t.DependsOn {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			g.indegree[t.ID]++
			g.dependents[dep] = append(g.dependents[dep], t.ID)
		}
	}
	return g
}

// Task returns the task descriptor for the given id.
func (g *Graph) Task(id string) (Task, bool) {
	t, ok := g.nodes[id]
	return t, ok
}

// TaskIDs returns all task ids in blueprint declaration order.
func (g *Graph) TaskIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Indegree returns a fresh copy of the indegree map, safe for a scheduler
// to mutate while draining a run.
func (g *Graph) Indegree() map[string]int {
	out := make(map[string]int, len(g.indegree))
	for k, v := range g.indegree {
		out[k] = v
	}
	return out
}

// Dependents returns the ids of tasks that directly depend on id.
func (g *Graph) Dependents(id string) []string {
	return g.dependents[id]
}

// TaskCount returns the number of nodes in the graph.
func (g *Graph) TaskCount() int {
	return len(g.nodes)
}

// Leaves returns the ids of tasks with no dependents (zero out-degree):
// the workflow's leaf tasks, whose outputs form the final workflow output.
func (g *Graph) Leaves() []string {
	var leaves []string
	for _, id := range g.order {
		if len(g.dependents[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}
