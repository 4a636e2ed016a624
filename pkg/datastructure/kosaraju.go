package datastructure

import (
	"github.com/lintang-b-s/navigatorx-dijkstra/pkg/util"
)

// StronglyConnectedComponents. kosaraju's algorithm over the node based graph.
// returns the component id of every vertex and the number of components. parallel edges are visited once per edge,
// which does not change the result.
func (g *Graph) StronglyConnectedComponents() ([]Index, int) {
	n := Index(g.NumberOfVertices())

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < n; v++ {
		if !visited[v] {
			g.dfsFinishOrder(v, &order, visited)
		}
	}

	order = util.ReverseG[Index](order)

	inEdges := make([][]Index, n)
	for i := range g.edges {
		e := &g.edges[i]
		inEdges[e.to] = append(inEdges[e.to], e.from)
	}

	sccs := make([]Index, n)
	visited = make([]bool, n)
	numComponents := 0
	stack := make([]Index, 0, 64)
	for _, v := range order {
		if visited[v] {
			continue
		}
		comp := Index(numComponents)
		numComponents++

		visited[v] = true
		stack = append(stack[:0], v)
		for len(stack) > 0 {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			sccs[u] = comp
			for _, w := range inEdges[u] {
				if !visited[w] {
					visited[w] = true
					stack = append(stack, w)
				}
			}
		}
	}
	return sccs, numComponents
}

// dfsFinishOrder. iterative dfs, appends vertices to output in post order
func (g *Graph) dfsFinishOrder(root Index, output *[]Index, visited []bool) {
	type frame struct {
		v    Index
		next int
	}
	visited[root] = true
	stack := []frame{{v: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(g.outEdges[top.v]) {
			w := g.edges[g.outEdges[top.v][top.next]].to
			top.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{v: w})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}

// LargestStronglyConnectedComponent. membership mask of the biggest scc, ties go to the lower component id
func (g *Graph) LargestStronglyConnectedComponent() ([]bool, int) {
	sccs, numComponents := g.StronglyConnectedComponents()
	if numComponents == 0 {
		return []bool{}, 0
	}
	sizes := make([]int, numComponents)
	for _, c := range sccs {
		sizes[c]++
	}
	best := 0
	for c := 1; c < numComponents; c++ {
		if sizes[c] > sizes[best] {
			best = c
		}
	}

	keep := make([]bool, len(sccs))
	for v, c := range sccs {
		keep[v] = int(c) == best
	}
	return keep, sizes[best]
}

// InducedSubgraph. new graph with only the vertices in keep and the edges between them.
// vertices are renumbered in order, edges keep their insertion order so parallel edge keys stay stable.
func (g *Graph) InducedSubgraph(keep []bool) *Graph {
	sub := NewGraphWithSize(len(g.nodes), len(g.edges))
	newId := make([]Index, len(g.nodes))
	for v := range g.nodes {
		if keep[v] {
			n := &g.nodes[v]
			newId[v] = sub.AddNode(n.externalId, n.lat, n.lon)
		}
	}
	for i := range g.edges {
		e := &g.edges[i]
		if !keep[e.from] || !keep[e.to] {
			continue
		}
		// both endpoints are valid vertices of sub, AddEdge cannot fail
		_, _ = sub.AddEdge(newId[e.from], newId[e.to], e.length, e.rawMaxSpeed, e.highwayType, e.geometry)
	}
	return sub
}
