package network

import (
	"sort"

	"github.com/iop0175/Roadmaker/pkg/geo"
	"github.com/iop0175/Roadmaker/pkg/world"
)

const (
	// onRoadBand is how close a crossing must sit to a road's infinite line
	// to count as lying on that road.
	onRoadBand = 2.0

	// snapDistance is the farthest a query point may be from its nearest
	// graph node; beyond it there is no usable path.
	snapDistance = 50.0
)

// Graph is the routable structure derived from roads and their crossings:
// node set = road endpoints plus crossing points, edges link consecutive
// on-road nodes. Neighbor lists keep deterministic insertion order so path
// queries are repeatable for a fixed road set.
type Graph struct {
	nodes map[Key]geo.Point
	adj   map[Key][]Key
	order []Key
}

// Build constructs the graph for the road set. Crossings are recomputed
// here; the result is independent of road ordering up to numeric ties, which
// resolve first-closer-wins everywhere downstream.
func Build(roads []*world.Road) *Graph {
	g := &Graph{
		nodes: make(map[Key]geo.Point),
		adj:   make(map[Key][]Key),
	}

	intersections := FindIntersections(roads)
	var crossings []geo.Point
	for _, it := range intersections {
		if it.Kind == KindCrossing {
			crossings = append(crossings, it.Point)
		}
	}

	for _, r := range roads {
		g.addNode(r.Start)
		g.addNode(r.End)

		if r.Curved() {
			// A curve is a single edge between its endpoints; it never
			// hosts mid-segment nodes.
			g.addEdge(KeyOf(r.Start), KeyOf(r.End))
			continue
		}

		type onRoad struct {
			t float64
			k Key
		}
		nodes := []onRoad{{0, KeyOf(r.Start)}, {1, KeyOf(r.End)}}
		for _, c := range crossings {
			t, dist := geo.LineProjection(c, r.Start, r.End)
			if dist < onRoadBand && t > 0 && t < 1 {
				g.addNode(c)
				nodes = append(nodes, onRoad{t, KeyOf(c)})
			}
		}
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].t < nodes[j].t })

		for i := 1; i < len(nodes); i++ {
			g.addEdge(nodes[i-1].k, nodes[i].k)
		}
	}

	return g
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool {
	return len(g.order) == 0
}

// NodeCount returns the number of graph nodes.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// Neighbors returns the adjacency list for a node key.
func (g *Graph) Neighbors(k Key) []Key {
	return g.adj[k]
}

func (g *Graph) addNode(p geo.Point) {
	k := KeyOf(p)
	if _, ok := g.nodes[k]; ok {
		return
	}
	g.nodes[k] = p
	g.order = append(g.order, k)
}

func (g *Graph) addEdge(a, b Key) {
	if a == b {
		return
	}
	g.link(a, b)
	g.link(b, a)
}

func (g *Graph) link(from, to Key) {
	for _, n := range g.adj[from] {
		if n == to {
			return
		}
	}
	g.adj[from] = append(g.adj[from], to)
}

// snap returns the nearest node to p under strict less-than comparison, in
// node insertion order, and whether it lies within the snap tolerance.
func (g *Graph) snap(p geo.Point) (Key, bool) {
	var best Key
	bestDist := -1.0
	for _, k := range g.order {
		d := p.Distance(g.nodes[k])
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = k
		}
	}
	if bestDist < 0 || bestDist > snapDistance {
		return Key{}, false
	}
	return best, true
}

// FindPath returns the fewest-edge path between the graph nodes nearest to
// start and end. It fails when either point is farther than the snap
// tolerance from the graph or the two snapped nodes are disconnected. When
// both snap to the same node the result is a degenerate single-node path;
// callers treat anything shorter than two nodes as unusable.
func (g *Graph) FindPath(start, end geo.Point) ([]geo.Point, bool) {
	from, ok := g.snap(start)
	if !ok {
		return nil, false
	}
	to, ok := g.snap(end)
	if !ok {
		return nil, false
	}

	if from == to {
		return []geo.Point{g.nodes[from]}, true
	}

	prev := map[Key]Key{from: from}
	queue := []Key{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, n := range g.adj[cur] {
			if _, seen := prev[n]; seen {
				continue
			}
			prev[n] = cur
			queue = append(queue, n)
		}
	}

	if _, reached := prev[to]; !reached {
		return nil, false
	}

	var rev []geo.Point
	for cur := to; ; cur = prev[cur] {
		rev = append(rev, g.nodes[cur])
		if cur == from {
			break
		}
	}
	path := make([]geo.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path, true
}
