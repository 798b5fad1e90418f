package mcts

import (
	"math"

	"github.com/lox/pokersim/internal/game"
)

const rootIndex = 0

// node is a search tree node. Parent and child links are indices into the
// tree arena, and snapshot indexes the snapshot arena.
type node struct {
	parent   int
	children []int
	action   game.Action
	snapshot int
	visits   int
	value    float64
}

// Tree is the search tree built for one decision
type Tree struct {
	nodes     []node
	snapshots []Snapshot
}

func newTree(root Snapshot) *Tree {
	return &Tree{
		nodes:     []node{{parent: -1, snapshot: 0}},
		snapshots: []Snapshot{root},
	}
}

// ChildStat summarises one root child
type ChildStat struct {
	Action game.Action `json:"action"`
	Visits int         `json:"visits"`
	Value  float64     `json:"value"`
	Mean   float64     `json:"mean"`
}

// RootVisits returns the number of iterations that reached the root
func (t *Tree) RootVisits() int {
	return t.nodes[rootIndex].visits
}

// Size returns the number of nodes in the tree
func (t *Tree) Size() int {
	return len(t.nodes)
}

// Children returns the statistics of the root's children in expansion order
func (t *Tree) Children() []ChildStat {
	root := t.nodes[rootIndex]
	stats := make([]ChildStat, 0, len(root.children))
	for _, idx := range root.children {
		n := t.nodes[idx]
		stat := ChildStat{Action: n.action, Visits: n.visits, Value: n.value}
		if n.visits > 0 {
			stat.Mean = n.value / float64(n.visits)
		}
		stats = append(stats, stat)
	}
	return stats
}

// Best returns the most visited root action. Ties go to the earlier child.
// The second result is false when the root was never expanded.
func (t *Tree) Best() (game.Action, bool) {
	best := -1
	for _, idx := range t.nodes[rootIndex].children {
		if best == -1 || t.nodes[idx].visits > t.nodes[best].visits {
			best = idx
		}
	}
	if best == -1 {
		return game.Check, false
	}
	return t.nodes[best].action, true
}

func (t *Tree) snapshotOf(idx int) Snapshot {
	return t.snapshots[t.nodes[idx].snapshot]
}

// expand adds one child per legal action and reports whether any were added
func (t *Tree) expand(idx int) bool {
	state := t.snapshotOf(idx)
	actions := state.LegalActions()
	if len(actions) == 0 {
		return false
	}
	children := make([]int, 0, len(actions))
	for _, a := range actions {
		next := state.after(a)
		snap := t.nodes[idx].snapshot
		if next.Folded != state.Folded {
			t.snapshots = append(t.snapshots, next)
			snap = len(t.snapshots) - 1
		}
		t.nodes = append(t.nodes, node{parent: idx, action: a, snapshot: snap})
		children = append(children, len(t.nodes)-1)
	}
	t.nodes[idx].children = children
	return true
}

// selectChild picks the first unvisited child, otherwise the UCB1 maximum
func (t *Tree) selectChild(idx int, exploration float64) int {
	parent := t.nodes[idx]
	logParent := math.Log(float64(parent.visits))
	best, bestScore := -1, math.Inf(-1)
	for _, c := range parent.children {
		child := t.nodes[c]
		if child.visits == 0 {
			return c
		}
		score := child.value/float64(child.visits) +
			exploration*math.Sqrt(logParent/float64(child.visits))
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

func (t *Tree) backpropagate(idx int, reward float64) {
	for idx != -1 {
		t.nodes[idx].visits++
		t.nodes[idx].value += reward
		idx = t.nodes[idx].parent
	}
}
