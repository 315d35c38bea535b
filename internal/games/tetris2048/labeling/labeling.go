// Package labeling finds 4-connected components of occupied cells on a
// rectangular board.
//
// Row 0 is the floor. A component that touches row 0 is grounded; every other
// component is free and the board owner lets it fall.
package labeling

import "github.com/kamstrup/intmap"

// Label values with special meaning.
const (
	Empty    = 0 // cell is not occupied
	Reserved = 1 // never assigned to a component
	// FirstComponent is the id of the first component in scan order.
	FirstComponent = 2
)

// Result is the outcome of one labeling run. It is a snapshot: it shares no
// state with the board it was computed from.
type Result struct {
	// Labels is indexed [row][col]. Empty cells hold 0, occupied cells hold
	// a component id. Component ids are consecutive from 2 in the order their
	// first cell is met scanning rows from the floor up, columns left to right.
	Labels [][]int
	// Count is the number of components.
	Count int
}

// Label computes the connected components of the cells for which occupied
// returns true. It runs the classic two-pass algorithm with a disjoint-set
// equivalence table, so the cost is linear in the board area.
func Label(rows, cols int, occupied func(row, col int) bool) Result {
	labels := make([][]int, rows)
	for r := range labels {
		labels[r] = make([]int, cols)
	}

	uf := newUnionFind(rows * cols / 2)
	next := FirstComponent

	// First pass: provisional labels from the already visited neighbours
	// (the cell below and the cell to the left).
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !occupied(r, c) {
				continue
			}

			below, left := Empty, Empty
			if r > 0 {
				below = labels[r-1][c]
			}
			if c > 0 {
				left = labels[r][c-1]
			}

			switch {
			case below != Empty && left != Empty:
				labels[r][c] = min(below, left)
				uf.union(below, left)
			case below != Empty:
				labels[r][c] = below
			case left != Empty:
				labels[r][c] = left
			default:
				labels[r][c] = next
				uf.add(next)
				next++
			}
		}
	}

	// Second pass: collapse every provisional label to its class and number
	// the classes consecutively in scan order.
	classes := intmap.New[int, int](next)
	count := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if labels[r][c] == Empty {
				continue
			}
			root := uf.find(labels[r][c])
			id, ok := classes.Get(root)
			if !ok {
				count++
				id = count + Reserved
				classes.Put(root, id)
			}
			labels[r][c] = id
		}
	}

	return Result{Labels: labels, Count: count}
}

// Grounded reports which component ids touch row 0. The returned slice is
// indexed by component id.
func (r Result) Grounded() []bool {
	grounded := make([]bool, r.Count+FirstComponent)
	if len(r.Labels) == 0 {
		return grounded
	}
	for _, id := range r.Labels[0] {
		if id != Empty {
			grounded[id] = true
		}
	}
	return grounded
}

// Free marks every occupied cell whose component does not touch row 0.
func (r Result) Free() [][]bool {
	grounded := r.Grounded()
	free := make([][]bool, len(r.Labels))
	for row, line := range r.Labels {
		free[row] = make([]bool, len(line))
		for col, id := range line {
			free[row][col] = id != Empty && !grounded[id]
		}
	}
	return free
}

// FreeCount returns the number of occupied cells that are not grounded.
func (r Result) FreeCount() int {
	n := 0
	for _, line := range r.Free() {
		for _, f := range line {
			if f {
				n++
			}
		}
	}
	return n
}

// unionFind is a disjoint-set forest over provisional labels. The root of a
// set is always its smallest member.
type unionFind struct {
	parent *intmap.Map[int, int]
}

func newUnionFind(capacity int) *unionFind {
	return &unionFind{parent: intmap.New[int, int](max(capacity, 8))}
}

func (u *unionFind) add(x int) {
	u.parent.Put(x, x)
}

func (u *unionFind) find(x int) int {
	for {
		p, ok := u.parent.Get(x)
		if !ok || p == x {
			return x
		}
		// Path halving.
		gp, _ := u.parent.Get(p)
		u.parent.Put(x, gp)
		x = gp
	}
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	switch {
	case ra == rb:
		return
	case ra < rb:
		u.parent.Put(rb, ra)
	default:
		u.parent.Put(ra, rb)
	}
}
