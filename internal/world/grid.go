package world

import (
	"math"
	"slices"

	"github.com/bulletbrawl/arena/internal/core/ecs"
	"github.com/bulletbrawl/arena/internal/physics"
)

// GridCell is the broad-phase cell edge in pixels. A 3x3 neighbourhood
// comfortably covers a player.
const GridCell = 100.0

type cellKey struct {
	cx, cy int
}

// Grid is a uniform broad-phase grid rebuilt every frame. Boxes spanning
// several cells are listed in each of them. Accessed only from the
// simulation loop, no locks.
type Grid struct {
	size  float64
	cells map[cellKey][]ecs.EntityID
	seen  map[ecs.EntityID]struct{}
}

func NewGrid(size float64) *Grid {
	if size <= 0 {
		size = GridCell
	}
	return &Grid{
		size:  size,
		cells: make(map[cellKey][]ecs.EntityID),
		seen:  make(map[ecs.EntityID]struct{}),
	}
}

func (g *Grid) coord(v float64) int {
	return int(math.Floor(v / g.size))
}

func (g *Grid) span(b physics.Box) (x0, y0, x1, y1 int) {
	return g.coord(b.Left()), g.coord(b.Top()), g.coord(b.Right()), g.coord(b.Bottom())
}

// Insert lists id in every cell its box touches.
func (g *Grid) Insert(id ecs.EntityID, b physics.Box) {
	x0, y0, x1, y1 := g.span(b)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			k := cellKey{cx, cy}
			g.cells[k] = append(g.cells[k], id)
		}
	}
}

// Query returns the candidates sharing a cell with b, ascending by ID so
// downstream resolution order does not depend on map iteration. Caller
// does the exact overlap test.
func (g *Grid) Query(b physics.Box) []ecs.EntityID {
	clear(g.seen)
	var out []ecs.EntityID
	x0, y0, x1, y1 := g.span(b)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for _, id := range g.cells[cellKey{cx, cy}] {
				if _, dup := g.seen[id]; dup {
					continue
				}
				g.seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Reset empties every cell, keeping the allocated buckets.
func (g *Grid) Reset() {
	for k, ids := range g.cells {
		g.cells[k] = ids[:0]
	}
}

// Len is the number of non-empty cells.
func (g *Grid) Len() int {
	n := 0
	for _, ids := range g.cells {
		if len(ids) > 0 {
			n++
		}
	}
	return n
}
