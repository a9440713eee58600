package mines

import (
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Grid owns a row-major collection of cells. It is created blank and seeded
// with mines once; after that only reveal/flag operations mutate it.
type Grid struct {
	Width, Height int
	MineCount     int
	cells         []Cell
}

func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, InvalidDimensionsError{width, height}
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i].Covered = true
	}
	return &Grid{Width: width, Height: height, cells: cells}, nil
}

// SeedMines places mineCount mines on distinct cells chosen uniformly at
// random, then derives every non-mine cell's kind from its live neighbor
// mine count. It must be called exactly once per fresh grid; reseeding an
// already played grid is a caller bug and is not guarded against.
func (g *Grid) SeedMines(mineCount int, r *rand.Rand) error {
	if mineCount < 0 || mineCount > len(g.cells) {
		return TooManyMinesError{mineCount, len(g.cells)}
	}
	for _, i := range r.Perm(len(g.cells))[:mineCount] {
		g.cells[i].Kind = Mine
	}
	g.MineCount = mineCount
	g.deriveCounts()
	Log.WithFields(logrus.Fields{
		"width":  g.Width,
		"height": g.Height,
		"mines":  mineCount,
	}).Debug("seeded grid")
	return nil
}

// deriveCounts recomputes every non-mine cell's kind and count from the
// current mine placement.
func (g *Grid) deriveCounts() {
	for i := range g.cells {
		if g.cells[i].Kind == Mine {
			continue
		}
		n := 0
		for _, q := range g.Neighbors(g.pointAt(i)) {
			if g.cells[g.index(q)].Kind == Mine {
				n++
			}
		}
		if n > 0 {
			g.cells[i].Kind = Numbered
		} else {
			g.cells[i].Kind = Empty
		}
		g.cells[i].Count = n
	}
}

func (g *Grid) index(p Point) int {
	return p.Y*g.Width + p.X
}

func (g *Grid) pointAt(i int) Point {
	return Point{X: i % g.Width, Y: i / g.Width}
}

func (g *Grid) contains(p Point) bool {
	return 0 <= p.X && p.X < g.Width && 0 <= p.Y && p.Y < g.Height
}

// Neighbors lists the up-to-8 in-bounds cells adjacent to p. Boundary cells
// get fewer; the listing never includes p itself.
func (g *Grid) Neighbors(p Point) []Point {
	ns := make([]Point, 0, 8)
	for _, d := range neighborOffsets {
		q := Point{X: p.X + d[0], Y: p.Y + d[1]}
		if g.contains(q) {
			ns = append(ns, q)
		}
	}
	return ns
}

// CellAt returns a copy of the cell at p, or ok == false when p is out of
// bounds. Positions arrive from screen-to-grid mapping and routinely land
// outside the board, so out of bounds is not an error.
func (g *Grid) CellAt(p Point) (Cell, bool) {
	if !g.contains(p) {
		return Cell{}, false
	}
	return g.cells[g.index(p)], true
}

// at is the mutation accessor; it returns nil when p is out of bounds.
func (g *Grid) at(p Point) *Cell {
	if !g.contains(p) {
		return nil
	}
	return &g.cells[g.index(p)]
}

// AllCleared reports whether every non-mine cell is uncovered. This is the
// win condition, recomputed on every call.
func (g *Grid) AllCleared() bool {
	for i := range g.cells {
		if g.cells[i].Kind != Mine && g.cells[i].Covered {
			return false
		}
	}
	return true
}

// FindCoveredEmpty picks uniformly at random among covered cells with no
// neighboring mines, or ok == false when none remain.
func (g *Grid) FindCoveredEmpty(r *rand.Rand) (Point, bool) {
	var pick Point
	n := 0
	for i := range g.cells {
		if g.cells[i].Kind == Empty && g.cells[i].Covered {
			n++
			if r.IntN(n) == 0 {
				pick = g.pointAt(i)
			}
		}
	}
	return pick, n > 0
}

// Render projects the grid into one string per row: '#' covered, '*' flag,
// '!' mine, '0'..'8' uncovered counts. With exposeMines set, covered
// unflagged mines show as '!' too (the post-game view).
func (g *Grid) Render(exposeMines bool) []string {
	rows := make([]string, g.Height)
	var b strings.Builder
	for y := range g.Height {
		b.Reset()
		for x := range g.Width {
			c := g.cells[y*g.Width+x]
			switch {
			case c.Flagged:
				b.WriteByte('*')
			case c.Covered && !(exposeMines && c.Kind == Mine):
				b.WriteByte('#')
			case c.Kind == Mine:
				b.WriteByte('!')
			default:
				b.WriteByte(byte('0' + c.Count))
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Render(true), "\n")
}
