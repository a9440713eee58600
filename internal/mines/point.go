package mines

import "fmt"

// Point addresses a single cell on a grid. (0, 0) is the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Offsets of the Moore neighborhood, scanned in a fixed order so that a
// neighbor listing is deterministic within a call.
var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}
