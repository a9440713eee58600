package mines

import (
	"encoding/json"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

// Status is the per-game state machine: Playing until a reveal hits a mine
// (Lost) or every non-mine cell is uncovered (Won). Both are terminal; the
// engine does not reject calls after that, callers are expected to stop
// issuing them.
type Status int8

const (
	Playing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

type RevealOutcome int8

const (
	RevealUnchanged RevealOutcome = iota
	RevealOpened
	RevealExploded
)

func (o RevealOutcome) String() string {
	switch o {
	case RevealUnchanged:
		return "unchanged"
	case RevealOpened:
		return "opened"
	case RevealExploded:
		return "exploded"
	default:
		return "invalid"
	}
}

func (o RevealOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// RevealResult reports what a single reveal call changed. Revealed holds
// every position uncovered by the call, in traversal order; Mine is set only
// on RevealExploded and names the mine that ended the game.
type RevealResult struct {
	Outcome  RevealOutcome `json:"outcome"`
	Revealed []Point       `json:"revealed,omitempty"`
	Mine     *Point        `json:"mine,omitempty"`
}

type FlagOutcome int8

const (
	FlagUnchanged FlagOutcome = iota
	FlagPlaced
	FlagRemoved
)

func (o FlagOutcome) String() string {
	switch o {
	case FlagUnchanged:
		return "unchanged"
	case FlagPlaced:
		return "flagged"
	case FlagRemoved:
		return "unflagged"
	default:
		return "invalid"
	}
}

func (o FlagOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

type FlagResult struct {
	Outcome FlagOutcome `json:"outcome"`
	Pos     Point       `json:"pos"`
}

// Game drives reveal and flag intents against a seeded grid. It is the only
// mutation path into the grid; callers serialize access to it.
type Game struct {
	Grid   *Grid
	status Status
}

func NewGame(grid *Grid) *Game {
	return &Game{Grid: grid}
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Over() bool {
	return g.status != Playing
}

// Reveal applies a reveal intent at p and returns what changed.
//
// A covered target starts a breadth-first cascade: an empty cell enqueues
// all of its neighbors, a numbered cell stops the front, flagged cells are
// left alone. Revealing an already uncovered numbered cell whose flagged
// neighbor count equals its number instead enqueues every neighbor (a
// chord). Hitting a mine ends the traversal and loses the game; cells
// uncovered earlier in the same call stay uncovered. Out-of-bounds and
// flagged targets are no-ops.
func (g *Game) Reveal(p Point) RevealResult {
	target := g.Grid.at(p)
	if target == nil || target.Flagged {
		return RevealResult{Outcome: RevealUnchanged}
	}

	queue := make([]Point, 0, 8)
	if target.Covered {
		queue = append(queue, p)
	} else {
		if target.Kind != Numbered {
			return RevealResult{Outcome: RevealUnchanged}
		}
		ns := g.Grid.Neighbors(p)
		flags := 0
		for _, q := range ns {
			if g.Grid.at(q).Flagged {
				flags++
			}
		}
		if flags != target.Count {
			return RevealResult{Outcome: RevealUnchanged}
		}
		queue = append(queue, ns...)
	}

	seen := make(map[Point]bool, len(queue))
	var opened []Point
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if seen[q] {
			continue
		}
		seen[q] = true

		c := g.Grid.at(q)
		if c.Flagged || !c.Covered {
			continue
		}
		c.Covered = false
		opened = append(opened, q)

		switch c.Kind {
		case Mine:
			g.status = Lost
			Log.WithFields(logrus.Fields{
				"pos":    q,
				"opened": len(opened),
			}).Debug("mine hit")
			mine := q
			return RevealResult{
				Outcome:  RevealExploded,
				Revealed: opened,
				Mine:     &mine,
			}
		case Empty:
			queue = append(queue, g.Grid.Neighbors(q)...)
		}
	}

	if len(opened) == 0 {
		return RevealResult{Outcome: RevealUnchanged}
	}
	return RevealResult{Outcome: RevealOpened, Revealed: opened}
}

// ToggleFlag flips the flag on a covered cell. Uncovered cells cannot be
// flagged and out-of-bounds positions are no-ops.
func (g *Game) ToggleFlag(p Point) FlagResult {
	c := g.Grid.at(p)
	if c == nil || !c.Covered {
		return FlagResult{Outcome: FlagUnchanged}
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		return FlagResult{Outcome: FlagPlaced, Pos: p}
	}
	return FlagResult{Outcome: FlagRemoved, Pos: p}
}

// ApplySafeStart pre-uncovers one randomly chosen covered empty cell without
// cascading, so the first cell a player sees is never a mine. It is a
// one-time setup step run right after seeding, and a no-op when the grid has
// no covered empty cell.
func (g *Game) ApplySafeStart(r *rand.Rand) (Point, bool) {
	p, ok := g.Grid.FindCoveredEmpty(r)
	if !ok {
		return Point{}, false
	}
	g.Grid.at(p).Covered = false
	return p, true
}

// CheckWin transitions the game to Won when every non-mine cell is
// uncovered. It is separate from Reveal so the traversal stays a single
// grid mutation; callers run it after each non-losing reveal.
func (g *Game) CheckWin() bool {
	if g.status == Playing && g.Grid.AllCleared() {
		g.status = Won
	}
	return g.status == Won
}
