package mines

// Kind classifies a cell once mines have been seeded.
type Kind int8

const (
	// Empty marks a non-mine cell with no neighboring mines. Reveals
	// cascade through connected empty regions.
	Empty Kind = iota
	Mine
	// Numbered marks a non-mine cell adjacent to 1..8 mines; the exact
	// count lives in Cell.Count.
	Numbered
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Mine:
		return "mine"
	case Numbered:
		return "numbered"
	default:
		return "invalid"
	}
}

// Cell is one grid square. Count is derived from the live neighbor mine
// count during seeding and is only meaningful when Kind == Numbered.
// Flagged implies Covered: a flag never survives a reveal.
type Cell struct {
	Kind    Kind
	Count   int
	Covered bool
	Flagged bool
}
