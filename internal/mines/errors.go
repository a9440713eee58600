package mines

import "fmt"

type InvalidDimensionsError struct {
	Width, Height int
}

func (e InvalidDimensionsError) Error() string {
	return fmt.Sprintf("invalid grid dimensions %dx%d", e.Width, e.Height)
}

type TooManyMinesError struct {
	MineCount, Cells int
}

func (e TooManyMinesError) Error() string {
	return fmt.Sprintf("cannot place %d mines on %d cells", e.MineCount, e.Cells)
}
