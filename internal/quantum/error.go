package quantum

import "fmt"

type InvalidConfigurationError struct {
	Width, Height, MineCount int
}

// [InvalidConfigurationError] implements [error]
func (e InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %dx%d grid with %d mines",
		e.Width, e.Height, e.MineCount)
}

type OutOfBoundsError struct {
	X, Y int
}

// [OutOfBoundsError] implements [error]
func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell %d:%d is out of bounds", e.X, e.Y)
}
