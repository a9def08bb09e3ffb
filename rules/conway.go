package rules

// Neighbour counts for the B3/S23 rule.
const (
	BirthCount      = 3
	SurviveLow      = 2
	SurviveHigh     = 3
	MooreNeighbours = 8
)

/*
Next reports whether a cell is alive in the next generation.

A live cell survives with 2 or 3 live neighbours, a dead cell is born with
exactly 3. Every other cell is dead in the next generation.
*/
func Next(alive bool, neighbours int) bool {
	if alive {
		return neighbours >= SurviveLow && neighbours <= SurviveHigh
	}
	return neighbours == BirthCount
}
