package tetris

// lineClearPoints is indexed by the number of rows cleared by one lock.
var lineClearPoints = [...]int{0, 100, 300, 500, 800}

// Points awarded per cell outside of line clears.
const (
	SoftDropPoints = 1
	HardDropPoints = 2
)

// LineClearScore returns the points for clearing rows at once on level.
// Counts other than 1 to 4 score nothing.
func LineClearScore(rows, level int) int {
	if rows < 0 || rows >= len(lineClearPoints) {
		return 0
	}
	return level * lineClearPoints[rows]
}

// LevelForLines returns the level reached after clearing lines rows.
func LevelForLines(lines int) int {
	return min(1+max(lines, 0)/10, MaxLevel)
}
