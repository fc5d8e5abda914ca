package board

// Direction is a signed square offset. Adding a direction to a square walks
// the board one step; compound directions (knight jumps, double pawn pushes)
// are sums of the basic eight.
type Direction int8

// Basic and compound directions.
const (
	North Direction = 8
	East  Direction = 1
	South Direction = -8
	West  Direction = -1

	NorthEast = North + East
	SouthEast = South + East
	SouthWest = South + West
	NorthWest = North + West

	NorthNorth = North + North
	SouthSouth = South + South
)

// Direction sets for the step-wise and sliding piece kinds.
var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
	kingDirections   = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}
	knightDirections = [8]Direction{
		North + NorthEast,
		East + NorthEast,
		East + SouthEast,
		South + SouthEast,
		South + SouthWest,
		West + SouthWest,
		West + NorthWest,
		North + NorthWest,
	}
)

// Forward returns the pawn push direction for the given color.
func (c Color) Forward() Direction {
	if c == White {
		return North
	}
	return South
}

// Add applies a direction to the square, returning NoSquare when the step
// leaves the board. A step that wraps around a board edge moves more than
// two files or ranks and is rejected the same way.
func (sq Square) Add(d Direction) Square {
	t := int(sq) + int(d)
	if t < 0 || t > int(H8) {
		return NoSquare
	}
	to := Square(t)
	if FileDistance(sq, to) > 2 || RankDistance(sq, to) > 2 {
		return NoSquare
	}
	return to
}
