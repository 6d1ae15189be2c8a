package geometry

// Axis identifies the coordinate held fixed along a side
type Axis int

const (
	AxisX Axis = iota // side is a vertical line x = const
	AxisY             // side is a horizontal line y = const
)

// Side is one of the four boundary sides of the unit square.
// The declaration order is the distance order used by NearestSide.
type Side int

const (
	Left   Side = iota // x = 0
	Right              // x = 1
	Bottom             // y = 0
	Top                // y = 1
)

// Sides returns all sides in distance order
func Sides() []Side {
	return []Side{Left, Right, Bottom, Top}
}

// String returns the side name
func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Top:
		return "top"
	default:
		return "unknown"
	}
}

// Axis returns the coordinate that is fixed along the side
func (s Side) Axis() Axis {
	if s == Left || s == Right {
		return AxisX
	}
	return AxisY
}

// Coord returns the fixed coordinate value of the side (0 or 1)
func (s Side) Coord() float64 {
	if s == Right || s == Top {
		return 1
	}
	return 0
}

// Distance returns the distance from p to the side's line
func (s Side) Distance(p Point) float64 {
	switch s {
	case Left:
		return p.X
	case Right:
		return 1 - p.X
	case Bottom:
		return p.Y
	default:
		return 1 - p.Y
	}
}

// TieBreak decides which side wins when two distances are equal
type TieBreak int

const (
	// FirstWins keeps the earliest side in distance order
	FirstWins TieBreak = iota
	// LastWins lets a later equal distance replace the current choice
	LastWins
)

// NearestSide returns the side of the unit square closest to p.
// Sides are compared in the order Left, Right, Bottom, Top.
func NearestSide(p Point, tb TieBreak) Side {
	best := Left
	bestDist := Left.Distance(p)
	for _, s := range Sides()[1:] {
		d := s.Distance(p)
		if d < bestDist || (tb == LastWins && d == bestDist) {
			best, bestDist = s, d
		}
	}
	return best
}
