package game

import "strings"

// Position is one of the four roster slots of a team.
type Position string

const (
	PositionGK Position = "GK"
	PositionDF Position = "DF"
	PositionMF Position = "MF"
	PositionFW Position = "FW"
)

// Positions lists the slots in display order.
var Positions = []Position{PositionGK, PositionDF, PositionMF, PositionFW}

// PositionCaps is the maximum roster size per position.
var PositionCaps = map[Position]int{
	PositionGK: 1,
	PositionDF: 4,
	PositionMF: 3,
	PositionFW: 3,
}

// ParsePosition accepts a case-insensitive position code.
func ParsePosition(s string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := PositionCaps[p]
	return p, ok
}
