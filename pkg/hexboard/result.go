package hexboard

// Outcome represents whether and how a position is decided. Hex has no
// draws: a terminal board has exactly one winning side.
type Outcome uint8

const (
	Undecided Outcome = iota
	Won
)

// Result captures the decided state of a position, cached on the
// board across PushMove/PopMove.
type Result struct {
	Outcome Outcome
	Winner  Side
}

func (r Result) String() string {
	if r.Outcome == Undecided {
		return "undecided"
	}
	return r.Winner.String() + " wins"
}
