package hexboard

// Square is a board coordinate, row-major, 0-indexed.
type Square struct {
	Row, Col int
}

func (s Square) add(d Square) Square {
	return Square{Row: s.Row + d.Row, Col: s.Col + d.Col}
}

func (s Square) String() string {
	return string(rune('a'+s.Col)) + itoa(s.Row+1)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// neighborDirs is the cyclic order of the six standard hex neighbor
// offsets: (+1,0), (+1,-1), (0,-1), (-1,0), (-1,+1), (0,+1). Consecutive
// entries are adjacent directions (60 degrees apart); this order is
// what lets bridge offsets and their carriers be derived geometrically
// below instead of hand-copied from a possibly wrong source formula.
var neighborDirs = [6]Square{
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
}

// bridge describes a virtual two-move connection: the offset to the
// bridge target relative to the origin cell, and the two carrier
// offsets that must both be empty for the bridge to be usable.
type bridge struct {
	offset            Square
	carrier1, carrier2 Square
}

// bridges is derived geometrically from neighborDirs: each bridge
// target is the sum of two cyclically-adjacent neighbor directions,
// and its carriers are exactly those two directions (each is a
// neighbor of both the origin and the bridge target by construction).
var bridges = func() [6]bridge {
	var b [6]bridge
	for i := 0; i < 6; i++ {
		d1 := neighborDirs[i]
		d2 := neighborDirs[(i+1)%6]
		b[i] = bridge{
			offset:   d1.add(d2),
			carrier1: d1,
			carrier2: d2,
		}
	}
	return b
}()

// BridgeEdge describes one usable bridge candidate from some origin
// cell: the target cell and the two carrier cells between them.
type BridgeEdge struct {
	Target, Carrier1, Carrier2 Square
}

// Bridges returns the (up to 6) bridge candidates from sq whose target
// and both carriers lie within an n*n board. Callers must still check
// that the target is empty and both carriers are empty; this only
// handles the geometric "in bounds" half of the condition.
func Bridges(n int, sq Square) []BridgeEdge {
	ret := make([]BridgeEdge, 0, 6)
	for _, br := range bridges {
		target := sq.add(br.offset)
		c1 := sq.add(br.carrier1)
		c2 := sq.add(br.carrier2)
		if inBounds(n, target) && inBounds(n, c1) && inBounds(n, c2) {
			ret = append(ret, BridgeEdge{Target: target, Carrier1: c1, Carrier2: c2})
		}
	}
	return ret
}

// Neighbors returns the (up to 6) standard adjacent squares in bounds.
func Neighbors(n int, s Square) []Square {
	ret := make([]Square, 0, 6)
	for _, d := range neighborDirs {
		if c := s.add(d); inBounds(n, c) {
			ret = append(ret, c)
		}
	}
	return ret
}

func inBounds(n int, s Square) bool {
	return s.Row >= 0 && s.Row < n && s.Col >= 0 && s.Col < n
}
