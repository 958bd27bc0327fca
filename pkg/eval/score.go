// Package eval computes the connection-distance evaluator and the
// signed heuristic built on top of it.
package eval

import "fmt"

// Score is a signed heuristic value favorable to the maximizing side.
// Bounded by WIN so that terminal results are always strictly larger
// in magnitude than any heuristic value.
type Score int32

// WIN is strictly greater than any heuristic value reachable for
// boards up to side length 19: a distance is at most Unreachable(N) =
// N*N+1, so with the default coefficients |h| is at most 11*(N*N+1),
// under 4,000 for N = 19.
const WIN Score = 1_000_000

// Crop keeps a score inside (-WIN, +WIN), used on heuristic output so
// search code can always treat |s| >= WIN as "terminal".
func Crop(s Score) Score {
	switch {
	case s >= WIN:
		return WIN - 1
	case s <= -WIN:
		return -WIN + 1
	default:
		return s
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%v", int32(s))
}

// Negate flips the score to the opponent's perspective (negamax).
func (s Score) Negate() Score {
	return -s
}
