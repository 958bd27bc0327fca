package eval

import "github.com/hexmind/hexcore/pkg/hexboard"

// Coefficients holds the (a, b) weights of the heuristic h = a*d(O) -
// b*d(M). Defaults are (10, 11).
type Coefficients struct {
	A, B int
}

// DefaultCoefficients: b exceeds a by one so that, among equal
// opponent distances, the engine prefers to shorten its own path.
var DefaultCoefficients = Coefficients{A: 10, B: 11}

// Heuristic combines the maximizing side's and opponent's connection
// distances into a signed scalar favorable to the side to move.
// Terminal boards must bypass this and return ±WIN directly;
// Heuristic does not itself check for terminal positions.
func Heuristic(b *hexboard.Board, maximizing hexboard.Side, coef Coefficients, bridgeEnabled bool) Score {
	dm := Distance(b, maximizing, bridgeEnabled)
	do := Distance(b, maximizing.Opponent(), bridgeEnabled)
	return Score(coef.A*do - coef.B*dm)
}
