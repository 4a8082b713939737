/*package lattice supplies the D3Q19 velocity set and the index tables
derived from it.

All tables are initialized once and must never be mutated. The ordering
is the standard d'Humieres one: the rest vector first, then the six
face-adjacent directions, then the twelve edge-adjacent directions. The
moment basis in moments.go assumes exactly this ordering.
*/
package lattice

import (
	"fmt"
)

// Q is the number of discrete velocity directions.
const Q = 19

// Velocities is the D3Q19 velocity set. Index 0 is the rest vector.
var Velocities = [Q][3]int{
	{0, 0, 0},
	{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// weightNumerators are the lattice weights times 36. Keeping the exact
// integer numerators lets the normalization check be exact.
var weightNumerators = [Q]int{
	12,
	2, 2, 2, 2, 2, 2,
	1, 1, 1, 1,
	1, 1, 1, 1,
	1, 1, 1, 1,
}

// Weights are the D3Q19 quadrature weights, paired with Velocities by
// index. They sum to exactly 1.
var Weights [Q]float64

// Opposite maps each direction index to the index whose velocity vector
// is its exact negative.
var Opposite [Q]int

// Right, Left and Lateral are the direction indices whose velocity has
// a positive, negative and zero component along the streamwise (x)
// axis, respectively. Together they partition [0, Q).
var Right, Left, Lateral []int

func init() {
	sum := 0
	for i := 0; i < Q; i++ {
		Weights[i] = float64(weightNumerators[i]) / 36
		sum += weightNumerators[i]
	}
	if sum != 36 {
		panic(fmt.Sprintf("lattice weights sum to %d/36, not 1", sum))
	}

	opp, err := opposites(&Velocities)
	if err != nil {
		panic(err.Error())
	}
	Opposite = opp

	Right, Left, Lateral = axisSets(&Velocities)
}

// opposites computes the opposite-direction permutation of vel by
// negation lookup. An error is returned if some direction has no
// negation partner in the table, since bounce-back and the outflow
// handler depend on this bijection.
func opposites(vel *[Q][3]int) ([Q]int, error) {
	var opp [Q]int
	for i := 0; i < Q; i++ {
		found := false
		for j := 0; j < Q; j++ {
			if vel[j][0] == -vel[i][0] &&
				vel[j][1] == -vel[i][1] &&
				vel[j][2] == -vel[i][2] {
				opp[i] = j
				found = true
				break
			}
		}
		if !found {
			return opp, fmt.Errorf(
				"direction %d = %v has no negation partner", i, vel[i],
			)
		}
	}
	return opp, nil
}

// axisSets splits the direction indices by the sign of their x
// component.
func axisSets(vel *[Q][3]int) (right, left, lateral []int) {
	for i := 0; i < Q; i++ {
		switch {
		case vel[i][0] > 0:
			right = append(right, i)
		case vel[i][0] < 0:
			left = append(left, i)
		default:
			lateral = append(lateral, i)
		}
	}
	return right, left, lateral
}
