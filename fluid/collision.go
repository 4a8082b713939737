package fluid

import (
	"github.com/phil-mansfield/golbm/lattice"
)

// Collider relaxes a cell's populations toward their equilibrium. The
// strategy is chosen once at setup; implementations must be safe for
// concurrent use by multiple worker goroutines.
type Collider interface {
	// Collide updates pop in place given its equilibrium feq.
	Collide(pop, feq []float64)
}

// BGK is the single-relaxation-time collision operator: every
// direction relaxes at the same rate Omega.
type BGK struct {
	Omega float64
}

func (b BGK) Collide(pop, feq []float64) {
	for i := 0; i < lattice.Q; i++ {
		pop[i] -= b.Omega * (pop[i] - feq[i])
	}
}
