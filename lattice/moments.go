package lattice

// MomentMatrix returns the 19x19 d'Humieres moment basis M as a flat
// row-major table. Row k of M, contracted with a population vector,
// yields the k-th raw moment: density, energy, energy square, the
// three momentum components interleaved with the three heat fluxes,
// the five second-order (stress) moments with their fourth-order
// partners, and the three antisymmetric third-order moments.
//
// The rows are closed-form polynomials of the velocity set, so the
// table stays consistent with Velocities by construction. All entries
// are exact small integers.
func MomentMatrix() []float64 {
	m := make([]float64, Q*Q)
	for i := 0; i < Q; i++ {
		ex := Velocities[i][0]
		ey := Velocities[i][1]
		ez := Velocities[i][2]
		e2 := ex*ex + ey*ey + ez*ez

		row := [Q]int{
			1,
			19*e2 - 30,
			(21*e2*e2 - 53*e2 + 24) / 2,
			ex,
			(5*e2 - 9) * ex,
			ey,
			(5*e2 - 9) * ey,
			ez,
			(5*e2 - 9) * ez,
			3*ex*ex - e2,
			(3*e2 - 5) * (3*ex*ex - e2),
			ey*ey - ez*ez,
			(3*e2 - 5) * (ey*ey - ez*ez),
			ex * ey,
			ey * ez,
			ex * ez,
			ex * (ey*ey - ez*ez),
			ey * (ez*ez - ex*ex),
			ez * (ex*ex - ey*ey),
		}

		for k := 0; k < Q; k++ {
			m[k*Q+i] = float64(row[k])
		}
	}
	return m
}
