package magfield

import "math"

// MU0 is the vacuum magnetic permeability in T·m/A. It fixes the unit
// conversion between B (tesla) and H (ampere/metre) outputs.
const MU0 = 4.0e-7 * math.Pi
