package domain

import "math/bits"

// Permissions is a platform permission bitset. Bit meanings are defined by the gateway.
type Permissions int64

// Has reports whether every bit of required is set.
func (p Permissions) Has(required Permissions) bool {
	return p&required == required
}

// Missing returns the bits of required that p lacks.
func (p Permissions) Missing(required Permissions) Permissions {
	return required &^ p
}

// Bits splits p into its single-bit components, lowest first.
func (p Permissions) Bits() []Permissions {
	out := make([]Permissions, 0, bits.OnesCount64(uint64(p)))
	for v := uint64(p); v != 0; v &= v - 1 {
		out = append(out, Permissions(v&-v))
	}

	return out
}
