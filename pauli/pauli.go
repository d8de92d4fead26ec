// Package pauli implements the GF(2) symplectic algebra of Pauli products:
// the (z, x, sign) encoding of (-1)^sign * prod_i Z_i^{z_i} X_i^{x_i}.
package pauli

import "github.com/VivienVandaele/quantum-circuit-optimization/bitvector"

// Product is a Pauli product (z, x, sign) on n qubits.
type Product struct {
	Z    *bitvector.BitVector
	X    *bitvector.BitVector
	Sign bool
}

// New wraps z, x and sign into a Product. Both vectors must have equal length.
func New(z, x *bitvector.BitVector, sign bool) Product {
	return Product{Z: z, X: x, Sign: sign}
}

// Clone returns a deep copy of p.
func (p Product) Clone() Product {
	return Product{Z: p.Z.Clone(), X: p.X.Clone(), Sign: p.Sign}
}

// Mult multiplies p by other in place, updating Sign per the standard
// Pauli multiplication phase convention:
//
//	A = (z1 & x2) ^ (x1 & z2)
//	B = A & ((z1 & x2) ^ x ^ z)   (x = x1^x2, z = z1^z2, after the update)
//	sign ^= other.sign ^ ((popcount(A) + 2*popcount(B)) mod 4 > 1)
func (p *Product) Mult(other Product) {
	a := p.Z.Clone()
	a.And(other.X)
	ac := p.X.Clone()
	ac.And(other.Z)
	ac.Xor(a)

	p.X.Xor(other.X)
	p.Z.Xor(other.Z)

	a.Xor(p.X)
	a.Xor(p.Z)
	a.And(ac)

	p.Sign = p.Sign != (other.Sign != (((ac.Popcount()+2*a.Popcount())%4) > 1))
}

// IsCommuting reports whether p and other commute: the parity of
// popcount((z1&x2) ^ (x1&z2)) is 0.
func (p Product) IsCommuting(other Product) bool {
	a := p.Z.Clone()
	a.And(other.X)
	b := p.X.Clone()
	b.And(other.Z)
	a.Xor(b)
	return a.Popcount()%2 == 0
}

// GetBooleanVec serializes (z, x) to a single Boolean vector of length 2n,
// z first then x, truncated to n bits each. Used as a hash-map key when
// looking up Paulis seen earlier on the T-frontier (see package tmerge).
func (p Product) GetBooleanVec(n int) []bool {
	out := make([]bool, 0, 2*n)
	zv := p.Z.GetBooleanVec()
	xv := p.X.GetBooleanVec()
	out = append(out, zv[:n]...)
	out = append(out, xv[:n]...)
	return out
}
