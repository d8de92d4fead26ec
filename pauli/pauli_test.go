package pauli

import (
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
)

func single(n, q int, z, x bool) Product {
	zv := bitvector.New(n)
	xv := bitvector.New(n)
	if z {
		zv.XorBit(q)
	}
	if x {
		xv.XorBit(q)
	}
	return New(zv, xv, false)
}

func TestIsCommutingSymmetric(t *testing.T) {
	p := single(4, 0, true, false)  // Z0
	q := single(4, 0, false, true)  // X0
	r := single(4, 1, false, true)  // X1
	if p.IsCommuting(q) != q.IsCommuting(p) {
		t.Fatalf("IsCommuting must be symmetric")
	}
	if p.IsCommuting(q) {
		t.Fatalf("Z0 and X0 anticommute")
	}
	if !p.IsCommuting(r) {
		t.Fatalf("Z0 and X1 commute")
	}
}

func TestMultAssociative(t *testing.T) {
	p := single(3, 0, true, false)
	q := single(3, 1, true, true)
	r := single(3, 2, false, true)

	left := p.Clone()
	left.Mult(q)
	left.Mult(r)

	qr := q.Clone()
	qr.Mult(r)
	right := p.Clone()
	right.Mult(qr)

	if left.Sign != right.Sign {
		t.Fatalf("(p*q)*r sign %v != p*(q*r) sign %v", left.Sign, right.Sign)
	}
	for i := 0; i < 3; i++ {
		if left.Z.Get(i) != right.Z.Get(i) || left.X.Get(i) != right.X.Get(i) {
			t.Fatalf("(p*q)*r != p*(q*r) at qubit %d", i)
		}
	}
}

func TestMultXZGivesMinusIY(t *testing.T) {
	// X0 * Z0 = -iY0 on a single qubit: the product has z=1, x=1. The
	// factor -i is not representable in the sign bit, which stays false.
	x := single(1, 0, false, true)
	z := single(1, 0, true, false)
	x.Mult(z)
	if !x.Z.Get(0) || !x.X.Get(0) {
		t.Fatalf("X0*Z0 should have both z and x bits set at qubit 0")
	}
}
