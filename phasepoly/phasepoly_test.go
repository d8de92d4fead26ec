package phasepoly

import (
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
)

func vecFromBits(n int, ones ...int) *bitvector.BitVector {
	v := bitvector.New(n)
	for _, i := range ones {
		v.XorBit(i)
	}
	return v
}

func TestToCircuitEmitsOneTPerColumn(t *testing.T) {
	p := New(3)
	p.Table = []*bitvector.BitVector{
		vecFromBits(3, 0),
		vecFromBits(3, 1, 2),
	}
	prog := p.ToCircuit()
	tCount := 0
	for _, g := range prog.Gates {
		if g.Op.String() == "T" {
			tCount++
		}
	}
	if tCount != 2 {
		t.Fatalf("expected 2 T gates, got %d", tCount)
	}
}

func TestCliffordCorrectionIsIdentityWhenUnchanged(t *testing.T) {
	table := []*bitvector.BitVector{
		vecFromBits(3, 0, 1),
		vecFromBits(3, 1, 2),
	}
	p := &Polynomial{NbQubits: 3, Table: table}
	tab := p.CliffordCorrection(table, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 6; j++ {
			if tab.Z[i].Get(j) != (func() bool {
				if j == i {
					return true
				}
				return false
			}()) {
				t.Fatalf("correction for an unchanged table should be the identity tableau")
			}
		}
	}
}
