package tmerge

import (
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
)

func countT(c *circuit.Circuit) int {
	n := 0
	for _, g := range c.Gates {
		if g.Op == gate.T {
			n++
		}
	}
	return n
}

func TestRankVectorLengthMatchesNonCliffordGateCount(t *testing.T) {
	c := circuit.New(2)
	c.Push(gate.T, 0)
	c.Push(gate.CX, 0, 1)
	c.Push(gate.T, 1)
	v := RankVector(c)
	if len(v) != 2 {
		t.Fatalf("expected one rank entry per T gate, got %d", len(v))
	}
}

func TestRankVectorExpandsToffoliToSevenEntries(t *testing.T) {
	c := circuit.New(3)
	c.Push(gate.TOF, 0, 1, 2)
	v := RankVector(c)
	if len(v) != 7 {
		t.Fatalf("expected 7 rank entries for a single Toffoli, got %d", len(v))
	}
}

func TestBBMergeCancelsRepeatedTOnSameQubitWithNoInterveningGates(t *testing.T) {
	c := circuit.New(1)
	c.Push(gate.T, 0)
	c.Push(gate.T, 0)
	out := BBMerge(c)
	if tc := countT(out); tc != 0 {
		t.Fatalf("expected both T gates to merge into a single S (0 remaining T), got %d", tc)
	}
}

func TestBBMergeLeavesIndependentTermsAlone(t *testing.T) {
	c := circuit.New(2)
	c.Push(gate.T, 0)
	c.Push(gate.T, 1)
	out := BBMerge(c)
	if tc := countT(out); tc != 2 {
		t.Fatalf("expected independent T gates on different qubits to survive, got %d", tc)
	}
}

func TestFastTMergeNeverIncreasesTCount(t *testing.T) {
	c := circuit.New(3)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	c.Push(gate.CX, 0, 1)
	c.Push(gate.T, 1)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	before := countT(c)
	out := FastTMerge(c)
	if tc := countT(out); tc > before {
		t.Fatalf("FastTMerge increased T-count: %d -> %d", before, tc)
	}
}

func TestFastTMergeHandlesToffoli(t *testing.T) {
	c := circuit.New(3)
	c.Push(gate.TOF, 0, 1, 2)
	out := FastTMerge(c)
	if len(out.Gates) == 0 {
		t.Fatalf("expected a non-empty circuit for a decomposed Toffoli")
	}
}
