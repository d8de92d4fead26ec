package circuit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
)

func writeTempQC(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "circuit.qc")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestFromQCParsesBasicGates(t *testing.T) {
	path := writeTempQC(t, ".v a b c\n.i a b c\nBEGIN\nH a\ncnot a b\nT c\ntof a b c\nEND\n")
	c, header, mapping, err := FromQC(path)
	if err != nil {
		t.Fatalf("FromQC: %v", err)
	}
	if c.NbQubits != 3 {
		t.Fatalf("expected 3 qubits, got %d", c.NbQubits)
	}
	if len(c.Gates) != 4 {
		t.Fatalf("expected 4 gates, got %d", len(c.Gates))
	}
	wantOps := []gate.Op{gate.H, gate.CX, gate.T, gate.TOF}
	for i, op := range wantOps {
		if c.Gates[i].Op != op {
			t.Fatalf("gate %d: want op %v, got %v", i, op, c.Gates[i].Op)
		}
	}
	if mapping[0] != "a" || mapping[1] != "b" || mapping[2] != "c" {
		t.Fatalf("unexpected qubit name mapping: %v", mapping)
	}
	if header == "" {
		t.Fatalf("expected a non-empty header block")
	}
}

func TestFromQCExpandsSDaggerAndTDagger(t *testing.T) {
	path := writeTempQC(t, ".v a\nBEGIN\nS* a\nT* a\nEND\n")
	c, _, _, err := FromQC(path)
	if err != nil {
		t.Fatalf("FromQC: %v", err)
	}
	want := []gate.Op{gate.Z, gate.S, gate.Z, gate.S, gate.T}
	if len(c.Gates) != len(want) {
		t.Fatalf("expected %d gates, got %d", len(want), len(c.Gates))
	}
	for i, op := range want {
		if c.Gates[i].Op != op {
			t.Fatalf("gate %d: want %v, got %v", i, op, c.Gates[i].Op)
		}
	}
}

func TestToQCRoundTrip(t *testing.T) {
	path := writeTempQC(t, ".v a b\nBEGIN\nH a\ncnot a b\nT b\nEND\n")
	c, header, mapping, err := FromQC(path)
	if err != nil {
		t.Fatalf("FromQC: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out.qc")
	if err := c.ToQC(out, header, mapping); err != nil {
		t.Fatalf("ToQC: %v", err)
	}
	c2, _, _, err := FromQC(out)
	if err != nil {
		t.Fatalf("re-reading emitted circuit: %v", err)
	}
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round trip changed gate count: %d != %d", len(c2.Gates), len(c.Gates))
	}
	for i := range c.Gates {
		if c.Gates[i].Op != c2.Gates[i].Op {
			t.Fatalf("gate %d changed op across round trip: %v != %v", i, c.Gates[i].Op, c2.Gates[i].Op)
		}
	}
}

func TestDecomposeTofEmitsOnlyCliffordPlusT(t *testing.T) {
	c := New(3)
	c.Push(gate.TOF, 0, 1, 2)
	out := c.DecomposeTof()
	tCount := 0
	for _, g := range out.Gates {
		switch g.Op {
		case gate.TOF, gate.CCZ:
			t.Fatalf("decomposition should not leave any Toffoli/CCZ gates")
		case gate.T:
			tCount++
		}
	}
	if tCount != 7 {
		t.Fatalf("expected 7 T gates in the Toffoli decomposition, got %d", tCount)
	}
}

func TestStatisticsCountsInternalHadamards(t *testing.T) {
	c := New(2)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	c.Push(gate.H, 1)
	c.Push(gate.T, 1)
	c.Push(gate.H, 0)
	h, internalH, tc := c.Statistics()
	if h != 3 {
		t.Fatalf("expected h=3, got %d", h)
	}
	if tc != 2 {
		t.Fatalf("expected t=2, got %d", tc)
	}
	if internalH != 1 {
		t.Fatalf("expected internalH=1 (the H between the two T gates), got %d", internalH)
	}
}

func TestHadamardGadgetizationAddsAncillaAndRemovesInternalH(t *testing.T) {
	c := New(2)
	c.Push(gate.T, 0)
	c.Push(gate.H, 0)
	c.Push(gate.CX, 0, 1)
	c.Push(gate.T, 1)
	out := c.HadamardGadgetization()
	if len(out.Ancillas) != 1 {
		t.Fatalf("expected exactly one gadget ancilla, got %d", len(out.Ancillas))
	}
	if out.NbQubits != c.NbQubits+1 {
		t.Fatalf("expected one additional qubit, got %d (from %d)", out.NbQubits, c.NbQubits)
	}
	for _, g := range out.Gates {
		if g.Op == gate.H && g.Qubits[0] == 0 {
			t.Fatalf("the internal Hadamard on qubit 0 should have been gadgetized away")
		}
	}
}

func TestFromCircuitSlicesOnHadamards(t *testing.T) {
	c := New(2)
	c.Push(gate.T, 0)
	c.Push(gate.T, 1)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	sc := FromCircuit(c)
	if len(sc.PhasePolynomials) != 2 {
		t.Fatalf("expected 2 phase-polynomial blocks, got %d", len(sc.PhasePolynomials))
	}
	if len(sc.PhasePolynomials[0].Table) != 2 {
		t.Fatalf("expected the first block to hold 2 T terms, got %d", len(sc.PhasePolynomials[0].Table))
	}
}

func TestSlicedCircuitTOptPreservesTCountOnDisjointTerms(t *testing.T) {
	c := New(2)
	c.Push(gate.T, 0)
	c.Push(gate.T, 1)
	sc := FromCircuit(c)
	out, err := sc.TOpt("FastTODD")
	if err != nil {
		t.Fatalf("TOpt: %v", err)
	}
	_, _, tCount := out.Statistics()
	if tCount != 2 {
		t.Fatalf("expected T-count to stay at 2 for independent terms, got %d", tCount)
	}
}

func TestSlicedCircuitTOptRejectsUnknownOptimizer(t *testing.T) {
	c := New(1)
	c.Push(gate.T, 0)
	sc := FromCircuit(c)
	if _, err := sc.TOpt("bogus"); err == nil {
		t.Fatalf("expected an error for an unknown optimizer")
	}
}
