package hopt

import (
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
)

func TestInternalHOptKeepsHadamardBetweenAnticommutingRotations(t *testing.T) {
	// T-H-T on one qubit rotates about Z and then about X; the two
	// rotations anticommute, so one Hadamard has to stay between them.
	c := circuit.New(2)
	c.Push(gate.T, 0)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	out := InternalHOpt(c)
	_, internalH, _ := out.Statistics()
	if internalH != 1 {
		t.Fatalf("expected exactly one internal Hadamard to remain, got %d", internalH)
	}
}

func TestInternalHOptPreservesTCount(t *testing.T) {
	c := circuit.New(2)
	c.Push(gate.H, 0)
	c.Push(gate.T, 0)
	c.Push(gate.CX, 0, 1)
	c.Push(gate.T, 1)
	out := InternalHOpt(c)
	_, _, tCount := out.Statistics()
	if tCount != 2 {
		t.Fatalf("expected T-count preserved at 2, got %d", tCount)
	}
}

func TestInternalHOptHandlesToffoli(t *testing.T) {
	c := circuit.New(3)
	c.Push(gate.H, 0)
	c.Push(gate.TOF, 0, 1, 2)
	c.Push(gate.H, 0)
	out := InternalHOpt(c)
	if len(out.Gates) == 0 {
		t.Fatalf("expected a non-empty circuit for a Toffoli gadget")
	}
}
