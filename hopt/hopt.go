// Package hopt implements InternalHOpt: ancilla-free reduction of the
// Hadamard gates that fall between T gates, by running the circuit's tail
// in reverse through a tableau, diagonalizing each non-Clifford gate as a
// Pauli product rotation rather than a literal H-T-H sandwich, then
// replaying forward.
package hopt

import (
	"fmt"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/pauli"
	"github.com/VivienVandaele/quantum-circuit-optimization/tableau"
)

func xorBool(a, b bool) bool { return a != b }

// implementPauliZRotationFromPauliProduct realizes exp(i*pi/4*P) for an
// explicit (already-diagonal) Pauli product p, without touching tab.
func implementPauliZRotationFromPauliProduct(tab *tableau.Tableau, p pauli.Product) *circuit.Circuit {
	c := circuit.New(tab.NbQubits)
	cnot := circuit.New(tab.NbQubits)
	pivot := p.Z.GetFirstOne()
	indices := p.Z.GetAllOnes(tab.NbQubits)
	if len(indices) > 0 && indices[0] == pivot {
		indices = indices[1:]
	}
	for _, j := range indices {
		cnot.Push(gate.CX, j, pivot)
	}
	c.Append(cnot.Gates)
	c.Push(gate.T, pivot)
	if p.Sign {
		c.Push(gate.S, pivot)
		c.Push(gate.Z, pivot)
	}
	c.Append(cnot.Gates)
	return c
}

// implementPauliZRotation realizes exp(i*pi/4*P) for the diagonal Pauli
// recorded in tableau column col, without mutating tab.
func implementPauliZRotation(tab *tableau.Tableau, col int) *circuit.Circuit {
	pivot := -1
	for i := 0; i < tab.NbQubits; i++ {
		if tab.Z[i].Get(col) {
			pivot = i
			break
		}
	}
	c := circuit.New(tab.NbQubits)
	cnot := circuit.New(tab.NbQubits)
	for j := 0; j < tab.NbQubits; j++ {
		if tab.Z[j].Get(col) && j != pivot {
			cnot.Push(gate.CX, j, pivot)
		}
	}
	c.Append(cnot.Gates)
	c.Push(gate.T, pivot)
	if tab.Signs.Get(col) {
		c.Push(gate.S, pivot)
		c.Push(gate.Z, pivot)
	}
	c.Append(cnot.Gates)
	return c
}

// implementPauliRotation realizes exp(i*pi/4*P) for a possibly non-diagonal
// Pauli column: it first diagonalizes column col in place (H-ing its X
// pivot into the Z frame) before delegating to implementPauliZRotation.
func implementPauliRotation(tab *tableau.Tableau, col int) *circuit.Circuit {
	c := circuit.New(tab.NbQubits)
	pivot := -1
	for i := 0; i < tab.NbQubits; i++ {
		if tab.X[i].Get(col) {
			pivot = i
			break
		}
	}
	if pivot >= 0 {
		for j := 0; j < tab.NbQubits; j++ {
			if tab.X[j].Get(col) && j != pivot {
				tab.AppendCX(pivot, j)
				c.Push(gate.CX, pivot, j)
			}
		}
		if tab.Z[pivot].Get(col) {
			tab.AppendS(pivot)
			c.Push(gate.S, pivot)
		}
		tab.AppendH(pivot)
		c.Push(gate.H, pivot)
	}
	c.Append(implementPauliZRotation(tab, col).Gates)
	return c
}

// implementTof realizes a CCZ (hGate=false) or Toffoli (hGate=true) as seven
// Pauli product rotations, the standard stabilizer-circuit identity for a
// doubly-controlled phase gate: one rotation for each of the three
// diagonalized columns, then four for their pairwise and triple-wise
// products.
func implementTof(tab *tableau.Tableau, cols []int, hGate bool) *circuit.Circuit {
	c := circuit.New(tab.NbQubits)
	offset := 0
	if hGate {
		offset = tab.NbQubits
	}
	c.Append(implementPauliRotation(tab, cols[0]).Gates)
	c.Append(implementPauliRotation(tab, cols[1]).Gates)
	c.Append(implementPauliRotation(tab, cols[2]+offset).Gates)

	p0 := tab.ExtractPauliProduct(cols[0])
	p1 := tab.ExtractPauliProduct(cols[1])
	p2 := tab.ExtractPauliProduct(cols[2] + offset)

	p0.Z.Xor(p1.Z)
	p0.Sign = xorBool(p0.Sign, xorBool(p1.Sign, true))
	c.Append(implementPauliZRotationFromPauliProduct(tab, p0).Gates)

	p0.Z.Xor(p2.Z)
	p0.Sign = xorBool(p0.Sign, xorBool(p2.Sign, true))
	c.Append(implementPauliZRotationFromPauliProduct(tab, p0).Gates)

	p0.Z.Xor(p1.Z)
	p0.Sign = xorBool(p0.Sign, xorBool(p1.Sign, true))
	c.Append(implementPauliZRotationFromPauliProduct(tab, p0).Gates)

	p1.Z.Xor(p2.Z)
	p1.Sign = xorBool(p1.Sign, xorBool(p2.Sign, true))
	c.Append(implementPauliZRotationFromPauliProduct(tab, p1).Gates)

	return c
}

// hOptReverse builds the tableau reached by running cIn's Clifford part
// forward, then running the whole circuit (Cliffords prepended, non-
// Clifford gates diagonalized as Pauli rotations) backward from there. The
// result is the tableau InternalHOpt should start its forward replay from.
func hOptReverse(cIn *circuit.Circuit) *tableau.Tableau {
	tab := tableau.New(cIn.NbQubits)
	for _, g := range cIn.Gates {
		switch g.Op {
		case gate.H:
			tab.PrependH(g.Qubits[0])
		case gate.X:
			tab.PrependX(g.Qubits[0])
		case gate.Z:
			tab.PrependZ(g.Qubits[0])
		case gate.S:
			tab.PrependS(g.Qubits[0])
			tab.PrependZ(g.Qubits[0])
		case gate.CX:
			tab.PrependCX(g.Qubits[0], g.Qubits[1])
		case gate.T, gate.CCZ, gate.TOF:
			continue
		default:
			panic(fmt.Sprintf("hopt: operator not implemented: %s", g.Op))
		}
	}
	for i := len(cIn.Gates) - 1; i >= 0; i-- {
		g := cIn.Gates[i]
		switch g.Op {
		case gate.H:
			tab.PrependH(g.Qubits[0])
		case gate.X:
			tab.PrependX(g.Qubits[0])
		case gate.Z:
			tab.PrependZ(g.Qubits[0])
		case gate.S:
			tab.PrependS(g.Qubits[0])
		case gate.CX:
			tab.PrependCX(g.Qubits[0], g.Qubits[1])
		case gate.T:
			implementPauliRotation(tab, g.Qubits[0])
		case gate.TOF:
			implementTof(tab, g.Qubits, true)
		case gate.CCZ:
			implementTof(tab, g.Qubits, false)
		default:
			panic(fmt.Sprintf("hopt: operator not implemented: %s", g.Op))
		}
	}
	return tab
}

// InternalHOpt absorbs the circuit's Clifford gates into a tableau and emits
// each non-Clifford gate as a Pauli-rotation gadget, so no ancilla qubits
// are introduced. Hadamards of cIn are not copied; an H appears between two
// non-Clifford gates only where a rotation's Pauli has an X component in the
// current frame, so anticommuting rotations (T-H-T on one qubit) keep one.
func InternalHOpt(cIn *circuit.Circuit) *circuit.Circuit {
	tab := hOptReverse(cIn)
	c := circuit.New(cIn.NbQubits)
	c.Append(tab.ToCirc(false).Gates)
	for _, g := range cIn.Gates {
		switch g.Op {
		case gate.H:
			tab.PrependH(g.Qubits[0])
		case gate.X:
			tab.PrependX(g.Qubits[0])
		case gate.Z:
			tab.PrependZ(g.Qubits[0])
		case gate.S:
			tab.PrependS(g.Qubits[0])
			tab.PrependZ(g.Qubits[0])
		case gate.CX:
			tab.PrependCX(g.Qubits[0], g.Qubits[1])
		case gate.T:
			c.Append(implementPauliRotation(tab, g.Qubits[0]).Gates)
		case gate.TOF:
			c.Append(implementTof(tab, g.Qubits, true).Gates)
		case gate.CCZ:
			c.Append(implementTof(tab, g.Qubits, false).Gates)
		default:
			panic(fmt.Sprintf("hopt: operator not implemented: %s", g.Op))
		}
	}
	c.Append(tab.ToCirc(true).Gates)
	return c
}
