package tableau

import (
	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/pauli"
)

// ColumnMajor holds the same abstract Clifford state as Tableau, but
// stored as 2n Pauli products: n stabilizers (images of Z_0..Z_{n-1}) and
// n destabilizers (images of X_0..X_{n-1}). It is preferred whenever
// inserting or extracting whole columns dominates, which is the case for
// the slicing driver and the T-merge heuristics.
type ColumnMajor struct {
	NbQubits int
	Stabs    []pauli.Product
	Destabs  []pauli.Product
}

// NewColumnMajor returns the column-major tableau of the identity Clifford.
func NewColumnMajor(nbQubits int) *ColumnMajor {
	t := &ColumnMajor{NbQubits: nbQubits, Stabs: make([]pauli.Product, nbQubits), Destabs: make([]pauli.Product, nbQubits)}
	for i := 0; i < nbQubits; i++ {
		z := bitvector.New(nbQubits)
		z.XorBit(i)
		t.Stabs[i] = pauli.New(z, bitvector.New(nbQubits), false)
		x := bitvector.New(nbQubits)
		x.XorBit(i)
		t.Destabs[i] = pauli.New(bitvector.New(nbQubits), x, false)
	}
	return t
}

// PrependX pre-composes the tableau by an X gate on qubit: flips the sign
// of the Z_qubit stabilizer (X anticommutes with Z, commutes with X).
func (t *ColumnMajor) PrependX(qubit int) {
	t.Stabs[qubit].Sign = !t.Stabs[qubit].Sign
}

// PrependZ pre-composes the tableau by a Z gate on qubit: flips the sign
// of the X_qubit destabilizer.
func (t *ColumnMajor) PrependZ(qubit int) {
	t.Destabs[qubit].Sign = !t.Destabs[qubit].Sign
}

// PrependS pre-composes the tableau by an S gate on qubit.
func (t *ColumnMajor) PrependS(qubit int) {
	t.Destabs[qubit].Mult(t.Stabs[qubit])
}

// PrependH pre-composes the tableau by a Hadamard gate on qubit: swaps the
// stabilizer and destabilizer of qubit.
func (t *ColumnMajor) PrependH(qubit int) {
	t.Stabs[qubit], t.Destabs[qubit] = t.Destabs[qubit], t.Stabs[qubit]
}

// PrependCX pre-composes the tableau by CX[control, target].
func (t *ColumnMajor) PrependCX(control, target int) {
	t.Stabs[target].Mult(t.Stabs[control])
	t.Destabs[control].Mult(t.Destabs[target])
}

// ToRowMajor converts the column-major state into an equivalent row-major
// Tableau, reusing Tableau's InsertPauliProduct.
func (t *ColumnMajor) ToRowMajor() *Tableau {
	tab := New(t.NbQubits)
	for q := 0; q < t.NbQubits; q++ {
		tab.InsertPauliProduct(t.Stabs[q], q)
		tab.InsertPauliProduct(t.Destabs[q], q+t.NbQubits)
	}
	return tab
}

// ToCirc synthesizes a Clifford circuit realizing the tableau, by
// converting to row-major form and delegating to Tableau.ToCirc.
func (t *ColumnMajor) ToCirc(inverse bool) gate.Program {
	return t.ToRowMajor().ToCirc(inverse)
}

// Clone returns a deep copy of t.
func (t *ColumnMajor) Clone() *ColumnMajor {
	out := &ColumnMajor{NbQubits: t.NbQubits, Stabs: make([]pauli.Product, t.NbQubits), Destabs: make([]pauli.Product, t.NbQubits)}
	for i := range t.Stabs {
		out.Stabs[i] = t.Stabs[i].Clone()
		out.Destabs[i] = t.Destabs[i].Clone()
	}
	return out
}
