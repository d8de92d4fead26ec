// Package tableau implements the stabilizer-tableau propagator: symbolic
// conjugation of Pauli generators by a Clifford circuit over GF(2).
package tableau

import (
	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/pauli"
)

// Tableau represents a Clifford operator U by the images, under
// conjugation, of the 2n generators {Z_0..Z_{n-1}, X_0..X_{n-1}}. Column j
// in [0,n) holds the image of Z_j; column j+n holds the image of X_j.
// Z[i] and X[i] are indexed by qubit i and hold, as a 2n-bit BitVector,
// the i-th qubit's z/x component across every column.
type Tableau struct {
	NbQubits int
	Z        []*bitvector.BitVector
	X        []*bitvector.BitVector
	Signs    *bitvector.BitVector
}

// New returns the tableau of the identity Clifford on nbQubits qubits.
func New(nbQubits int) *Tableau {
	t := &Tableau{
		NbQubits: nbQubits,
		Z:        make([]*bitvector.BitVector, nbQubits),
		X:        make([]*bitvector.BitVector, nbQubits),
		Signs:    bitvector.New(nbQubits << 1),
	}
	for i := 0; i < nbQubits; i++ {
		z := bitvector.New(nbQubits << 1)
		z.XorBit(i)
		t.Z[i] = z
		x := bitvector.New(nbQubits << 1)
		x.XorBit(i + nbQubits)
		t.X[i] = x
	}
	return t
}

// Clone returns a deep copy of t.
func (t *Tableau) Clone() *Tableau {
	out := &Tableau{NbQubits: t.NbQubits, Signs: t.Signs.Clone()}
	out.Z = make([]*bitvector.BitVector, t.NbQubits)
	out.X = make([]*bitvector.BitVector, t.NbQubits)
	for i := 0; i < t.NbQubits; i++ {
		out.Z[i] = t.Z[i].Clone()
		out.X[i] = t.X[i].Clone()
	}
	return out
}

// --- Append: post-compose, U <- G . U ---

// AppendX conjugates the tableau by an X gate on qubit.
func (t *Tableau) AppendX(qubit int) {
	t.Signs.Xor(t.Z[qubit])
}

// AppendZ conjugates the tableau by a Z gate on qubit.
func (t *Tableau) AppendZ(qubit int) {
	t.Signs.Xor(t.X[qubit])
}

// AppendV conjugates the tableau by V = sqrt(X) on qubit.
func (t *Tableau) AppendV(qubit int) {
	a := t.X[qubit].Clone()
	a.Negate()
	a.And(t.Z[qubit])
	t.Signs.Xor(a)
	t.X[qubit].Xor(t.Z[qubit])
}

// AppendS conjugates the tableau by an S gate on qubit.
func (t *Tableau) AppendS(qubit int) {
	a := t.Z[qubit].Clone()
	a.And(t.X[qubit])
	t.Signs.Xor(a)
	t.Z[qubit].Xor(t.X[qubit])
}

// AppendH conjugates the tableau by a Hadamard gate on qubit.
func (t *Tableau) AppendH(qubit int) {
	t.AppendS(qubit)
	t.AppendV(qubit)
	t.AppendS(qubit)
}

// AppendCX conjugates the tableau by CX[control, target].
func (t *Tableau) AppendCX(control, target int) {
	a := t.Z[control].Clone()
	a.Negate()
	a.Xor(t.X[target])
	a.And(t.Z[target])
	a.And(t.X[control])
	t.Signs.Xor(a)
	t.Z[control].Xor(t.Z[target])
	t.X[target].Xor(t.X[control])
}

// AppendCZ conjugates the tableau by CZ(a, b). CZ has no standalone
// symplectic formula in the retrieved reference source; it is realized,
// as is conventional, via the H.CX.H identity on one of the two qubits.
func (t *Tableau) AppendCZ(a, b int) {
	t.AppendH(b)
	t.AppendCX(a, b)
	t.AppendH(b)
}

// --- column extract/insert, used by prepend operations and by h_opt ---

// ExtractPauliProduct returns the Pauli product recorded in column col.
func (t *Tableau) ExtractPauliProduct(col int) pauli.Product {
	z := bitvector.New(t.NbQubits)
	x := bitvector.New(t.NbQubits)
	for i := 0; i < t.NbQubits; i++ {
		if t.Z[i].Get(col) {
			z.XorBit(i)
		}
		if t.X[i].Get(col) {
			x.XorBit(i)
		}
	}
	return pauli.New(z, x, t.Signs.Get(col))
}

// InsertPauliProduct overwrites column col with p.
func (t *Tableau) InsertPauliProduct(p pauli.Product, col int) {
	pz := p.Z.GetBooleanVec()
	px := p.X.GetBooleanVec()
	for i := 0; i < t.NbQubits; i++ {
		if pz[i] != t.Z[i].Get(col) {
			t.Z[i].XorBit(col)
		}
		if px[i] != t.X[i].Get(col) {
			t.X[i].XorBit(col)
		}
	}
	if p.Sign != t.Signs.Get(col) {
		t.Signs.XorBit(col)
	}
}

// --- Prepend: pre-compose, U <- U . G ---

// PrependX pre-composes the tableau by an X gate on qubit.
func (t *Tableau) PrependX(qubit int) {
	t.Signs.XorBit(qubit)
}

// PrependZ pre-composes the tableau by a Z gate on qubit.
func (t *Tableau) PrependZ(qubit int) {
	t.Signs.XorBit(qubit + t.NbQubits)
}

// PrependS pre-composes the tableau by an S gate on qubit.
func (t *Tableau) PrependS(qubit int) {
	stab := t.ExtractPauliProduct(qubit)
	destab := t.ExtractPauliProduct(qubit + t.NbQubits)
	destab.Mult(stab)
	t.InsertPauliProduct(destab, qubit+t.NbQubits)
}

// PrependH pre-composes the tableau by a Hadamard gate on qubit.
func (t *Tableau) PrependH(qubit int) {
	stab := t.ExtractPauliProduct(qubit)
	destab := t.ExtractPauliProduct(qubit + t.NbQubits)
	t.InsertPauliProduct(destab, qubit)
	t.InsertPauliProduct(stab, qubit+t.NbQubits)
}

// PrependCX pre-composes the tableau by CX[control, target].
func (t *Tableau) PrependCX(control, target int) {
	stabCtrl := t.ExtractPauliProduct(control)
	stabTarg := t.ExtractPauliProduct(target)
	destabCtrl := t.ExtractPauliProduct(control + t.NbQubits)
	destabTarg := t.ExtractPauliProduct(target + t.NbQubits)
	stabTarg.Mult(stabCtrl)
	destabCtrl.Mult(destabTarg)
	t.InsertPauliProduct(stabTarg, target)
	t.InsertPauliProduct(destabCtrl, control+t.NbQubits)
}

// ToCirc synthesizes a Clifford circuit realizing the tableau, via the
// standard Aaronson-Gottesman canonicalization: for each column i, bring
// an X-part-1 entry to position i with CX, clear the Z part with S/H,
// triangulate the destabilizer half, then fix signs.
//
// When inverse is false, the recorded gate list is reversed and every S is
// followed by Z (so that reversing an S gives S dagger): the canonical
// sweep always constructs a circuit for the tableau's inverse, so the
// non-inverse case undoes that by reversing and dagger-ing.
func (t *Tableau) ToCirc(inverse bool) gate.Program {
	tab := t.Clone()
	c := gate.NewProgram(t.NbQubits)
	n := t.NbQubits
	for i := 0; i < n; i++ {
		index := -1
		for j := 0; j < n; j++ {
			if tab.X[j].Get(i) {
				index = j
				break
			}
		}
		if index >= 0 {
			for j := i + 1; j < n; j++ {
				if tab.X[j].Get(i) && j != index {
					tab.AppendCX(index, j)
					c.Push(gate.CX, index, j)
				}
			}
			if tab.Z[index].Get(i) {
				tab.AppendS(index)
				c.Push(gate.S, index)
			}
			tab.AppendH(index)
			c.Push(gate.H, index)
		}
		if !tab.Z[i].Get(i) {
			index := -1
			for j := 0; j < n; j++ {
				if tab.Z[j].Get(i) {
					index = j
					break
				}
			}
			tab.AppendCX(i, index)
			c.Push(gate.CX, i, index)
		}
		for j := 0; j < n; j++ {
			if tab.Z[j].Get(i) && j != i {
				tab.AppendCX(j, i)
				c.Push(gate.CX, j, i)
			}
		}
		for j := 0; j < n; j++ {
			if tab.X[j].Get(i+n) && j != i {
				tab.AppendCX(i, j)
				c.Push(gate.CX, i, j)
			}
		}
		for j := 0; j < n; j++ {
			if tab.Z[j].Get(i+n) && j != i {
				tab.AppendCX(i, j)
				c.Push(gate.CX, i, j)
				tab.AppendS(j)
				c.Push(gate.S, j)
				tab.AppendCX(i, j)
				c.Push(gate.CX, i, j)
			}
		}
		if tab.Z[i].Get(i + n) {
			tab.AppendS(i)
			c.Push(gate.S, i)
		}
		if tab.Signs.Get(i) {
			tab.AppendX(i)
			c.Push(gate.X, i)
		}
		if tab.Signs.Get(i + n) {
			tab.AppendZ(i)
			c.Push(gate.Z, i)
		}
	}
	if !inverse {
		c2 := gate.NewProgram(t.NbQubits)
		for _, g := range c.Reversed().Gates {
			c2.Gates = append(c2.Gates, g)
			if g.Op == gate.S {
				c2.Push(gate.Z, g.Qubits[0])
			}
		}
		return c2
	}
	return c
}
