// Package phasepoly implements the phase-polynomial representation of a
// diagonal-plus-CX circuit region: a sum of pi/4 phases over GF(2)-linear
// functions of the input basis, and the Clifford correction needed when
// its term order is rewritten by a T-count optimizer.
package phasepoly

import (
	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/tableau"
)

// Polynomial is (n, Table): the operator is prod_k exp(i*pi/4*(x^T a_k)^2)
// for the parities a_k recorded in Table, each a BitVector of length n.
type Polynomial struct {
	NbQubits int
	Table    []*bitvector.BitVector
}

// New returns an empty phase polynomial over nbQubits qubits.
func New(nbQubits int) *Polynomial {
	return &Polynomial{NbQubits: nbQubits}
}

// CliffordCorrection computes the Clifford that must be appended after an
// optimizer rewrites original into p.Table, so that the accumulated phase
// modulo 8 is unchanged. For every qubit pair (i<j):
//
//	delta_ij = #{k: original[k][i] & original[k][j]} - #{k: p.Table[k][i] & p.Table[k][j]}  (mod 8)
//
// contributes floor((delta_ij mod 8)/2) CZ gates on (i,j); the analogous
// diagonal count contributes S gates per qubit.
func (p *Polynomial) CliffordCorrection(original []*bitvector.BitVector, nbQubits int) *tableau.Tableau {
	tab := tableau.New(nbQubits)
	for i := 0; i < nbQubits; i++ {
		for j := i + 1; j < nbQubits; j++ {
			z1 := countBothSet(original, i, j)
			z2 := countBothSet(p.Table, i, j)
			reps := mod8(z1-z2) / 2
			for k := 0; k < reps; k++ {
				tab.AppendCZ(i, j)
			}
		}
		z1 := countSet(original, i)
		z2 := countSet(p.Table, i)
		reps := mod8(z1-z2) / 2
		for k := 0; k < reps; k++ {
			tab.AppendS(i)
		}
	}
	return tab
}

func countBothSet(table []*bitvector.BitVector, i, j int) int {
	n := 0
	for _, v := range table {
		if v.Get(i) && v.Get(j) {
			n++
		}
	}
	return n
}

func countSet(table []*bitvector.BitVector, i int) int {
	n := 0
	for _, v := range table {
		if v.Get(i) {
			n++
		}
	}
	return n
}

func mod8(x int) int {
	return ((x % 8) + 8) % 8
}

// ToCircuit realizes the polynomial: for each column, pick pivot p = the
// first set bit, emit CX[j->p] for every other set bit j, emit T on p,
// then emit the CX chain again to uncompute.
func (p *Polynomial) ToCircuit() gate.Program {
	c := gate.NewProgram(p.NbQubits)
	for _, z := range p.Table {
		cnot := gate.NewProgram(p.NbQubits)
		pivot := z.GetFirstOne()
		indices := z.GetAllOnes(p.NbQubits)
		indices = removeFirstOccurrence(indices, pivot)
		for _, j := range indices {
			cnot.Push(gate.CX, j, pivot)
		}
		c.Append(cnot)
		c.Push(gate.T, pivot)
		c.Append(cnot)
	}
	return c
}

// removeFirstOccurrence drops the first occurrence of pivot from indices,
// mirroring the reference's swap_remove(0) (pivot is always indices[0]
// since GetAllOnes is ascending and pivot is the least set bit).
func removeFirstOccurrence(indices []int, pivot int) []int {
	if len(indices) == 0 || indices[0] != pivot {
		return indices
	}
	return indices[1:]
}
