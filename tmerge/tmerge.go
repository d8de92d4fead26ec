// Package tmerge implements the two T-merge heuristics, BBMerge and
// FastTMerge: they identify pairs of T gates acting on the same (up to
// sign) stabilizer Pauli and, when every non-Clifford gate in between
// commutes with it (BBMerge) or can be shown not to obstruct reordering
// past it (FastTMerge's relaxed novelty check via the w vector), fuse them
// into a single S (equal signs) or cancel them entirely (opposite signs).
package tmerge

import (
	"fmt"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/pauli"
	"github.com/VivienVandaele/quantum-circuit-optimization/tableau"
)

type pendingTerm struct {
	index int
	sign  bool
}

// BBMerge runs the baseline T-merge heuristic: a T at position t merges
// with an earlier T on the same Pauli only if every novel (rank-vector
// flagged) non-Clifford gate strictly between them commutes with it.
func BBMerge(cIn *circuit.Circuit) *circuit.Circuit {
	nbQubits := cIn.NbQubits
	rank := RankVector(cIn)
	r := make([]int, len(rank))
	for i := range r {
		r[i] = 1
	}
	tab := tableau.NewColumnMajor(nbQubits)
	var pauliProducts []pauli.Product
	seen := map[string][]pendingTerm{}
	decomposed := cIn.DecomposeTof()

	t := 0
	for _, g := range decomposed.Gates {
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
			p := tab.Stabs[g.Qubits[0]].Clone()
			key := bitvector.BooleanKey(p.GetBooleanVec(nbQubits))
			entries, merge := seen[key]
			var popped pendingTerm
			if merge {
				popped = entries[len(entries)-1]
				entries = entries[:len(entries)-1]
				for i := popped.index + 1; i < t; i++ {
					if rank[i] && !p.IsCommuting(pauliProducts[i]) {
						merge = false
						break
					}
				}
				if merge {
					r[popped.index] = 0
					r[t] = 0
					if popped.sign == p.Sign {
						r[t] = 2
						tab.PrependS(g.Qubits[0])
					}
				}
			}
			if !merge {
				entries = append(entries, pendingTerm{index: t, sign: p.Sign})
			}
			seen[key] = entries
			pauliProducts = append(pauliProducts, p)
			t++
		default:
			panic(fmt.Sprintf("tmerge: operator not implemented: %s", g.Op))
		}
	}

	return rewriteTGates(decomposed, r)
}

// FastTMerge extends BBMerge with a second obstruction check (the w
// vector): when the first obstructing gate has already been merged away by
// an earlier merge (r != 1), the search continues past it and only blocks on
// a later w-flagged, unmerged gate that does not commute, allowing strictly
// more merges than BBMerge for the same circuit.
func FastTMerge(cIn *circuit.Circuit) *circuit.Circuit {
	nbQubits := cIn.NbQubits
	rank := RankVector(cIn)
	w := append([]bool(nil), rank...)
	r := make([]int, len(rank))
	for i := range r {
		r[i] = 1
	}
	tab := tableau.NewColumnMajor(nbQubits)
	var pauliProducts []pauli.Product
	seen := map[string][]pendingTerm{}
	decomposed := cIn.DecomposeTof()

	t := 0
	for _, g := range decomposed.Gates {
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
			p := tab.Stabs[g.Qubits[0]].Clone()
			key := bitvector.BooleanKey(p.GetBooleanVec(nbQubits))
			entries, merge := seen[key]
			var popped pendingTerm
			if merge {
				popped = entries[len(entries)-1]
				entries = entries[:len(entries)-1]
				for i := popped.index + 1; i < t; i++ {
					if rank[i] && !p.IsCommuting(pauliProducts[i]) {
						if r[i] == 1 {
							merge = false
						} else {
							for j := i + 1; j < t; j++ {
								if w[j] && r[j] == 1 && !p.IsCommuting(pauliProducts[j]) {
									merge = false
									break
								}
							}
						}
						break
					}
				}
				if merge {
					if rank[popped.index] {
						for i := popped.index + 1; i < t; i++ {
							w[i] = true
						}
					}
					w[popped.index] = false
					r[popped.index] = 0
					r[t] = 0
					if popped.sign == p.Sign {
						r[t] = 2
						tab.PrependS(g.Qubits[0])
					}
				}
			}
			if !merge {
				entries = append(entries, pendingTerm{index: t, sign: p.Sign})
			}
			seen[key] = entries
			pauliProducts = append(pauliProducts, p)
			t++
		default:
			panic(fmt.Sprintf("tmerge: operator not implemented: %s", g.Op))
		}
	}

	return rewriteTGates(decomposed, r)
}

// rewriteTGates replays decomposed, rewriting its t-th T gate to T (r==1),
// S (r==2, the two terms canceled into a quarter turn), or dropping it
// entirely (r==0, fully canceled by its merge partner).
func rewriteTGates(decomposed *circuit.Circuit, r []int) *circuit.Circuit {
	out := circuit.New(decomposed.NbQubits)
	idx := 0
	for _, g := range decomposed.Gates {
		if g.Op != gate.T {
			out.Gates = append(out.Gates, g)
			continue
		}
		val := r[idx]
		idx++
		switch val {
		case 1:
			out.Push(gate.T, g.Qubits[0])
		case 2:
			out.Push(gate.S, g.Qubits[0])
		}
	}
	return out
}

func diagonalizePauliRotation(tab *tableau.Tableau, col int) bool {
	pivot := -1
	for i := 0; i < tab.NbQubits; i++ {
		if tab.X[i].Get(col) {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return false
	}
	for j := 0; j < tab.NbQubits; j++ {
		if tab.X[j].Get(col) && j != pivot {
			tab.AppendCX(pivot, j)
		}
	}
	if tab.Z[pivot].Get(col) {
		tab.AppendS(pivot)
	}
	tab.AppendH(pivot)
	return true
}

func diagonalizeTof(tab *tableau.Tableau, cols []int, hGate bool) []bool {
	offset := 0
	if hGate {
		offset = tab.NbQubits
	}
	out := []bool{
		diagonalizePauliRotation(tab, cols[0]),
		diagonalizePauliRotation(tab, cols[1]),
		diagonalizePauliRotation(tab, cols[2]+offset),
	}
	for i := 0; i < 4; i++ {
		out = append(out, false)
	}
	return out
}

func reverseDiagonalization(cIn *circuit.Circuit) *tableau.Tableau {
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
			panic(fmt.Sprintf("tmerge: operator not implemented: %s", g.Op))
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
			diagonalizePauliRotation(tab, g.Qubits[0])
		case gate.TOF:
			diagonalizeTof(tab, g.Qubits, true)
		case gate.CCZ:
			diagonalizeTof(tab, g.Qubits, false)
		default:
			panic(fmt.Sprintf("tmerge: operator not implemented: %s", g.Op))
		}
	}
	return tab
}

// RankVector flags, for each non-Clifford gate in cIn (a Toffoli/CCZ
// expanding to its 7 decomposition slots), whether diagonalizing it
// against the tableau built by running the circuit's tail backward
// required a pivot — i.e. whether its Pauli frame is "novel" rather than
// already diagonal. BBMerge and FastTMerge only check commutation against
// novel gates, since diagonal gates automatically commute with everything
// sharing their frame.
func RankVector(cIn *circuit.Circuit) []bool {
	tab := reverseDiagonalization(cIn)
	var out []bool
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
			out = append(out, diagonalizePauliRotation(tab, g.Qubits[0]))
		case gate.TOF:
			out = append(out, diagonalizeTof(tab, g.Qubits, true)...)
		case gate.CCZ:
			out = append(out, diagonalizeTof(tab, g.Qubits, false)...)
		default:
			panic(fmt.Sprintf("tmerge: operator not implemented: %s", g.Op))
		}
	}
	return out
}
