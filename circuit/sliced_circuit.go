package circuit

import (
	"fmt"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
	"github.com/VivienVandaele/quantum-circuit-optimization/phasepoly"
	"github.com/VivienVandaele/quantum-circuit-optimization/tableau"
	"github.com/VivienVandaele/quantum-circuit-optimization/topt"
)

// SlicedCircuit is a circuit decomposed into an initial Clifford prefix
// (InitCircuit) followed by an alternating sequence of phase-polynomial
// blocks and the Clifford tableaux that separate them. Each phase
// polynomial collects every T gate applied between two Hadamard-induced
// basis changes; TableauVec[i] is the Clifford that must be resynthesized
// between PhasePolynomials[i] and PhasePolynomials[i+1].
type SlicedCircuit struct {
	NbQubits         int
	InitCircuit      *Circuit
	TableauVec       []*tableau.ColumnMajor
	PhasePolynomials []*phasepoly.Polynomial
}

// NewSlicedCircuit returns an empty slicing over nbQubits qubits.
func NewSlicedCircuit(nbQubits int) *SlicedCircuit {
	return &SlicedCircuit{NbQubits: nbQubits, InitCircuit: New(nbQubits)}
}

// FromCircuit slices c. Every gate before the first T gate goes straight
// into InitCircuit; from there, H gates close out the current phase
// polynomial (if non-empty) and update the running stabilizer tableau,
// and T gates extract the current Z-stabilizer of their qubit as the
// polynomial's next linear term; when that stabilizer's sign is negative,
// S and Z are prepended to the tableau to account for it.
func FromCircuit(c *Circuit) *SlicedCircuit {
	sc := NewSlicedCircuit(c.NbQubits)
	sc.InitCircuit.Ancillas = cloneAncillas(c.Ancillas)

	firstT := len(c.Gates)
	for i, g := range c.Gates {
		if g.Op == gate.T {
			firstT = i
			break
		}
		sc.InitCircuit.Gates = append(sc.InitCircuit.Gates, g)
	}

	tab := tableau.NewColumnMajor(c.NbQubits)
	p := phasepoly.New(c.NbQubits)
	for i := firstT; i < len(c.Gates); i++ {
		g := c.Gates[i]
		switch g.Op {
		case gate.H:
			if len(p.Table) > 0 {
				sc.PhasePolynomials = append(sc.PhasePolynomials, p)
				p = phasepoly.New(c.NbQubits)
			}
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
			if len(p.Table) == 0 && len(sc.PhasePolynomials) > 0 {
				sc.TableauVec = append(sc.TableauVec, tab)
				tab = tableau.NewColumnMajor(c.NbQubits)
			}
			p.Table = append(p.Table, tab.Stabs[g.Qubits[0]].Z.Clone())
			if tab.Stabs[g.Qubits[0]].Sign {
				tab.PrependS(g.Qubits[0])
				tab.PrependZ(g.Qubits[0])
			}
		default:
			panic(fmt.Sprintf("circuit: operator not supported inside a phase-polynomial region: %s", g.Op))
		}
	}
	if len(p.Table) > 0 {
		sc.PhasePolynomials = append(sc.PhasePolynomials, p)
	}
	sc.TableauVec = append(sc.TableauVec, tab)
	return sc
}

// TOpt runs optimizer ("TOHPE" or "FastTODD") over every phase polynomial
// in turn, appending each result's Clifford correction, its realized
// circuit, and the following tableau's resynthesis onto a copy of
// InitCircuit.
func (sc *SlicedCircuit) TOpt(optimizer string) (*Circuit, error) {
	c := sc.InitCircuit.Clone()
	for i, p := range sc.PhasePolynomials {
		original := cloneTable(p.Table)
		var optimized []*bitvector.BitVector
		switch optimizer {
		case "FastTODD":
			optimized = topt.FastTodd(p.Table, sc.NbQubits)
		case "TOHPE":
			optimized = topt.Tohpe(p.Table, sc.NbQubits)
		default:
			return nil, fmt.Errorf("circuit: optimizer not implemented: %s", optimizer)
		}
		p.Table = optimized
		correction := p.CliffordCorrection(original, sc.NbQubits)
		c.Append(correction.ToCirc(false).Gates)
		c.Append(p.ToCircuit().Gates)
		if len(sc.TableauVec) > i {
			c.Append(sc.TableauVec[i].ToCirc(true).Gates)
		}
	}
	return c, nil
}

func cloneTable(table []*bitvector.BitVector) []*bitvector.BitVector {
	out := make([]*bitvector.BitVector, len(table))
	for i, v := range table {
		out[i] = v.Clone()
	}
	return out
}
