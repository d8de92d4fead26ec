// Package gate defines the tagged-variant gate representation shared by
// the tableau, phase-polynomial and circuit packages. It intentionally has
// no dependencies on any of them so that it can sit at the bottom of the
// import graph and break the tableau<->circuit cycle that the reference
// implementation's single-crate layout allowed.
package gate

// Op is a gate opcode. The gate set is fixed by the module's scope:
// {H, X, Z, S, T, CX, CCZ, TOF}.
type Op int

const (
	H Op = iota
	X
	Z
	S
	T
	CX
	CCZ
	TOF
)

// String renders a short opcode name (used in messages and tests). The .qc
// emitter writes CX as "cnot" and CCZ as "Z"; the other names match it.
func (o Op) String() string {
	switch o {
	case H:
		return "H"
	case X:
		return "X"
	case Z:
		return "Z"
	case S:
		return "S"
	case T:
		return "T"
	case CX:
		return "cx"
	case CCZ:
		return "ccz"
	case TOF:
		return "tof"
	default:
		return "?"
	}
}

// Arity returns the number of qubits the opcode acts on.
func (o Op) Arity() int {
	switch o {
	case H, X, Z, S, T:
		return 1
	case CX:
		return 2
	case CCZ, TOF:
		return 3
	default:
		return 0
	}
}

// Gate is one (opcode, qubit-indices) record.
type Gate struct {
	Op     Op
	Qubits []int
}

// New builds a Gate, copying qubits so callers may reuse their slice.
func New(op Op, qubits ...int) Gate {
	q := make([]int, len(qubits))
	copy(q, qubits)
	return Gate{Op: op, Qubits: q}
}

// Program is an ordered, append-only sequence of gates over NbQubits
// qubits. It is the common currency returned by Tableau.ToCirc and
// Polynomial.ToCircuit; package circuit wraps it with ancilla bookkeeping
// and the .qc text format.
type Program struct {
	NbQubits int
	Gates    []Gate
}

// NewProgram allocates an empty Program over nbQubits qubits.
func NewProgram(nbQubits int) Program {
	return Program{NbQubits: nbQubits}
}

// Push appends a single gate.
func (p *Program) Push(op Op, qubits ...int) {
	p.Gates = append(p.Gates, New(op, qubits...))
}

// Append concatenates other's gates onto p.
func (p *Program) Append(other Program) {
	p.Gates = append(p.Gates, other.Gates...)
}

// Reversed returns a new Program with gates in reverse order. Used by
// Tableau.ToCirc to turn a forward canonicalization sequence into the
// circuit that implements the tableau (rather than its inverse).
func (p Program) Reversed() Program {
	out := NewProgram(p.NbQubits)
	out.Gates = make([]Gate, len(p.Gates))
	for i, g := range p.Gates {
		out.Gates[len(p.Gates)-1-i] = g
	}
	return out
}
