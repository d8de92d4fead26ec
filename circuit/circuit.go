// Package circuit assembles the BitVector/Pauli/Tableau/PhasePolynomial
// primitives into the top-level object the rest of this module operates
// on: a flat gate list plus the .qc text format, Toffoli decomposition,
// Hadamard gadgetization and the T-count statistics the CLI reports.
package circuit

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/VivienVandaele/quantum-circuit-optimization/gate"
)

// Circuit is an ordered gate list over NbQubits qubits. Ancillas records,
// for each ancilla qubit introduced by HadamardGadgetization, the qubit it
// was split off from (so a caller can trace gadget wires back to their
// logical origin).
type Circuit struct {
	NbQubits int
	Gates    []gate.Gate
	Ancillas map[int]int
}

// New returns an empty circuit over nbQubits qubits.
func New(nbQubits int) *Circuit {
	return &Circuit{NbQubits: nbQubits, Ancillas: map[int]int{}}
}

// Push appends a single gate.
func (c *Circuit) Push(op gate.Op, qubits ...int) {
	c.Gates = append(c.Gates, gate.New(op, qubits...))
}

// Append concatenates other's gates onto c.
func (c *Circuit) Append(other []gate.Gate) {
	c.Gates = append(c.Gates, other...)
}

// Clone returns a deep-enough copy of c: Gates is a new backing array (so
// the clone can be appended to independently), Ancillas is a new map.
func (c *Circuit) Clone() *Circuit {
	out := New(c.NbQubits)
	out.Gates = append([]gate.Gate(nil), c.Gates...)
	out.Ancillas = cloneAncillas(c.Ancillas)
	return out
}

func cloneAncillas(m map[int]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var (
	reToken = regexp.MustCompile(`\s([[:alnum:]]*)`)
	reGate  = regexp.MustCompile(`(\.*[[:alpha:]]+\*?)\s`)
)

// FromQC reads a .qc-format circuit. It returns the circuit, the verbatim
// header block (every line starting with '.', including the ".v" qubit
// declaration line), and the wire index -> original qubit-name mapping
// (needed by ToQC to write a circuit back out under the same names).
func FromQC(filename string) (*Circuit, string, map[int]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", nil, fmt.Errorf("circuit: %w", err)
	}
	defer f.Close()

	c := New(0)
	var header strings.Builder
	qubitsMapping := map[string]int{}
	revMapping := map[int]string{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		gm := reGate.FindStringSubmatch(line)
		if gm == nil {
			continue
		}
		op := gm[1]

		if op == ".v" {
			for _, tm := range reToken.FindAllStringSubmatch(line, -1) {
				name := tm[1]
				if name == "" {
					continue
				}
				qubitsMapping[name] = c.NbQubits
				revMapping[c.NbQubits] = name
				c.NbQubits++
			}
		}
		if op[0] == '.' {
			header.WriteString(line)
			header.WriteString("\n")
			continue
		}

		var qubits []int
		for _, tm := range reToken.FindAllStringSubmatch(line, -1) {
			name := tm[1]
			if name == "" {
				continue
			}
			idx, ok := qubitsMapping[name]
			if !ok {
				return nil, "", nil, fmt.Errorf("circuit: line %q references undeclared qubit %q", line, name)
			}
			qubits = append(qubits, idx)
		}

		switch {
		case op == "tof" && len(qubits) == 3:
			c.Push(gate.TOF, qubits...)
		case (op == "Zd" || op == "Z") && len(qubits) == 3:
			c.Push(gate.CCZ, qubits...)
		case op == "cnot" || (op == "tof" && len(qubits) == 2):
			c.Push(gate.CX, qubits...)
		case op == "H" && len(qubits) == 1:
			c.Push(gate.H, qubits...)
		case op == "X" && len(qubits) == 1:
			c.Push(gate.X, qubits...)
		case op == "Z" && len(qubits) == 1:
			c.Push(gate.Z, qubits...)
		case (op == "S" || op == "P") && len(qubits) == 1:
			c.Push(gate.S, qubits...)
		case (op == "S*" || op == "P*") && len(qubits) == 1:
			c.Push(gate.Z, qubits...)
			c.Push(gate.S, qubits...)
		case op == "T" && len(qubits) == 1:
			c.Push(gate.T, qubits...)
		case op == "T*" && len(qubits) == 1:
			c.Push(gate.Z, qubits...)
			c.Push(gate.S, qubits...)
			c.Push(gate.T, qubits...)
		default:
			return nil, "", nil, fmt.Errorf("circuit: operator not implemented: %s (%d qubits)", op, len(qubits))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", nil, fmt.Errorf("circuit: %w", err)
	}
	return c, header.String(), revMapping, nil
}

// ToQC writes c in .qc format. header is the verbatim block FromQC
// returned (or an equivalent ".v ..." declaration line); mapping gives the
// qubit names to use, keyed by wire index. Ancilla wires introduced since
// the header was written (i.e. not already present in mapping) are
// assigned fresh numeric names appended to the ".v" line.
func (c *Circuit) ToQC(filename, header string, mapping map[int]string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("circuit: %w", err)
	}
	defer f.Close()

	m := make(map[int]string, len(mapping))
	for k, v := range mapping {
		m[k] = v
	}
	index := len(mapping)
	val := len(mapping)

	for _, line := range strings.Split(header, "\n") {
		fmt.Fprint(f, line)
		fields := strings.Split(line, " ")
		if len(fields) > 0 && fields[0] == ".v" {
			for range c.Ancillas {
				for containsValue(m, strconv.Itoa(val)) {
					val++
				}
				fmt.Fprintf(f, " %d", val)
				m[index] = strconv.Itoa(val)
				index++
			}
		}
		fmt.Fprint(f, "\n")
	}

	fmt.Fprint(f, "BEGIN\n")
	for _, g := range c.Gates {
		switch g.Op {
		case gate.H:
			fmt.Fprintf(f, "H %s\n", m[g.Qubits[0]])
		case gate.X:
			fmt.Fprintf(f, "X %s\n", m[g.Qubits[0]])
		case gate.Z:
			fmt.Fprintf(f, "Z %s\n", m[g.Qubits[0]])
		case gate.S:
			fmt.Fprintf(f, "S %s\n", m[g.Qubits[0]])
		case gate.T:
			fmt.Fprintf(f, "T %s\n", m[g.Qubits[0]])
		case gate.CX:
			fmt.Fprintf(f, "cnot %s %s\n", m[g.Qubits[0]], m[g.Qubits[1]])
		case gate.TOF:
			fmt.Fprintf(f, "tof %s %s %s\n", m[g.Qubits[0]], m[g.Qubits[1]], m[g.Qubits[2]])
		case gate.CCZ:
			fmt.Fprintf(f, "Z %s %s %s\n", m[g.Qubits[0]], m[g.Qubits[1]], m[g.Qubits[2]])
		default:
			return fmt.Errorf("circuit: operator not implemented: %s", g.Op)
		}
	}
	fmt.Fprint(f, "END")
	return nil
}

func containsValue(m map[int]string, v string) bool {
	for _, x := range m {
		if x == v {
			return true
		}
	}
	return false
}

// DecomposeTof rewrites every CCZ/Toffoli gate into the 7-T, ancilla-free
// Clifford+T decomposition (Toffoli additionally conjugated by H on its
// target, since CCZ is the diagonal variant).
func (c *Circuit) DecomposeTof() *Circuit {
	out := New(c.NbQubits)
	out.Ancillas = cloneAncillas(c.Ancillas)
	for _, g := range c.Gates {
		if (g.Op == gate.CCZ || g.Op == gate.TOF) && len(g.Qubits) == 3 {
			q0, q1, q2 := g.Qubits[0], g.Qubits[1], g.Qubits[2]
			if g.Op == gate.TOF {
				out.Push(gate.H, q2)
			}
			out.Push(gate.T, q0)
			out.Push(gate.T, q1)
			out.Push(gate.T, q2)
			out.Push(gate.CX, q1, q0)
			out.Push(gate.X, q0)
			out.Push(gate.T, q0)
			out.Push(gate.X, q0)
			out.Push(gate.CX, q2, q0)
			out.Push(gate.T, q0)
			out.Push(gate.CX, q1, q0)
			out.Push(gate.X, q0)
			out.Push(gate.T, q0)
			out.Push(gate.X, q0)
			out.Push(gate.CX, q2, q0)
			out.Push(gate.CX, q2, q1)
			out.Push(gate.X, q1)
			out.Push(gate.T, q1)
			out.Push(gate.X, q1)
			out.Push(gate.CX, q2, q1)
			if g.Op == gate.TOF {
				out.Push(gate.H, q2)
			}
			continue
		}
		out.Gates = append(out.Gates, g)
	}
	return out
}

// Statistics returns (hCount, internalHCount, tCount): the total Hadamard
// count, the number of Hadamards strictly between the first and last T
// gate (the ones HadamardGadgetization can act on), and the T-count.
func (c *Circuit) Statistics() (hCount, internalHCount, tCount int) {
	flag := false
	for _, g := range c.Gates {
		if g.Op == gate.H {
			hCount++
			if flag {
				internalHCount++
			}
		}
		if g.Op == gate.T {
			tCount++
			flag = true
		}
	}
	if flag {
		for i := len(c.Gates) - 1; i >= 0; i-- {
			if c.Gates[i].Op == gate.H {
				internalHCount--
			}
			if c.Gates[i].Op == gate.T {
				break
			}
		}
	}
	return
}

// HadamardGadgetization replaces every internal Hadamard (one that falls
// strictly before the last T gate, after at least one T has already been
// seen) with an ancilla-mediated gadget, so the rest of the pipeline never
// has to thread a tableau across a mid-polynomial basis change. Each
// gadgetized Hadamard consumes one fresh ancilla wire, recorded in the
// returned circuit's Ancillas.
func (c *Circuit) HadamardGadgetization() *Circuit {
	ancGates := New(c.NbQubits)
	body := New(c.NbQubits)
	nextQubit := c.NbQubits
	ancillas := map[int]int{}
	parentAncilla := make([]int, c.NbQubits)
	for i := range parentAncilla {
		parentAncilla[i] = i
	}

	last := 0
	for i, g := range c.Gates {
		if g.Op == gate.T {
			last = i
		}
	}

	flag := false
	for i, g := range c.Gates {
		if g.Op == gate.T {
			flag = true
		}
		if g.Op == gate.H && i < last && flag {
			anc := nextQubit
			ancGates.Push(gate.H, anc)
			body.Push(gate.S, anc)
			body.Push(gate.S, g.Qubits[0])
			body.Push(gate.CX, g.Qubits[0], anc)
			body.Push(gate.S, anc)
			body.Push(gate.Z, anc)
			body.Push(gate.CX, anc, g.Qubits[0])
			body.Push(gate.CX, g.Qubits[0], anc)
			ancillas[anc] = parentAncilla[g.Qubits[0]]
			parentAncilla[g.Qubits[0]] = anc
			nextQubit++
			continue
		}
		body.Gates = append(body.Gates, g)
	}

	out := New(nextQubit)
	out.Ancillas = ancillas
	out.Gates = append(out.Gates, ancGates.Gates...)
	out.Gates = append(out.Gates, body.Gates...)
	out.Gates = append(out.Gates, ancGates.Gates...)
	return out
}

// TOpt slices c into Clifford/phase-polynomial regions and runs the named
// T-count optimizer ("TOHPE" or "FastTODD") over every phase polynomial.
func (c *Circuit) TOpt(optimizer string) (*Circuit, error) {
	return FromCircuit(c).TOpt(optimizer)
}
