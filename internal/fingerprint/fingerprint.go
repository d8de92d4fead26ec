// Package fingerprint computes a short content hash of a circuit, printed
// in cmd/qcopt's verbose (-v) report. No test uses it.
package fingerprint

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/VivienVandaele/quantum-circuit-optimization/circuit"
)

// Circuit returns a 16-byte SHAKE-256 digest of c's qubit count and gate
// list (opcode and qubit indices, in order).
func Circuit(c *circuit.Circuit) [16]byte {
	h := sha3.NewShake256()
	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], uint64(c.NbQubits))
	_, _ = h.Write(hdr[:])
	for _, g := range c.Gates {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(g.Op))
		_, _ = h.Write(buf[:])
		for _, q := range g.Qubits {
			binary.LittleEndian.PutUint64(buf[:], uint64(q))
			_, _ = h.Write(buf[:])
		}
	}
	var out [16]byte
	_, _ = h.Read(out[:])
	return out
}
