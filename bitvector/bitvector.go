// Package bitvector implements the dense GF(2) bit-matrix primitive that
// every other package in this module is built on top of: stabilizer
// tableaux, Pauli products and phase polynomials are all, at bottom,
// collections of BitVectors manipulated by XOR/AND/popcount.
package bitvector

import (
	"log"
	"math/big"
	"math/bits"
	"strings"

	"golang.org/x/sys/cpu"
)

func init() {
	if cpu.X86.HasAVX2 {
		log.Printf("bitvector: host supports AVX2; block ops run as plain Go loops (auto-vectorized by the compiler)")
	}
}

// blockBits is the width of one block: 8 lanes of 32 bits.
const (
	lanes       = 8
	laneBits    = 32
	blockBits   = lanes * laneBits // 256
)

// Block is one 256-bit chunk of a BitVector, stored as 8 little-endian
// 32-bit lanes. This layout is a fixed part of the wire format: the
// integer-vector serialization and the TOHPE tie-break encoding both
// depend on it (see GetIntegerVec).
type Block [lanes]uint32

// BitVector is a dense vector of bits organized into fixed-size 256-bit
// blocks. Among its methods, only ExtendVec changes its length, growing it
// one block at a time; Tohpe shrinks its augmented rows by truncating
// Blocks directly.
type BitVector struct {
	Blocks []Block
}

// New allocates a BitVector able to address bit indices in [0, nBits],
// i.e. ceil((nBits+1)/256) zeroed blocks.
func New(nBits int) *BitVector {
	return &BitVector{Blocks: make([]Block, nBits/blockBits+1)}
}

// NewBlockSize allocates a BitVector with exactly nBlocks zeroed blocks.
func NewBlockSize(nBlocks int) *BitVector {
	return &BitVector{Blocks: make([]Block, nBlocks)}
}

// Size returns the total number of addressable bits (len(Blocks)*256).
func (v *BitVector) Size() int {
	return len(v.Blocks) * blockBits
}

func locate(bit int) (block, lane, offset int) {
	block = bit / blockBits
	bit %= blockBits
	lane = bit / laneBits
	offset = bit % laneBits
	return
}

// Get returns the bit at index i.
func (v *BitVector) Get(i int) bool {
	b, l, o := locate(i)
	return v.Blocks[b][l]&(uint32(1)<<uint(o)) != 0
}

// XorBit flips the bit at index i in place.
func (v *BitVector) XorBit(i int) {
	b, l, o := locate(i)
	v.Blocks[b][l] ^= uint32(1) << uint(o)
}

// Xor XORs other into v in place. Both vectors must have the same block count.
func (v *BitVector) Xor(other *BitVector) {
	for i := range v.Blocks {
		for j := 0; j < lanes; j++ {
			v.Blocks[i][j] ^= other.Blocks[i][j]
		}
	}
}

// And ANDs other into v in place. Both vectors must have the same block count.
func (v *BitVector) And(other *BitVector) {
	for i := range v.Blocks {
		for j := 0; j < lanes; j++ {
			v.Blocks[i][j] &= other.Blocks[i][j]
		}
	}
}

// Negate flips every bit of v (including unused padding bits past the
// declared length, matching the reference implementation).
func (v *BitVector) Negate() {
	for i := range v.Blocks {
		for j := 0; j < lanes; j++ {
			v.Blocks[i][j] = ^v.Blocks[i][j]
		}
	}
}

// Popcount returns the Hamming weight over the full allocated length.
func (v *BitVector) Popcount() int {
	sum := 0
	for _, block := range v.Blocks {
		for j := 0; j < lanes; j++ {
			sum += bits.OnesCount32(block[j])
		}
	}
	return sum
}

// IsZero reports whether every bit is 0. Callers must use this to
// distinguish "empty" from "first set bit is index 0" around GetFirstOne,
// which returns 0 for an all-zero vector.
func (v *BitVector) IsZero() bool {
	for _, block := range v.Blocks {
		for j := 0; j < lanes; j++ {
			if block[j] != 0 {
				return false
			}
		}
	}
	return true
}

// GetFirstOne returns the index of the least-significant set bit, or 0 if
// v is all-zero (see IsZero).
func (v *BitVector) GetFirstOne() int {
	for i, block := range v.Blocks {
		for j := 0; j < lanes; j++ {
			if block[j] == 0 {
				continue
			}
			return i*blockBits + j*laneBits + bits.TrailingZeros32(block[j])
		}
	}
	return 0
}

// GetAllOnes returns, in ascending order, the indices of set bits strictly
// below limit.
func (v *BitVector) GetAllOnes(limit int) []int {
	var out []int
	index := 0
	for _, block := range v.Blocks {
		for j := 0; j < lanes; j++ {
			lane := block[j]
			for k := 0; k < laneBits; k++ {
				if index >= limit {
					return out
				}
				if lane&(uint32(1)<<uint(k)) != 0 {
					out = append(out, index)
				}
				index++
			}
		}
	}
	return out
}

// GetBooleanVec lossily-free serializes v to a Boolean list over its full
// allocated length.
func (v *BitVector) GetBooleanVec() []bool {
	out := make([]bool, 0, len(v.Blocks)*blockBits)
	for _, block := range v.Blocks {
		for j := 0; j < lanes; j++ {
			for k := 0; k < laneBits; k++ {
				out = append(out, block[j]&(uint32(1)<<uint(k)) != 0)
			}
		}
	}
	return out
}

func packLanes(l0, l1, l2, l3 uint32) *big.Int {
	out := new(big.Int).SetUint64(uint64(l0))
	var tmp big.Int
	tmp.SetUint64(uint64(l1))
	tmp.Lsh(&tmp, laneBits)
	out.Or(out, &tmp)
	tmp.SetUint64(uint64(l2))
	tmp.Lsh(&tmp, 2*laneBits)
	out.Or(out, &tmp)
	tmp.SetUint64(uint64(l3))
	tmp.Lsh(&tmp, 3*laneBits)
	out.Or(out, &tmp)
	return out
}

func unpackLanes(v *big.Int) (l0, l1, l2, l3 uint32) {
	mask := big.NewInt(0xFFFFFFFF)
	var t big.Int
	t.And(v, mask)
	l0 = uint32(t.Uint64())
	t.Rsh(v, laneBits)
	t.And(&t, mask)
	l1 = uint32(t.Uint64())
	t.Rsh(v, 2*laneBits)
	t.And(&t, mask)
	l2 = uint32(t.Uint64())
	t.Rsh(v, 3*laneBits)
	t.And(&t, mask)
	l3 = uint32(t.Uint64())
	return
}

// GetIntegerVec serializes v to a list of 128-bit integers, two per block
// (lanes 0-3, then lanes 4-7), little-endian within each 128-bit value.
// This is the encoding used for TOHPE/FastTODD tie-breaking, so its exact
// layout is part of the module's reproducibility contract.
func (v *BitVector) GetIntegerVec() []*big.Int {
	out := make([]*big.Int, 0, 2*len(v.Blocks))
	for _, block := range v.Blocks {
		out = append(out, packLanes(block[0], block[1], block[2], block[3]))
		out = append(out, packLanes(block[4], block[5], block[6], block[7]))
	}
	return out
}

// FromIntegerVec is the inverse of GetIntegerVec.
func FromIntegerVec(vec []*big.Int) *BitVector {
	out := &BitVector{Blocks: make([]Block, len(vec)/2)}
	for i := 0; i < len(out.Blocks); i++ {
		l0, l1, l2, l3 := unpackLanes(vec[2*i])
		out.Blocks[i][0], out.Blocks[i][1], out.Blocks[i][2], out.Blocks[i][3] = l0, l1, l2, l3
		l0, l1, l2, l3 = unpackLanes(vec[2*i+1])
		out.Blocks[i][4], out.Blocks[i][5], out.Blocks[i][6], out.Blocks[i][7] = l0, l1, l2, l3
	}
	return out
}

// ExtendVec XOR-writes bits starting at bit position startOffset, growing
// the backing storage one block at a time as needed.
func (v *BitVector) ExtendVec(bitsToWrite []bool, startOffset int) {
	needed := startOffset + len(bitsToWrite)
	for v.Size() < needed {
		v.Blocks = append(v.Blocks, Block{})
	}
	for i, b := range bitsToWrite {
		if b {
			v.XorBit(startOffset + i)
		}
	}
}

// Clone returns a deep copy of v.
func (v *BitVector) Clone() *BitVector {
	out := &BitVector{Blocks: make([]Block, len(v.Blocks))}
	copy(out.Blocks, v.Blocks)
	return out
}

// IntegerKey renders GetIntegerVec as a canonical string, for use as a Go
// map key (Go maps cannot key on []*big.Int directly). It is an equality
// key only; use CompareIntegerVec, not string comparison, to order two
// integer vectors.
func (v *BitVector) IntegerKey() string {
	vec := v.GetIntegerVec()
	parts := make([]string, len(vec))
	for i, x := range vec {
		parts[i] = x.Text(16)
	}
	return strings.Join(parts, ",")
}

// CompareIntegerVec lexicographically compares two equal-length integer
// vectors as produced by GetIntegerVec, matching the "ascending
// integer-vector comparison" tie-break rule used by TOHPE/FastTODD.
func CompareIntegerVec(a, b []*big.Int) int {
	for i := range a {
		if c := a[i].Cmp(b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// BooleanKey renders a boolean slice as a string, for use as a Go map key
// (Go maps cannot key on []bool directly). Used where the reference
// algorithm hashes a Pauli's Boolean vector.
func BooleanKey(vec []bool) string {
	var sb strings.Builder
	sb.Grow(len(vec))
	for _, b := range vec {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
