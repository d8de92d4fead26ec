// Package topt implements the two phase-polynomial T-count reduction
// engines: TOHPE (kernel search over the augmented quadratic form) and
// FastTODD (TOHPE to fixpoint, then a third-order duplicate/destruction
// search). Both operate purely on []*bitvector.BitVector; they know
// nothing about circuits or gates.
package topt

import (
	"math/big"
	"sort"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
	"github.com/VivienVandaele/quantum-circuit-optimization/internal/telemetry"
)

func cloneTable(table []*bitvector.BitVector) []*bitvector.BitVector {
	out := make([]*bitvector.BitVector, len(table))
	for i, v := range table {
		out[i] = v.Clone()
	}
	return out
}

// quadraticBits builds, for a linear column t over nbQubits qubits, the
// n(n-1)/2 quadratic bits of the augmented matrix used by kernel search:
// for a counting down from nbQubits-1 to 0, if t[a] is set the bits
// t[0..a-1] are appended (since a_k[a]&a_k[b] == t[b] when t[a]==1),
// otherwise a-many zero bits are appended.
func quadraticBits(t *bitvector.BitVector, nbQubits int) []bool {
	tv := t.GetBooleanVec()[:nbQubits]
	out := make([]bool, 0, nbQubits*(nbQubits-1)/2)
	for a := nbQubits - 1; a >= 0; a-- {
		if tv[a] {
			out = append(out, tv[:a]...)
		} else {
			out = append(out, make([]bool, a)...)
		}
	}
	return out
}

func buildQuadraticMatrix(table []*bitvector.BitVector, nbQubits int) []*bitvector.BitVector {
	matrix := make([]*bitvector.BitVector, len(table))
	for i, t := range table {
		m := t.Clone()
		m.ExtendVec(quadraticBits(t, nbQubits), nbQubits)
		matrix[i] = m
	}
	return matrix
}

func identityAugmented(n int) []*bitvector.BitVector {
	out := make([]*bitvector.BitVector, n)
	for i := 0; i < n; i++ {
		bv := bitvector.New(n)
		bv.XorBit(i)
		out[i] = bv
	}
	return out
}

// Proper normalizes a phase-polynomial table: drops all-zero columns and
// cancels duplicate pairs (two identical columns implement the identity),
// preserving the order of first occurrence.
func Proper(table []*bitvector.BitVector) []*bitvector.BitVector {
	seen := map[string]int{}
	var toRemove []int
	for i, v := range table {
		if !v.Get(v.GetFirstOne()) {
			toRemove = append(toRemove, i)
			continue
		}
		key := bitvector.BooleanKey(v.GetBooleanVec())
		if idx, ok := seen[key]; ok {
			toRemove = append(toRemove, idx, i)
			delete(seen, key)
		} else {
			seen[key] = i
		}
	}
	drop := make(map[int]bool, len(toRemove))
	for _, i := range toRemove {
		drop[i] = true
	}
	out := make([]*bitvector.BitVector, 0, len(table)-len(drop))
	for i, v := range table {
		if !drop[i] {
			out = append(out, v.Clone())
		}
	}
	return out
}

// duplicatesByIntegerVec finds zero columns and duplicate-column pairs
// using the integer-vector encoding (the key TOHPE uses internally, as
// opposed to Proper's boolean-vector key).
func duplicatesByIntegerVec(table []*bitvector.BitVector) []int {
	seen := map[string]int{}
	var toRemove []int
	for i, v := range table {
		if !v.Get(v.GetFirstOne()) {
			toRemove = append(toRemove, i)
			continue
		}
		key := v.IntegerKey()
		if idx, ok := seen[key]; ok {
			toRemove = append(toRemove, idx, i)
			delete(seen, key)
		} else {
			seen[key] = i
		}
	}
	return toRemove
}

func swapRemoveAll(table []*bitvector.BitVector, indices []int) []*bitvector.BitVector {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, i := range sorted {
		last := len(table) - 1
		table[i] = table[last]
		table = table[:last]
	}
	return table
}

func swapRemoveBV(s []*bitvector.BitVector, i int) []*bitvector.BitVector {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}

func swapRemoveBool(s []bool, i int) []bool {
	last := len(s) - 1
	s[i] = s[last]
	return s[:last]
}

// kernel performs one elimination pass over matrix/augmented (tracking
// pivots row->column), returning the first dependent row's augmented half
// as a nullspace vector, or ok=false if the matrix has full column rank so
// far.
func kernel(matrix, augmented []*bitvector.BitVector, pivots map[int]int) (*bitvector.BitVector, bool) {
	for i := 0; i < len(matrix); i++ {
		if _, ok := pivots[i]; ok {
			continue
		}
		snapshot := make(map[int]int, len(pivots))
		for k, v := range pivots {
			snapshot[k] = v
		}
		for key, value := range snapshot {
			if matrix[i].Get(value) {
				matrix[i].Xor(matrix[key])
				augmented[i].Xor(augmented[key])
			}
		}
		index := matrix[i].GetFirstOne()
		if matrix[i].Get(index) {
			pivot := matrix[i].Clone()
			augPivot := augmented[i].Clone()
			for j := range pivots {
				if matrix[j].Get(index) {
					matrix[j].Xor(pivot)
					augmented[j].Xor(augPivot)
				}
			}
			pivots[i] = index
		} else {
			return augmented[i].Clone(), true
		}
	}
	return nil, false
}

// clearColumn removes column i's contribution from pivots/matrix/augmented
// before it is swap-removed from table, relocating its pivot role to
// another row that also touches column i when one exists.
func clearColumn(i int, matrix, augmented []*bitvector.BitVector, pivots map[int]int) {
	val, ok := pivots[i]
	if !ok {
		return
	}
	delete(pivots, i)
	if !augmented[i].Get(i) {
		for j := range matrix {
			if !augmented[j].Get(i) {
				continue
			}
			pivots[j] = val
			matrix[i], matrix[j] = matrix[j], matrix[i]
			augmented[i], augmented[j] = augmented[j], augmented[i]
			break
		}
	}
	col := matrix[i].Clone()
	augCol := augmented[i].Clone()
	for j := range matrix {
		if augmented[j].Get(i) && i != j {
			matrix[j].Xor(col)
			augmented[j].Xor(augCol)
		}
	}
}

type scoredCandidate struct {
	vec   []*big.Int
	score int
}

// Tohpe runs T-Optimization via Hamming-weight Parity Elimination on a
// phase-polynomial table, returning an equivalent table with fewer (or
// equal) columns.
func Tohpe(input []*bitvector.BitVector, nbQubits int) []*bitvector.BitVector {
	table := cloneTable(input)
	if len(table) == 0 {
		return table
	}
	matrix := buildQuadraticMatrix(table, nbQubits)
	pivots := map[int]int{}
	augmented := identityAugmented(len(table))

	for {
		y, found := kernel(matrix, augmented, pivots)
		if !found {
			break
		}
		telemetry.Add("tohpe.kernel_iterations", 1)
		candidates := map[string]*scoredCandidate{}
		seed := func(v *bitvector.BitVector) {
			key := v.IntegerKey()
			candidates[key] = &scoredCandidate{vec: v.GetIntegerVec(), score: 1}
		}
		add := func(v *bitvector.BitVector, delta int) {
			key := v.IntegerKey()
			c, ok := candidates[key]
			if !ok {
				c = &scoredCandidate{vec: v.GetIntegerVec(), score: 0}
				candidates[key] = c
			}
			c.score += delta
		}

		parity := y.Popcount()%2 == 1
		for i := range table {
			if (parity && !y.Get(i)) || (!parity && y.Get(i)) {
				seed(table[i])
			}
		}
		for i := range table {
			if !y.Get(i) {
				continue
			}
			for j := range table {
				if y.Get(j) {
					continue
				}
				z := table[i].Clone()
				z.Xor(table[j])
				add(z, 2)
			}
		}

		maxScore := 0
		var maxVec []*big.Int
		for _, c := range candidates {
			if c.score > maxScore || (c.score == maxScore && maxVec != nil && bitvector.CompareIntegerVec(c.vec, maxVec) < 0) {
				maxScore = c.score
				maxVec = c.vec
			}
		}
		if maxScore <= 0 {
			break
		}
		z := bitvector.FromIntegerVec(maxVec)

		toUpdate := y.GetBooleanVec()[:len(table)]
		toUpdate = append([]bool(nil), toUpdate...)
		if y.Popcount()%2 == 1 {
			newSize := table[0].Size() - 1
			table = append(table, bitvector.New(newSize))
			matrix = append(matrix, bitvector.New(newSize))
			bv := bitvector.New(len(table))
			bv.XorBit(len(augmented))
			augmented = append(augmented, bv)
			toUpdate = append(toUpdate, true)
		}
		for i, r := range toUpdate {
			if r {
				table[i].Xor(z)
			}
		}

		rm := duplicatesByIntegerVec(table)
		sorted := append([]int(nil), rm...)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		for _, i := range sorted {
			clearColumn(i, matrix, augmented, pivots)
			table = swapRemoveBV(table, i)
			matrix = swapRemoveBV(matrix, i)
			augmented = swapRemoveBV(augmented, i)
			toUpdate = swapRemoveBool(toUpdate, i)
			if tmp, ok := pivots[len(table)]; ok {
				delete(pivots, len(table))
				pivots[i] = tmp
			}
			last := len(table)
			for j := range augmented {
				if augmented[j].Get(i) != augmented[j].Get(last) {
					augmented[j].XorBit(i)
				}
				if augmented[j].Get(last) {
					augmented[j].XorBit(last)
				}
			}
		}

		size := bitvector.New(len(table)).Size()
		for i := range table {
			for augmented[i].Size() > size {
				augmented[i].Blocks = augmented[i].Blocks[:len(augmented[i].Blocks)-1]
			}
		}

		var indices []int
		for i, r := range toUpdate {
			if r {
				indices = append(indices, i)
			}
		}
		for _, i := range indices {
			clearColumn(i, matrix, augmented, pivots)
			matrix[i] = table[i].Clone()
			bv := bitvector.New(len(table))
			bv.XorBit(i)
			augmented[i] = bv
			matrix[i].ExtendVec(quadraticBits(table[i], nbQubits), nbQubits)
		}
	}
	return table
}

// FastTodd runs Tohpe to a fixpoint, then repeatedly searches for a pair of
// columns (i, j) whose XOR z, when added to every column flagged by a
// nullspace vector y of the resulting third-order system, strictly reduces
// the table (optionally adding z itself as a new column when |y| is odd).
// It iterates until no such move improves the table.
func FastTodd(input []*bitvector.BitVector, nbQubits int) []*bitvector.BitVector {
	table := cloneTable(input)
	for {
		table = Tohpe(table, nbQubits)
		if len(table) == 0 {
			return table
		}
		matrix := buildQuadraticMatrix(table, nbQubits)
		pivots := map[int]int{}
		augmented := identityAugmented(len(table))
		kernel(matrix, augmented, pivots)

		colToRow := make(map[int]int, len(pivots))
		for row, col := range pivots {
			colToRow[col] = row
		}

		mp := map[string]int{}
		for i, v := range table {
			mp[v.IntegerKey()] = i
		}

		blockSize := len(matrix[0].Blocks)
		augBlockSize := len(augmented[0].Blocks)

		maxScore := 0
		var maxZ, maxY *bitvector.BitVector

		for i := 0; i < len(table); i++ {
			for j := i + 1; j < len(table); j++ {
				z := table[i].Clone()
				z.Xor(table[j])
				zVec := z.GetBooleanVec()

				rMat := make([]*bitvector.BitVector, 0, nbQubits+1)
				augRMat := make([]*bitvector.BitVector, 0, nbQubits+1)

				for k := 0; k < nbQubits; k++ {
					col := bitvector.NewBlockSize(blockSize)
					augCol := bitvector.NewBlockSize(augBlockSize)
					l := 0
					for a := nbQubits - 1; a >= 0; a-- {
						for b := 0; b < a; b++ {
							if (a == k && zVec[b]) || (b == k && zVec[a]) {
								col.XorBit(nbQubits + l)
								if row, ok := colToRow[nbQubits+l]; ok {
									col.Xor(matrix[row])
									augCol.Xor(augmented[row])
								}
							}
							l++
						}
					}
					rMat = append(rMat, col)
					augRMat = append(augRMat, augCol)
				}

				col := bitvector.NewBlockSize(blockSize)
				augCol := bitvector.NewBlockSize(augBlockSize)
				l := 0
				for a := nbQubits - 1; a >= 0; a-- {
					for b := 0; b < a; b++ {
						if zVec[a] && zVec[b] {
							col.XorBit(nbQubits + l)
							if row, ok := colToRow[nbQubits+l]; ok {
								col.Xor(matrix[row])
								augCol.Xor(augmented[row])
							}
						}
						l++
					}
					if zVec[a] {
						col.XorBit(a)
						if row, ok := colToRow[a]; ok {
							col.Xor(matrix[row])
							augCol.Xor(augmented[row])
						}
					}
				}
				rMat = append(rMat, col)
				augRMat = append(augRMat, augCol)

				for k := 0; k < len(rMat); k++ {
					index := rMat[k].GetFirstOne()
					if rMat[k].Get(index) {
						pivot := rMat[k].Clone()
						augPivot := augRMat[k].Clone()
						for l := k + 1; l < len(rMat); l++ {
							if rMat[l].Get(index) {
								rMat[l].Xor(pivot)
								augRMat[l].Xor(augPivot)
							}
						}
						continue
					}
					if augRMat[k].Get(i) == augRMat[k].Get(j) {
						continue
					}
					score := 0
					y := augRMat[k].Clone()
					for l := 0; l < len(table); l++ {
						if !y.Get(l) {
							continue
						}
						table[l].Xor(z)
						if idx, ok := mp[table[l].IntegerKey()]; ok && !y.Get(idx) {
							score += 2
						}
						table[l].Xor(z)
					}
					if y.Popcount()%2 == 1 {
						if _, ok := mp[z.IntegerKey()]; ok {
							score++
						} else {
							score--
						}
					}
					if score > maxScore {
						maxScore = score
						maxZ = z.Clone()
						maxY = y
					}
				}
			}
		}

		if maxScore == 0 {
			return table
		}
		telemetry.Add("fasttodd.gadgets_inserted", 1)
		for l := 0; l < len(table); l++ {
			if maxY.Get(l) {
				table[l].Xor(maxZ)
			}
		}
		if maxY.Popcount()%2 == 1 {
			table = append(table, maxZ)
		}
		table = Proper(table)
	}
}
