package bitvector

import "testing"

func TestXorSelfIsZero(t *testing.T) {
	a := New(64)
	for _, i := range []int{0, 3, 17, 63} {
		a.XorBit(i)
	}
	a.Xor(a.Clone())
	if a.Popcount() != 0 {
		t.Fatalf("a xor a should be zero, got popcount %d", a.Popcount())
	}
}

func TestXorBitFlips(t *testing.T) {
	a := New(40)
	for _, i := range []int{0, 1, 31, 32, 39} {
		before := a.Get(i)
		a.XorBit(i)
		if a.Get(i) == before {
			t.Fatalf("bit %d did not flip", i)
		}
	}
}

func TestIntegerVecRoundTrip(t *testing.T) {
	a := New(300)
	for _, i := range []int{0, 5, 100, 255, 256, 299} {
		a.XorBit(i)
	}
	got := FromIntegerVec(a.GetIntegerVec())
	if len(got.Blocks) != len(a.Blocks) {
		t.Fatalf("block count mismatch: got %d want %d", len(got.Blocks), len(a.Blocks))
	}
	for i := range a.Blocks {
		if got.Blocks[i] != a.Blocks[i] {
			t.Fatalf("block %d mismatch: got %v want %v", i, got.Blocks[i], a.Blocks[i])
		}
	}
}

func TestGetFirstOneAndAllOnes(t *testing.T) {
	a := New(64)
	if !a.IsZero() {
		t.Fatalf("fresh vector should be zero")
	}
	a.XorBit(5)
	a.XorBit(9)
	a.XorBit(40)
	if got := a.GetFirstOne(); got != 5 {
		t.Fatalf("GetFirstOne = %d, want 5", got)
	}
	ones := a.GetAllOnes(64)
	want := []int{5, 9, 40}
	if len(ones) != len(want) {
		t.Fatalf("GetAllOnes = %v, want %v", ones, want)
	}
	for i := range want {
		if ones[i] != want[i] {
			t.Fatalf("GetAllOnes = %v, want %v", ones, want)
		}
	}
}

func TestPopcountAndNegate(t *testing.T) {
	a := New(32)
	a.XorBit(0)
	a.XorBit(1)
	a.XorBit(2)
	if a.Popcount() != 3 {
		t.Fatalf("popcount = %d, want 3", a.Popcount())
	}
	full := a.Size()
	a.Negate()
	if a.Popcount() != full-3 {
		t.Fatalf("popcount after negate = %d, want %d", a.Popcount(), full-3)
	}
}

func TestExtendVecGrows(t *testing.T) {
	a := New(8)
	before := a.Size()
	a.ExtendVec([]bool{true, false, true}, before)
	if a.Size() <= before {
		t.Fatalf("ExtendVec did not grow backing storage")
	}
	if !a.Get(before) || a.Get(before+1) || !a.Get(before+2) {
		t.Fatalf("ExtendVec did not XOR-write the expected bits")
	}
}

func TestAndRestrictsBits(t *testing.T) {
	a := New(32)
	b := New(32)
	a.XorBit(0)
	a.XorBit(1)
	b.XorBit(1)
	a.And(b)
	if a.Get(0) || !a.Get(1) {
		t.Fatalf("AND result wrong: bit0=%v bit1=%v", a.Get(0), a.Get(1))
	}
}
