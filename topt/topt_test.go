package topt

import (
	"testing"

	"github.com/VivienVandaele/quantum-circuit-optimization/bitvector"
)

func vec(n int, ones ...int) *bitvector.BitVector {
	v := bitvector.New(n)
	for _, i := range ones {
		v.XorBit(i)
	}
	return v
}

func TestProperCancelsDuplicatePair(t *testing.T) {
	table := []*bitvector.BitVector{
		vec(3, 0, 1),
		vec(3, 0, 1),
		vec(3, 2),
	}
	out := Proper(table)
	if len(out) != 1 {
		t.Fatalf("expected the duplicate pair to cancel, got %d columns", len(out))
	}
	if !out[0].Get(2) {
		t.Fatalf("surviving column should be the lone {2} term")
	}
}

func TestProperDropsZeroColumn(t *testing.T) {
	table := []*bitvector.BitVector{
		vec(3),
		vec(3, 1),
	}
	out := Proper(table)
	if len(out) != 1 {
		t.Fatalf("expected the all-zero column to be dropped, got %d", len(out))
	}
}

func TestTohpeKeepsControlledSTriple(t *testing.T) {
	// {0}, {1}, {0,1} are linearly dependent (xor to zero), but their
	// quadratic extensions are not: this is the controlled-S phase
	// polynomial, which needs three T gates, so no column is removed.
	table := []*bitvector.BitVector{
		vec(2, 0),
		vec(2, 1),
		vec(2, 0, 1),
	}
	out := Tohpe(table, 2)
	if len(out) != 3 {
		t.Fatalf("expected Tohpe to keep the controlled-S triple at 3 columns, got %d", len(out))
	}
}

func TestTohpeIndependentColumnsUnreduced(t *testing.T) {
	table := []*bitvector.BitVector{
		vec(2, 0),
		vec(2, 1),
	}
	out := Tohpe(table, 2)
	if len(out) != 2 {
		t.Fatalf("independent columns should not be merged, got %d", len(out))
	}
}

func TestFastToddNeverIncreasesColumnCount(t *testing.T) {
	table := []*bitvector.BitVector{
		vec(3, 0),
		vec(3, 1),
		vec(3, 2),
		vec(3, 0, 1),
		vec(3, 1, 2),
		vec(3, 0, 1, 2),
	}
	out := FastTodd(table, 3)
	if len(out) > len(table) {
		t.Fatalf("FastTodd grew the table from %d to %d columns", len(table), len(out))
	}
}

func TestFastToddOnEmptyTable(t *testing.T) {
	out := FastTodd(nil, 3)
	if len(out) != 0 {
		t.Fatalf("expected empty input to stay empty, got %d columns", len(out))
	}
}
