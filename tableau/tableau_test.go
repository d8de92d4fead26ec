package tableau

import "testing"

func equalTableau(a, b *Tableau) bool {
	if a.NbQubits != b.NbQubits {
		return false
	}
	for i := 0; i < a.NbQubits; i++ {
		for j := 0; j < 2*a.NbQubits; j++ {
			if a.Z[i].Get(j) != b.Z[i].Get(j) || a.X[i].Get(j) != b.X[i].Get(j) {
				return false
			}
		}
	}
	for j := 0; j < 2*a.NbQubits; j++ {
		if a.Signs.Get(j) != b.Signs.Get(j) {
			return false
		}
	}
	return true
}

func TestAppendSelfInverseGates(t *testing.T) {
	n := 3
	cases := []struct {
		name string
		do   func(*Tableau)
	}{
		{"X", func(t *Tableau) { t.AppendX(1) }},
		{"Z", func(t *Tableau) { t.AppendZ(1) }},
		{"H", func(t *Tableau) { t.AppendH(1) }},
	}
	for _, c := range cases {
		tab := New(n)
		c.do(tab)
		c.do(tab)
		want := New(n)
		if !equalTableau(tab, want) {
			t.Fatalf("%s applied twice should be identity", c.name)
		}
	}
}

func TestAppendCXSelfInverse(t *testing.T) {
	n := 3
	tab := New(n)
	tab.AppendCX(0, 2)
	tab.AppendCX(0, 2)
	want := New(n)
	if !equalTableau(tab, want) {
		t.Fatalf("CX applied twice should be identity")
	}
}

func TestAppendSFourTimesIsIdentity(t *testing.T) {
	n := 2
	tab := New(n)
	for i := 0; i < 4; i++ {
		tab.AppendS(0)
	}
	want := New(n)
	if !equalTableau(tab, want) {
		t.Fatalf("S^4 should be identity")
	}
}

func TestExtractInsertRoundTrip(t *testing.T) {
	n := 4
	tab := New(n)
	tab.AppendH(0)
	tab.AppendCX(0, 1)
	tab.AppendS(2)
	for col := 0; col < 2*n; col++ {
		p := tab.ExtractPauliProduct(col)
		tab.InsertPauliProduct(p, col)
	}
	want := New(n)
	want.AppendH(0)
	want.AppendCX(0, 1)
	want.AppendS(2)
	if !equalTableau(tab, want) {
		t.Fatalf("extract/insert round trip changed the tableau")
	}
}

func TestToCircResynthesizes(t *testing.T) {
	n := 3
	tab := New(n)
	tab.AppendH(0)
	tab.AppendCX(0, 1)
	tab.AppendS(1)
	tab.AppendH(2)
	tab.AppendCX(1, 2)

	prog := tab.ToCirc(false)
	replay := New(n)
	for _, g := range prog.Gates {
		switch g.Op.String() {
		case "H":
			replay.AppendH(g.Qubits[0])
		case "X":
			replay.AppendX(g.Qubits[0])
		case "S":
			replay.AppendS(g.Qubits[0])
		case "Z":
			replay.AppendZ(g.Qubits[0])
		case "cx":
			replay.AppendCX(g.Qubits[0], g.Qubits[1])
		}
	}
	if !equalTableau(tab, replay) {
		t.Fatalf("resynthesized circuit does not reproduce the tableau")
	}
}

func TestColumnMajorPrependHSwapsStabDestab(t *testing.T) {
	n := 2
	cm := NewColumnMajor(n)
	stab0, destab0 := cm.Stabs[0], cm.Destabs[0]
	cm.PrependH(0)
	if cm.Stabs[0].Z.Get(0) != destab0.Z.Get(0) || cm.Destabs[0].X.Get(0) != stab0.X.Get(0) {
		t.Fatalf("PrependH should swap stabilizer and destabilizer")
	}
}

func TestColumnMajorToRowMajorMatchesRowMajorSequence(t *testing.T) {
	n := 3
	cm := NewColumnMajor(n)
	cm.PrependH(0)
	cm.PrependCX(0, 1)
	cm.PrependS(2)

	rm := New(n)
	rm.PrependH(0)
	rm.PrependCX(0, 1)
	rm.PrependS(2)

	got := cm.ToRowMajor()
	if !equalTableau(got, rm) {
		t.Fatalf("column-major prepend sequence diverged from row-major")
	}
}
