package permutation

import (
	"bytes"
	"testing"

	"github.com/geometryxyz/mental-poker/group"
)

func TestRandomProducesValidPermutation(t *testing.T) {
	p, err := Random(10, bytes.NewReader(bytes.Repeat([]byte{0x71}, 256)))
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	seen := make(map[int]bool)
	for _, v := range p {
		if v < 0 || v >= 10 {
			t.Fatalf("permutation entry out of range: %d", v)
		}
		if seen[v] {
			t.Fatalf("permutation entry %d repeated", v)
		}
		seen[v] = true
	}
}

func TestInverseRoundTrip(t *testing.T) {
	p, err := Random(20, nil)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	inv := p.Inverse()
	for i := range p {
		if inv[p[i]] != i {
			t.Fatalf("inverse permutation did not undo the original at index %d", i)
		}
	}
}

func TestApplyMatchesPermutation(t *testing.T) {
	g := group.BLS12381G1
	p := Permutation{2, 0, 1}
	items := []group.Point{g.Generator(), g.Generator().Add(g.Generator()), g.Identity()}
	out, err := p.Apply(items)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for i, v := range p {
		if !out[v].Equal(items[i]) {
			t.Fatalf("Apply did not move item %d to position %d", i, v)
		}
	}
}

func TestApplyRejectsLengthMismatch(t *testing.T) {
	p := Permutation{0, 1, 2}
	if _, err := p.Apply(nil); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
}

func TestMatrixIsOneHotPerRow(t *testing.T) {
	g := group.BLS12381G1
	p := Permutation{2, 0, 1}
	rows := p.Matrix(g)
	for i, row := range rows {
		onesSeen := 0
		for j, v := range row {
			if v.Equal(g.One()) {
				onesSeen++
				if j != p[i] {
					t.Fatalf("row %d has a 1 at column %d, expected column %d", i, j, p[i])
				}
			} else if !v.Equal(g.Zero()) {
				t.Fatalf("row %d column %d is neither 0 nor 1", i, j)
			}
		}
		if onesSeen != 1 {
			t.Fatalf("row %d has %d ones, expected exactly 1", i, onesSeen)
		}
	}
}

func TestRandomRejectsNonPositiveSize(t *testing.T) {
	if _, err := Random(0, nil); err == nil {
		t.Fatalf("expected error for n=0")
	}
}
