package matrixproduct

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

func commitColumns(t *testing.T, g group.Group, ck *pedersen.CommitmentKey, cols [][]group.Scalar) ([]group.Point, []group.Scalar) {
	t.Helper()
	c := make([]group.Point, len(cols))
	r := make([]group.Scalar, len(cols))
	for i, col := range cols {
		rv, err := g.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		cv, err := ck.Commit(g, col, rv)
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		c[i] = cv
		r[i] = rv
	}
	return c, r
}

func entryProduct(g group.Group, cols [][]group.Scalar) group.Scalar {
	p := g.One()
	for _, col := range cols {
		for _, v := range col {
			p = p.Mul(v)
		}
	}
	return p
}

func TestProveVerifyRoundTrip(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 3, "matrixproduct-test")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}
	sk, err := pedersen.NewScalarKey(g, "matrixproduct-test-scalar")
	if err != nil {
		t.Fatalf("NewScalarKey: %v", err)
	}

	two := g.One().Add(g.One())
	col1 := []group.Scalar{g.One(), two, g.One()}
	col2 := []group.Scalar{two, g.One(), two}
	cols := [][]group.Scalar{col1, col2}

	ca, ra := commitColumns(t, g, ck, cols)
	b := entryProduct(g, cols)

	stmt := &Statement{CK: ck, SK: sk, CA: ca, B: b}
	wit := &Witness{A: cols, RA: ra}

	proveTr := transcript.New(g, "matrixproduct-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "matrixproduct-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongProduct(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 2, "matrixproduct-test-wrong")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}
	sk, err := pedersen.NewScalarKey(g, "matrixproduct-test-wrong-scalar")
	if err != nil {
		t.Fatalf("NewScalarKey: %v", err)
	}

	col1 := []group.Scalar{g.One(), g.One().Add(g.One())}
	col2 := []group.Scalar{g.One().Add(g.One()), g.One()}
	cols := [][]group.Scalar{col1, col2}

	ca, ra := commitColumns(t, g, ck, cols)
	wrongB := entryProduct(g, cols).Add(g.One())

	if vectorutil.Sum(g, []group.Scalar{wrongB, g.Zero()}).Equal(entryProduct(g, cols)) {
		t.Fatalf("test fixture invalid: wrongB should differ from the true product")
	}

	stmt := &Statement{CK: ck, SK: sk, CA: ca, B: wrongB}
	wit := &Witness{A: cols, RA: ra}

	proveTr := transcript.New(g, "matrixproduct-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "matrixproduct-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err == nil {
		t.Fatalf("expected verification failure for a false product claim")
	}
}
