package hadamard

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

func commitVectors(t *testing.T, g group.Group, ck *pedersen.CommitmentKey, vectors [][]group.Scalar) ([]group.Point, []group.Scalar) {
	t.Helper()
	points := make([]group.Point, len(vectors))
	rs := make([]group.Scalar, len(vectors))
	for i, v := range vectors {
		r, err := g.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		c, err := ck.Commit(g, v, r)
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		points[i] = c
		rs[i] = r
	}
	return points, rs
}

func TestProveVerifyRoundTrip(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 3, "hadamard-test")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}
	sk, err := pedersen.NewScalarKey(g, "hadamard-test-scalar")
	if err != nil {
		t.Fatalf("NewScalarKey: %v", err)
	}

	two := g.One().Add(g.One())
	a1 := []group.Scalar{g.One(), two, g.Zero()}
	a2 := []group.Scalar{two, g.One(), two}
	vectors := [][]group.Scalar{a1, a2}

	ca, ra := commitVectors(t, g, ck, vectors)

	b := make([]group.Scalar, 3)
	for j := 0; j < 3; j++ {
		b[j] = a1[j].Mul(a2[j])
	}
	rb, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	cb, err := ck.Commit(g, b, rb)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	stmt := &Statement{CK: ck, SK: sk, CA: ca, CB: cb}
	wit := &Witness{A: vectors, RA: ra, RB: rb}

	proveTr := transcript.New(g, "hadamard-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "hadamard-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongProduct(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 2, "hadamard-test-wrong")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}
	sk, err := pedersen.NewScalarKey(g, "hadamard-test-wrong-scalar")
	if err != nil {
		t.Fatalf("NewScalarKey: %v", err)
	}

	a1 := []group.Scalar{g.One(), g.One().Add(g.One())}
	a2 := []group.Scalar{g.One().Add(g.One()), g.One()}
	vectors := [][]group.Scalar{a1, a2}

	ca, ra := commitVectors(t, g, ck, vectors)

	wrongB := []group.Scalar{g.One(), g.One()} // not the true entrywise product
	rb, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	cb, err := ck.Commit(g, wrongB, rb)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	stmt := &Statement{CK: ck, SK: sk, CA: ca, CB: cb}
	wit := &Witness{A: vectors, RA: ra, RB: rb}

	proveTr := transcript.New(g, "hadamard-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "hadamard-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err == nil {
		t.Fatalf("expected verification failure for a false product claim")
	}
}
