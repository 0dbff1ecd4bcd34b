package svp

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

func product(g group.Group, values []group.Scalar) group.Scalar {
	p := g.One()
	for _, v := range values {
		p = p.Mul(v)
	}
	return p
}

func TestProveVerifyRoundTrip(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 4, "svp-test")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}

	two := g.One().Add(g.One())
	a := []group.Scalar{g.One(), two, two.Add(g.One()), g.One()}
	r, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	ca, err := ck.Commit(g, a, r)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	stmt := &Statement{CK: ck, CA: ca, B: product(g, a)}
	wit := &Witness{A: a, R: r}

	proveTr := transcript.New(g, "svp-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "svp-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongProduct(t *testing.T) {
	g := group.BLS12381G1
	ck, err := pedersen.NewCommitmentKey(g, 3, "svp-test-wrong")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}

	a := []group.Scalar{g.One(), g.One().Add(g.One()), g.One()}
	r, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	ca, err := ck.Commit(g, a, r)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	wrongB := product(g, a).Add(g.One())
	stmt := &Statement{CK: ck, CA: ca, B: wrongB}
	wit := &Witness{A: a, R: r}

	proveTr := transcript.New(g, "svp-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "svp-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err == nil {
		t.Fatalf("expected verification failure for a false product claim")
	}
}
