package chaumpedersen

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/transcript"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	g := group.BLS12381G1
	b1 := g.Generator()
	b2, err := g.IndependentGenerator([]byte("chaumpedersen-test/b2"))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}

	x, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	p1 := b1.ScalarMul(x)
	p2 := b2.ScalarMul(x)

	proveTr := transcript.New(g, "cp-test")
	proof, err := Prove(g, proveTr, b1, b2, x, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "cp-test")
	if err := Verify(g, verifyTr, b1, b2, p1, p2, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsUnequalDiscreteLogs(t *testing.T) {
	g := group.BLS12381G1
	b1 := g.Generator()
	b2, err := g.IndependentGenerator([]byte("chaumpedersen-test/b2-unequal"))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}

	x, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	y, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	p1 := b1.ScalarMul(x)
	p2 := b2.ScalarMul(y) // different exponent: p1,p2 are not DL-equal

	proveTr := transcript.New(g, "cp-test")
	proof, err := Prove(g, proveTr, b1, b2, x, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "cp-test")
	if err := Verify(g, verifyTr, b1, b2, p1, p2, proof); err == nil {
		t.Fatalf("expected verification failure for unequal discrete logs")
	}
}
