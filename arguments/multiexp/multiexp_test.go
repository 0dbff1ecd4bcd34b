package multiexp

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

func randomCiphertext(t *testing.T, g group.Group, pk group.Point, label string) *elgamal.Ciphertext {
	t.Helper()
	msg, err := g.IndependentGenerator([]byte(label))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}
	ct, _, err := elgamal.Encrypt(g, pk, msg, rand.Reader)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	return ct
}

func buildStatement(t *testing.T, g group.Group, m, n int) (*Statement, *Witness, group.Group) {
	t.Helper()
	ck, err := pedersen.NewCommitmentKey(g, n, "multiexp-test")
	if err != nil {
		t.Fatalf("NewCommitmentKey: %v", err)
	}
	sk, err := pedersen.NewScalarKey(g, "multiexp-test-scalar")
	if err != nil {
		t.Fatalf("NewScalarKey: %v", err)
	}
	h, err := g.IndependentGenerator([]byte("multiexp-test-h"))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}
	kp, err := elgamal.GenerateKeyPair(g, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	pk := kp.PublicKey

	ciphers := make([][]*elgamal.Ciphertext, m)
	for i := range ciphers {
		row := make([]*elgamal.Ciphertext, n)
		for j := range row {
			row[j] = randomCiphertext(t, g, pk, "multiexp-test-cipher")
		}
		ciphers[i] = row
	}

	two := g.One().Add(g.One())
	a := make([][]group.Scalar, m)
	ca := make([]group.Point, m)
	ra := make([]group.Scalar, m)
	for i := range a {
		row := make([]group.Scalar, n)
		for l := range row {
			row[l] = two
		}
		a[i] = row
		r, err := g.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		c, err := ck.Commit(g, row, r)
		if err != nil {
			t.Fatalf("Commit: %v", err)
		}
		ca[i] = c
		ra[i] = r
	}

	d := elgamal.ZeroCiphertext(g)
	for i := 0; i < m; i++ {
		d = d.Add(elgamal.LinearCombination(g, a[i], ciphers[i]))
	}
	rho, err := g.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	e := d.Add(elgamal.EncryptWithRandomness(g, pk, g.Identity(), rho))

	stmt := &Statement{CK: ck, SK: sk, PK: pk, H: h, Ciphers: ciphers, CA: ca, E: e}
	wit := &Witness{A: a, RA: ra, Rho: rho}
	return stmt, wit, g
}

func TestProveVerifyRoundTrip(t *testing.T) {
	g := group.BLS12381G1
	stmt, wit, g := buildStatement(t, g, 2, 2)

	proveTr := transcript.New(g, "multiexp-test-protocol")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "multiexp-test-protocol")
	if err := Verify(g, verifyTr, stmt, proof); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsWrongTarget(t *testing.T) {
	g := group.BLS12381G1
	stmt, wit, g := buildStatement(t, g, 2, 2)

	stmt.E = stmt.E.Add(elgamal.EncryptWithRandomness(g, stmt.PK, g.Generator(), g.One()))

	proveTr := transcript.New(g, "multiexp-test-protocol-2")
	proof, err := Prove(g, proveTr, stmt, wit, rand.Reader)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifyTr := transcript.New(g, "multiexp-test-protocol-2")
	if err := Verify(g, verifyTr, stmt, proof); err == nil {
		t.Fatalf("expected verification failure for a wrong target ciphertext")
	}
}
