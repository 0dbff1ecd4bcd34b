// Package chaumpedersen implements the Chaum-Pedersen discrete-log
// equality proof: knowledge of a single x with P1 = x*B1 and P2 = x*B2
// for two (possibly unrelated) bases B1, B2.
//
// This is the workhorse behind C14's mask, remask and reveal-token
// proofs: masking reuses the same randomness for both halves of an
// ElGamal ciphertext, remasking reuses the same re-randomization
// scalar, and a reveal token reuses the player's secret key against
// both their public key and the ciphertext's first coordinate.
package chaumpedersen

import (
	"io"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Proof is a non-interactive proof that the same scalar x satisfies
// both P1 = x*B1 and P2 = x*B2.
type Proof struct {
	T1 group.Point
	T2 group.Point
	S  group.Scalar
}

// Prove shows knowledge of x with p1 = x*b1 and p2 = x*b2.
func Prove(g group.Group, tr *transcript.Transcript, b1, b2 group.Point, x group.Scalar, rng io.Reader) (*Proof, error) {
	k, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	t1 := b1.ScalarMul(k)
	t2 := b2.ScalarMul(k)

	tr.AppendPoint("cpeq/b1", b1)
	tr.AppendPoint("cpeq/b2", b2)
	tr.AppendPoint("cpeq/t1", t1)
	tr.AppendPoint("cpeq/t2", t2)
	c := tr.ChallengeScalar("cpeq/c")

	s := k.Add(c.Mul(x))
	return &Proof{T1: t1, T2: t2, S: s}, nil
}

// Verify checks a Proof against the claimed bases and public points.
func Verify(g group.Group, tr *transcript.Transcript, b1, b2, p1, p2 group.Point, proof *Proof) error {
	tr.AppendPoint("cpeq/b1", b1)
	tr.AppendPoint("cpeq/b2", b2)
	tr.AppendPoint("cpeq/t1", proof.T1)
	tr.AppendPoint("cpeq/t2", proof.T2)
	c := tr.ChallengeScalar("cpeq/c")

	lhs1 := b1.ScalarMul(proof.S)
	rhs1 := proof.T1.Add(p1.ScalarMul(c))
	lhs2 := b2.ScalarMul(proof.S)
	rhs2 := proof.T2.Add(p2.ScalarMul(c))

	if !lhs1.Equal(rhs1) || !lhs2.Equal(rhs2) {
		return common.ErrProofVerification
	}
	return nil
}
