// Package schnorr implements the Schnorr identification protocol,
// compiled non-interactive via Fiat-Shamir: a proof of knowledge of the
// discrete log x of a public point P = x*G. Each player proves
// ownership of their key share with one of these before it is accepted
// into an aggregate key.
package schnorr

import (
	"io"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Proof is a non-interactive proof of knowledge of a discrete log.
type Proof struct {
	T group.Point
	S group.Scalar
}

// Prove shows knowledge of sk such that pk = sk * g.Generator().
func Prove(g group.Group, tr *transcript.Transcript, sk group.Scalar, pk group.Point, rng io.Reader) (*Proof, error) {
	k, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	t := g.Generator().ScalarMul(k)

	tr.AppendPoint("schnorr/pk", pk)
	tr.AppendPoint("schnorr/t", t)
	c := tr.ChallengeScalar("schnorr/c")

	s := k.Add(c.Mul(sk))
	return &Proof{T: t, S: s}, nil
}

// Verify checks a Proof against the claimed public key.
func Verify(g group.Group, tr *transcript.Transcript, pk group.Point, proof *Proof) error {
	tr.AppendPoint("schnorr/pk", pk)
	tr.AppendPoint("schnorr/t", proof.T)
	c := tr.ChallengeScalar("schnorr/c")

	lhs := g.Generator().ScalarMul(proof.S)
	rhs := proof.T.Add(pk.ScalarMul(c))
	if !lhs.Equal(rhs) {
		return common.ErrProofVerification
	}
	return nil
}
