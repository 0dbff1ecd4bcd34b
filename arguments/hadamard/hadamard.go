// Package hadamard implements the Hadamard-product argument: given
// commitments to m column-vectors A_1..A_m and a commitment to a
// vector b, prove that b is their running element-wise product
// (B_1 = A_1, B_k = B_{k-1} ⊙ A_k, B_m = b) without revealing any A_k,
// any intermediate B_k, or b.
//
// The prover commits the m-2 interior running products (the first and
// last reuse the statement's own commitments), then reduces the whole
// claim to a single zero-value bilinear-map instance: it splices the
// A-columns (minus the first, which needs no further proof) with a
// trailing all-(-1)s column, and the x-weighted running products with
// a combining final column, so that the bilinear form's central
// diagonal is identically zero iff every B_k = B_{k-1} ⊙ A_k holds. C9
// proves that zero claim.
package hadamard

import (
	"io"

	"github.com/geometryxyz/mental-poker/arguments/zeroarg"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: commitments to the m input columns
// and to their claimed running Hadamard product.
type Statement struct {
	CK *pedersen.CommitmentKey
	SK *pedersen.ScalarKey
	CA []group.Point
	CB group.Point
}

// Witness is the prover's m secret columns and their commitment
// randomness, plus the randomness used to commit the claimed product.
type Witness struct {
	A  [][]group.Scalar
	RA []group.Scalar
	RB group.Scalar
}

// Proof is a Hadamard-product argument proof.
type Proof struct {
	BCommit   []group.Point
	ZeroProof *zeroarg.Proof
}

func minusOnesVector(g group.Group, n int) []group.Scalar {
	v := make([]group.Scalar, n)
	neg := g.Zero().Sub(g.One())
	for i := range v {
		v[i] = neg
	}
	return v
}

// Prove shows that stmt.CB commits to the running Hadamard product of
// the columns committed in stmt.CA.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	m := len(wit.A)
	if m < 2 || len(stmt.CA) != m || len(wit.RA) != m {
		return nil, common.ErrLengthMismatch
	}
	n := stmt.CK.Len()

	b := make([][]group.Scalar, m)
	b[0] = wit.A[0]
	for k := 1; k < m; k++ {
		b[k] = vectorutil.Hadamard(b[k-1], wit.A[k])
	}

	s := make([]group.Scalar, m)
	s[0] = wit.RA[0]
	s[m-1] = wit.RB
	bCommit := make([]group.Point, m)
	bCommit[0] = stmt.CA[0]
	bCommit[m-1] = stmt.CB
	for k := 1; k < m-1; k++ {
		sk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		c, err := stmt.CK.Commit(g, b[k], sk)
		if err != nil {
			return nil, err
		}
		s[k] = sk
		bCommit[k] = c
	}

	tr.AppendPoints("hadamard/ca", stmt.CA)
	tr.AppendPoint("hadamard/cb", stmt.CB)
	tr.AppendPoints("hadamard/bcommit", bCommit)
	x := tr.ChallengeScalar("hadamard/x")
	y := tr.ChallengeScalar("hadamard/y")

	xPowers := vectorutil.PowersOf(g, x, m) // x^0 .. x^{m-1}

	minusOnes := minusOnesVector(g, n)
	minusOnesC, err := stmt.CK.Commit(g, minusOnes, g.Zero())
	if err != nil {
		return nil, err
	}

	zeroCA := make([]group.Point, m)
	copy(zeroCA, stmt.CA[1:])
	zeroCA[m-1] = minusOnesC

	witA := make([][]group.Scalar, m)
	copy(witA, wit.A[1:])
	witA[m-1] = minusOnes

	randA := make([]group.Scalar, m)
	copy(randA, wit.RA[1:])
	randA[m-1] = g.Zero()

	cD := make([]group.Point, m)
	dOpen := make([][]group.Scalar, m)
	randD := make([]group.Scalar, m)
	for i := 0; i < m-1; i++ {
		cD[i] = bCommit[i].ScalarMul(xPowers[i+1])
		dOpen[i] = vectorutil.Scale(b[i], xPowers[i+1])
		randD[i] = xPowers[i+1].Mul(s[i])
	}

	finalCD := g.Identity()
	finalD := make([]group.Scalar, n)
	for l := range finalD {
		finalD[l] = g.Zero()
	}
	finalT := g.Zero()
	for j := 1; j < m; j++ {
		finalCD = finalCD.Add(bCommit[j].ScalarMul(xPowers[j]))
		finalD = vectorutil.Add(finalD, vectorutil.Scale(b[j], xPowers[j]))
		finalT = finalT.Add(xPowers[j].Mul(s[j]))
	}
	cD[m-1] = finalCD
	dOpen[m-1] = finalD
	randD[m-1] = finalT

	zeroStmt := &zeroarg.Statement{
		CK: stmt.CK,
		SK: stmt.SK,
		M:  m,
		Y:  y,
		CA: zeroCA,
		CB: cD,
	}
	zeroWit := &zeroarg.Witness{
		A:  witA,
		RA: randA,
		B:  dOpen,
		RB: randD,
	}
	zeroProof, err := zeroarg.Prove(g, tr, zeroStmt, zeroWit, rng)
	if err != nil {
		return nil, err
	}

	return &Proof{BCommit: bCommit, ZeroProof: zeroProof}, nil
}

// Verify checks a Hadamard-product argument proof.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	m := len(stmt.CA)
	if m < 2 || len(proof.BCommit) != m {
		return common.ErrCommitmentLength
	}
	if !proof.BCommit[0].Equal(stmt.CA[0]) {
		return common.ErrProofVerification
	}
	if !proof.BCommit[m-1].Equal(stmt.CB) {
		return common.ErrProofVerification
	}
	n := stmt.CK.Len()

	tr.AppendPoints("hadamard/ca", stmt.CA)
	tr.AppendPoint("hadamard/cb", stmt.CB)
	tr.AppendPoints("hadamard/bcommit", proof.BCommit)
	x := tr.ChallengeScalar("hadamard/x")
	y := tr.ChallengeScalar("hadamard/y")

	xPowers := vectorutil.PowersOf(g, x, m)

	minusOnesC, err := stmt.CK.Commit(g, minusOnesVector(g, n), g.Zero())
	if err != nil {
		return err
	}

	zeroCA := make([]group.Point, m)
	copy(zeroCA, stmt.CA[1:])
	zeroCA[m-1] = minusOnesC

	cD := make([]group.Point, m)
	for i := 0; i < m-1; i++ {
		cD[i] = proof.BCommit[i].ScalarMul(xPowers[i+1])
	}
	finalCD := g.Identity()
	for j := 1; j < m; j++ {
		finalCD = finalCD.Add(proof.BCommit[j].ScalarMul(xPowers[j]))
	}
	cD[m-1] = finalCD

	zeroStmt := &zeroarg.Statement{
		CK: stmt.CK,
		SK: stmt.SK,
		M:  m,
		Y:  y,
		CA: zeroCA,
		CB: cD,
	}
	return zeroarg.Verify(g, tr, zeroStmt, proof.ZeroProof)
}
