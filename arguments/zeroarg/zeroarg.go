// Package zeroarg implements the zero-value bilinear-map argument:
// given Pedersen commitments to the m columns of two n-row matrices A
// and B, prove that their columns pair up to zero under a public
// y-weighted bilinear form, without revealing either matrix.
//
// The prover extends A with one fresh column prepended (A'_0) and B
// with one fresh column appended (B'_m), forming m+1 columns each. The
// (2m+1) anti-diagonal sums of <A'_i, B'_j>_y grouped by i-j let every
// pairwise product be accounted for exactly once; the one diagonal
// that sums the genuine original pairs <A_i,B_i>_y is forced to the
// zero commitment before any challenge is drawn, so only a prover whose
// matrices really do satisfy the zero claim can open the rest
// consistently.
package zeroarg

import (
	"io"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: commitments to the m columns of each
// matrix, the shared dimensions, and the bilinear form's y parameter.
type Statement struct {
	CK *pedersen.CommitmentKey
	SK *pedersen.ScalarKey
	M  int
	Y  group.Scalar
	CA []group.Point
	CB []group.Point
}

// Witness is the prover's two secret matrices (m columns of length n
// each) and their per-column commitment randomness.
type Witness struct {
	A  [][]group.Scalar
	RA []group.Scalar
	B  [][]group.Scalar
	RB []group.Scalar
}

// Proof is a zero-value bilinear-map argument proof.
type Proof struct {
	CA0    group.Point
	CBm    group.Point
	CD     []group.Point
	ATilde []group.Scalar
	BTilde []group.Scalar
	RTilde group.Scalar
	STilde group.Scalar
	TTilde group.Scalar
}

// bilinear computes <a,b>_y = sum_i y^(i+1) * a_i * b_i.
func bilinear(g group.Group, y group.Scalar, a, b []group.Scalar) group.Scalar {
	sum := g.Zero()
	power := y
	for i := range a {
		sum = sum.Add(power.Mul(a[i]).Mul(b[i]))
		power = power.Mul(y)
	}
	return sum
}

// centerDiagonal is the index, in a length-(2m+1) diagonal array, of
// the diagonal that sums the genuine pairs (A_i, B_i) of the original
// (unextended) matrices: i - j = 1 in extended-index terms, i.e. k = m+1.
func centerDiagonal(m int) int { return m + 1 }

// Prove shows that stmt.CA and stmt.CB commit to matrices whose
// columns pair to zero under the y-bilinear form.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	m := stmt.M
	n := stmt.CK.Len()
	if len(wit.A) != m || len(wit.B) != m || len(wit.RA) != m || len(wit.RB) != m {
		return nil, common.ErrLengthMismatch
	}

	a0, err := vectorutil.RandomScalars(g, n, rng)
	if err != nil {
		return nil, err
	}
	r0, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	bm, err := vectorutil.RandomScalars(g, n, rng)
	if err != nil {
		return nil, err
	}
	sm, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	aExt := make([][]group.Scalar, m+1)
	rExt := make([]group.Scalar, m+1)
	aExt[0] = a0
	rExt[0] = r0
	copy(aExt[1:], wit.A)
	copy(rExt[1:], wit.RA)

	bExt := make([][]group.Scalar, m+1)
	sExt := make([]group.Scalar, m+1)
	copy(bExt[:m], wit.B)
	copy(sExt[:m], wit.RB)
	bExt[m] = bm
	sExt[m] = sm

	cA0, err := stmt.CK.Commit(g, a0, r0)
	if err != nil {
		return nil, err
	}
	cBm, err := stmt.CK.Commit(g, bm, sm)
	if err != nil {
		return nil, err
	}

	numDiagonals := 2*m + 1
	center := centerDiagonal(m)

	diag := make([]group.Scalar, numDiagonals)
	for k := range diag {
		diag[k] = g.Zero()
	}
	for i := 0; i <= m; i++ {
		for j := 0; j <= m; j++ {
			k := i - j + m
			if k == center {
				continue
			}
			diag[k] = diag[k].Add(bilinear(g, stmt.Y, aExt[i], bExt[j]))
		}
	}

	t := make([]group.Scalar, numDiagonals)
	cD := make([]group.Point, numDiagonals)
	for k := 0; k < numDiagonals; k++ {
		if k == center {
			t[k] = g.Zero()
			cD[k], err = stmt.SK.Commit(g, g.Zero(), g.Zero())
			if err != nil {
				return nil, err
			}
			continue
		}
		tk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		t[k] = tk
		cD[k], err = stmt.SK.Commit(g, diag[k], tk)
		if err != nil {
			return nil, err
		}
	}

	tr.AppendPoints("zeroarg/ca", stmt.CA)
	tr.AppendPoints("zeroarg/cb", stmt.CB)
	tr.AppendScalar("zeroarg/y", stmt.Y)
	tr.AppendPoint("zeroarg/ca0", cA0)
	tr.AppendPoint("zeroarg/cbm", cBm)
	tr.AppendPoints("zeroarg/cd", cD)
	x := tr.ChallengeScalar("zeroarg/x")

	xPowers := vectorutil.PowersOf(g, x, m+1) // x^0 .. x^m

	aTilde := make([]group.Scalar, n)
	for l := range aTilde {
		aTilde[l] = g.Zero()
	}
	rTilde := g.Zero()
	for i := 0; i <= m; i++ {
		w := xPowers[i]
		for l := 0; l < n; l++ {
			aTilde[l] = aTilde[l].Add(aExt[i][l].Mul(w))
		}
		rTilde = rTilde.Add(rExt[i].Mul(w))
	}

	bTilde := make([]group.Scalar, n)
	for l := range bTilde {
		bTilde[l] = g.Zero()
	}
	sTilde := g.Zero()
	for i := 0; i <= m; i++ {
		w := xPowers[m-i]
		for l := 0; l < n; l++ {
			bTilde[l] = bTilde[l].Add(bExt[i][l].Mul(w))
		}
		sTilde = sTilde.Add(sExt[i].Mul(w))
	}

	tTilde := g.Zero()
	xp := g.One()
	for k := 0; k < numDiagonals; k++ {
		tTilde = tTilde.Add(t[k].Mul(xp))
		xp = xp.Mul(x)
	}

	return &Proof{
		CA0:    cA0,
		CBm:    cBm,
		CD:     cD,
		ATilde: aTilde,
		BTilde: bTilde,
		RTilde: rTilde,
		STilde: sTilde,
		TTilde: tTilde,
	}, nil
}

// Verify checks a zero-value bilinear-map argument proof.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	m := stmt.M
	n := stmt.CK.Len()
	if len(stmt.CA) != m || len(stmt.CB) != m {
		return common.ErrCommitmentLength
	}
	numDiagonals := 2*m + 1
	if len(proof.CD) != numDiagonals || len(proof.ATilde) != n || len(proof.BTilde) != n {
		return common.ErrCommitmentLength
	}

	tr.AppendPoints("zeroarg/ca", stmt.CA)
	tr.AppendPoints("zeroarg/cb", stmt.CB)
	tr.AppendScalar("zeroarg/y", stmt.Y)
	tr.AppendPoint("zeroarg/ca0", proof.CA0)
	tr.AppendPoint("zeroarg/cbm", proof.CBm)
	tr.AppendPoints("zeroarg/cd", proof.CD)
	x := tr.ChallengeScalar("zeroarg/x")

	center := centerDiagonal(m)
	zeroCommit, err := stmt.SK.Commit(g, g.Zero(), g.Zero())
	if err != nil {
		return err
	}
	if !proof.CD[center].Equal(zeroCommit) {
		return common.ErrProofVerification
	}

	cAExt := make([]group.Point, m+1)
	cAExt[0] = proof.CA0
	copy(cAExt[1:], stmt.CA)
	cBExt := make([]group.Point, m+1)
	copy(cBExt[:m], stmt.CB)
	cBExt[m] = proof.CBm

	xPowers := vectorutil.PowersOf(g, x, m+1)

	aAgg := g.Identity()
	for i := 0; i <= m; i++ {
		aAgg = aAgg.Add(cAExt[i].ScalarMul(xPowers[i]))
	}
	aCommit, err := stmt.CK.Commit(g, proof.ATilde, proof.RTilde)
	if err != nil {
		return err
	}
	if !aAgg.Equal(aCommit) {
		return common.ErrProofVerification
	}

	bAgg := g.Identity()
	for i := 0; i <= m; i++ {
		bAgg = bAgg.Add(cBExt[i].ScalarMul(xPowers[m-i]))
	}
	bCommit, err := stmt.CK.Commit(g, proof.BTilde, proof.STilde)
	if err != nil {
		return err
	}
	if !bAgg.Equal(bCommit) {
		return common.ErrProofVerification
	}

	dAgg := g.Identity()
	xp := g.One()
	for k := 0; k < numDiagonals; k++ {
		dAgg = dAgg.Add(proof.CD[k].ScalarMul(xp))
		xp = xp.Mul(x)
	}
	bilinearVal := bilinear(g, stmt.Y, proof.ATilde, proof.BTilde)
	rhsCommit, err := stmt.SK.Commit(g, bilinearVal, proof.TTilde)
	if err != nil {
		return err
	}
	if !dAgg.Equal(rhsCommit) {
		return common.ErrProofVerification
	}
	return nil
}
