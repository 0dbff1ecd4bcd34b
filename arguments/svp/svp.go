// Package svp implements the single-value-product argument (Bayer-Groth
// §5.3): given a Pedersen commitment to a vector a, prove that the
// product of a's entries equals a public scalar b, without revealing a.
//
// The prover tracks the running-product vector b_k = prod_{i<=k} a_i
// and splices it with a fresh delta vector (delta_0 = d_0, delta_{n-1}
// = 0) so that, after a single challenge x, the verifier can check a
// single polynomial identity tying the opened running product to the
// claimed final product b_{n-1} = stmt.B — without the running product
// itself, or any single a_i, ever being revealed.
package svp

import (
	"io"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: a commitment to the witness vector and
// the claimed product of its entries.
type Statement struct {
	CK *pedersen.CommitmentKey
	CA group.Point
	B  group.Scalar
}

// Witness is the prover's secret vector and its commitment randomness.
type Witness struct {
	A []group.Scalar
	R group.Scalar
}

// Proof is a single-value-product argument proof.
type Proof struct {
	CD     group.Point // commitment to the fresh mask d
	CDelta group.Point // commitment to e_k = -delta_k * d_{k+1}
	CBig   group.Point // commitment to Delta_k = delta_{k+1} - a_{k+1}*delta_k - b_k*d_{k+1}
	APrime []group.Scalar
	BPrime []group.Scalar
	RPrime group.Scalar
	SPrime group.Scalar
}

// runningProduct returns b with b[0] = a[0], b[k] = b[k-1]*a[k].
func runningProduct(a []group.Scalar) []group.Scalar {
	b := make([]group.Scalar, len(a))
	b[0] = a[0]
	for k := 1; k < len(a); k++ {
		b[k] = b[k-1].Mul(a[k])
	}
	return b
}

// Prove shows that stmt.CA commits to a vector whose entries multiply
// to stmt.B.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	n := len(wit.A)
	if n != stmt.CK.Len() || n < 2 {
		return nil, common.ErrCommitmentLength
	}

	b := runningProduct(wit.A)

	d, err := vectorutil.RandomScalars(g, n, rng)
	if err != nil {
		return nil, err
	}

	delta := make([]group.Scalar, n)
	delta[0] = d[0]
	delta[n-1] = g.Zero()
	for k := 1; k < n-1; k++ {
		delta[k], err = g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
	}

	e := make([]group.Scalar, n)
	bigDelta := make([]group.Scalar, n)
	for k := 0; k < n-1; k++ {
		e[k] = delta[k].Mul(d[k+1]).Neg()
		bigDelta[k] = delta[k+1].Sub(wit.A[k+1].Mul(delta[k])).Sub(b[k].Mul(d[k+1]))
	}
	e[n-1] = g.Zero()
	bigDelta[n-1] = g.Zero()

	rd, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	s1, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	sx, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	cd, err := stmt.CK.Commit(g, d, rd)
	if err != nil {
		return nil, err
	}
	cDelta, err := stmt.CK.Commit(g, e, s1)
	if err != nil {
		return nil, err
	}
	cBig, err := stmt.CK.Commit(g, bigDelta, sx)
	if err != nil {
		return nil, err
	}

	tr.AppendPoint("svp/ca", stmt.CA)
	tr.AppendScalar("svp/b", stmt.B)
	tr.AppendPoint("svp/cd", cd)
	tr.AppendPoint("svp/cdelta", cDelta)
	tr.AppendPoint("svp/cbigdelta", cBig)
	x := tr.ChallengeScalar("svp/x")

	aPrime := vectorutil.AddScaled(d, wit.A, x)
	bPrime := vectorutil.AddScaled(delta, b, x)
	rPrime := wit.R.Mul(x).Add(rd)
	sPrime := sx.Mul(x).Add(s1)

	return &Proof{
		CD:     cd,
		CDelta: cDelta,
		CBig:   cBig,
		APrime: aPrime,
		BPrime: bPrime,
		RPrime: rPrime,
		SPrime: sPrime,
	}, nil
}

// Verify checks a single-value-product proof against its statement.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	n := stmt.CK.Len()
	if len(proof.APrime) != n || len(proof.BPrime) != n || n < 2 {
		return common.ErrCommitmentLength
	}

	tr.AppendPoint("svp/ca", stmt.CA)
	tr.AppendScalar("svp/b", stmt.B)
	tr.AppendPoint("svp/cd", proof.CD)
	tr.AppendPoint("svp/cdelta", proof.CDelta)
	tr.AppendPoint("svp/cbigdelta", proof.CBig)
	x := tr.ChallengeScalar("svp/x")

	if !proof.APrime[0].Equal(proof.BPrime[0]) {
		return common.ErrProofVerification
	}
	if !proof.BPrime[n-1].Equal(x.Mul(stmt.B)) {
		return common.ErrProofVerification
	}

	aCommit, err := stmt.CK.Commit(g, proof.APrime, proof.RPrime)
	if err != nil {
		return err
	}
	if !aCommit.Equal(stmt.CA.ScalarMul(x).Add(proof.CD)) {
		return common.ErrProofVerification
	}

	w := make([]group.Scalar, n)
	for k := 0; k < n-1; k++ {
		w[k] = x.Mul(proof.BPrime[k+1]).Sub(proof.BPrime[k].Mul(proof.APrime[k+1]))
	}
	w[n-1] = g.Zero()

	wCommit, err := stmt.CK.Commit(g, w, proof.SPrime)
	if err != nil {
		return err
	}
	if !wCommit.Equal(proof.CBig.ScalarMul(x).Add(proof.CDelta)) {
		return common.ErrProofVerification
	}
	return nil
}
