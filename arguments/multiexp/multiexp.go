// Package multiexp implements the multi-exponentiation argument (C12):
// given an m*n matrix of ciphertexts, Pedersen commitments to the m
// rows of a hidden n-wide exponent matrix A, and a masking generator h,
// prove that a public target ciphertext E equals the row-weighted
// combination of the ciphertext matrix, re-randomized by a secret
// aggregate rho — without revealing A or rho.
//
// The prover prepends a fresh row A_0 the same way the zero-value and
// Hadamard arguments prepend a fresh column, then forms every diagonal
// sum of (extended A row) paired with (ciphertext row) grouped by their
// index difference. Exactly one diagonal, forced to open to the public
// target E, corresponds to the genuine claim; every other diagonal is
// independently masked by a fresh scalar encrypted under h. A single
// challenge x collapses the whole stack of diagonals and A-rows into
// one opening the verifier can check against both the commitments and
// the ciphertext matrix directly.
package multiexp

import (
	"io"

	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: the ciphertext matrix (m rows of n
// ciphertexts each), the target ciphertext, the commitments to A's m
// rows, the encryption public key, and the masking generator.
type Statement struct {
	CK      *pedersen.CommitmentKey
	SK      *pedersen.ScalarKey
	PK      group.Point
	H       group.Point
	Ciphers [][]*elgamal.Ciphertext
	CA      []group.Point
	E       *elgamal.Ciphertext
}

// Witness is the prover's hidden exponent matrix (m rows of length n),
// its commitment randomness, and the secret re-randomization aggregate.
type Witness struct {
	A   [][]group.Scalar
	RA  []group.Scalar
	Rho group.Scalar
}

// Proof is a multi-exponentiation argument proof.
type Proof struct {
	CA0      group.Point
	CB       []group.Point
	E        []*elgamal.Ciphertext
	ATilde   []group.Scalar
	RTilde   group.Scalar
	BTilde   group.Scalar
	STilde   group.Scalar
	TauTilde group.Scalar
}

func dotCipher(g group.Group, scalars []group.Scalar, ciphers []*elgamal.Ciphertext) *elgamal.Ciphertext {
	return elgamal.LinearCombination(g, scalars, ciphers)
}

func absorbCiphertexts(tr *transcript.Transcript, label string, ciphers []*elgamal.Ciphertext) {
	c1 := make([]group.Point, len(ciphers))
	c2 := make([]group.Point, len(ciphers))
	for i, ct := range ciphers {
		c1[i] = ct.C1
		c2[i] = ct.C2
	}
	tr.AppendPoints(label+"/c1", c1)
	tr.AppendPoints(label+"/c2", c2)
}

// Prove shows that stmt.E is the row-weighted combination of
// stmt.Ciphers implied by the matrix committed in stmt.CA, masked by a
// secret re-randomization aggregate.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	m := len(wit.A)
	if m != len(stmt.CA) || m != len(wit.RA) || m != len(stmt.Ciphers) {
		return nil, common.ErrLengthMismatch
	}
	n := stmt.CK.Len()
	numK := 2 * m

	a0, err := vectorutil.RandomScalars(g, n, rng)
	if err != nil {
		return nil, err
	}
	r0, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	cA0, err := stmt.CK.Commit(g, a0, r0)
	if err != nil {
		return nil, err
	}

	b := make([]group.Scalar, numK)
	s := make([]group.Scalar, numK)
	tau := make([]group.Scalar, numK)
	for k := 0; k < numK; k++ {
		if k == m {
			b[k] = g.Zero()
			s[k] = g.Zero()
			tau[k] = wit.Rho
			continue
		}
		bk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		sk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		tk, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		b[k], s[k], tau[k] = bk, sk, tk
	}

	cB := make([]group.Point, numK)
	for k := 0; k < numK; k++ {
		c, err := stmt.SK.Commit(g, b[k], s[k])
		if err != nil {
			return nil, err
		}
		cB[k] = c
	}

	aExt := make([][]group.Scalar, m+1)
	aExt[0] = a0
	copy(aExt[1:], wit.A)

	d := make([]*elgamal.Ciphertext, numK)
	for k := 0; k < numK; k++ {
		shift := k - m + 1
		sum := elgamal.ZeroCiphertext(g)
		for aIdx := 0; aIdx <= m; aIdx++ {
			cIdx := aIdx - shift
			if cIdx < 0 || cIdx >= m {
				continue
			}
			sum = sum.Add(dotCipher(g, aExt[aIdx], stmt.Ciphers[cIdx]))
		}
		d[k] = sum
	}

	eK := make([]*elgamal.Ciphertext, numK)
	for k := 0; k < numK; k++ {
		masked := elgamal.EncryptWithRandomness(g, stmt.PK, stmt.H.ScalarMul(b[k]), tau[k])
		eK[k] = masked.Add(d[k])
	}

	absorbCiphertexts(tr, "multiexp/e", []*elgamal.Ciphertext{stmt.E})
	tr.AppendPoints("multiexp/ca", stmt.CA)
	tr.AppendPoint("multiexp/ca0", cA0)
	tr.AppendPoints("multiexp/cb", cB)
	absorbCiphertexts(tr, "multiexp/ek", eK)
	x := tr.ChallengeScalar("multiexp/x")

	xPowers := vectorutil.PowersOf(g, x, m+1) // x^0 .. x^m

	aTilde := make([]group.Scalar, n)
	for l := range aTilde {
		aTilde[l] = g.Zero()
	}
	rTilde := g.Zero()
	for i := 0; i <= m; i++ {
		aTilde = vectorutil.AddScaled(aTilde, aExt[i], xPowers[i])
		if i == 0 {
			rTilde = rTilde.Add(r0.Mul(xPowers[0]))
		} else {
			rTilde = rTilde.Add(wit.RA[i-1].Mul(xPowers[i]))
		}
	}

	xAllPowers := vectorutil.PowersOf(g, x, numK)
	bTilde := g.Zero()
	sTilde := g.Zero()
	tauTilde := g.Zero()
	for k := 0; k < numK; k++ {
		bTilde = bTilde.Add(b[k].Mul(xAllPowers[k]))
		sTilde = sTilde.Add(s[k].Mul(xAllPowers[k]))
		tauTilde = tauTilde.Add(tau[k].Mul(xAllPowers[k]))
	}

	return &Proof{
		CA0:      cA0,
		CB:       cB,
		E:        eK,
		ATilde:   aTilde,
		RTilde:   rTilde,
		BTilde:   bTilde,
		STilde:   sTilde,
		TauTilde: tauTilde,
	}, nil
}

// Verify checks a multi-exponentiation argument proof.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	m := len(stmt.CA)
	if m != len(stmt.Ciphers) {
		return common.ErrCommitmentLength
	}
	n := stmt.CK.Len()
	numK := 2 * m
	if len(proof.CB) != numK || len(proof.E) != numK || len(proof.ATilde) != n {
		return common.ErrCommitmentLength
	}

	zeroCommit, err := stmt.SK.Commit(g, g.Zero(), g.Zero())
	if err != nil {
		return err
	}
	if !proof.CB[m].Equal(zeroCommit) {
		return common.ErrProofVerification
	}
	if !proof.E[m].Equal(stmt.E) {
		return common.ErrProofVerification
	}

	absorbCiphertexts(tr, "multiexp/e", []*elgamal.Ciphertext{stmt.E})
	tr.AppendPoints("multiexp/ca", stmt.CA)
	tr.AppendPoint("multiexp/ca0", proof.CA0)
	tr.AppendPoints("multiexp/cb", proof.CB)
	absorbCiphertexts(tr, "multiexp/ek", proof.E)
	x := tr.ChallengeScalar("multiexp/x")

	xPowers := vectorutil.PowersOf(g, x, m+1)

	aAgg := proof.CA0
	for i := 1; i <= m; i++ {
		aAgg = aAgg.Add(stmt.CA[i-1].ScalarMul(xPowers[i]))
	}
	aCommit, err := stmt.CK.Commit(g, proof.ATilde, proof.RTilde)
	if err != nil {
		return err
	}
	if !aAgg.Equal(aCommit) {
		return common.ErrProofVerification
	}

	xAllPowers := vectorutil.PowersOf(g, x, numK)
	bAgg := g.Identity()
	for k := 0; k < numK; k++ {
		bAgg = bAgg.Add(proof.CB[k].ScalarMul(xAllPowers[k]))
	}
	bCommit, err := stmt.SK.Commit(g, proof.BTilde, proof.STilde)
	if err != nil {
		return err
	}
	if !bAgg.Equal(bCommit) {
		return common.ErrProofVerification
	}

	eAgg := elgamal.ZeroCiphertext(g)
	for k := 0; k < numK; k++ {
		eAgg = eAgg.Add(proof.E[k].ScalarMul(xAllPowers[k]))
	}

	masked := elgamal.EncryptWithRandomness(g, stmt.PK, stmt.H.ScalarMul(proof.BTilde), proof.TauTilde)
	rhs := masked
	for i := 0; i < m; i++ {
		weight := xPowers[m-1-i]
		rhs = rhs.Add(dotCipher(g, vectorutil.Scale(proof.ATilde, weight), stmt.Ciphers[i]))
	}

	if !eAgg.Equal(rhs) {
		return common.ErrProofVerification
	}
	return nil
}
