// Package shuffle implements the Bayer-Groth verifiable shuffle
// argument: given an N-card input deck of ElGamal ciphertexts and an
// N-card output deck under the same public key, prove that the output
// is a permutation of the input, each entry independently
// re-randomized, without revealing the permutation or the
// re-randomization scalars.
//
// The deck is factored as N = m*n. The prover commits the permuted
// index vector (1..N) and the permuted powers of a challenge x, both
// reshaped into m rows of n entries, then reduces correctness to two
// claims a verifier can check directly:
//
//  1. A matrix-elements-product claim (C11) that the N entries of
//     y*a + b, shifted by z, multiply to the same thing the N entries
//     of (y*i + x^i - z) multiply to for i = 1..N. Since x, y and z
//     are drawn only after the permuted rows are committed, this can
//     only hold if the committed rows really are a permutation of the
//     index and power vectors.
//  2. A multi-exponentiation claim (C12) that the public x-weighted
//     combination of the input deck equals the row-weighted
//     combination of the output deck implied by the committed power
//     rows, re-randomized by the aggregate of the per-card masking
//     scalars. Combined with claim 1 pinning the committed rows to a
//     genuine permutation, this forces the output deck to be a
//     remasked permutation of the input deck.
package shuffle

import (
	"fmt"
	"io"

	"github.com/geometryxyz/mental-poker/arguments/matrixproduct"
	"github.com/geometryxyz/mental-poker/arguments/multiexp"
	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/permutation"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: the input and output ciphertext decks,
// the public key they are encrypted under, the masking generator used
// by the multi-exponentiation claim, and the deck's m*n factorization.
type Statement struct {
	CK     *pedersen.CommitmentKey
	SK     *pedersen.ScalarKey
	M      int
	N      int
	PK     group.Point
	H      group.Point
	Input  []*elgamal.Ciphertext
	Output []*elgamal.Ciphertext
}

// Witness is the prover's secret permutation and the per-input
// re-randomization scalar used to produce its output slot.
// Output[Perm[i]] is Input[i] remasked with Randomness[i].
type Witness struct {
	Perm       permutation.Permutation
	Randomness []group.Scalar
}

// Proof is a full shuffle argument proof.
type Proof struct {
	CA []group.Point
	CB []group.Point

	ProductProof  *matrixproduct.Proof
	MultiExpProof *multiexp.Proof
}

func reshape(flat []group.Scalar, m, n int) [][]group.Scalar {
	rows := make([][]group.Scalar, m)
	for i := 0; i < m; i++ {
		rows[i] = flat[i*n : (i+1)*n]
	}
	return rows
}

func reshapeCiphers(flat []*elgamal.Ciphertext, m, n int) [][]*elgamal.Ciphertext {
	rows := make([][]*elgamal.Ciphertext, m)
	for i := 0; i < m; i++ {
		rows[i] = flat[i*n : (i+1)*n]
	}
	return rows
}

func absorbDecks(tr *transcript.Transcript, input, output []*elgamal.Ciphertext) {
	for _, ct := range input {
		tr.AppendPoint("shuffle/in/c1", ct.C1)
		tr.AppendPoint("shuffle/in/c2", ct.C2)
	}
	for _, ct := range output {
		tr.AppendPoint("shuffle/out/c1", ct.C1)
		tr.AppendPoint("shuffle/out/c2", ct.C2)
	}
}

func indexVector(g group.Group, deckSize int) []group.Scalar {
	out := make([]group.Scalar, deckSize)
	v := g.One()
	for i := range out {
		out[i] = v
		v = v.Add(g.One())
	}
	return out
}

// productClaim computes prod_{i=1..N} (y*i + x^i - z) directly from the
// public index and power vectors, the way the verifier recomputes the
// right-hand side of the matrix-elements-product claim.
func productClaim(g group.Group, y, x, z group.Scalar, deckSize int) group.Scalar {
	index := indexVector(g, deckSize)
	xPowers := vectorutil.PowersOf(g, x, deckSize+1)[1:]
	product := g.One()
	for i := 0; i < deckSize; i++ {
		term := y.Mul(index[i]).Add(xPowers[i]).Sub(z)
		product = product.Mul(term)
	}
	return product
}

// Prove shows that stmt.Output is a permutation and independent
// re-randomization of stmt.Input under the permutation and
// re-randomization scalars in wit.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	deckSize := stmt.M * stmt.N
	if len(stmt.Input) != deckSize || len(stmt.Output) != deckSize || len(wit.Perm) != deckSize || len(wit.Randomness) != deckSize {
		return nil, common.ErrLengthMismatch
	}

	index := indexVector(g, deckSize)
	a, err := wit.Perm.ApplyScalars(index)
	if err != nil {
		return nil, err
	}
	aRows := reshape(a, stmt.M, stmt.N)

	rRand, err := vectorutil.RandomScalars(g, stmt.M, rng)
	if err != nil {
		return nil, err
	}
	cA, err := stmt.CK.CommitMatrix(g, aRows, rRand)
	if err != nil {
		return nil, err
	}

	absorbDecks(tr, stmt.Input, stmt.Output)
	tr.AppendPoints("shuffle/ca", cA)
	x := tr.ChallengeScalar("shuffle/x")

	xPowers := vectorutil.PowersOf(g, x, deckSize+1)[1:] // x^1 .. x^N
	b, err := wit.Perm.ApplyScalars(xPowers)
	if err != nil {
		return nil, err
	}
	bRows := reshape(b, stmt.M, stmt.N)

	sRand, err := vectorutil.RandomScalars(g, stmt.M, rng)
	if err != nil {
		return nil, err
	}
	cB, err := stmt.CK.CommitMatrix(g, bRows, sRand)
	if err != nil {
		return nil, err
	}

	tr.AppendPoints("shuffle/cb", cB)
	y := tr.ChallengeScalar("shuffle/y")
	z := tr.ChallengeScalar("shuffle/z")

	dRows := make([][]group.Scalar, stmt.M)
	dRand := make([]group.Scalar, stmt.M)
	dCommit := make([]group.Point, stmt.M)
	for i := 0; i < stmt.M; i++ {
		dRow := vectorutil.AddScaled(bRows[i], aRows[i], y)
		shifted := make([]group.Scalar, stmt.N)
		for l := range shifted {
			shifted[l] = dRow[l].Sub(z)
		}
		dRows[i] = shifted
		dRand[i] = y.Mul(rRand[i]).Add(sRand[i])
		combined := cA[i].ScalarMul(y).Add(cB[i])
		dCommit[i] = stmt.CK.ShiftCommitment(g, combined, z)
	}

	claimB := productClaim(g, y, x, z, deckSize)

	productStmt := &matrixproduct.Statement{CK: stmt.CK, SK: stmt.SK, CA: dCommit, B: claimB}
	productWit := &matrixproduct.Witness{A: dRows, RA: dRand}
	productProof, err := matrixproduct.Prove(g, tr, productStmt, productWit, rng)
	if err != nil {
		return nil, fmt.Errorf("shuffle: product claim: %w", err)
	}

	target := elgamal.LinearCombination(g, xPowers, stmt.Input)
	rhoPrime := vectorutil.InnerProduct(g, wit.Randomness, xPowers).Neg()

	outputRows := reshapeCiphers(stmt.Output, stmt.M, stmt.N)
	meStmt := &multiexp.Statement{
		CK:      stmt.CK,
		SK:      stmt.SK,
		PK:      stmt.PK,
		H:       stmt.H,
		Ciphers: outputRows,
		CA:      cB,
		E:       target,
	}
	meWit := &multiexp.Witness{A: bRows, RA: sRand, Rho: rhoPrime}
	multiExpProof, err := multiexp.Prove(g, tr, meStmt, meWit, rng)
	if err != nil {
		return nil, fmt.Errorf("shuffle: multi-exponentiation claim: %w", err)
	}

	return &Proof{CA: cA, CB: cB, ProductProof: productProof, MultiExpProof: multiExpProof}, nil
}

// Verify checks a shuffle argument proof.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	deckSize := stmt.M * stmt.N
	if len(stmt.Input) != deckSize || len(stmt.Output) != deckSize || len(proof.CA) != stmt.M || len(proof.CB) != stmt.M {
		return common.ErrCommitmentLength
	}

	absorbDecks(tr, stmt.Input, stmt.Output)
	tr.AppendPoints("shuffle/ca", proof.CA)
	x := tr.ChallengeScalar("shuffle/x")

	tr.AppendPoints("shuffle/cb", proof.CB)
	y := tr.ChallengeScalar("shuffle/y")
	z := tr.ChallengeScalar("shuffle/z")

	dCommit := make([]group.Point, stmt.M)
	for i := 0; i < stmt.M; i++ {
		combined := proof.CA[i].ScalarMul(y).Add(proof.CB[i])
		dCommit[i] = stmt.CK.ShiftCommitment(g, combined, z)
	}

	claimB := productClaim(g, y, x, z, deckSize)

	productStmt := &matrixproduct.Statement{CK: stmt.CK, SK: stmt.SK, CA: dCommit, B: claimB}
	if err := matrixproduct.Verify(g, tr, productStmt, proof.ProductProof); err != nil {
		return fmt.Errorf("shuffle: product claim: %w", err)
	}

	xPowers := vectorutil.PowersOf(g, x, deckSize+1)[1:]
	target := elgamal.LinearCombination(g, xPowers, stmt.Input)

	outputRows := reshapeCiphers(stmt.Output, stmt.M, stmt.N)
	meStmt := &multiexp.Statement{
		CK:      stmt.CK,
		SK:      stmt.SK,
		PK:      stmt.PK,
		H:       stmt.H,
		Ciphers: outputRows,
		CA:      proof.CB,
		E:       target,
	}
	if err := multiexp.Verify(g, tr, meStmt, proof.MultiExpProof); err != nil {
		return fmt.Errorf("shuffle: multi-exponentiation claim: %w", err)
	}

	return nil
}
