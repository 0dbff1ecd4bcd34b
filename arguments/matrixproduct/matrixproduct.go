// Package matrixproduct implements the matrix-elements-product
// argument (C11): given Pedersen commitments to the m columns of an
// n-row matrix A, prove that the product of every entry (every i,j)
// equals a public scalar b, without revealing A.
//
// The prover first commits the entrywise product across all m columns
// — a single length-n vector — then runs two sub-arguments against
// that one extra commitment: a Hadamard-product argument (C10) showing
// it really is the columns' entrywise product, and a
// single-value-product argument (C8) showing that vector's own entries
// multiply to b. Composing these two narrower claims proves the full
// m*n-entry product without ever committing to, or opening, the matrix
// itself.
package matrixproduct

import (
	"io"

	"github.com/geometryxyz/mental-poker/arguments/hadamard"
	"github.com/geometryxyz/mental-poker/arguments/svp"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/internal/vectorutil"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Statement is the public input: commitments to the matrix's m columns
// and the claimed product of all its entries.
type Statement struct {
	CK *pedersen.CommitmentKey
	SK *pedersen.ScalarKey
	CA []group.Point
	B  group.Scalar
}

// Witness is the prover's matrix, stored column-major (m columns of
// length n), and the randomness used to commit each column.
type Witness struct {
	A  [][]group.Scalar
	RA []group.Scalar
}

// Proof is a matrix-elements-product argument proof.
type Proof struct {
	BCommit       group.Point
	HadamardProof *hadamard.Proof
	SVPProof      *svp.Proof
}

// Prove shows that every entry of the committed matrix multiplies,
// taken together, to stmt.B.
func Prove(g group.Group, tr *transcript.Transcript, stmt *Statement, wit *Witness, rng io.Reader) (*Proof, error) {
	m := len(wit.A)
	if m != len(stmt.CA) || m != len(wit.RA) || m < 2 {
		return nil, common.ErrLengthMismatch
	}
	n := stmt.CK.Len()

	product := make([]group.Scalar, n)
	for l := range product {
		product[l] = g.One()
	}
	for _, col := range wit.A {
		product = vectorutil.Hadamard(product, col)
	}

	s, err := g.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	bCommit, err := stmt.CK.Commit(g, product, s)
	if err != nil {
		return nil, err
	}

	hStmt := &hadamard.Statement{CK: stmt.CK, SK: stmt.SK, CA: stmt.CA, CB: bCommit}
	hWit := &hadamard.Witness{A: wit.A, RA: wit.RA, RB: s}
	hProof, err := hadamard.Prove(g, tr, hStmt, hWit, rng)
	if err != nil {
		return nil, err
	}

	svpStmt := &svp.Statement{CK: stmt.CK, CA: bCommit, B: stmt.B}
	svpWit := &svp.Witness{A: product, R: s}
	svpProof, err := svp.Prove(g, tr, svpStmt, svpWit, rng)
	if err != nil {
		return nil, err
	}

	return &Proof{BCommit: bCommit, HadamardProof: hProof, SVPProof: svpProof}, nil
}

// Verify checks a matrix-elements-product argument proof.
func Verify(g group.Group, tr *transcript.Transcript, stmt *Statement, proof *Proof) error {
	m := len(stmt.CA)
	if m < 2 {
		return common.ErrCommitmentLength
	}

	hStmt := &hadamard.Statement{CK: stmt.CK, SK: stmt.SK, CA: stmt.CA, CB: proof.BCommit}
	if err := hadamard.Verify(g, tr, hStmt, proof.HadamardProof); err != nil {
		return err
	}

	svpStmt := &svp.Statement{CK: stmt.CK, CA: proof.BCommit, B: stmt.B}
	return svp.Verify(g, tr, svpStmt, proof.SVPProof)
}
