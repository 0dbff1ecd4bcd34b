// Package permutation implements uniformly random permutations, their
// application to point and scalar vectors, and a one-hot matrix encoding.
package permutation

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
)

// Permutation is a bijection on {0, ..., n-1}: applying it sends the
// element at input index i to output index P[i].
type Permutation []int

// Random draws a uniformly random permutation of n elements using the
// Fisher-Yates shuffle, consuming randomness from rng (crypto/rand.Reader
// if rng is nil).
func Random(n int, rng io.Reader) (Permutation, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: permutation size must be positive, got %d", common.ErrInvalidStatement, n)
	}
	if rng == nil {
		rng = rand.Reader
	}

	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := rand.Int(rng, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, fmt.Errorf("permutation: drawing random index: %w", err)
		}
		jInt := int(j.Int64())
		p[i], p[jInt] = p[jInt], p[i]
	}
	return p, nil
}

// Len returns n.
func (p Permutation) Len() int { return len(p) }

// Inverse returns the permutation Q such that Q[P[i]] == i for all i.
func (p Permutation) Inverse() Permutation {
	inv := make(Permutation, len(p))
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

// Apply reorders items so that output[P[i]] == items[i], i.e. the
// element at input position i moves to output position P[i].
func (p Permutation) Apply(items []group.Point) ([]group.Point, error) {
	if len(items) != len(p) {
		return nil, fmt.Errorf("%w: permutation has %d entries, got %d items", common.ErrLengthMismatch, len(p), len(items))
	}
	out := make([]group.Point, len(p))
	for i, v := range p {
		out[v] = items[i]
	}
	return out, nil
}

// ApplyScalars reorders a scalar vector the same way Apply reorders
// group elements: output[P[i]] = items[i]. The shuffle argument uses
// this to permute the index vector and the power vector that its
// committed rows attest to.
func (p Permutation) ApplyScalars(items []group.Scalar) ([]group.Scalar, error) {
	if len(items) != len(p) {
		return nil, fmt.Errorf("%w: permutation has %d entries, got %d items", common.ErrLengthMismatch, len(p), len(items))
	}
	out := make([]group.Scalar, len(p))
	for i, v := range p {
		out[v] = items[i]
	}
	return out, nil
}

// Matrix returns the n x n one-hot permutation matrix with rows[i][P[i]]
// = 1 and every other entry 0: row i is the standard basis vector
// e_{P[i]}. No argument in this module commits to this matrix; the
// shuffle argument commits rows of vectors permuted with ApplyScalars.
func (p Permutation) Matrix(g group.Group) [][]group.Scalar {
	n := len(p)
	zero, one := g.Zero(), g.One()
	rows := make([][]group.Scalar, n)
	for i := range rows {
		row := make([]group.Scalar, n)
		for j := range row {
			row[j] = zero
		}
		row[p[i]] = one
		rows[i] = row
	}
	return rows
}
