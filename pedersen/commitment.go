// Package pedersen implements Pedersen vector commitments: binding and
// hiding, additively homomorphic in both the committed vector and the
// commitment randomness. Every argument in arguments/ commits to its
// witness vectors through a CommitmentKey from this package.
package pedersen

import (
	"fmt"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
)

// CommitmentKey holds n+1 independent generators: G[0..n) for the
// committed vector's coordinates, H for the blinding randomness. Every
// generator is derived by hashing a distinct label onto the curve, so
// no generator's discrete log relative to any other is ever computable
// — the property the commitment's binding relies on.
type CommitmentKey struct {
	G []group.Point
	H group.Point
}

// NewCommitmentKey derives a fresh n-element commitment key, deterministic
// in (g, label, n): the same label always yields the same generators, so
// two parties independently deriving a key for the same protocol
// instance agree on it without exchanging any points.
func NewCommitmentKey(g group.Group, n int, label string) (*CommitmentKey, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: commitment key length must be positive, got %d", common.ErrCommitmentLength, n)
	}

	gens := make([]group.Point, n)
	for i := 0; i < n; i++ {
		p, err := g.IndependentGenerator([]byte(fmt.Sprintf("%s/g/%d", label, i)))
		if err != nil {
			return nil, fmt.Errorf("pedersen: deriving generator %d: %w", i, err)
		}
		gens[i] = p
	}

	h, err := g.IndependentGenerator([]byte(label + "/h"))
	if err != nil {
		return nil, fmt.Errorf("pedersen: deriving blinding generator: %w", err)
	}

	return &CommitmentKey{G: gens, H: h}, nil
}

// Len is the number of coordinates this key commits to.
func (ck *CommitmentKey) Len() int { return len(ck.G) }

// Commit computes H^randomness * prod_i G[i]^values[i].
func (ck *CommitmentKey) Commit(g group.Group, values []group.Scalar, randomness group.Scalar) (group.Point, error) {
	if len(values) != len(ck.G) {
		return nil, fmt.Errorf("%w: expected %d values, got %d", common.ErrCommitmentLength, len(ck.G), len(values))
	}

	scalars := make([]group.Scalar, 0, len(values)+1)
	points := make([]group.Point, 0, len(values)+1)
	scalars = append(scalars, randomness)
	points = append(points, ck.H)
	scalars = append(scalars, values...)
	points = append(points, ck.G...)

	return g.MultiScalarMul(scalars, points)
}

// ShiftCommitment returns the commitment to (values[i] - shift) for
// every i, given only the commitment to values and the public shift —
// no new randomness or knowledge of values is needed, since subtracting
// the same constant from every coordinate subtracts shift times the sum
// of the key's generators from the commitment.
func (ck *CommitmentKey) ShiftCommitment(g group.Group, c group.Point, shift group.Scalar) group.Point {
	sum := g.Identity()
	for _, gen := range ck.G {
		sum = sum.Add(gen)
	}
	return c.Sub(sum.ScalarMul(shift))
}

// ScalarKey is a one-dimensional commitment key for committing to a
// single scalar: Commit(v, r) = G^v * H^r.
type ScalarKey struct {
	G group.Point
	H group.Point
}

// NewScalarKey derives a scalar commitment key deterministically from label.
func NewScalarKey(g group.Group, label string) (*ScalarKey, error) {
	gen, err := g.IndependentGenerator([]byte(label + "/g"))
	if err != nil {
		return nil, fmt.Errorf("pedersen: deriving scalar generator: %w", err)
	}
	h, err := g.IndependentGenerator([]byte(label + "/h"))
	if err != nil {
		return nil, fmt.Errorf("pedersen: deriving scalar blinding generator: %w", err)
	}
	return &ScalarKey{G: gen, H: h}, nil
}

// Commit computes G^v * H^r.
func (k *ScalarKey) Commit(g group.Group, v group.Scalar, r group.Scalar) (group.Point, error) {
	return g.MultiScalarMul([]group.Scalar{v, r}, []group.Point{k.G, k.H})
}

// CommitMatrix commits to each row of a matrix stored row-major
// (rows[i] is the i-th row, each of length ck.Len()), returning one
// commitment per row, rows[i] under randomness[i]. This is the
// convention C13's shuffle argument commits its permuted index and
// power rows under: each row is committed independently.
func (ck *CommitmentKey) CommitMatrix(g group.Group, rows [][]group.Scalar, randomness []group.Scalar) ([]group.Point, error) {
	if len(rows) != len(randomness) {
		return nil, fmt.Errorf("%w: %d rows but %d randomness values", common.ErrLengthMismatch, len(rows), len(randomness))
	}
	out := make([]group.Point, len(rows))
	for i, row := range rows {
		c, err := ck.Commit(g, row, randomness[i])
		if err != nil {
			return nil, fmt.Errorf("pedersen: committing row %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
