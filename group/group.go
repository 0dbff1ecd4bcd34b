// Package group defines the abstract elliptic-curve collaborator every
// proof and argument package in this module is built against.
//
// Every other package imports only this interface, never a concrete
// curve library directly, so the argument/protocol layer never needs to
// know which curve it is running over (spec §9's design note against
// "phantom parameter" generics: a Group value is passed around as an
// ordinary interface, not threaded through type parameters).
package group

import "io"

// Scalar is an element of the scalar field of a Group.
type Scalar interface {
	Add(other Scalar) Scalar
	Sub(other Scalar) Scalar
	Mul(other Scalar) Scalar
	Neg() Scalar
	Inverse() (Scalar, error)
	IsZero() bool
	Equal(other Scalar) bool

	// Bytes returns the canonical fixed-width little-endian encoding.
	Bytes() []byte
}

// Point is an element of a Group.
type Point interface {
	Add(other Point) Point
	Sub(other Point) Point
	Neg() Point
	ScalarMul(s Scalar) Point
	Equal(other Point) bool
	IsIdentity() bool

	// Bytes returns the canonical compressed encoding.
	Bytes() []byte
}

// Group is the generic discrete-log group collaborator. A concrete
// implementation (see BLS12381G1 in bls12381.go) backs every Scalar and
// Point value it produces; callers never construct Scalar/Point values
// except through a Group.
type Group interface {
	Name() string

	Identity() Point
	Generator() Point

	// Zero and One are the additive and multiplicative identities of
	// the scalar field.
	Zero() Scalar
	One() Scalar

	RandomScalar(rng io.Reader) (Scalar, error)

	// IndependentGenerator derives a generator with no discoverable
	// discrete-log relation to the base generator or to any other
	// generator this method returns, by hashing label onto the curve.
	// Two calls with the same label return the same point.
	IndependentGenerator(label []byte) (Point, error)

	ScalarFromBytes(buf []byte) (Scalar, error)
	PointFromBytes(buf []byte) (Point, error)

	// HashToScalar reduces arbitrary data (typically already the output
	// of a wide hash function) onto the scalar field. Unlike
	// ScalarFromBytes it never errors: it is the primitive a Fiat-Shamir
	// transcript uses to turn hash output into a challenge.
	HashToScalar(data []byte) Scalar

	// MultiScalarMul computes sum_i scalars[i] * points[i].
	MultiScalarMul(scalars []Scalar, points []Point) (Point, error)

	ScalarSize() int
	PointSize() int
}
