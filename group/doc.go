// BLS12381G1 is the only exported Group value; the concrete curve types
// backing it (g1Scalar, g1Point) are never constructed outside bls12381.go.
//
// Generators produced by IndependentGenerator are nothing-up-my-sleeve:
// they come from hashing a label onto the curve (bls12381.HashToG1),
// never from scalar-multiplying the base generator by a public scalar,
// which would leak a computable discrete-log relation between
// generators and break the binding property any Pedersen-style
// commitment built on them depends on.
package group
