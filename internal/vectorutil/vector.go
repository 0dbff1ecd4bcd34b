// Package vectorutil provides small scalar/point vector helpers shared
// by the argument packages: random vector sampling and linear
// combination, plus polynomial-coefficient helpers that no argument
// package currently calls.
package vectorutil

import (
	"io"

	"github.com/geometryxyz/mental-poker/group"
)

// RandomScalars draws n independent uniform scalars from rng.
func RandomScalars(g group.Group, n int, rng io.Reader) ([]group.Scalar, error) {
	out := make([]group.Scalar, n)
	for i := range out {
		s, err := g.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// AddScaled returns a + x*b, element-wise.
func AddScaled(a, b []group.Scalar, x group.Scalar) []group.Scalar {
	out := make([]group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i].Mul(x))
	}
	return out
}

// Scale returns x*a, element-wise.
func Scale(a []group.Scalar, x group.Scalar) []group.Scalar {
	out := make([]group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Mul(x)
	}
	return out
}

// Add returns a+b, element-wise.
func Add(a, b []group.Scalar) []group.Scalar {
	out := make([]group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Add(b[i])
	}
	return out
}

// Hadamard returns the element-wise product of a and b.
func Hadamard(a, b []group.Scalar) []group.Scalar {
	out := make([]group.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Mul(b[i])
	}
	return out
}

// Sum returns the sum of a vector's entries.
func Sum(g group.Group, a []group.Scalar) group.Scalar {
	sum := g.Zero()
	for _, v := range a {
		sum = sum.Add(v)
	}
	return sum
}

// InnerProduct returns sum_i a_i*b_i.
func InnerProduct(g group.Group, a, b []group.Scalar) group.Scalar {
	sum := g.Zero()
	for i := range a {
		sum = sum.Add(a[i].Mul(b[i]))
	}
	return sum
}

// PowersOf returns (1, x, x^2, ..., x^(n-1)).
func PowersOf(g group.Group, x group.Scalar, n int) []group.Scalar {
	out := make([]group.Scalar, n)
	cur := g.One()
	for i := range out {
		out[i] = cur
		cur = cur.Mul(x)
	}
	return out
}

// ProductPolynomialCoeffs multiplies out prod_i (a[i] + x*d[i]) as a
// polynomial in x and returns its coefficients [c_0, c_1, ..., c_n],
// where c_0 = prod(a) and c_n = prod(d).
func ProductPolynomialCoeffs(g group.Group, a, d []group.Scalar) []group.Scalar {
	poly := []group.Scalar{g.One()}
	for i := range a {
		next := make([]group.Scalar, len(poly)+1)
		for k := range next {
			next[k] = g.Zero()
		}
		for k, c := range poly {
			next[k] = next[k].Add(c.Mul(a[i]))
			next[k+1] = next[k+1].Add(c.Mul(d[i]))
		}
		poly = next
	}
	return poly
}

// EvalPolynomial evaluates coeffs (constant term first) at x.
func EvalPolynomial(g group.Group, coeffs []group.Scalar, x group.Scalar) group.Scalar {
	result := g.Zero()
	power := g.One()
	for _, c := range coeffs {
		result = result.Add(c.Mul(power))
		power = power.Mul(x)
	}
	return result
}

// AddPoints sums a slice of points.
func AddPoints(g group.Group, points []group.Point) group.Point {
	sum := g.Identity()
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum
}
