package group

import (
	"crypto/sha512"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/geometryxyz/mental-poker/internal/common"
)

// BLS12381G1 is the concrete Group backing every proof and argument in
// this module: the prime-order G1 subgroup of BLS12-381, via
// gnark-crypto. It is the same curve/point API the signing code in the
// retrieval pack's BBS+ library builds on.
var BLS12381G1 Group = bls12381G1{}

type bls12381G1 struct{}

func (bls12381G1) Name() string { return "bls12-381-g1" }

func (bls12381G1) Identity() Point {
	var p bls12381.G1Affine
	return g1Point{p: p}
}

func (bls12381G1) Generator() Point {
	gen, _ := bls12381.Generators()
	return g1Point{p: gen}
}

func (bls12381G1) Zero() Scalar {
	var el fr.Element
	el.SetZero()
	return g1Scalar{e: el}
}

func (bls12381G1) One() Scalar {
	var el fr.Element
	el.SetOne()
	return g1Scalar{e: el}
}

func (bls12381G1) RandomScalar(rng io.Reader) (Scalar, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil randomness source", common.ErrTranscriptEncoding)
	}
	// Rejection sample a uniform field element from rng, mirroring the
	// constant-time rejection loop the BBS+ RandomScalar helper uses.
	order := fr.Modulus()
	for {
		buf := make([]byte, (order.BitLen()+7)/8)
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrTranscriptEncoding, err)
		}
		candidate := new(big.Int).SetBytes(buf)
		if candidate.Cmp(order) < 0 {
			var el fr.Element
			el.SetBigInt(candidate)
			return g1Scalar{e: el}, nil
		}
	}
}

func (bls12381G1) IndependentGenerator(label []byte) (Point, error) {
	p, err := bls12381.HashToG1(label, []byte(common.DST_G1))
	if err != nil {
		return nil, fmt.Errorf("%w: hash-to-curve failed: %v", common.ErrTranscriptEncoding, err)
	}
	return g1Point{p: p}, nil
}

func (bls12381G1) ScalarFromBytes(buf []byte) (Scalar, error) {
	if len(buf) != fr.Bytes {
		return nil, fmt.Errorf("%w: scalar must be %d bytes, got %d", common.ErrTranscriptEncoding, fr.Bytes, len(buf))
	}
	be := reverseBytes(buf)
	var el fr.Element
	if err := el.SetBytes(be); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTranscriptEncoding, err)
	}
	return g1Scalar{e: el}, nil
}

func (bls12381G1) PointFromBytes(buf []byte) (Point, error) {
	var p bls12381.G1Affine
	if err := p.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTranscriptEncoding, err)
	}
	return g1Point{p: p}, nil
}

func (g bls12381G1) MultiScalarMul(scalars []Scalar, points []Point) (Point, error) {
	if len(scalars) != len(points) {
		return nil, common.ErrLengthMismatch
	}
	if len(scalars) == 0 {
		return g.Identity(), nil
	}

	var result bls12381.G1Jac
	result.X.SetOne()
	result.Y.SetOne()
	result.Z.SetZero()

	for i := range scalars {
		sc, ok := scalars[i].(g1Scalar)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %d not from bls12-381-g1", common.ErrInvalidStatement, i)
		}
		pt, ok := points[i].(g1Point)
		if !ok {
			return nil, fmt.Errorf("%w: point %d not from bls12-381-g1", common.ErrInvalidStatement, i)
		}
		if sc.e.IsZero() || pt.p.IsInfinity() {
			continue
		}

		var scalarBig big.Int
		sc.e.ToBigIntRegular(&scalarBig)

		var tmp bls12381.G1Jac
		tmp.FromAffine(&pt.p)
		tmp.ScalarMultiplication(&tmp, &scalarBig)
		result.AddAssign(&tmp)
	}

	var affine bls12381.G1Affine
	affine.FromJacobian(&result)
	return g1Point{p: affine}, nil
}

func (bls12381G1) HashToScalar(data []byte) Scalar {
	digest := sha512.Sum512(data)
	reduced := new(big.Int).Mod(new(big.Int).SetBytes(digest[:]), fr.Modulus())
	var el fr.Element
	el.SetBigInt(reduced)
	return g1Scalar{e: el}
}

func (bls12381G1) ScalarSize() int { return fr.Bytes }

// g1CompressedSize is the fixed length of a compressed G1 point
// encoding on BLS12-381.
const g1CompressedSize = 48

func (bls12381G1) PointSize() int { return g1CompressedSize }

// g1Scalar wraps an fr.Element.
type g1Scalar struct {
	e fr.Element
}

func (s g1Scalar) Add(other Scalar) Scalar {
	o := other.(g1Scalar)
	var r fr.Element
	r.Add(&s.e, &o.e)
	return g1Scalar{e: r}
}

func (s g1Scalar) Sub(other Scalar) Scalar {
	o := other.(g1Scalar)
	var r fr.Element
	r.Sub(&s.e, &o.e)
	return g1Scalar{e: r}
}

func (s g1Scalar) Mul(other Scalar) Scalar {
	o := other.(g1Scalar)
	var r fr.Element
	r.Mul(&s.e, &o.e)
	return g1Scalar{e: r}
}

func (s g1Scalar) Neg() Scalar {
	var r fr.Element
	r.Neg(&s.e)
	return g1Scalar{e: r}
}

func (s g1Scalar) Inverse() (Scalar, error) {
	if s.e.IsZero() {
		return nil, fmt.Errorf("%w: inverse of zero", common.ErrInvalidStatement)
	}
	var r fr.Element
	r.Inverse(&s.e)
	return g1Scalar{e: r}, nil
}

func (s g1Scalar) IsZero() bool { return s.e.IsZero() }

func (s g1Scalar) Equal(other Scalar) bool {
	o, ok := other.(g1Scalar)
	if !ok {
		return false
	}
	return s.e.Equal(&o.e)
}

func (s g1Scalar) Bytes() []byte {
	be := s.e.Bytes()
	return reverseBytes(be[:])
}

// g1Point wraps a bls12381.G1Affine.
type g1Point struct {
	p bls12381.G1Affine
}

func (p g1Point) Add(other Point) Point {
	o := other.(g1Point)
	var ja, jb, r bls12381.G1Jac
	ja.FromAffine(&p.p)
	jb.FromAffine(&o.p)
	r.Set(&ja)
	r.AddAssign(&jb)
	var affine bls12381.G1Affine
	affine.FromJacobian(&r)
	return g1Point{p: affine}
}

func (p g1Point) Sub(other Point) Point {
	return p.Add(other.Neg())
}

func (p g1Point) Neg() Point {
	var r bls12381.G1Affine
	r.Neg(&p.p)
	return g1Point{p: r}
}

func (p g1Point) ScalarMul(s Scalar) Point {
	sc := s.(g1Scalar)
	var scalarBig big.Int
	sc.e.ToBigIntRegular(&scalarBig)

	var jp, r bls12381.G1Jac
	jp.FromAffine(&p.p)
	r.ScalarMultiplication(&jp, &scalarBig)

	var affine bls12381.G1Affine
	affine.FromJacobian(&r)
	return g1Point{p: affine}
}

func (p g1Point) Equal(other Point) bool {
	o, ok := other.(g1Point)
	if !ok {
		return false
	}
	return p.p.Equal(&o.p)
}

func (p g1Point) IsIdentity() bool { return p.p.IsInfinity() }

func (p g1Point) Bytes() []byte {
	b := p.p.Bytes()
	return b[:]
}

func reverseBytes(in []byte) []byte {
	out := make([]byte, len(in))
	for i, b := range in {
		out[len(in)-1-i] = b
	}
	return out
}
