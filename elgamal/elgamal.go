// Package elgamal implements lifted ElGamal encryption over an abstract
// group.Group: messages are group elements (cards are encoded as
// points), ciphertexts are additively homomorphic in the masking
// randomness, and decryption is threshold-friendly via per-player
// partial reveal tokens that combine by addition.
package elgamal

import (
	"fmt"
	"io"

	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
)

// KeyPair is a single player's ElGamal key share: PublicKey = SecretKey * G.
type KeyPair struct {
	SecretKey group.Scalar
	PublicKey group.Point
}

// Ciphertext is a masked card: (C1, C2) = (r*G, message + r*pk).
type Ciphertext struct {
	C1 group.Point
	C2 group.Point
}

// GenerateKeyPair draws a fresh per-player secret key and derives its
// public share.
func GenerateKeyPair(g group.Group, rng io.Reader) (*KeyPair, error) {
	sk, err := g.RandomScalar(rng)
	if err != nil {
		return nil, fmt.Errorf("elgamal: generate key pair: %w", err)
	}
	return &KeyPair{
		SecretKey: sk,
		PublicKey: g.Generator().ScalarMul(sk),
	}, nil
}

// AggregatePublicKeys combines per-player public key shares into the
// joint public key every mask operation encrypts under. Order does not
// matter: the combination is a group sum.
func AggregatePublicKeys(g group.Group, shares []group.Point) (group.Point, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no public key shares", common.ErrInvalidStatement)
	}
	agg := g.Identity()
	for _, s := range shares {
		agg = agg.Add(s)
	}
	return agg, nil
}

// EncryptWithRandomness masks message under pk using the supplied
// randomness r, rather than sampling one. Provers use this to build the
// exact ciphertext a Chaum-Pedersen mask/remask proof attests to.
func EncryptWithRandomness(g group.Group, pk group.Point, message group.Point, r group.Scalar) *Ciphertext {
	return &Ciphertext{
		C1: g.Generator().ScalarMul(r),
		C2: message.Add(pk.ScalarMul(r)),
	}
}

// Encrypt masks message under pk with freshly drawn randomness, and
// returns that randomness so the caller can build the accompanying
// Chaum-Pedersen mask proof.
func Encrypt(g group.Group, pk group.Point, message group.Point, rng io.Reader) (*Ciphertext, group.Scalar, error) {
	r, err := g.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	return EncryptWithRandomness(g, pk, message, r), r, nil
}

// Remask re-randomizes a ciphertext under the same public key by
// homomorphically adding an encryption of the identity element, without
// changing the underlying message. It returns the fresh ciphertext and
// the remasking randomness used, for the accompanying remask proof.
func Remask(g group.Group, pk group.Point, ct *Ciphertext, rng io.Reader) (*Ciphertext, group.Scalar, error) {
	r, err := g.RandomScalar(rng)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: remask: %w", err)
	}
	return RemaskWithRandomness(g, pk, ct, r), r, nil
}

// RemaskWithRandomness is the deterministic counterpart of Remask.
func RemaskWithRandomness(g group.Group, pk group.Point, ct *Ciphertext, r group.Scalar) *Ciphertext {
	mask := EncryptWithRandomness(g, pk, g.Identity(), r)
	return &Ciphertext{
		C1: ct.C1.Add(mask.C1),
		C2: ct.C2.Add(mask.C2),
	}
}

// RevealToken computes a player's partial decryption share for a
// ciphertext: sk * C1. Combining every player's token (CombineRevealTokens)
// and subtracting it from C2 recovers the masked message (Unmask).
func RevealToken(ct *Ciphertext, sk group.Scalar) group.Point {
	return ct.C1.ScalarMul(sk)
}

// CombineRevealTokens sums per-player reveal tokens into the single
// value Unmask needs. It is the caller's responsibility to verify each
// token against its player's public key (see chaumpedersen) before
// combining.
func CombineRevealTokens(g group.Group, tokens []group.Point) group.Point {
	combined := g.Identity()
	for _, t := range tokens {
		combined = combined.Add(t)
	}
	return combined
}

// Unmask recovers the original message point given the combined reveal
// token from every player holding a share of the key the ciphertext was
// masked under.
func Unmask(ct *Ciphertext, combinedToken group.Point) group.Point {
	return ct.C2.Sub(combinedToken)
}

// ZeroCiphertext is the additive identity: C1 = C2 = the group identity.
func ZeroCiphertext(g group.Group) *Ciphertext {
	return &Ciphertext{C1: g.Identity(), C2: g.Identity()}
}

// Add returns the coordinatewise sum of two ciphertexts.
func (ct *Ciphertext) Add(other *Ciphertext) *Ciphertext {
	return &Ciphertext{C1: ct.C1.Add(other.C1), C2: ct.C2.Add(other.C2)}
}

// Sub returns the coordinatewise difference of two ciphertexts.
func (ct *Ciphertext) Sub(other *Ciphertext) *Ciphertext {
	return &Ciphertext{C1: ct.C1.Sub(other.C1), C2: ct.C2.Sub(other.C2)}
}

// ScalarMul scales both coordinates by s.
func (ct *Ciphertext) ScalarMul(s group.Scalar) *Ciphertext {
	return &Ciphertext{C1: ct.C1.ScalarMul(s), C2: ct.C2.ScalarMul(s)}
}

// Equal reports whether two ciphertexts encode the same pair of points.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.C1.Equal(other.C1) && ct.C2.Equal(other.C2)
}

// LinearCombination computes sum_l scalars[l]*ciphers[l], the
// homomorphic analogue of an inner product: the multi-exponentiation
// and shuffle arguments use this to fold a committed weight vector
// into a single combined ciphertext without decrypting anything.
func LinearCombination(g group.Group, scalars []group.Scalar, ciphers []*Ciphertext) *Ciphertext {
	sum := ZeroCiphertext(g)
	for l, s := range scalars {
		sum = sum.Add(ciphers[l].ScalarMul(s))
	}
	return sum
}
