// Package card implements the card-protocol facade (C14): the
// operations a mental-poker player actually calls, composed from the
// lower-level primitives in elgamal, pedersen, permutation, schnorr,
// chaumpedersen and arguments/shuffle.
//
// Cards are represented as group.Point values; the caller is
// responsible for mapping a deck's logical cards onto a fixed set of
// distinct points (a lookup table, or a hash-to-curve per card label)
// before masking them. This package never interprets a card's meaning,
// only its encoding as a group element.
package card

import (
	"fmt"
	"io"

	"github.com/geometryxyz/mental-poker/arguments/shuffle"
	"github.com/geometryxyz/mental-poker/chaumpedersen"
	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/pedersen"
	"github.com/geometryxyz/mental-poker/permutation"
	"github.com/geometryxyz/mental-poker/schnorr"
	"github.com/geometryxyz/mental-poker/transcript"
)

// Parameters bundles the public setup every player needs to
// participate in a round: the group, the deck's m*n factorization, the
// commitment keys the shuffle argument commits permutation rows and
// single scalars under, and the masking generator used to blind
// multi-exponentiation openings back into plaintext space.
type Parameters struct {
	Group group.Group
	M     int
	N     int
	CK    *pedersen.CommitmentKey
	SK    *pedersen.ScalarKey
	H     group.Point
}

// DeckSize is the total number of cards this parameter set's
// shuffle argument operates over.
func (p *Parameters) DeckSize() int { return p.M * p.N }

// Setup derives a fresh set of public parameters for a deck factored
// into m rows of n cards each, deterministic in (g, label, m, n) so
// every player derives the same generators independently.
func Setup(g group.Group, m, n int, label string) (*Parameters, error) {
	if m <= 0 || n <= 0 {
		return nil, fmt.Errorf("%w: m and n must be positive, got m=%d n=%d", common.ErrCommitmentLength, m, n)
	}
	ck, err := pedersen.NewCommitmentKey(g, n, label)
	if err != nil {
		return nil, fmt.Errorf("card: setup: %w", err)
	}
	sk, err := pedersen.NewScalarKey(g, label+"/scalar")
	if err != nil {
		return nil, fmt.Errorf("card: setup: %w", err)
	}
	h, err := g.IndependentGenerator([]byte(label + "/masking-generator"))
	if err != nil {
		return nil, fmt.Errorf("card: setup: %w", err)
	}
	return &Parameters{Group: g, M: m, N: n, CK: ck, SK: sk, H: h}, nil
}

func newTranscript(params *Parameters, protocolLabel string) *transcript.Transcript {
	return transcript.New(params.Group, protocolLabel)
}

// PlayerKey is one player's ElGamal key share and the proof of
// knowledge of its secret key, ready to be published to the other
// players.
type PlayerKey struct {
	KeyPair *elgamal.KeyPair
	Proof   *schnorr.Proof
}

// GenerateKey draws a fresh key share for a player and proves
// ownership of it.
func GenerateKey(params *Parameters, rng io.Reader) (*PlayerKey, error) {
	kp, err := elgamal.GenerateKeyPair(params.Group, rng)
	if err != nil {
		return nil, fmt.Errorf("card: generate key: %w", err)
	}
	tr := newTranscript(params, "mental-poker/key-ownership")
	proof, err := schnorr.Prove(params.Group, tr, kp.SecretKey, kp.PublicKey, rng)
	if err != nil {
		return nil, fmt.Errorf("card: prove key ownership: %w", err)
	}
	return &PlayerKey{KeyPair: kp, Proof: proof}, nil
}

// VerifyKeyOwnership checks a published public key's proof of
// knowledge before it is accepted into an aggregate key.
func VerifyKeyOwnership(params *Parameters, pk group.Point, proof *schnorr.Proof) error {
	tr := newTranscript(params, "mental-poker/key-ownership")
	if err := schnorr.Verify(params.Group, tr, pk, proof); err != nil {
		return fmt.Errorf("card: verify key ownership: %w", err)
	}
	return nil
}

// ComputeAggregateKey combines verified player public keys into the
// joint key a deck is masked under.
func ComputeAggregateKey(params *Parameters, pks []group.Point) (group.Point, error) {
	agg, err := elgamal.AggregatePublicKeys(params.Group, pks)
	if err != nil {
		return nil, fmt.Errorf("card: aggregate key: %w", err)
	}
	return agg, nil
}

// MaskedCard is a masked (ElGamal-encrypted) card together with the
// Chaum-Pedersen proof that the same randomness was used for both
// ciphertext halves.
type MaskedCard struct {
	Ciphertext *elgamal.Ciphertext
	Proof      *chaumpedersen.Proof
}

// Mask encrypts card under the aggregate public key and proves the
// mask was correctly formed.
func Mask(params *Parameters, pk group.Point, card group.Point, rng io.Reader) (*MaskedCard, error) {
	ct, r, err := elgamal.Encrypt(params.Group, pk, card, rng)
	if err != nil {
		return nil, fmt.Errorf("card: mask: %w", err)
	}
	tr := newTranscript(params, "mental-poker/mask")
	proof, err := chaumpedersen.Prove(params.Group, tr, params.Group.Generator(), pk, r, rng)
	if err != nil {
		return nil, fmt.Errorf("card: prove mask: %w", err)
	}
	return &MaskedCard{Ciphertext: ct, Proof: proof}, nil
}

// VerifyMask checks a masking proof: that ct.C1 and ct.C2-card share
// the same discrete log relative to G and pk.
func VerifyMask(params *Parameters, pk group.Point, card group.Point, ct *elgamal.Ciphertext, proof *chaumpedersen.Proof) error {
	tr := newTranscript(params, "mental-poker/mask")
	p2 := ct.C2.Sub(card)
	if err := chaumpedersen.Verify(params.Group, tr, params.Group.Generator(), pk, ct.C1, p2, proof); err != nil {
		return fmt.Errorf("card: verify mask: %w", err)
	}
	return nil
}

// Remask re-randomizes a masked card without changing its underlying
// value, proving the re-randomization was correctly formed.
func Remask(params *Parameters, pk group.Point, ct *elgamal.Ciphertext, rng io.Reader) (*MaskedCard, error) {
	newCt, r, err := elgamal.Remask(params.Group, pk, ct, rng)
	if err != nil {
		return nil, fmt.Errorf("card: remask: %w", err)
	}
	tr := newTranscript(params, "mental-poker/remask")
	proof, err := chaumpedersen.Prove(params.Group, tr, params.Group.Generator(), pk, r, rng)
	if err != nil {
		return nil, fmt.Errorf("card: prove remask: %w", err)
	}
	return &MaskedCard{Ciphertext: newCt, Proof: proof}, nil
}

// VerifyRemask checks that newCt is a valid re-randomization of oldCt
// under pk.
func VerifyRemask(params *Parameters, pk group.Point, oldCt, newCt *elgamal.Ciphertext, proof *chaumpedersen.Proof) error {
	tr := newTranscript(params, "mental-poker/remask")
	p1 := newCt.C1.Sub(oldCt.C1)
	p2 := newCt.C2.Sub(oldCt.C2)
	if err := chaumpedersen.Verify(params.Group, tr, params.Group.Generator(), pk, p1, p2, proof); err != nil {
		return fmt.Errorf("card: verify remask: %w", err)
	}
	return nil
}

// RevealShare is one player's partial decryption of a masked card,
// together with the proof it was honestly computed from their key.
type RevealShare struct {
	Token group.Point
	Proof *chaumpedersen.Proof
}

// ComputeRevealToken computes a player's reveal token for ct and
// proves it was derived from the same secret key as pk.
func ComputeRevealToken(params *Parameters, kp *elgamal.KeyPair, ct *elgamal.Ciphertext, rng io.Reader) (*RevealShare, error) {
	token := elgamal.RevealToken(ct, kp.SecretKey)
	tr := newTranscript(params, "mental-poker/reveal")
	proof, err := chaumpedersen.Prove(params.Group, tr, params.Group.Generator(), ct.C1, kp.SecretKey, rng)
	if err != nil {
		return nil, fmt.Errorf("card: prove reveal token: %w", err)
	}
	return &RevealShare{Token: token, Proof: proof}, nil
}

// VerifyRevealToken checks a player's reveal share against their
// published public key.
func VerifyRevealToken(params *Parameters, pk group.Point, ct *elgamal.Ciphertext, share *RevealShare) error {
	tr := newTranscript(params, "mental-poker/reveal")
	if err := chaumpedersen.Verify(params.Group, tr, params.Group.Generator(), ct.C1, pk, share.Token, share.Proof); err != nil {
		return fmt.Errorf("card: verify reveal token: %w", err)
	}
	return nil
}

// Unmask recovers a card's value once every player's reveal share for
// it has been collected and verified.
func Unmask(params *Parameters, ct *elgamal.Ciphertext, shares []*RevealShare) group.Point {
	tokens := make([]group.Point, len(shares))
	for i, s := range shares {
		tokens[i] = s.Token
	}
	combined := elgamal.CombineRevealTokens(params.Group, tokens)
	return elgamal.Unmask(ct, combined)
}

// ShuffledDeck is a shuffled-and-remasked deck and the proof that it
// is a valid permutation and re-randomization of its input deck.
type ShuffledDeck struct {
	Output []*elgamal.Ciphertext
	Proof  *shuffle.Proof
}

// ShuffleAndRemask applies a random permutation to deck and
// independently re-randomizes every entry, producing a proof that the
// result is a valid shuffle of the input under pk.
func ShuffleAndRemask(params *Parameters, pk group.Point, deck []*elgamal.Ciphertext, rng io.Reader) (*ShuffledDeck, error) {
	deckSize := params.DeckSize()
	if len(deck) != deckSize {
		return nil, fmt.Errorf("%w: expected %d cards, got %d", common.ErrLengthMismatch, deckSize, len(deck))
	}

	perm, err := permutation.Random(deckSize, rng)
	if err != nil {
		return nil, fmt.Errorf("card: shuffle: %w", err)
	}

	randomness := make([]group.Scalar, deckSize)
	output := make([]*elgamal.Ciphertext, deckSize)
	for i, ct := range deck {
		r, err := params.Group.RandomScalar(rng)
		if err != nil {
			return nil, fmt.Errorf("card: shuffle: %w", err)
		}
		randomness[i] = r
		output[perm[i]] = elgamal.RemaskWithRandomness(params.Group, pk, ct, r)
	}

	tr := newTranscript(params, "mental-poker/shuffle")
	stmt := &shuffle.Statement{CK: params.CK, SK: params.SK, M: params.M, N: params.N, PK: pk, H: params.H, Input: deck, Output: output}
	wit := &shuffle.Witness{Perm: perm, Randomness: randomness}
	proof, err := shuffle.Prove(params.Group, tr, stmt, wit, rng)
	if err != nil {
		return nil, fmt.Errorf("card: prove shuffle: %w", err)
	}

	return &ShuffledDeck{Output: output, Proof: proof}, nil
}

// VerifyShuffle checks that output is a valid shuffle-and-remask of
// input under pk.
func VerifyShuffle(params *Parameters, pk group.Point, input, output []*elgamal.Ciphertext, proof *shuffle.Proof) error {
	tr := newTranscript(params, "mental-poker/shuffle")
	stmt := &shuffle.Statement{CK: params.CK, SK: params.SK, M: params.M, N: params.N, PK: pk, H: params.H, Input: input, Output: output}
	if err := shuffle.Verify(params.Group, tr, stmt, proof); err != nil {
		return fmt.Errorf("card: verify shuffle: %w", err)
	}
	return nil
}
