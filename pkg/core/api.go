package core

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/geometryxyz/mental-poker/arguments/shuffle"
	"github.com/geometryxyz/mental-poker/card"
	"github.com/geometryxyz/mental-poker/chaumpedersen"
	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
	"github.com/geometryxyz/mental-poker/internal/common"
	"github.com/geometryxyz/mental-poker/schnorr"
)

// Re-exported so callers need not import the lower-level packages just
// to name these types.
type (
	Parameters   = card.Parameters
	PlayerKey    = card.PlayerKey
	MaskedCard   = card.MaskedCard
	RevealShare  = card.RevealShare
	ShuffledDeck = card.ShuffledDeck
	Ciphertext   = elgamal.Ciphertext
	KeyPair      = elgamal.KeyPair
)

// Public error variables.
var (
	ErrInvalidParameter  = common.ErrInvalidStatement
	ErrMismatchedLengths = common.ErrLengthMismatch
	ErrInvalidProof      = common.ErrProofVerification
)

func readerOrDefault(rng io.Reader) io.Reader {
	if rng == nil {
		return rand.Reader
	}
	return rng
}

// Setup derives the public parameters for a deck factored into m rows
// of n cards each, as the shuffle argument's committed matrices require.
func Setup(g group.Group, m, n int, label string) (*Parameters, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: group must not be nil", ErrInvalidParameter)
	}
	if m < 1 || n < 1 {
		return nil, fmt.Errorf("%w: m and n must be positive, got m=%d n=%d", ErrInvalidParameter, m, n)
	}
	if label == "" {
		return nil, fmt.Errorf("%w: label must not be empty", ErrInvalidParameter)
	}
	return card.Setup(g, m, n, label)
}

// GenerateKey draws a fresh player key share and proves ownership of
// it. rng may be nil to use crypto/rand.
func GenerateKey(params *Parameters, rng io.Reader) (*PlayerKey, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameters must not be nil", ErrInvalidParameter)
	}
	return card.GenerateKey(params, readerOrDefault(rng))
}

// VerifyKeyOwnership checks a published public key's proof of
// knowledge of its secret key.
func VerifyKeyOwnership(params *Parameters, pk group.Point, proof *schnorr.Proof) error {
	if params == nil || pk == nil || proof == nil {
		return fmt.Errorf("%w: nil argument to VerifyKeyOwnership", ErrInvalidParameter)
	}
	return card.VerifyKeyOwnership(params, pk, proof)
}

// ComputeAggregateKey combines the verified public key shares from
// every player into the joint key the deck is masked under.
func ComputeAggregateKey(params *Parameters, pks []group.Point) (group.Point, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameters must not be nil", ErrInvalidParameter)
	}
	if len(pks) == 0 {
		return nil, fmt.Errorf("%w: no public key shares", ErrInvalidParameter)
	}
	return card.ComputeAggregateKey(params, pks)
}

// MaskCard encrypts card under the aggregate public key pk.
func MaskCard(params *Parameters, pk group.Point, cardPoint group.Point, rng io.Reader) (*MaskedCard, error) {
	if params == nil || pk == nil || cardPoint == nil {
		return nil, fmt.Errorf("%w: nil argument to MaskCard", ErrInvalidParameter)
	}
	return card.Mask(params, pk, cardPoint, readerOrDefault(rng))
}

// VerifyMaskedCard checks that ct is a valid mask of cardPoint under pk.
func VerifyMaskedCard(params *Parameters, pk group.Point, cardPoint group.Point, ct *Ciphertext, proof *chaumpedersen.Proof) error {
	if params == nil || pk == nil || cardPoint == nil || ct == nil || proof == nil {
		return fmt.Errorf("%w: nil argument to VerifyMaskedCard", ErrInvalidParameter)
	}
	return card.VerifyMask(params, pk, cardPoint, ct, proof)
}

// RemaskCard re-randomizes an already-masked card without revealing
// or changing its underlying value.
func RemaskCard(params *Parameters, pk group.Point, ct *Ciphertext, rng io.Reader) (*MaskedCard, error) {
	if params == nil || pk == nil || ct == nil {
		return nil, fmt.Errorf("%w: nil argument to RemaskCard", ErrInvalidParameter)
	}
	return card.Remask(params, pk, ct, readerOrDefault(rng))
}

// VerifyRemaskedCard checks that newCt is a valid re-randomization of
// oldCt under pk.
func VerifyRemaskedCard(params *Parameters, pk group.Point, oldCt, newCt *Ciphertext, proof *chaumpedersen.Proof) error {
	if params == nil || pk == nil || oldCt == nil || newCt == nil || proof == nil {
		return fmt.Errorf("%w: nil argument to VerifyRemaskedCard", ErrInvalidParameter)
	}
	return card.VerifyRemask(params, pk, oldCt, newCt, proof)
}

// ComputeRevealToken computes one player's partial decryption share
// for a masked card.
func ComputeRevealToken(params *Parameters, kp *KeyPair, ct *Ciphertext, rng io.Reader) (*RevealShare, error) {
	if params == nil || kp == nil || ct == nil {
		return nil, fmt.Errorf("%w: nil argument to ComputeRevealToken", ErrInvalidParameter)
	}
	return card.ComputeRevealToken(params, kp, ct, readerOrDefault(rng))
}

// VerifyRevealToken checks a player's reveal share against their
// published public key.
func VerifyRevealToken(params *Parameters, pk group.Point, ct *Ciphertext, share *RevealShare) error {
	if params == nil || pk == nil || ct == nil || share == nil {
		return fmt.Errorf("%w: nil argument to VerifyRevealToken", ErrInvalidParameter)
	}
	return card.VerifyRevealToken(params, pk, ct, share)
}

// Unmask recovers a card's value once every player's reveal share has
// been collected and verified.
func Unmask(params *Parameters, ct *Ciphertext, shares []*RevealShare) (group.Point, error) {
	if params == nil || ct == nil {
		return nil, fmt.Errorf("%w: nil argument to Unmask", ErrInvalidParameter)
	}
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no reveal shares", ErrInvalidParameter)
	}
	return card.Unmask(params, ct, shares), nil
}

// Shuffle applies a random permutation and independent re-randomization
// to every card in deck, returning the result and a proof it was done
// correctly.
func Shuffle(params *Parameters, pk group.Point, deck []*Ciphertext, rng io.Reader) (*ShuffledDeck, error) {
	if params == nil || pk == nil {
		return nil, fmt.Errorf("%w: nil argument to Shuffle", ErrInvalidParameter)
	}
	if len(deck) != params.DeckSize() {
		return nil, fmt.Errorf("%w: expected %d cards, got %d", ErrMismatchedLengths, params.DeckSize(), len(deck))
	}
	return card.ShuffleAndRemask(params, pk, deck, readerOrDefault(rng))
}

// VerifyShuffle checks that output is a valid shuffle-and-remask of
// input under pk.
func VerifyShuffle(params *Parameters, pk group.Point, input, output []*Ciphertext, proof *shuffle.Proof) error {
	if params == nil || pk == nil || proof == nil {
		return fmt.Errorf("%w: nil argument to VerifyShuffle", ErrInvalidParameter)
	}
	if len(input) != params.DeckSize() || len(output) != params.DeckSize() {
		return fmt.Errorf("%w: expected %d cards, got %d input and %d output", ErrMismatchedLengths, params.DeckSize(), len(input), len(output))
	}
	return card.VerifyShuffle(params, pk, input, output, proof)
}
