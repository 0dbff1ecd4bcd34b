// Package core is the main entry point for applications using this
// module: a validated, input-checked wrapper around package card that
// mirrors the same shape a direct caller would reach for, but rejects
// malformed input before it touches any group arithmetic.
//
// Basic usage:
//
//	params, err := core.Setup(group.BLS12381G1, rows, cols, "my-game/v1")
//	key, err := core.GenerateKey(params, nil)
//	aggPK, err := core.ComputeAggregateKey(params, []group.Point{key.KeyPair.PublicKey})
//	masked, err := core.MaskCard(params, aggPK, cardPoint, nil)
//	shuffled, err := core.Shuffle(params, aggPK, deck, nil)
//	err = core.VerifyShuffle(params, aggPK, deck, shuffled.Output, shuffled.Proof)
//
// core leverages the elgamal, pedersen, permutation, schnorr,
// chaumpedersen and arguments packages internally through card, but
// presents a simplified surface for the common operations a player
// performs in one round of the protocol.
package core

// Version information.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)
