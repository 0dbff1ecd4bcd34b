package common

// Domain separation tags. Each is absorbed as a transcript label or used
// to key a hash-to-curve call so that generators, challenges and
// signatures drawn for different purposes can never collide.
const (
	// DST_G1 is the domain separation tag for hashing to the G1 curve
	// when deriving independent generators for a commitment key.
	DST_G1 = "MENTAL_POKER_BLS12381G1_XMD:SHA-256_SSWU_RO_"

	// DST_TRANSCRIPT is a domain separation tag reserved for the
	// Fiat-Shamir transcript. The transcript package does not read it:
	// it labels challenge derivation with its own "challenge" string.
	DST_TRANSCRIPT = "MENTAL_POKER_BLS12381_XOF:SHAKE-256_TRANSCRIPT_"
)
