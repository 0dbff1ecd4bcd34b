package card

import (
	"crypto/rand"
	"testing"

	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
)

func TestFullProtocolRound(t *testing.T) {
	g := group.BLS12381G1
	const m = 2
	const cols = 2
	const n = m * cols
	const numPlayers = 3

	params, err := Setup(g, m, cols, "card-test-round")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	playerKeys := make([]*PlayerKey, numPlayers)
	pks := make([]group.Point, numPlayers)
	for i := 0; i < numPlayers; i++ {
		pk, err := GenerateKey(params, rand.Reader)
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		if err := VerifyKeyOwnership(params, pk.KeyPair.PublicKey, pk.Proof); err != nil {
			t.Fatalf("VerifyKeyOwnership: %v", err)
		}
		playerKeys[i] = pk
		pks[i] = pk.KeyPair.PublicKey
	}

	aggPK, err := ComputeAggregateKey(params, pks)
	if err != nil {
		t.Fatalf("ComputeAggregateKey: %v", err)
	}

	cards := make([]group.Point, n)
	deck := make([]*MaskedCard, n)
	for i := 0; i < n; i++ {
		c, err := g.IndependentGenerator([]byte{byte('A' + i)})
		if err != nil {
			t.Fatalf("IndependentGenerator: %v", err)
		}
		cards[i] = c
		mc, err := Mask(params, aggPK, c, rand.Reader)
		if err != nil {
			t.Fatalf("Mask: %v", err)
		}
		if err := VerifyMask(params, aggPK, c, mc.Ciphertext, mc.Proof); err != nil {
			t.Fatalf("VerifyMask: %v", err)
		}
		deck[i] = mc
	}

	currentDeck := make([]*elgamal.Ciphertext, n)
	for i, mc := range deck {
		currentDeck[i] = mc.Ciphertext
	}

	for p := 0; p < numPlayers; p++ {
		shuffled, err := ShuffleAndRemask(params, aggPK, currentDeck, rand.Reader)
		if err != nil {
			t.Fatalf("ShuffleAndRemask (player %d): %v", p, err)
		}
		if err := VerifyShuffle(params, aggPK, currentDeck, shuffled.Output, shuffled.Proof); err != nil {
			t.Fatalf("VerifyShuffle (player %d): %v", p, err)
		}
		currentDeck = shuffled.Output
	}

	for pos := 0; pos < n; pos++ {
		shares := make([]*RevealShare, numPlayers)
		for p := 0; p < numPlayers; p++ {
			share, err := ComputeRevealToken(params, playerKeys[p].KeyPair, currentDeck[pos], rand.Reader)
			if err != nil {
				t.Fatalf("ComputeRevealToken: %v", err)
			}
			if err := VerifyRevealToken(params, pks[p], currentDeck[pos], share); err != nil {
				t.Fatalf("VerifyRevealToken: %v", err)
			}
			shares[p] = share
		}
		revealed := Unmask(params, currentDeck[pos], shares)

		found := false
		for _, c := range cards {
			if c.Equal(revealed) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("revealed card at position %d does not match any original card", pos)
		}
	}
}

func TestVerifyMaskRejectsWrongCard(t *testing.T) {
	g := group.BLS12381G1
	params, err := Setup(g, 1, 2, "card-test-wrong-mask")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	pk, err := GenerateKey(params, rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	card, err := g.IndependentGenerator([]byte("real-card"))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}
	other, err := g.IndependentGenerator([]byte("other-card"))
	if err != nil {
		t.Fatalf("IndependentGenerator: %v", err)
	}

	mc, err := Mask(params, pk.KeyPair.PublicKey, card, rand.Reader)
	if err != nil {
		t.Fatalf("Mask: %v", err)
	}

	if err := VerifyMask(params, pk.KeyPair.PublicKey, other, mc.Ciphertext, mc.Proof); err == nil {
		t.Fatalf("expected verification failure against a mismatched card")
	}
}
