package core

import (
	"testing"

	"github.com/geometryxyz/mental-poker/group"
)

func TestSetupRejectsInvalidInputs(t *testing.T) {
	g := group.BLS12381G1

	if _, err := Setup(nil, 2, 2, "test"); err == nil {
		t.Fatalf("expected error for nil group")
	}
	if _, err := Setup(g, 0, 4, "test"); err == nil {
		t.Fatalf("expected error for non-positive row count")
	}
	if _, err := Setup(g, 2, 0, "test"); err == nil {
		t.Fatalf("expected error for non-positive column count")
	}
	if _, err := Setup(g, 2, 2, ""); err == nil {
		t.Fatalf("expected error for empty label")
	}
}

func TestSetupSucceedsWithValidInputs(t *testing.T) {
	g := group.BLS12381G1
	params, err := Setup(g, 2, 2, "core-test-setup")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if params.DeckSize() != 4 {
		t.Fatalf("expected deck size 4, got %d", params.DeckSize())
	}
}

func TestGenerateKeyRejectsNilParameters(t *testing.T) {
	if _, err := GenerateKey(nil, nil); err == nil {
		t.Fatalf("expected error for nil parameters")
	}
}

func TestComputeAggregateKeyRejectsEmptyShares(t *testing.T) {
	g := group.BLS12381G1
	params, err := Setup(g, 1, 2, "core-test-agg")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if _, err := ComputeAggregateKey(params, nil); err == nil {
		t.Fatalf("expected error for empty public key shares")
	}
}

func TestFullRoundThroughCoreAPI(t *testing.T) {
	g := group.BLS12381G1
	const m = 2
	const cols = 3
	const n = m * cols
	params, err := Setup(g, m, cols, "core-test-round")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	pk1, err := GenerateKey(params, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if err := VerifyKeyOwnership(params, pk1.KeyPair.PublicKey, pk1.Proof); err != nil {
		t.Fatalf("VerifyKeyOwnership: %v", err)
	}

	pk2, err := GenerateKey(params, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if err := VerifyKeyOwnership(params, pk2.KeyPair.PublicKey, pk2.Proof); err != nil {
		t.Fatalf("VerifyKeyOwnership: %v", err)
	}

	aggPK, err := ComputeAggregateKey(params, []group.Point{pk1.KeyPair.PublicKey, pk2.KeyPair.PublicKey})
	if err != nil {
		t.Fatalf("ComputeAggregateKey: %v", err)
	}

	deck := make([]*Ciphertext, n)
	cards := make([]group.Point, n)
	masks := make([]*MaskedCard, n)
	for i := 0; i < n; i++ {
		c, err := g.IndependentGenerator([]byte{byte('P' + i)})
		if err != nil {
			t.Fatalf("IndependentGenerator: %v", err)
		}
		cards[i] = c
		mc, err := MaskCard(params, aggPK, c, nil)
		if err != nil {
			t.Fatalf("MaskCard: %v", err)
		}
		if err := VerifyMaskedCard(params, aggPK, c, mc.Ciphertext, mc.Proof); err != nil {
			t.Fatalf("VerifyMaskedCard: %v", err)
		}
		masks[i] = mc
		deck[i] = mc.Ciphertext
	}

	shuffled, err := Shuffle(params, aggPK, deck, nil)
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if err := VerifyShuffle(params, aggPK, deck, shuffled.Output, shuffled.Proof); err != nil {
		t.Fatalf("VerifyShuffle: %v", err)
	}

	for pos := 0; pos < n; pos++ {
		share1, err := ComputeRevealToken(params, pk1.KeyPair, shuffled.Output[pos], nil)
		if err != nil {
			t.Fatalf("ComputeRevealToken: %v", err)
		}
		if err := VerifyRevealToken(params, pk1.KeyPair.PublicKey, shuffled.Output[pos], share1); err != nil {
			t.Fatalf("VerifyRevealToken: %v", err)
		}
		share2, err := ComputeRevealToken(params, pk2.KeyPair, shuffled.Output[pos], nil)
		if err != nil {
			t.Fatalf("ComputeRevealToken: %v", err)
		}
		if err := VerifyRevealToken(params, pk2.KeyPair.PublicKey, shuffled.Output[pos], share2); err != nil {
			t.Fatalf("VerifyRevealToken: %v", err)
		}

		revealed, err := Unmask(params, shuffled.Output[pos], []*RevealShare{share1, share2})
		if err != nil {
			t.Fatalf("Unmask: %v", err)
		}

		found := false
		for _, c := range cards {
			if c.Equal(revealed) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("revealed card at position %d did not match any original card", pos)
		}
	}
}

func TestShuffleRejectsMismatchedLengths(t *testing.T) {
	g := group.BLS12381G1
	params, err := Setup(g, 1, 3, "core-test-mismatched")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	pk, err := GenerateKey(params, nil)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if _, err := Shuffle(params, pk.KeyPair.PublicKey, []*Ciphertext{}, nil); err == nil {
		t.Fatalf("expected error for mismatched deck length")
	}
}
