// Command bench times masking and shuffle-proof generation across a
// range of deck sizes and renders the results as a PNG latency chart.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"os"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/geometryxyz/mental-poker/card"
	"github.com/geometryxyz/mental-poker/elgamal"
	"github.com/geometryxyz/mental-poker/group"
)

func main() {
	minDeck := flag.Int("min-deck", 4, "smallest deck size to benchmark")
	maxDeck := flag.Int("max-deck", 32, "largest deck size to benchmark")
	step := flag.Int("step", 4, "deck size step")
	output := flag.String("output", "bench.png", "output PNG path")
	flag.Parse()

	if *minDeck < 1 || *maxDeck < *minDeck || *step < 1 {
		fmt.Fprintln(os.Stderr, "Error: invalid deck size range")
		os.Exit(1)
	}

	g := group.BLS12381G1

	var deckSizes, maskMillis, shuffleMillis []float64

	const rows = 2 // shuffle argument's matrix factorization: m=rows, n=deckSize/rows

	for n := *minDeck; n <= *maxDeck; n += *step {
		if n%rows != 0 {
			fmt.Fprintf(os.Stderr, "Error: deck size %d is not a multiple of %d\n", n, rows)
			os.Exit(1)
		}
		params, err := card.Setup(g, rows, n/rows, fmt.Sprintf("mental-poker/bench/%d", n))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error setting up params for deck size %d: %v\n", n, err)
			os.Exit(1)
		}

		playerKey, err := card.GenerateKey(params, rand.Reader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating key: %v\n", err)
			os.Exit(1)
		}
		pk := playerKey.KeyPair.PublicKey

		deck := make([]*elgamal.Ciphertext, n)
		maskStart := time.Now()
		for i := range deck {
			cardPoint, err := g.IndependentGenerator([]byte(fmt.Sprintf("bench/card/%d/%d", n, i)))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error deriving card point: %v\n", err)
				os.Exit(1)
			}
			masked, err := card.Mask(params, pk, cardPoint, rand.Reader)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error masking card: %v\n", err)
				os.Exit(1)
			}
			deck[i] = masked.Ciphertext
		}
		maskElapsed := time.Since(maskStart)

		shuffleStart := time.Now()
		shuffled, err := card.ShuffleAndRemask(params, pk, deck, rand.Reader)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error shuffling deck: %v\n", err)
			os.Exit(1)
		}
		shuffleElapsed := time.Since(shuffleStart)

		if err := card.VerifyShuffle(params, pk, deck, shuffled.Output, shuffled.Proof); err != nil {
			fmt.Fprintf(os.Stderr, "Error: shuffle proof failed verification: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("deck=%-4d mask=%-12s shuffle=%-12s\n", n, maskElapsed, shuffleElapsed)

		deckSizes = append(deckSizes, float64(n))
		maskMillis = append(maskMillis, float64(maskElapsed.Microseconds())/1000.0)
		shuffleMillis = append(shuffleMillis, float64(shuffleElapsed.Microseconds())/1000.0)
	}

	graph := gochart.Chart{
		Title: "Mask and shuffle proof latency by deck size",
		XAxis: gochart.XAxis{Name: "Deck size"},
		YAxis: gochart.YAxis{Name: "Latency (ms)"},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Mask deck",
				XValues: deckSizes,
				YValues: maskMillis,
			},
			gochart.ContinuousSeries{
				Name:    "Shuffle + proof",
				XValues: deckSizes,
				YValues: shuffleMillis,
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := graph.Render(gochart.PNG, f); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering chart: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Chart written to %s\n", *output)
}
