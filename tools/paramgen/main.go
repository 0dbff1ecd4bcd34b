// Command paramgen derives and prints the public parameters for a
// mental-poker round: a commitment key sized to a requested deck, keyed
// by a label every player derives independently so no party needs to
// transmit the generators.
package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/geometryxyz/mental-poker/card"
	"github.com/geometryxyz/mental-poker/group"
)

func main() {
	rows := flag.Int("rows", 4, "number of rows (m) in the shuffle argument's matrix factorization")
	cols := flag.Int("cols", 13, "number of columns (n) in the shuffle argument's matrix factorization")
	label := flag.String("label", "mental-poker/v1", "domain-separation label for generator derivation")
	outputFile := flag.String("output", "", "output file for the parameters (optional, defaults to stdout)")
	flag.Parse()

	if *rows < 1 || *cols < 1 {
		fmt.Fprintln(os.Stderr, "Error: rows and cols must each be at least 1")
		os.Exit(1)
	}
	deckSize := *rows * *cols

	fmt.Printf("Deriving commitment key for a %d-card deck (%d x %d) under label %q...\n", deckSize, *rows, *cols, *label)
	params, err := card.Setup(group.BLS12381G1, *rows, *cols, *label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving parameters: %v\n", err)
		os.Exit(1)
	}

	type serializedKey struct {
		Generators []string `json:"generators"`
		H          string   `json:"h"`
	}
	gens := make([]string, len(params.CK.G))
	for i, g := range params.CK.G {
		gens[i] = base64.StdEncoding.EncodeToString(g.Bytes())
	}
	serialized := struct {
		DeckSize int           `json:"deckSize"`
		Label    string        `json:"label"`
		Key      serializedKey `json:"commitmentKey"`
	}{
		DeckSize: deckSize,
		Label:    *label,
		Key: serializedKey{
			Generators: gens,
			H:          base64.StdEncoding.EncodeToString(params.CK.H.Bytes()),
		},
	}

	jsonData, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error serializing parameters: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, jsonData, 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Parameters written to %s\n", *outputFile)
		return
	}
	fmt.Println(string(jsonData))
}
