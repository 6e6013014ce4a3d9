package main

import (
	"bufio"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dawgo/simtrie"
)

// newBuildCmd wires `simtriectl build`: read a sorted or unsorted word list
// (one key per line, optionally "key\tvalue") and write a serialized image.
func newBuildCmd() *cobra.Command {
	var (
		outPath string
		sorted  bool
	)
	cmd := &cobra.Command{
		Use:   "build <wordlist> -o <out>",
		Short: "Build a dictionary image from a newline-delimited word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, hasValues, err := readWordlist(args[0])
			if err != nil {
				return err
			}

			var data []byte
			if hasValues {
				d, err := simtrie.NewDict(pairs, sorted)
				if err != nil {
					return fmt.Errorf("build dict: %w", err)
				}
				data = d.ToBytes()
			} else {
				keys := make([][]byte, len(pairs))
				for i, p := range pairs {
					keys[i] = p.Key
				}
				s, err := simtrie.NewSet(keys, sorted)
				if err != nil {
					return fmt.Errorf("build set: %w", err)
				}
				data = s.ToBytes()
			}

			if outPath == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output image path (default stdout)")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "input is already in strictly ascending key order")
	return cmd
}

// readWordlist parses lines of "key" or "key\tvalue" into Pairs, sorting by
// key so a caller can always pass sorted=true downstream regardless of the
// --sorted flag's claim about the raw input.
func readWordlist(path string) ([]simtrie.Pair, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	var pairs []simtrie.Pair
	hasValues := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		key := []byte(parts[0])
		var value *big.Int
		if len(parts) == 2 {
			hasValues = true
			value = new(big.Int)
			if _, ok := value.SetString(parts[1], 10); !ok {
				return nil, false, fmt.Errorf("invalid value %q for key %q", parts[1], parts[0])
			}
		}
		pairs = append(pairs, simtrie.Pair{Key: key, Value: value})
	}
	if err := sc.Err(); err != nil {
		return nil, false, fmt.Errorf("read wordlist: %w", err)
	}

	sort.Slice(pairs, func(i, j int) bool {
		return string(pairs[i].Key) < string(pairs[j].Key)
	})
	return pairs, hasValues, nil
}
