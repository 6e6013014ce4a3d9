package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dawgo/simtrie"
)

// loadSet reads an image path and parses it as a Set.
func loadSet(path string) (*simtrie.Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	s, err := simtrie.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse image: %w", err)
	}
	return s, nil
}

// loadDict reads an image path and parses it as a Dict (the image must have
// been built with values).
func loadDict(path string) (*simtrie.Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	d, err := simtrie.FromBytesDict(data)
	if err != nil {
		return nil, fmt.Errorf("parse image: %w", err)
	}
	return d, nil
}

func newContainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contains <image> <key>",
		Short: "Report whether key is a member of the dictionary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSet(args[0])
			if err != nil {
				return err
			}
			if s.Contains([]byte(args[1])) {
				fmt.Fprintln(cmd.OutOrStdout(), "true")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <image> <key>",
		Short: "Print the value associated with key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDict(args[0])
			if err != nil {
				return err
			}
			v, err := d.Get([]byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
	return cmd
}

func newKeysCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "keys <image>",
		Short: "List every key starting with --prefix (default: all keys)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSet(args[0])
			if err != nil {
				return err
			}
			keys := s.Keys([]byte(prefix))
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), string(k))
			}
			if len(keys) == 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "only list keys starting with this prefix")
	return cmd
}

func newPrefixesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefixes <image> <string>",
		Short: "List every key that is a prefix of string, ascending by length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSet(args[0])
			if err != nil {
				return err
			}
			for _, k := range s.Prefixes([]byte(args[1])) {
				fmt.Fprintln(cmd.OutOrStdout(), string(k))
			}
			return nil
		},
	}
	return cmd
}
