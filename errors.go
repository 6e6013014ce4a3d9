package simtrie

import (
	"github.com/pkg/errors"

	"github.com/dawgo/simtrie/internal/metric"
)

// Sentinel errors for the caller-observable failure kinds. Wrap/unwrap with
// github.com/pkg/errors (or the standard errors.Is/As, which it supports)
// to recover the underlying cause while still matching a kind.
var (
	// ErrInvalidInput covers unsorted input under sorted=true, duplicate
	// keys, null bytes in keys, and negative values.
	ErrInvalidInput = errors.New("simtrie: invalid input")

	// ErrMissingKey is returned by Get for a key that is not in the
	// dictionary.
	ErrMissingKey = errors.New("simtrie: missing key")

	// ErrParse covers a malformed or truncated serialized image, or an
	// unrecognized magic/version.
	ErrParse = errors.New("simtrie: parse error")

	// ErrMalformedMetric covers an overlapping or contradictory weighted-
	// metric rule specification. It is the same sentinel NewMetric's
	// compilation reports, so errors.Is works against either name.
	ErrMalformedMetric = metric.ErrMalformedMetric
)
