/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package extract

import (
	"strconv"
	"strings"
)

// RangeKind tags the shape of a parsed reference range.
type RangeKind int

// RangeKind values cover the textual range shapes seen in reports.
const (
	RangeUnparsable RangeKind = iota
	RangeInterval
	RangeUpperBound
	RangeLowerBound
)

// RangeSpec is a parsed reference range. Low and High are populated
// according to Kind: both for an interval, High for an upper bound,
// Low for a lower bound.
type RangeSpec struct {
	Kind RangeKind
	Low  float64
	High float64
}

// ParseRange parses the ad hoc textual range grammar found in stored
// results ("3.5-5.5", "upto 40", "< 200", "more than 60"). Shapes are
// tried in a fixed order and only the first matching one is evaluated.
// Anything that fails to parse yields an Unparsable spec.
//
// A range with a negative lower bound ("-2-5") splits on the leading
// "-" and comes out unparsable; text containing any other "-" does the
// same.
func ParseRange(text string) RangeSpec {
	rng := strings.ToLower(strings.ReplaceAll(text, " ", ""))
	if rng == "" {
		return RangeSpec{Kind: RangeUnparsable}
	}

	if strings.Contains(rng, "-") {
		parts := strings.SplitN(rng, "-", 2)
		low, errLow := strconv.ParseFloat(parts[0], 64)
		high, errHigh := strconv.ParseFloat(parts[1], 64)
		if errLow != nil || errHigh != nil {
			return RangeSpec{Kind: RangeUnparsable}
		}
		return RangeSpec{Kind: RangeInterval, Low: low, High: high}
	}

	if strings.Contains(rng, "upto") || strings.HasPrefix(rng, "<") {
		stripped := strings.TrimPrefix(strings.ReplaceAll(rng, "upto", ""), "<")
		limit, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return RangeSpec{Kind: RangeUnparsable}
		}
		return RangeSpec{Kind: RangeUpperBound, High: limit}
	}

	if strings.Contains(rng, "morethan") || strings.HasPrefix(rng, ">") {
		stripped := strings.TrimPrefix(strings.ReplaceAll(rng, "morethan", ""), ">")
		limit, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return RangeSpec{Kind: RangeUnparsable}
		}
		return RangeSpec{Kind: RangeLowerBound, Low: limit}
	}

	return RangeSpec{Kind: RangeUnparsable}
}
